package material

import (
	"fmt"
	"time"

	entity "coilgen.GO/model/entity"
)

// DefaultCount is the corpus size used when none is given.
const DefaultCount = 10000

// Result is the immutable outcome of one generation run.
type Result struct {
	Corpus      []entity.Material
	Seed        int64 // meaningful only when Seeded
	Seeded      bool
	BaseDate    time.Time
	CatalogSize int
	Violations  Violations
	Summary     *Summary
	TotalTime   time.Duration
}

// Source names the random stream of the run, "seed=N" or "external-rand".
func (r *Result) Source() string {
	if !r.Seeded {
		return "external-rand"
	}
	return fmt.Sprintf("seed=%d", r.Seed)
}

// Generate runs the full pipeline: catalog, catalog shuffle, synthesis of the
// catalog entries, random fill up to count, enforcement, final shuffle with
// dense ids, and the coverage report. When count is below the catalog size the
// shuffled catalog is truncated to count.
func (g *Generator) Generate(count int) (*Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("generate %d records: %w", count, ErrInvalidCount)
	}
	start := time.Now()

	overrides := g.catalog.Build(g)
	catalogSize := len(overrides)
	g.rng.Shuffle(len(overrides), func(i, j int) {
		overrides[i], overrides[j] = overrides[j], overrides[i]
	})
	if len(overrides) > count {
		g.log.Warn("catalog larger than requested count, truncating", "catalog", catalogSize, "count", count)
		overrides = overrides[:count]
	}

	corpus := make([]entity.Material, 0, count)
	for _, o := range overrides {
		corpus = append(corpus, g.Synthesize(len(corpus)+1, o))
	}
	for len(corpus) < count {
		corpus = append(corpus, g.Synthesize(len(corpus)+1, Override{}))
	}

	corpus, violations := Enforce(corpus)
	corpus = g.Finalize(corpus)

	summary := Report(corpus)
	summary.Violations = &violations
	if leak := summary.FillLeakage(); leak > 0 {
		g.log.Warn("random fill produced records outside their product-type range", "count", leak)
	}

	res := &Result{
		Corpus:      corpus,
		Seed:        g.seed,
		Seeded:      g.seeded,
		BaseDate:    g.baseDate,
		CatalogSize: catalogSize,
		Violations:  violations,
		Summary:     summary,
		TotalTime:   time.Since(start),
	}
	g.log.Info("corpus generated",
		"count", len(corpus),
		"catalog", catalogSize,
		"clamped", violations.Total(),
		"source", res.Source(),
		"elapsed", res.TotalTime,
	)
	return res, nil
}
