package material

import (
	"math/rand"
	"time"

	"coilgen.GO/core/logger"
)

// DefaultSeed makes every run reproducible unless overridden.
const DefaultSeed int64 = 2026

// DefaultBaseDate anchors coiling times and due dates.
var DefaultBaseDate = time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)

// Generator owns the random stream and the date anchor of one generation run.
// It is not safe for concurrent use; every draw advances the shared stream.
type Generator struct {
	rng      *rand.Rand
	seed     int64
	seeded   bool // false when the stream came from WithRand
	baseDate time.Time
	catalog  *Catalog
	log      *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed seeds a fresh stream.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r as the stream. The seed behind r is not known, so Seed
// reports ok=false afterwards. Panics if r is nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("material: WithRand(nil)")
	}
	return func(g *Generator) {
		g.rng = r
		g.seed = 0
		g.seeded = false
	}
}

// WithBaseDate moves the anchor. The value is truncated to midnight in its location.
func WithBaseDate(t time.Time) Option {
	return func(g *Generator) {
		g.baseDate = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// WithCatalog replaces the default scenario catalog.
func WithCatalog(c *Catalog) Option {
	return func(g *Generator) {
		g.catalog = c
	}
}

// WithLogger sets the logger. Panics if l is nil.
func WithLogger(l *logger.Logger) Option {
	if l == nil {
		panic("material: WithLogger(nil)")
	}
	return func(g *Generator) {
		g.log = l
	}
}

// NewGenerator applies opts over the defaults: DefaultSeed, DefaultBaseDate,
// DefaultCatalog and a no-op logger.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		seed:     DefaultSeed,
		seeded:   true,
		baseDate: DefaultBaseDate,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	if g.catalog == nil {
		g.catalog = DefaultCatalog()
	}
	return g
}

// Seed returns the seed of the stream; ok is false under WithRand.
func (g *Generator) Seed() (seed int64, ok bool) { return g.seed, g.seeded }

func (g *Generator) BaseDate() time.Time { return g.baseDate }
func (g *Generator) Catalog() *Catalog   { return g.catalog }

// uniform draws from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// between draws an int from [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// chance is true with probability p.
func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// sample picks k distinct values of values, in draw order.
func sample[T any](g *Generator, values []T, k int) []T {
	if k > len(values) {
		k = len(values)
	}
	perm := g.rng.Perm(len(values))
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = values[perm[i]]
	}
	return out
}

func oneOf[T any](g *Generator, values []T) T {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) daysFromBase(days int) *time.Time {
	t := g.baseDate.AddDate(0, 0, days)
	return &t
}
