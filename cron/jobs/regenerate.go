package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"coilgen.GO/core/logger"
	"coilgen.GO/core/registry"
	material "coilgen.GO/service/material"
)

// RegenerateOptions configures the periodic corpus regeneration.
type RegenerateOptions struct {
	OutputDir string
	Count     int

	// OpenDB, when set, persists each corpus with replace_all semantics.
	OpenDB func() (*gorm.DB, error)
	// Redis, when set, receives the coverage summary under registry.KeyLastSummary.
	Redis *redis.Client
	TTL   time.Duration

	Log *logger.Logger
	Now func() time.Time
}

// Regenerate produces a corpus anchored at today's date and emits it to
// OutputDir/materials_<YYYYMMDD>.csv plus the optional sinks. It returns the
// result and the written path.
func Regenerate(ctx context.Context, opts RegenerateOptions, count int) (*material.Result, string, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	base := now().UTC()

	g := material.NewGenerator(
		material.WithBaseDate(base),
		material.WithLogger(log),
	)
	res, err := g.Generate(count)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(opts.OutputDir, fmt.Sprintf("materials_%s.csv", base.Format("20060102")))
	sinks := []material.Sink{material.CSVFileSink(path)}
	if opts.OpenDB != nil {
		db, err := opts.OpenDB()
		if err != nil {
			return nil, "", fmt.Errorf("open database: %w", err)
		}
		sinks = append(sinks, material.DBSink(db, 500, log, func(r *material.ImportResult) {
			log.Info("corpus persisted", "batch", r.BatchNo, "rows", r.Success, "removed", r.Removed)
		}))
	}
	if opts.Redis != nil {
		sinks = append(sinks, material.RedisSink(opts.Redis, registry.KeyLastSummary, opts.TTL))
	}
	if err := material.EmitAll(ctx, res, sinks...); err != nil {
		return nil, "", err
	}

	registry.GlobalRegistry.SetGlobal(registry.KeyLastSummary, res.Summary)
	return res, path, nil
}

// RegenerateJob adapts Regenerate to the cron job signature. An optional first
// argument overrides the record count.
func RegenerateJob(opts RegenerateOptions) func(...string) {
	return func(args ...string) {
		log := opts.Log
		if log == nil {
			log = logger.Nop()
		}
		count := opts.Count
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				log.Error("regenerate: bad count argument", "arg", args[0], "error", err)
				return
			}
			count = n
		}
		res, path, err := Regenerate(context.Background(), opts, count)
		if err != nil {
			log.Error("regenerate failed", "error", err)
			return
		}
		log.Info("regenerated corpus", "path", path, "count", len(res.Corpus), "base", res.BaseDate.Format("2006-01-02"))
	}
}
