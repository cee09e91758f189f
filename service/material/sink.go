package material

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"coilgen.GO/core/logger"
	entity "coilgen.GO/model/entity"
)

// Sink consumes a finished Result. Sinks run concurrently and must not modify
// the corpus.
type Sink func(ctx context.Context, res *Result) error

// EmitAll runs every sink concurrently and returns the first error.
func EmitAll(ctx context.Context, res *Result, sinks ...Sink) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		sink := sink
		g.Go(func() error {
			return sink(ctx, res)
		})
	}
	return g.Wait()
}

// CSVFileSink writes the corpus to path, creating parent directories.
func CSVFileSink(path string) Sink {
	return func(ctx context.Context, res *Result) error {
		if path == "" {
			return ErrEmptyOutputPath
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := WriteCSV(f, res.Corpus); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		return f.Close()
	}
}

// DBSink replaces the material table with the corpus. The corpus is copied
// first since persistence stamps the batch id on every record.
func DBSink(db *gorm.DB, batchSize int, log *logger.Logger, onDone func(*ImportResult)) Sink {
	return func(ctx context.Context, res *Result) error {
		items := make([]entity.Material, len(res.Corpus))
		copy(items, res.Corpus)
		out, err := Persist(db.WithContext(ctx), items, nil, ImportOptions{
			FileName:     "generated:" + res.Source(),
			ConflictMode: ConflictReplaceAll,
			BatchSize:    batchSize,
			Log:          log,
		})
		if err != nil {
			return fmt.Errorf("persist corpus: %w", err)
		}
		if onDone != nil {
			onDone(out)
		}
		return nil
	}
}

// RedisSink publishes the coverage summary as JSON under key.
func RedisSink(rdb *redis.Client, key string, ttl time.Duration) Sink {
	return func(ctx context.Context, res *Result) error {
		data, err := json.Marshal(res.Summary)
		if err != nil {
			return err
		}
		if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			return fmt.Errorf("publish summary to %s: %w", key, err)
		}
		return nil
	}
}
