package material

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	materialRepo "coilgen.GO/model/repository/material"
)

func TestEmitAll_CSVAndDatabase(t *testing.T) {
	res, err := newTestGenerator().Generate(300)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "materials.csv")
	db := testDB(t)
	var persisted *ImportResult

	err = EmitAll(context.Background(), res,
		CSVFileSink(path),
		DBSink(db, 100, nil, func(r *ImportResult) { persisted = r }),
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, csvOf(t, res.Corpus), data)

	require.NotNil(t, persisted)
	assert.Equal(t, 300, persisted.Success)
	repo, err := materialRepo.NewMaterialRepository(db)
	require.NoError(t, err)
	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 300, n)

	// the corpus itself is not stamped with the batch id
	for _, m := range res.Corpus {
		require.Nil(t, m.ImportBatchID)
	}
}

func TestEmitAll_FirstErrorWins(t *testing.T) {
	res, err := newTestGenerator().Generate(10)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = EmitAll(context.Background(), res,
		func(context.Context, *Result) error { return boom },
		func(ctx context.Context, _ *Result) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	assert.ErrorIs(t, err, boom)
}

func TestCSVFileSink_EmptyPath(t *testing.T) {
	res, err := newTestGenerator().Generate(1)
	require.NoError(t, err)
	assert.ErrorIs(t, CSVFileSink("")(context.Background(), res), ErrEmptyOutputPath)
}

func TestRedisSink(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS")})
	defer rdb.Close()

	res, err := newTestGenerator().Generate(50)
	require.NoError(t, err)

	ctx := context.Background()
	key := "coilgen:test:summary"
	require.NoError(t, RedisSink(rdb, key, time.Minute)(ctx, res))
	defer rdb.Del(ctx, key)

	got, err := rdb.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Contains(t, got, `"total":50`)
}
