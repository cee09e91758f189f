package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"coilgen.GO/core/registry"
	material "coilgen.GO/service/material"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
}

func TestRegenerate_WritesRebasedCorpus(t *testing.T) {
	dir := t.TempDir()
	res, path, err := Regenerate(context.Background(), RegenerateOptions{OutputDir: dir, Now: fixedNow}, 200)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "materials_20261016.csv"), path)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), res.BaseDate)
	for _, m := range res.Corpus {
		assert.False(t, m.CoilingTime.After(res.BaseDate), m.CoilID)
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	parsed, err := material.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, parsed.Materials, 200)

	v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyLastSummary)
	require.True(t, ok)
	assert.Equal(t, 200, v.(*material.Summary).Total)
}

func TestRegenerate_PersistsWhenDatabaseConfigured(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "regen.db")
	open := func() (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	}

	for i := 0; i < 2; i++ {
		_, _, err := Regenerate(context.Background(), RegenerateOptions{OutputDir: t.TempDir(), OpenDB: open, Now: fixedNow}, 150)
		require.NoError(t, err)
	}

	db, err := open()
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Table("material").Count(&n).Error)
	assert.EqualValues(t, 150, n)
}

func TestRegenerate_InvalidCount(t *testing.T) {
	_, _, err := Regenerate(context.Background(), RegenerateOptions{OutputDir: t.TempDir()}, 0)
	assert.ErrorIs(t, err, material.ErrInvalidCount)
}

func TestRegenerateJob_CountArgument(t *testing.T) {
	dir := t.TempDir()
	job := RegenerateJob(RegenerateOptions{OutputDir: dir, Count: 10, Now: fixedNow})

	job("not-a-number")
	_, err := os.Stat(filepath.Join(dir, "materials_20261016.csv"))
	assert.True(t, os.IsNotExist(err))

	job("25")
	f, err := os.Open(filepath.Join(dir, "materials_20261016.csv"))
	require.NoError(t, err)
	defer f.Close()
	parsed, err := material.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, parsed.Materials, 25)
}
