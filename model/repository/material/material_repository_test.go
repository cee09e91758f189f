package material

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	entity "coilgen.GO/model/entity"
)

func testRepo(t *testing.T) *MaterialRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "material.db")), &gorm.Config{})
	require.NoError(t, err)
	repo, err := NewMaterialRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate())
	return repo
}

func coil(id, grade string, thickness float64) entity.Material {
	return entity.Material{
		CoilID:      id,
		SteelGrade:  grade,
		Thickness:   thickness,
		Width:       1250,
		Weight:      12.5,
		ProductType: "热轧板卷",
		CoilingTime: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestMaterialRepository_CreateAndFind(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.CreateInBatches([]entity.Material{
		coil("HC000001", "Q235B", 2.5),
		coil("HC000002", "SPHC", 3.0),
		coil("HC000003", "DC01", 1.2),
	}, 2))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	m, err := repo.FindByCoilID("HC000002")
	require.NoError(t, err)
	assert.Equal(t, "SPHC", m.SteelGrade)
	assert.Nil(t, m.DueDate)
}

func TestMaterialRepository_ExistingCoilIDs(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.CreateInBatches([]entity.Material{coil("HC000001", "Q235B", 2.5)}, 0))

	got, err := repo.ExistingCoilIDs([]string{"HC000001", "HC000009"}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "HC000001")
}

func TestMaterialRepository_UpsertOverwrites(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.CreateInBatches([]entity.Material{coil("HC000001", "Q235B", 2.5)}, 0))

	require.NoError(t, repo.UpsertInBatches([]entity.Material{
		coil("HC000001", "Q345B", 8.0),
		coil("HC000002", "SS400", 4.0),
	}, 10))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	m, err := repo.FindByCoilID("HC000001")
	require.NoError(t, err)
	assert.Equal(t, "Q345B", m.SteelGrade)
	assert.InDelta(t, 8.0, m.Thickness, 1e-9)
}

func TestMaterialRepository_DeleteAll(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.CreateInBatches([]entity.Material{
		coil("HC000001", "Q235B", 2.5),
		coil("HC000002", "Q235B", 2.5),
	}, 0))

	removed, err := repo.DeleteAll()
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMaterialRepository_Batch(t *testing.T) {
	repo := testRepo(t)
	b := &entity.ImportBatch{BatchNo: "b-1", FileName: "x.csv", ConflictMode: "skip", Status: "running"}
	require.NoError(t, repo.CreateBatch(b))
	require.NotZero(t, b.ID)

	b.SuccessCount = 7
	b.Status = "done"
	require.NoError(t, repo.SaveBatch(b))

	got, err := repo.FindBatch("b-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.SuccessCount)
	assert.Equal(t, "done", got.Status)
}

func TestMaterialRepository_TransactionRollsBack(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.CreateInBatches([]entity.Material{coil("HC000001", "Q235B", 2)}, 10))

	boom := errors.New("boom")
	err := repo.Transaction(func(tx *MaterialRepository) error {
		removed, err := tx.DeleteAll()
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)
		require.NoError(t, tx.CreateInBatches([]entity.Material{coil("HC000002", "SPHC", 3)}, 10))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = repo.FindByCoilID("HC000001")
	assert.NoError(t, err)
}
