package material

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "coilgen.GO/model/entity"
)

// overwriteColumns are refreshed when an incoming coil id already exists.
var overwriteColumns = []string{
	"contract_no", "customer_name", "customer_code", "steel_grade",
	"thickness", "width", "weight", "hardness_level", "surface_level",
	"roughness_req", "elongation_req", "product_type", "contract_attr",
	"contract_nature", "export_flag", "weekly_delivery", "batch_code",
	"coiling_time", "storage_days", "storage_loc", "due_date", "remarks",
	"import_batch_id",
}

type MaterialRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewMaterialRepository(db *gorm.DB) (*MaterialRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &MaterialRepository{db: db, sqlDB: sqlDB}, nil
}

// Migrate creates or updates the material and import_batch tables.
func (r *MaterialRepository) Migrate() error {
	return r.db.AutoMigrate(&entity.Material{}, &entity.ImportBatch{})
}

// CreateInBatches inserts materials in chunks of batchSize.
func (r *MaterialRepository) CreateInBatches(items []entity.Material, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return r.db.Session(&gorm.Session{SkipHooks: true}).CreateInBatches(&items, batchSize).Error
}

// UpsertInBatches inserts materials, overwriting every column but the id
// when the coil id already exists.
func (r *MaterialRepository) UpsertInBatches(items []entity.Material, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "coil_id"}},
		DoUpdates: clause.AssignmentColumns(overwriteColumns),
	}
	return r.db.Session(&gorm.Session{SkipHooks: true}).Clauses(upsert).CreateInBatches(&items, batchSize).Error
}

// ExistingCoilIDs batch-queries coil ids and returns coil_id -> id for those present.
func (r *MaterialRepository) ExistingCoilIDs(coilIDs []string, batchSize int) (map[string]uint, error) {
	type coilRow struct {
		ID     uint   `gorm:"column:id"`
		CoilID string `gorm:"column:coil_id"`
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	m := make(map[string]uint, len(coilIDs))
	for i := 0; i < len(coilIDs); i += batchSize {
		end := i + batchSize
		if end > len(coilIDs) {
			end = len(coilIDs)
		}
		var chunk []coilRow
		err := r.db.Table("material").Select("id, coil_id").Where("coil_id IN ?", coilIDs[i:end]).Find(&chunk).Error
		if err != nil {
			return nil, fmt.Errorf("lookup coil ids: %w", err)
		}
		for _, c := range chunk {
			m[c.CoilID] = c.ID
		}
	}
	return m, nil
}

// FindByCoilID returns the material with the given coil id.
func (r *MaterialRepository) FindByCoilID(coilID string) (*entity.Material, error) {
	var m entity.Material
	if err := r.db.Where("coil_id = ?", coilID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAll returns every material ordered by coil id.
func (r *MaterialRepository) FindAll() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Order("coil_id").Find(&items).Error
	return items, err
}

// Count returns the number of material rows.
// Uses raw SQL for minimal overhead
func (r *MaterialRepository) Count() (int64, error) {
	const query = `SELECT COUNT(*) FROM material`
	var n int64
	err := r.sqlDB.QueryRow(query).Scan(&n)
	return n, err
}

// DeleteAll empties the material table and returns the number of removed rows.
func (r *MaterialRepository) DeleteAll() (int64, error) {
	res := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Material{})
	return res.RowsAffected, res.Error
}

// Transaction runs fn with a repository bound to one database transaction.
// Everything fn writes is rolled back when it returns an error.
func (r *MaterialRepository) Transaction(fn func(tx *MaterialRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MaterialRepository{db: tx, sqlDB: r.sqlDB})
	})
}

// CreateBatch inserts an import batch row; ID is set on success.
func (r *MaterialRepository) CreateBatch(b *entity.ImportBatch) error {
	return r.db.Create(b).Error
}

// SaveBatch writes back counters, status and coverage of an import batch.
func (r *MaterialRepository) SaveBatch(b *entity.ImportBatch) error {
	return r.db.Save(b).Error
}

// FindBatch returns an import batch by batch number.
func (r *MaterialRepository) FindBatch(batchNo string) (*entity.ImportBatch, error) {
	var b entity.ImportBatch
	if err := r.db.Where("batch_no = ?", batchNo).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
