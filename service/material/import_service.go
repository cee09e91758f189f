package material

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coilgen.GO/core/logger"
	entity "coilgen.GO/model/entity"
	materialRepo "coilgen.GO/model/repository/material"
)

// Conflict modes for rows whose coil id already exists.
const (
	ConflictSkip       = "skip"
	ConflictOverwrite  = "overwrite"
	ConflictReplaceAll = "replace_all"
)

const (
	batchStatusRunning = "running"
	batchStatusDone    = "done"
	batchStatusFailed  = "failed"
)

type ImportOptions struct {
	FileName     string
	ConflictMode string // skip (default), overwrite, replace_all
	BatchSize    int    // rows per insert statement, default 500
	MaxRows      int    // data rows accepted from a file, default MaxImportRows
	Log          *logger.Logger
}

type ImportResult struct {
	BatchNo     string
	Total       int
	Success     int
	Failed      int
	Skipped     int
	Overwritten int
	Removed     int64
	Errors      []string
	Summary     *Summary
	TotalTime   time.Duration
}

var marshalCoverage = json.Marshal

// ValidateConflictMode returns the normalized mode or ErrUnknownConflictMode.
func ValidateConflictMode(mode string) (string, error) {
	switch mode {
	case "":
		return ConflictSkip, nil
	case ConflictSkip, ConflictOverwrite, ConflictReplaceAll:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConflictMode, mode)
}

// ImportMaterials loads a material CSV into the database under a new import
// batch. Malformed rows are counted as failed and reported, never fatal.
func ImportMaterials(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	if _, err := ValidateConflictMode(opts.ConflictMode); err != nil {
		return nil, err
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = MaxImportRows
	}
	parsed, err := ReadCSVWithOptions(r, ReadOptions{MaxRows: maxRows})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", opts.FileName, err)
	}
	return Persist(db, parsed.Materials, parsed.Errors, opts)
}

// Persist writes items under a new import batch, applying the conflict mode.
// rowErrs are rows rejected before persistence; they count as failed.
// items is modified: each record gets the batch id.
// The material writes share one transaction: on failure the table is left as
// it was and the batch row is marked failed.
func Persist(db *gorm.DB, items []entity.Material, rowErrs []RowError, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	mode, err := ValidateConflictMode(opts.ConflictMode)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	repo, err := materialRepo.NewMaterialRepository(db)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	res := &ImportResult{
		BatchNo: uuid.NewString(),
		Total:   len(items) + len(rowErrs),
		Failed:  len(rowErrs),
	}
	for _, e := range rowErrs {
		res.Errors = append(res.Errors, e.Error())
	}

	batch := &entity.ImportBatch{
		BatchNo:      res.BatchNo,
		FileName:     opts.FileName,
		ConflictMode: mode,
		Status:       batchStatusRunning,
		TotalCount:   res.Total,
	}
	if err := repo.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	err = repo.Transaction(func(tx *materialRepo.MaterialRepository) error {
		// counters are only kept when the transaction commits
		counts := &ImportResult{}
		if err := persistItems(tx, batch, items, mode, opts.BatchSize, counts); err != nil {
			return err
		}
		res.Success, res.Skipped, res.Overwritten, res.Removed = counts.Success, counts.Skipped, counts.Overwritten, counts.Removed
		return nil
	})
	if err != nil {
		log.Error("import failed, materials rolled back", "batch", res.BatchNo, "mode", mode, "error", err)
		batch.Status = batchStatusFailed
		if saveErr := repo.SaveBatch(batch); saveErr != nil {
			return nil, errors.Join(err, fmt.Errorf("mark import batch failed: %w", saveErr))
		}
		return nil, err
	}

	res.Summary = Report(items)
	if coverage, err := marshalCoverage(res.Summary); err != nil {
		log.Warn("coverage summary not stored", "batch", res.BatchNo, "error", err)
	} else {
		batch.Coverage = datatypes.JSON(coverage)
	}
	batch.SuccessCount = res.Success
	batch.FailedCount = res.Failed
	batch.SkippedCount = res.Skipped
	batch.OverwrittenCount = res.Overwritten
	batch.Status = batchStatusDone
	if err := repo.SaveBatch(batch); err != nil {
		return nil, fmt.Errorf("save import batch: %w", err)
	}
	res.TotalTime = time.Since(start)
	log.Info("import done",
		"batch", res.BatchNo,
		"mode", mode,
		"inserted", res.Success,
		"overwritten", res.Overwritten,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"removed", res.Removed,
	)
	return res, nil
}

func persistItems(repo *materialRepo.MaterialRepository, batch *entity.ImportBatch, items []entity.Material, mode string, batchSize int, res *ImportResult) error {
	if mode == ConflictReplaceAll {
		removed, err := repo.DeleteAll()
		if err != nil {
			return fmt.Errorf("clear materials: %w", err)
		}
		res.Removed = removed
	}

	// a coil id repeated inside the file conflicts with its first occurrence
	position := make(map[string]int, len(items))
	unique := make([]entity.Material, 0, len(items))
	for i := range items {
		items[i].ImportBatchID = &batch.ID
		if at, dup := position[items[i].CoilID]; dup {
			if mode == ConflictSkip {
				res.Skipped++
			} else {
				unique[at] = items[i]
				res.Overwritten++
			}
			continue
		}
		position[items[i].CoilID] = len(unique)
		unique = append(unique, items[i])
	}

	ids := make([]string, len(unique))
	for i := range unique {
		ids[i] = unique[i].CoilID
	}
	existing, err := repo.ExistingCoilIDs(ids, batchSize)
	if err != nil {
		return err
	}

	var fresh, conflicts []entity.Material
	for _, m := range unique {
		if _, ok := existing[m.CoilID]; ok {
			conflicts = append(conflicts, m)
		} else {
			fresh = append(fresh, m)
		}
	}

	if err := repo.CreateInBatches(fresh, batchSize); err != nil {
		return fmt.Errorf("insert materials: %w", err)
	}
	res.Success = len(fresh)

	switch mode {
	case ConflictSkip:
		res.Skipped += len(conflicts)
	case ConflictOverwrite:
		if err := repo.UpsertInBatches(conflicts, batchSize); err != nil {
			return fmt.Errorf("overwrite materials: %w", err)
		}
		res.Overwritten += len(conflicts)
	}
	return nil
}
