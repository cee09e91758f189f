package material

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	entity "coilgen.GO/model/entity"
)

const (
	utf8BOM = "\ufeff"

	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"

	FlagYes = "是"
	FlagNo  = "否"
)

// Column labels in file order.
const (
	ColCoilID         = "钢卷号"
	ColContractNo     = "合同号"
	ColCustomerName   = "客户名称"
	ColCustomerCode   = "客户代码"
	ColSteelGrade     = "钢种"
	ColThickness      = "厚度"
	ColWidth          = "宽度"
	ColWeight         = "重量"
	ColHardness       = "硬度等级"
	ColSurface        = "表面等级"
	ColRoughness      = "粗糙度要求"
	ColElongation     = "延伸率要求"
	ColProductType    = "产品大类"
	ColContractAttr   = "合同属性"
	ColContractNature = "合同性质"
	ColExportFlag     = "出口标志"
	ColWeekly         = "周交期"
	ColBatchCode      = "集批代码"
	ColCoilingTime    = "卷取时间"
	ColStorageDays    = "库龄"
	ColStorageLoc     = "库位"
	ColDueDate        = "交期"
	ColRemarks        = "备注"
)

// Header is the CSV header row.
var Header = []string{
	ColCoilID, ColContractNo, ColCustomerName, ColCustomerCode, ColSteelGrade,
	ColThickness, ColWidth, ColWeight, ColHardness, ColSurface,
	ColRoughness, ColElongation, ColProductType, ColContractAttr, ColContractNature,
	ColExportFlag, ColWeekly, ColBatchCode, ColCoilingTime, ColStorageDays,
	ColStorageLoc, ColDueDate, ColRemarks,
}

// requiredColumns must be present in any file read back.
var requiredColumns = []string{
	ColCoilID, ColSteelGrade, ColThickness, ColWidth, ColWeight, ColCoilingTime,
}

// WriteCSV writes corpus as UTF-8 with BOM, header first.
func WriteCSV(w io.Writer, corpus []entity.Material) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range corpus {
		if err := cw.Write(Row(&corpus[i])); err != nil {
			return fmt.Errorf("write row %s: %w", corpus[i].CoilID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// Row renders one record in Header order.
func Row(m *entity.Material) []string {
	elongation := ""
	if m.ElongationReq != nil {
		elongation = formatDecimal(*m.ElongationReq, 1)
	}
	due := ""
	if m.DueDate != nil {
		due = m.DueDate.Format(DateLayout)
	}
	return []string{
		m.CoilID,
		m.ContractNo,
		m.CustomerName,
		m.CustomerCode,
		m.SteelGrade,
		formatDecimal(m.Thickness, 2),
		strconv.Itoa(m.Width),
		formatDecimal(m.Weight, 2),
		m.HardnessLevel,
		m.SurfaceLevel,
		m.RoughnessReq,
		elongation,
		m.ProductType,
		m.ContractAttr,
		m.ContractNature,
		formatFlag(m.ExportFlag),
		formatFlag(m.WeeklyDelivery),
		m.BatchCode,
		m.CoilingTime.Format(TimeLayout),
		strconv.Itoa(m.StorageDays),
		m.StorageLoc,
		due,
		m.Remarks,
	}
}

// formatDecimal renders v with at most places fractional digits, trailing zeros trimmed.
func formatDecimal(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func formatFlag(b bool) string {
	if b {
		return FlagYes
	}
	return FlagNo
}

// RowError describes a data row that could not be parsed. Line is 1-based and
// counts the header.
type RowError struct {
	Line   int
	CoilID string
	Reason string
}

func (e RowError) Error() string {
	if e.CoilID != "" {
		return fmt.Sprintf("line %d (%s): %s", e.Line, e.CoilID, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseResult holds the rows of a CSV file that parsed and those that did not.
type ParseResult struct {
	Materials []entity.Material
	Errors    []RowError
}

// Import limits.
const (
	MaxImportRows     = 50000
	MaxImportFileSize = 50 << 20
)

// CheckFileSize rejects files over MaxImportFileSize.
func CheckFileSize(size int64) error {
	if size > MaxImportFileSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, size, MaxImportFileSize)
	}
	return nil
}

type ReadOptions struct {
	MaxRows int // 0 means no limit
}

// ReadCSV parses a file in the WriteCSV format. Column order is taken from the
// header; a missing required column is fatal, a malformed row is recorded in
// Errors and skipped.
func ReadCSV(r io.Reader) (*ParseResult, error) {
	return ReadCSVWithOptions(r, ReadOptions{})
}

// ReadCSVWithOptions is ReadCSV with a row limit. Exceeding MaxRows returns
// ErrTooManyRows. RowError.Line is the physical line the row starts on.
func ReadCSVWithOptions(r io.Reader, opts ReadOptions) (*ParseResult, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, col)
		}
	}

	res := &ParseResult{}
	rows := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			rows++
			if opts.MaxRows > 0 && rows > opts.MaxRows {
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyRows, opts.MaxRows)
			}
			res.Errors = append(res.Errors, RowError{Line: pe.StartLine, Reason: pe.Err.Error()})
			continue
		}
		if isBlank(rec) {
			continue
		}
		rows++
		if opts.MaxRows > 0 && rows > opts.MaxRows {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManyRows, opts.MaxRows)
		}
		line, _ := cr.FieldPos(0)
		m, err := parseRow(rowView{index: index, rec: rec})
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, CoilID: m.CoilID, Reason: err.Error()})
			continue
		}
		res.Materials = append(res.Materials, m)
	}
	return res, nil
}

type rowView struct {
	index map[string]int
	rec   []string
}

func (v rowView) get(col string) string {
	i, ok := v.index[col]
	if !ok || i >= len(v.rec) {
		return ""
	}
	return strings.TrimSpace(v.rec[i])
}

func parseRow(v rowView) (entity.Material, error) {
	m := entity.Material{
		CoilID:         v.get(ColCoilID),
		ContractNo:     v.get(ColContractNo),
		CustomerName:   v.get(ColCustomerName),
		CustomerCode:   v.get(ColCustomerCode),
		SteelGrade:     v.get(ColSteelGrade),
		HardnessLevel:  v.get(ColHardness),
		SurfaceLevel:   v.get(ColSurface),
		RoughnessReq:   v.get(ColRoughness),
		ProductType:    v.get(ColProductType),
		ContractAttr:   v.get(ColContractAttr),
		ContractNature: v.get(ColContractNature),
		ExportFlag:     ParseFlag(v.get(ColExportFlag)),
		WeeklyDelivery: ParseFlag(v.get(ColWeekly)),
		BatchCode:      v.get(ColBatchCode),
		StorageLoc:     v.get(ColStorageLoc),
		Remarks:        v.get(ColRemarks),
	}
	if m.CoilID == "" {
		return m, errors.New("coil id is empty")
	}
	if m.SteelGrade == "" {
		return m, errors.New("steel grade is empty")
	}
	if m.CustomerCode == "" && m.CustomerName != "" {
		m.CustomerCode = CustomerCode(m.CustomerName)
	}

	var err error
	if m.Thickness, err = parseDecimal(v.get(ColThickness)); err != nil {
		return m, fmt.Errorf("thickness: %w", err)
	}
	width, err := parseDecimal(v.get(ColWidth))
	if err != nil {
		return m, fmt.Errorf("width: %w", err)
	}
	m.Width = int(decimal.NewFromFloat(width).Round(0).IntPart())
	if m.Weight, err = parseDecimal(v.get(ColWeight)); err != nil {
		return m, fmt.Errorf("weight: %w", err)
	}
	if s := v.get(ColElongation); s != "" {
		e, err := parseDecimal(s)
		if err != nil {
			return m, fmt.Errorf("elongation: %w", err)
		}
		m.ElongationReq = &e
	}
	if m.CoilingTime, err = time.Parse(TimeLayout, v.get(ColCoilingTime)); err != nil {
		return m, fmt.Errorf("coiling time: %w", err)
	}
	if s := v.get(ColStorageDays); s != "" {
		if m.StorageDays, err = strconv.Atoi(s); err != nil {
			return m, fmt.Errorf("storage days: %w", err)
		}
	}
	if s := v.get(ColDueDate); s != "" {
		due, err := time.Parse(DateLayout, s)
		if err != nil {
			return m, fmt.Errorf("due date: %w", err)
		}
		m.DueDate = &due
	}
	return m, nil
}

func parseDecimal(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("value is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseFlag accepts 是/true/1/yes/y, case-insensitively; anything else is false.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FlagYes, "true", "1", "yes", "y":
		return true
	}
	return false
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
