package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/xuri/excelize/v2"
)

// ImportRow is one product parsed from a bulk import file. Line is the
// 1-based line in the source, header included.
type ImportRow struct {
	Line    int
	Product Product
}

var importColumns = map[string]string{
	"name":          "name",
	"productname":   "name",
	"brand":         "brand",
	"category":      "category",
	"barcode":       "barcode",
	"costprice":     "costPrice",
	"sellingprice":  "sellingPrice",
	"gstpercent":    "gstPercent",
	"gst":           "gstPercent",
	"gsttype":       "gstType",
	"stockquantity": "stockQuantity",
	"stock":         "stockQuantity",
	"quantity":      "stockQuantity",
	"unit":          "unit",
	"expirydate":    "expiryDate",
	"expiry":        "expiryDate",
	"batchno":       "batchNo",
	"batch":         "batchNo",
	"minstocklevel": "minStockLevel",
	"supplier":      "supplier",
}

var requiredImportColumns = []string{"name", "category", "costPrice", "sellingPrice", "stockQuantity", "expiryDate"}

// ParseImport reads a .xlsx workbook (first sheet) or, for any other
// extension, a CSV file with a header row.
func ParseImport(filename string, r io.Reader) ([]ImportRow, error) {
	var records [][]string
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		records, err = readWorkbook(r)
	} else {
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	return parseRecords(records)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	return rows, nil
}

func parseRecords(records [][]string) ([]ImportRow, error) {
	if len(records) == 0 {
		return nil, apperr.Validation("import file is empty")
	}

	cols := mapImportColumns(records[0])
	for _, required := range requiredImportColumns {
		if _, ok := cols[required]; !ok {
			return nil, apperr.Validation("missing required column: %s", required)
		}
	}

	rows := make([]ImportRow, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if blank(record) {
			continue
		}
		line := i + 1
		p, err := parseProductRecord(record, cols)
		if err != nil {
			return nil, apperr.Validation("row %d: %v", line, err)
		}
		rows = append(rows, ImportRow{Line: line, Product: p})
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("import file has no product rows")
	}
	return rows, nil
}

func parseProductRecord(record []string, cols map[string]int) (Product, error) {
	cell := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	p := Product{
		Name:     cell("name"),
		Brand:    cell("brand"),
		Category: cell("category"),
		Barcode:  cell("barcode"),
		Unit:     cell("unit"),
		BatchNo:  cell("batchNo"),
		Supplier: cell("supplier"),
	}
	if p.Name == "" {
		return p, fmt.Errorf("name is required")
	}
	if p.Category == "" {
		return p, fmt.Errorf("category is required")
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}

	var err error
	if p.CostPrice, err = parseAmount(cell("costPrice")); err != nil {
		return p, fmt.Errorf("invalid costPrice: %w", err)
	}
	if p.SellingPrice, err = parseAmount(cell("sellingPrice")); err != nil {
		return p, fmt.Errorf("invalid sellingPrice: %w", err)
	}
	if p.StockQuantity, err = parseWhole(cell("stockQuantity")); err != nil {
		return p, fmt.Errorf("invalid stockQuantity: %w", err)
	}

	if raw := cell("gstPercent"); raw != "" {
		if p.GSTPercent, err = parseAmount(raw); err != nil {
			return p, fmt.Errorf("invalid gstPercent: %w", err)
		}
	}

	gstType, ok := ParseGSTType(cell("gstType"))
	if !ok {
		return p, fmt.Errorf("gstType must be Inclusive or Exclusive")
	}
	p.GSTType = gstType

	p.MinStockLevel = DefaultMinStockLevel
	if raw := cell("minStockLevel"); raw != "" {
		if p.MinStockLevel, err = parseWhole(raw); err != nil || p.MinStockLevel < 0 {
			return p, fmt.Errorf("invalid minStockLevel %q", raw)
		}
	}

	raw := cell("expiryDate")
	if raw == "" {
		return p, fmt.Errorf("expiryDate is required")
	}
	if p.ExpiryDate, err = httpx.ParseDate(raw, time.UTC); err != nil {
		return p, err
	}
	return p, nil
}

func mapImportColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		key := strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")
		key = strings.ToLower(key)
		key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
		canonical, ok := importColumns[key]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseAmount(raw string) (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number")
	}
	if f < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return f, nil
}

func parseWhole(raw string) (int, error) {
	f, err := parseAmount(raw)
	if err != nil {
		return 0, err
	}
	if math.Mod(f, 1) != 0 {
		return 0, fmt.Errorf("must be a whole number")
	}
	return int(f), nil
}
