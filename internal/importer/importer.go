// Package importer provides CSV and Excel import functionality for the
// materials catalog. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition. Malformed numeric
// cells coerce to zero with a warning so a supplier sheet never fails to load
// wholesale.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BuildEst/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Materials []model.MaterialRecord
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Item        int
	Unit        int
	Price       int
	Phase       int
	Consumption int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"item":        {"item", "material", "name", "description", "desc", "product"},
	"unit":        {"unit", "uom", "units"},
	"price":       {"price", "unit_price", "unit price", "cost", "rate", "unit cost"},
	"phase":       {"phase", "stage", "category", "group"},
	"consumption": {"consumption_per_m2", "consumption per m2", "consumption", "per_m2", "per m2", "rate_per_m2", "usage"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV
// delimiter. It tries comma, semicolon, tab, and pipe. The delimiter that
// produces the most consistent column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Item:        -1,
		Unit:        -1,
		Price:       -1,
		Phase:       -1,
		Consumption: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "item":
						if mapping.Item == -1 {
							mapping.Item = i
						}
					case "unit":
						if mapping.Unit == -1 {
							mapping.Unit = i
						}
					case "price":
						if mapping.Price == -1 {
							mapping.Price = i
						}
					case "phase":
						if mapping.Phase == -1 {
							mapping.Phase = i
						}
					case "consumption":
						if mapping.Consumption == -1 {
							mapping.Consumption = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: item, unit, price, phase, consumption_per_m2
		return ColumnMapping{
			Item:        0,
			Unit:        1,
			Price:       2,
			Phase:       3,
			Consumption: 4,
		}, false
	}

	return mapping, true
}

// normalizePhase maps a phase string to one of the known phases,
// case-insensitively. Unknown or empty values map to Misc; the boolean is
// false only for unrecognized non-empty input.
func normalizePhase(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.PhaseMisc, true
	}
	for _, phase := range model.Phases {
		if strings.EqualFold(trimmed, phase) {
			return phase, true
		}
	}
	return model.PhaseMisc, false
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a MaterialRecord from a row using the given column
// mapping. Returns the record, any error message, and any warning messages.
// Only a missing item name rejects the row; bad numerics coerce to zero.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.MaterialRecord, string, []string) {
	item := getCell(row, mapping.Item)
	if item == "" {
		return model.MaterialRecord{}, fmt.Sprintf("%s: Missing item name", rowLabel), nil
	}

	var warnings []string

	unit := getCell(row, mapping.Unit)
	if unit == "" {
		unit = "each"
	}

	price := 0.0
	if priceStr := getCell(row, mapping.Price); priceStr != "" {
		p, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid price '%s', using 0", rowLabel, priceStr))
		} else {
			price = p
		}
	}

	phaseStr := getCell(row, mapping.Phase)
	phase, known := normalizePhase(phaseStr)
	if !known {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown phase '%s', using %s", rowLabel, phaseStr, model.PhaseMisc))
	}

	consumption := 0.0
	if consStr := getCell(row, mapping.Consumption); consStr != "" {
		c, err := strconv.ParseFloat(consStr, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid consumption '%s', using 0", rowLabel, consStr))
		} else {
			consumption = c
		}
	}

	return model.MaterialRecord{
		Item:             item,
		Unit:             unit,
		Price:            price,
		Phase:            phase,
		ConsumptionPerM2: consumption,
	}, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports materials from a CSV file. It automatically detects the
// delimiter and maps columns by header names. Supports comma, semicolon, tab,
// and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports materials from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports materials from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into records.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Item == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: item")
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the price column of the first row is not
		// numeric it is probably an unrecognized header, skip it.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		rec, errMsg, warnings := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		// Item names are unique within a catalog; last occurrence wins.
		if seen[rec.Item] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate item '%s', replacing earlier row", rowLabel, rec.Item))
			for j := range result.Materials {
				if result.Materials[j].Item == rec.Item {
					result.Materials[j] = rec
					break
				}
			}
			continue
		}
		seen[rec.Item] = true
		result.Materials = append(result.Materials, rec)
	}

	return result
}
