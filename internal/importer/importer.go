// Package importer reads piece catalogues from CSV and Excel files. Each row
// holds one block of one piece; rows sharing a piece key make up that piece.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/bedlam/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Catalogue model.Catalogue
	Errors    []string
	Warnings  []string
}

// OK reports whether the import produced a usable catalogue.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Catalogue) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Piece int
	X     int
	Y     int
	Z     int
	Label int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"piece": {"piece", "piece id", "id", "part", "group", "pc"},
	"x":     {"x", "col", "column"},
	"y":     {"y", "row"},
	"z":     {"z", "layer", "level"},
	"label": {"label", "name", "description", "desc"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping piece, x, y, z, label and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Piece: -1, X: -1, Y: -1, Z: -1, Label: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "piece":
					if mapping.Piece == -1 {
						mapping.Piece = i
					}
				case "x":
					if mapping.X == -1 {
						mapping.X = i
					}
				case "y":
					if mapping.Y == -1 {
						mapping.Y = i
					}
				case "z":
					if mapping.Z == -1 {
						mapping.Z = i
					}
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Piece: 0, X: 1, Y: 2, Z: 3, Label: 4}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// blockRow is one parsed data row.
type blockRow struct {
	piece string
	label string
	block model.Block
}

// parseCoord parses one coordinate cell. Spreadsheets often store whole
// numbers as "2.0", so integral floats are accepted too.
func parseCoord(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// parseRow extracts one block from a row using the given column mapping.
// Returns the row and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (blockRow, string) {
	piece := getCell(row, mapping.Piece)
	if piece == "" {
		return blockRow{}, fmt.Sprintf("%s: Missing piece value", rowLabel)
	}

	coords := [3]int{}
	for i, axis := range []struct {
		name string
		idx  int
	}{{"x", mapping.X}, {"y", mapping.Y}, {"z", mapping.Z}} {
		s := getCell(row, axis.idx)
		if s == "" {
			return blockRow{}, fmt.Sprintf("%s: Missing %s value", rowLabel, axis.name)
		}
		n, ok := parseCoord(s)
		if !ok {
			return blockRow{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, axis.name, s)
		}
		coords[i] = n
	}

	return blockRow{
		piece: piece,
		label: getCell(row, mapping.Label),
		block: model.Block{X: coords[0], Y: coords[1], Z: coords[2]},
	}, ""
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

// ImportCSV imports a catalogue from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
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

// ImportCSVFromReader imports a catalogue from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
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

// ImportExcel imports a catalogue from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
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
// It detects headers, maps columns, groups rows into pieces in order of
// first appearance and validates the resulting catalogue.
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

		missing := []string{}
		if mapping.Piece == -1 {
			missing = append(missing, "Piece")
		}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if mapping.Z == -1 {
			missing = append(missing, "Z")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// Unrecognised header: the X column of a data row is always numeric.
		if _, ok := parseCoord(strings.TrimSpace(rows[0][1])); !ok {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	index := map[string]int{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		br, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		idx, ok := index[br.piece]
		if !ok {
			label := br.label
			if label == "" {
				label = "Piece " + br.piece
			}
			idx = len(result.Catalogue)
			index[br.piece] = idx
			result.Catalogue = append(result.Catalogue, model.NewPiece(label, nil))
		} else if br.label != "" && br.label != result.Catalogue[idx].Label {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Label '%s' ignored, piece %s is already labelled '%s'", rowLabel, br.label, br.piece, result.Catalogue[idx].Label))
		}

		piece := &result.Catalogue[idx]
		if piece.Shape.Contains(br.block) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: Piece %s already has block (%d, %d, %d)", rowLabel, br.piece, br.block.X, br.block.Y, br.block.Z))
			continue
		}
		piece.Shape = append(piece.Shape, br.block)
	}

	if len(result.Catalogue) == 0 {
		result.Errors = append(result.Errors, "No pieces found")
		return result
	}

	if err := result.Catalogue.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid catalogue: %v", err))
	}

	return result
}
