// Package ingest loads the three delimited-text input tables into the
// domain types. The referendum export is semicolon-separated; the region and
// department reference tables are plain comma-separated. Files that are not
// valid UTF-8 are retried as Latin-1, which older French administrative
// exports still use.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Hamza203508/refmap/pkg/errors"
	"github.com/Hamza203508/refmap/pkg/referendum"
)

// LoadReferendum reads the referendum vote table. Only the department code
// and the five count columns are used; any other columns (town code, town
// name, ...) are ignored.
func LoadReferendum(path string) ([]referendum.VoteRecord, error) {
	cols, rows, err := readTable(path, ';')
	if err != nil {
		return nil, err
	}

	dept, err := cols.require("Department code")
	if err != nil {
		return nil, err
	}
	counts := [5]int{}
	for i, name := range countColumns {
		if counts[i], err = cols.require(name); err != nil {
			return nil, err
		}
	}

	records := make([]referendum.VoteRecord, 0, len(rows))
	for n, row := range rows {
		rec := referendum.VoteRecord{DepartmentCode: field(row, dept)}
		vals := [5]int64{}
		for i, idx := range counts {
			v, err := parseCount(path, n+2, countColumns[i], field(row, idx))
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		rec.Registered, rec.Abstentions, rec.Null, rec.ChoiceA, rec.ChoiceB =
			vals[0], vals[1], vals[2], vals[3], vals[4]
		records = append(records, rec)
	}
	return records, nil
}

// countColumns are the five numeric referendum columns, in output order.
var countColumns = [5]string{"Registered", "Abstentions", "Null", "Choice A", "Choice B"}

// LoadRegions reads the region reference table.
func LoadRegions(path string) ([]referendum.Region, error) {
	cols, rows, err := readTable(path, ',')
	if err != nil {
		return nil, err
	}

	code, err := cols.require("code")
	if err != nil {
		return nil, err
	}
	name, err := cols.require("name")
	if err != nil {
		return nil, err
	}

	regions := make([]referendum.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, referendum.Region{
			Code: field(row, code),
			Name: field(row, name),
		})
	}
	return regions, nil
}

// LoadDepartments reads the department reference table.
func LoadDepartments(path string) ([]referendum.Department, error) {
	cols, rows, err := readTable(path, ',')
	if err != nil {
		return nil, err
	}

	code, err := cols.require("code")
	if err != nil {
		return nil, err
	}
	name, err := cols.require("name")
	if err != nil {
		return nil, err
	}
	region, err := cols.require("region_code")
	if err != nil {
		return nil, err
	}

	departments := make([]referendum.Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, referendum.Department{
			Code:       field(row, code),
			Name:       field(row, name),
			RegionCode: field(row, region),
		})
	}
	return departments, nil
}

// columns resolves header names to field indexes for one file.
type columns struct {
	file  string
	index map[string]int
}

// require returns the index of a named column or a fatal MissingFieldError:
// the pipeline cannot proceed without its join and count columns.
func (c columns) require(name string) (int, error) {
	i, ok := c.index[name]
	if !ok {
		return 0, &errors.MissingFieldError{File: c.file, Field: name}
	}
	return i, nil
}

// readTable reads a whole delimited file into a header index plus data rows.
func readTable(path string, comma rune) (columns, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return columns{}, nil, errors.WrapIO(err, "read", path)
	}
	data = decodeCharset(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1 // trailing metadata columns vary per export

	rows, err := r.ReadAll()
	if err != nil {
		return columns{}, nil, &errors.ParseError{File: path, Line: 1, Err: err}
	}
	if len(rows) == 0 {
		return columns{}, nil, &errors.ParseError{
			File: path,
			Line: 1,
			Err:  fmt.Errorf("empty file, expected a header row: %w", errors.ErrInvalidInput),
		}
	}

	cols := columns{file: path, index: make(map[string]int, len(rows[0]))}
	for i, name := range rows[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols.index[strings.TrimSpace(name)] = i
	}
	return cols, rows[1:], nil
}

// decodeCharset transcodes Latin-1 content to UTF-8, leaving valid UTF-8
// untouched.
func decodeCharset(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// field returns the i-th field of a row, tolerating short rows.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCount parses a vote-count cell. Counts are non-negative integers;
// anything else is a fatal input problem, not a row to skip.
func parseCount(file string, line int, name, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &errors.ParseError{File: file, Line: line, Field: name, Value: value, Err: err}
	}
	if n < 0 {
		return 0, &errors.ParseError{
			File:  file,
			Line:  line,
			Field: name,
			Value: value,
			Err:   fmt.Errorf("negative count: %w", errors.ErrInvalidInput),
		}
	}
	return n, nil
}
