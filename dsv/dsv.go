// Package dsv turns delimiter-separated sources into staged tables and
// writes committed tables back. The header row declares the schema, one
// "name:kind" cell per column; a bare name declares an untyped column.
package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fulldump/stagedb/table"
)

// Read builds a table from r: the first record is the schema header, every
// following record is appended as a row. The result is committed.
func Read(r io.Reader, comma rune) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	fields, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	t, err := table.New(fields...)
	if err != nil {
		return nil, err
	}

	for line := 2; true; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if len(record) != len(fields) {
			return nil, fmt.Errorf("line %d: expected %d cells, got %d", line, len(fields), len(record))
		}
		values := make([]any, len(record))
		for i, cell := range record {
			value, err := parseCell(cell, fields[i].Kind)
			if err != nil {
				return nil, fmt.Errorf("line %d, column '%s': %w", line, fields[i].Name, err)
			}
			values[i] = value
		}
		if err := t.AppendRow(values...); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	t.Commit()
	return t, nil
}

// Load reads a comma-separated file into a committed table.
func Load(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	return Read(f, ',')
}

// Write exports the visible rows of t to w, header first.
func Write(t *table.Table, w io.Writer, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	header := []string{}
	for _, f := range t.Fields() {
		header = append(header, f.Name+":"+f.Kind.String())
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cur := t.Rows(nil, table.ModeIndexed)
	for {
		row, err := cur.Next()
		if err == table.ErrExhausted {
			break
		}
		if err != nil {
			return err
		}
		cells := []string{}
		for _, value := range row.(*table.Record).Tuple() {
			cells = append(cells, formatCell(value))
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save exports t to a comma-separated file.
func Save(t *table.Table, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open file for write: %w", err)
	}
	defer f.Close()

	return Write(t, f, ',')
}

func parseHeader(header []string) ([]table.Field, error) {
	fields := make([]table.Field, len(header))
	for i, cell := range header {
		name, kindName, _ := strings.Cut(strings.TrimSpace(cell), ":")
		if name == "" {
			return nil, fmt.Errorf("header cell %d: column name is empty", i)
		}
		kind, err := table.ParseKind(strings.TrimSpace(kindName))
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i, err)
		}
		fields[i] = table.Field{Name: name, Kind: kind}
	}
	return fields, nil
}

func parseCell(cell string, kind table.Kind) (any, error) {
	if cell == "" {
		return nil, nil
	}
	switch kind {
	case table.Int:
		return strconv.Atoi(cell)
	case table.Float:
		return strconv.ParseFloat(cell, 64)
	case table.Bool:
		return strconv.ParseBool(cell)
	}
	return cell, nil
}

func formatCell(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}
