package apitablev1

import (
	"context"
	"fmt"

	"github.com/SierraSoftworks/connor"
	"github.com/fulldump/box"

	"github.com/fulldump/stagedb/table"
	"github.com/fulldump/stagedb/utils"
)

type fieldInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type tableInfo struct {
	Name   string      `json:"name"`
	Total  int         `json:"total"`
	Fields []fieldInfo `json:"fields"`
}

func newTableInfo(name string, t *table.Table) tableInfo {
	fields := []fieldInfo{}
	for _, f := range t.Fields() {
		fields = append(fields, fieldInfo{Name: f.Name, Kind: f.Kind.String()})
	}
	return tableInfo{
		Name:   name,
		Total:  t.Len(),
		Fields: fields,
	}
}

func getTableByName(ctx context.Context) (*table.Table, error) {
	s := GetServicer(ctx)
	return s.GetTable(box.GetUrlParameter(ctx, "tableName"))
}

// filterPredicate compiles a mongo-like filter document into a row
// predicate. Rows are remarshaled to plain JSON values before matching, so
// typed columns compare naturally against filter literals. Match errors are
// collected into matchErr.
func filterPredicate(filter map[string]interface{}, matchErr *error) table.Predicate {
	if len(filter) == 0 {
		return nil
	}
	return func(row *table.Record) bool {
		rowData := map[string]interface{}{}
		if err := utils.Remarshal(row.Dict(), &rowData); err != nil {
			*matchErr = err
			return false
		}
		match, err := connor.Match(filter, rowData)
		if err != nil {
			*matchErr = fmt.Errorf("match: %w", err)
			return false
		}
		return match
	}
}

// coerceValues adapts decoded JSON values to the table schema: numbers come
// out of JSON as float64, integer columns take them back as int. Unknown
// columns are left untouched so the table reports them as lookup errors.
func coerceValues(t *table.Table, input map[string]interface{}) table.Values {
	kinds := map[string]table.Kind{}
	for _, f := range t.Fields() {
		kinds[f.Name] = f.Kind
	}
	values := table.Values{}
	for name, value := range input {
		if kinds[name] == table.Int {
			if f, isFloat := value.(float64); isFloat && f == float64(int(f)) {
				value = int(f)
			}
		}
		values[name] = value
	}
	return values
}

// rowValues orders a decoded JSON document by the table schema, rejecting
// keys that are not columns. Missing columns are unset (nil).
func rowValues(t *table.Table, doc map[string]interface{}) ([]interface{}, error) {
	doc = coerceValues(t, doc)
	colnames := t.Colnames()
	positions := map[string]int{}
	for i, name := range colnames {
		positions[name] = i
	}
	for name := range doc {
		if _, exists := positions[name]; !exists {
			return nil, table.ColumnLookupError{Column: name}
		}
	}
	values := make([]interface{}, len(colnames))
	for name, value := range doc {
		values[positions[name]] = value
	}
	return values, nil
}

func parseFormat(name string) (table.Format, error) {
	switch name {
	case "dict", "":
		return table.Dict, nil
	case "tuple":
		return table.Tuple, nil
	}
	return table.Dict, fmt.Errorf("bad fmt '%s', must be [dict|tuple]", name)
}
