package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/stagedb/table"
)

// find streams the matching rows as JSON lines. The cursor mode chooses the
// isolation level: "dynamic" (default), "indexed" or "static", optionally
// combined with "scrollable" or "random" traversal.
func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Filter  map[string]interface{} `json:"filter"`
		Columns []string               `json:"columns"`
		Fmt     string                 `json:"fmt"`
		Mode    string                 `json:"mode"`
		OrderBy string                 `json:"orderby"`
		Reverse bool                   `json:"reverse"`
		Skip    int                    `json:"skip"`
		Limit   int                    `json:"limit"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	mode, err := table.ParseMode(params.Mode)
	if err != nil {
		return err
	}
	format, err := parseFormat(params.Fmt)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	mapper, err := t.Mapper(params.Columns, format)
	if err != nil {
		return err
	}

	var matchErr error
	cur, err := t.NewCursor(table.CursorOptions{
		Predicate: filterPredicate(params.Filter, &matchErr),
		Mapper:    mapper,
		Mode:      mode,
		OrderBy:   params.OrderBy,
		Reverse:   params.Reverse,
	})
	if err != nil {
		return err
	}

	for skip := params.Skip; skip > 0; skip-- {
		if _, err := cur.Next(); err == table.ErrExhausted {
			break
		} else if err != nil {
			return err
		}
	}

	rows, err := cur.Fetch(params.Limit)
	if err != nil {
		return err
	}
	if matchErr != nil {
		return matchErr
	}

	for _, row := range rows {
		json2.MarshalWrite(w, row)
		w.Write([]byte("\n"))
	}

	return nil
}
