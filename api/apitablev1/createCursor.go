package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/fulldump/stagedb/table"
)

// createCursor opens a server-side cursor over the table and returns its
// handle. The cursor lives until closeCursor is called. Match errors found
// during traversal surface on fetchCursor.
func createCursor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Filter    map[string]interface{} `json:"filter"`
		Columns   []string               `json:"columns"`
		Fmt       string                 `json:"fmt"`
		Mode      string                 `json:"mode"`
		OrderBy   string                 `json:"orderby"`
		Reverse   bool                   `json:"reverse"`
		Batchsize int                    `json:"batchsize"`
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
		Batchsize: params.Batchsize,
	})
	if err != nil {
		return err
	}

	id := uuid.New().String()
	GetCursorRegistry(ctx).Put(id, cur)

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"cursor":    id,
		"mode":      cur.Mode().String(),
		"batchsize": cur.Batchsize,
	})
}
