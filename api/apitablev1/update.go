package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/stagedb/table"
)

// update stages changes on every row matching the filter and streams the
// updated rows back. Changes are pending until commit, revocable until then.
func update(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Filter  map[string]interface{} `json:"filter"`
		Changes map[string]interface{} `json:"changes"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	changes := coerceValues(t, params.Changes)

	var matchErr error
	cur, err := t.NewCursor(table.CursorOptions{
		Predicate: filterPredicate(params.Filter, &matchErr),
		Mode:      table.ModeIndexed,
	})
	if err != nil {
		return err
	}

	for {
		row, err := cur.Next()
		if err == table.ErrExhausted {
			break
		}
		if err != nil {
			return err
		}
		record := row.(*table.Record)
		if err := record.Update(changes); err != nil {
			return err
		}
		json2.MarshalWrite(w, t.GetRow(record.ID()).Dict())
		w.Write([]byte("\n"))
	}

	return matchErr
}
