package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/stagedb/table"
)

// remove marks every row matching the filter as deleted and streams them
// back. Deleted rows vanish from iteration immediately; the data is dropped
// on commit and recoverable with restoreRow until then.
func remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Filter map[string]interface{} `json:"filter"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

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
		record.Delete()
		json2.MarshalWrite(w, record.Dict())
		w.Write([]byte("\n"))
	}

	return matchErr
}
