package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	json2 "github.com/go-json-experiment/json"
)

// fetchCursor advances a server-side cursor and streams the fetched rows as
// JSON lines. Without size it fetches the cursor's batchsize; size 0 fetches
// all remaining rows (rejected for random cursors).
func fetchCursor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Cursor string `json:"cursor"`
		Size   *int   `json:"size"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	cur, err := GetCursorRegistry(ctx).Get(params.Cursor)
	if err != nil {
		return err
	}

	size := -1
	if params.Size != nil {
		size = *params.Size
	}

	rows, err := cur.Fetch(size)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	for _, row := range rows {
		json2.MarshalWrite(w, row)
		w.Write([]byte("\n"))
	}

	return nil
}
