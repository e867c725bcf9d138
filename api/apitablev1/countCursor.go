package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

// countCursor returns the cursor's rowcount. Random cursors and filtered
// non-static cursors cannot count rows and answer with an error.
func countCursor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Cursor string `json:"cursor"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	cur, err := GetCursorRegistry(ctx).Get(params.Cursor)
	if err != nil {
		return err
	}

	count, err := cur.RowCount()
	if err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(map[string]interface{}{
		"rowcount": count,
	})
}
