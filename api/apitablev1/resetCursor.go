package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

// resetCursor rewinds a server-side cursor to its first row without
// rebuilding its snapshot.
func resetCursor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

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

	cur.Reset()

	return json.NewEncoder(w).Encode(map[string]interface{}{
		"cursor": params.Cursor,
	})
}
