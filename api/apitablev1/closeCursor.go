package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

func closeCursor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Cursor string `json:"cursor"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	if err := GetCursorRegistry(ctx).Delete(params.Cursor); err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(map[string]interface{}{
		"closed": params.Cursor,
	})
}
