package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

func size(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(map[string]interface{}{
		"total": t.Len(),
	})
}
