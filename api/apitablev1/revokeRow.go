package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

// revokeRow discards the staged changes of a row, keeping its committed
// version.
func revokeRow(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Id int `json:"id"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		return err
	}

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	if err := t.RevokeRow(params.Id); err != nil {
		return err
	}

	row := t.GetRow(params.Id)
	if row == nil {
		// Revoking a never-committed row leaves nothing behind
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	return json.NewEncoder(w).Encode(row.Dict())
}
