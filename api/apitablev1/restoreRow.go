package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"
)

// restoreRow undoes a pending delete, making the row visible again.
func restoreRow(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

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

	if err := t.RestoreRow(params.Id); err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(t.GetRow(params.Id).Dict())
}
