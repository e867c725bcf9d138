package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

// rollback discards every staged change, including pending deletes.
func rollback(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	t.Rollback()

	return json.NewEncoder(w).Encode(newTableInfo(box.GetUrlParameter(ctx, "tableName"), t))
}
