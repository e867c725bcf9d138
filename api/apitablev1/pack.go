package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

// pack commits pending changes and compacts the store, reassigning row ids.
func pack(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	t.Pack()

	return json.NewEncoder(w).Encode(newTableInfo(box.GetUrlParameter(ctx, "tableName"), t))
}
