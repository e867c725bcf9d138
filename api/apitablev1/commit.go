package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

// commit applies every staged change to the store.
func commit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	t.Commit()

	return json.NewEncoder(w).Encode(newTableInfo(box.GetUrlParameter(ctx, "tableName"), t))
}
