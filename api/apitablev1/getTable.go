package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

func getTable(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	name := box.GetUrlParameter(ctx, "tableName")

	return json.NewEncoder(w).Encode(newTableInfo(name, t))
}
