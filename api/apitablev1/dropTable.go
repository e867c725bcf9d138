package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

func dropTable(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "tableName")

	if err := s.DropTable(name); err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(map[string]interface{}{
		"dropped": name,
	})
}
