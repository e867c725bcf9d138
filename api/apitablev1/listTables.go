package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/stagedb/utils"
)

func listTables(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	tables := s.ListTables()

	result := []tableInfo{}
	for _, name := range utils.GetKeys(tables) {
		result = append(result, newTableInfo(name, tables[name]))
	}

	return json.NewEncoder(w).Encode(result)
}
