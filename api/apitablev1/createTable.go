package apitablev1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/stagedb/table"
)

func createTable(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	input := struct {
		Name   string      `json:"name"`
		Fields []fieldInfo `json:"fields"`
	}{}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		return err
	}

	fields := make([]table.Field, len(input.Fields))
	for i, f := range input.Fields {
		kind, err := table.ParseKind(f.Kind)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return err
		}
		fields[i] = table.Field{Name: f.Name, Kind: kind}
	}

	s := GetServicer(ctx)
	t, err := s.CreateTable(input.Name, fields...)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(newTableInfo(input.Name, t))
}
