package apitablev1

import (
	"context"
	"io"
	"net/http"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// insert appends one staged row per JSON document in the request body. Rows
// are visible to iteration right away but require a commit to become
// durable members of the store.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	t, err := getTableByName(ctx)
	if err != nil {
		return err
	}

	jsonReader := jsontext.NewDecoder(r.Body)

	for i := 0; true; i++ {
		item := map[string]interface{}{}
		err := json2.UnmarshalDecode(jsonReader, &item)
		if err == io.EOF {
			if i == 0 {
				w.WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		if err != nil {
			if i == 0 {
				w.WriteHeader(http.StatusBadRequest)
			}
			return err
		}

		values, err := rowValues(t, item)
		if err != nil {
			return err
		}
		if err := t.AppendRow(values...); err != nil {
			return err
		}

		if i == 0 {
			w.WriteHeader(http.StatusCreated)
		}
		json2.MarshalWrite(w, item)
		w.Write([]byte("\n"))
	}

	return nil
}
