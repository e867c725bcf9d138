package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/stagedb/api/apitablev1"
	"github.com/fulldump/stagedb/database"
	"github.com/fulldump/stagedb/service"
	"github.com/fulldump/stagedb/table"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("temporary unavailable: opening"))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("temporary unavailable: closing"))
				return
			}
			next(ctx)
		}
	}
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		writeError := func(status int, description string) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(PrettyError{
				Message:     err.Error(),
				Description: description,
			})
		}

		if err == box.ErrResourceNotFound {
			writeError(http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writeError(http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		if err == apitablev1.ErrorCursorNotFound {
			writeError(http.StatusNotFound, "the cursor does not exist or was already closed")
			return
		}

		if err == service.ErrorTableNotFound {
			writeError(http.StatusNotFound, "the table does not exist, create it first")
			return
		}

		if err == service.ErrorTableAlreadyExists {
			writeError(http.StatusConflict, "a table with that name already exists")
			return
		}

		rowLookup := table.RowLookupError{}
		if errors.As(err, &rowLookup) {
			writeError(http.StatusNotFound, fmt.Sprintf("row %d does not exist", rowLookup.RowID))
			return
		}

		columnLookup := table.ColumnLookupError{}
		if errors.As(err, &columnLookup) {
			writeError(http.StatusBadRequest, fmt.Sprintf("column '%s' is not part of the table schema", columnLookup.Column))
			return
		}

		cursorMode := table.CursorModeError{}
		if errors.As(err, &cursorMode) {
			writeError(http.StatusBadRequest, "the operation is not supported by the cursor mode")
			return
		}

		mismatch := table.TypeMismatchError{}
		if errors.As(err, &mismatch) {
			writeError(http.StatusBadRequest, fmt.Sprintf("field '%s' requires values of type '%s'", mismatch.Field, mismatch.Expected))
			return
		}

		if _, ok := err.(*json.SyntaxError); ok {
			writeError(http.StatusBadRequest, "Malformed JSON")
			return
		}

		writeError(http.StatusInternalServerError, "Unexpected error")
	}
}
