package api

import (
	"encoding/json"
	"net/http"

	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

// HTTPStatus maps an error to the status code it is served with.
func HTTPStatus(err error) int {
	switch code := herrors.CodeOf(err); {
	case herrors.IsValidation(err):
		return http.StatusBadRequest
	case code == herrors.ErrCodeNotFound, code == herrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == herrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    herrors.Code `json:"code"`
	Message string       `json:"message"`
}

// writeError renders err as a JSON error document. Internal errors are not
// described to the client beyond their code.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	detail := errorDetail{Code: herrors.CodeOf(err), Message: herrors.Message(err)}
	if detail.Code == "" {
		detail.Code = herrors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		detail.Message = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
