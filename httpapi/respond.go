package httpapi

import (
	"encoding/json"
	"net/http"

	apperrors "devroom/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperrors.HTTPStatus(err), map[string]string{"errors": err.Error()})
}

func respondValidation(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"errors": err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}
