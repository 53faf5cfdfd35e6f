package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"exam-sheet/internal/sheet"
)

var errInvalidQuestion = errors.New("question must be a positive integer")

func writeSheetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sheet.ErrQuestionOutOfRange),
		errors.Is(err, sheet.ErrInvalidOption),
		errors.Is(err, sheet.ErrInvalidOptionsPerQuestion):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethods ...string) {
	w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
