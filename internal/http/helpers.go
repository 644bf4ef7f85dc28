package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"zhangben/internal/classify"
	"zhangben/internal/core"
	"zhangben/internal/settle"
	"zhangben/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
	// Field names the offending input field on validation failures.
	Field string `json:"field,omitempty"`
	// CompanyRowID is set when a settlement partially completed and the
	// company row needs reconciliation.
	CompanyRowID int64 `json:"companyRowId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *classify.FieldError
	var partial *settle.PartialError

	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusUnprocessableEntity,
			errorResponse{Error: err.Error(), Field: fieldErr.Field})
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrEmptyItem),
		errors.Is(err, core.ErrInvalidPeriod):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, settle.ErrAlreadySettled),
		errors.Is(err, settle.ErrSettlementPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, settle.ErrNoProfit):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &partial):
		slog.ErrorContext(r.Context(), "Partial settlement failure",
			"period", partial.Period.String(), "company_id", partial.CompanyID, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			errorResponse{Error: err.Error(), CompanyRowID: partial.CompanyID})
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// parseDateOr parses an optional YYYY-MM-DD field, defaulting to today.
func parseDateOr(s string) (core.Date, error) {
	if strings.TrimSpace(s) == "" {
		return core.Today(), nil
	}
	return core.ParseDate(s)
}

// parseAmountField parses a form amount string through the strict
// integer parser and names the field on failure.
func parseAmountField(field, s string) (int64, error) {
	n, err := core.ParseAmount(s)
	if err != nil {
		return 0, &classify.FieldError{Field: field, Err: err}
	}
	return n, nil
}

// optionalAmountField treats an empty string as zero.
func optionalAmountField(field, s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return parseAmountField(field, s)
}

// monthParam parses a ?month=YYYY-MM query value; nil means no filter.
func monthParam(r *http.Request) (*core.Period, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return nil, nil
	}
	p, err := core.ParsePeriod(v)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
