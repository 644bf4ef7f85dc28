package http

import (
	"net/http"

	"zhangben/internal/classify"
)

type dailyRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Item     string `json:"item"`
	Note     string `json:"note"`
	Amount   string `json:"amount"`
}

type fixedDailyRequest struct {
	Date string `json:"date"`
	// Amounts maps fixed-expense template labels to amounts. Empty
	// values are skipped.
	Amounts map[string]string `json:"amounts"`
}

func (s *Server) handleListDaily(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month: want YYYY-MM")
		return
	}
	rows, err := s.ledger.ListDaily(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := map[string]any{"transactions": toDailyTxs(rows)}
	if month != nil {
		summary, err := s.ledger.DailyReport(r.Context(), *month)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		resp["summary"] = summary
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := parseDateOr(req.Date)
	if err != nil {
		writeServiceError(w, r, &classify.FieldError{Field: "date", Err: err})
		return
	}
	amount, err := parseAmountField("amount", req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	d, err := s.ledger.AddDaily(r.Context(), classify.DailyInput{
		Date:     date,
		Category: req.Category,
		Item:     req.Item,
		Note:     req.Note,
		Amount:   amount,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDailyTx(d))
}

func (s *Server) handleCreateFixedDaily(w http.ResponseWriter, r *http.Request) {
	var req fixedDailyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := parseDateOr(req.Date)
	if err != nil {
		writeServiceError(w, r, &classify.FieldError{Field: "date", Err: err})
		return
	}

	amounts := make(map[string]int64, len(req.Amounts))
	for label, raw := range req.Amounts {
		amount, err := optionalAmountField(label, raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		amounts[label] = amount
	}

	rows, err := s.ledger.AddFixedDaily(r.Context(), date, amounts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactions": toDailyTxs(rows)})
}

func (s *Server) handleDeleteDaily(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.ledger.DeleteDaily(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
