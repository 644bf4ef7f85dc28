package http

import (
	"net/http"

	"zhangben/internal/classify"
)

type incomeRequest struct {
	Date           string `json:"date"`
	Category       string `json:"category"`
	Item           string `json:"item"`
	Note           string `json:"note"`
	Gross          string `json:"gross"`
	NonPrimaryBank bool   `json:"nonPrimaryBank"`
	KOLSalary      string `json:"kolSalary"`
}

type expenseRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Item     string `json:"item"`
	Note     string `json:"note"`
	Amount   string `json:"amount"`
}

func (s *Server) handleListCompany(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month: want YYYY-MM")
		return
	}
	txs, err := s.ledger.ListCompany(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": toCompanyTxs(txs)})
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := parseDateOr(req.Date)
	if err != nil {
		writeServiceError(w, r, &classify.FieldError{Field: "date", Err: err})
		return
	}
	gross, err := parseAmountField("gross", req.Gross)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	kolSalary, err := optionalAmountField("kolSalary", req.KOLSalary)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tx, err := s.ledger.AddIncome(r.Context(), classify.IncomeInput{
		Date:           date,
		Category:       req.Category,
		Item:           req.Item,
		Note:           req.Note,
		Gross:          gross,
		NonPrimaryBank: req.NonPrimaryBank,
		KOLSalary:      kolSalary,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toCompanyTx(tx))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
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

	tx, err := s.ledger.AddExpense(r.Context(), classify.ExpenseInput{
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
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toCompanyTx(tx))
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.ledger.DeleteCompany(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}
