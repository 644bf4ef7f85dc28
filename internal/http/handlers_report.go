package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/report"
)

type monthReportResponse struct {
	Monthly      report.MonthlySummary `json:"monthly"`
	AllTime      report.AllTimeSummary `json:"allTime"`
	IncomeItems  []report.ItemAmount   `json:"incomeItems"`
	ExpenseItems []report.ItemAmount   `json:"expenseItems"`
}

func (s *Server) handleMonthReport(w http.ResponseWriter, r *http.Request) {
	p := core.PeriodOf(time.Now())
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		parsed, err := core.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month: want YYYY-MM")
			return
		}
		p = parsed
	}

	key := p.String()
	if cached, ok := s.monthlyCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs, err := s.ledger.ListCompany(r.Context(), nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	resp := monthReportResponse{
		Monthly:      report.Monthly(txs, p),
		AllTime:      report.AllTime(txs),
		IncomeItems:  report.ByItem(txs, p, core.TypeIncome),
		ExpenseItems: report.ByItem(txs, p, core.TypeExpense),
	}
	s.monthlyCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnnualReport(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1900 || y > 3000 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	key := strconv.Itoa(year)
	if cached, ok := s.annualCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	annual, err := s.ledger.AnnualReportFor(r.Context(), year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.annualCache.Set(key, annual)
	writeJSON(w, http.StatusOK, annual)
}
