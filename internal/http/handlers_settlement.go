package http

import (
	"net/http"

	"zhangben/internal/core"
)

func (s *Server) handleEvaluateSettlement(w http.ResponseWriter, r *http.Request) {
	p, err := core.ParsePeriod(r.PathValue("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period: want YYYY-MM")
		return
	}
	eval, err := s.settlement.Evaluate(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) handleConfirmSettlement(w http.ResponseWriter, r *http.Request) {
	p, err := core.ParsePeriod(r.PathValue("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period: want YYYY-MM")
		return
	}
	res, err := s.settlement.Settle(r.Context(), p)
	if err != nil {
		// The company row may exist even on failure; stale report
		// caches would hide it.
		s.invalidateReports()
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusOK, res)
}
