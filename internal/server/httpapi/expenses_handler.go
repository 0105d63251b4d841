package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
)

// dateRange reads the required start_date and end_date query parameters.
func dateRange(w http.ResponseWriter, r *http.Request) (start, end models.Date, ok bool) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start_date"), q.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return start, end, false
	}

	var err1, err2 error
	start, err1 = models.ParseDate(rawStart)
	end, err2 = models.ParseDate(rawEnd)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return start, end, false
	}
	return start, end, true
}

func (h *handlers) expenseSummary(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	totals, err := h.expenses.Summary(r.Context(), accountIDFromContext(r.Context()), start, end)
	if err != nil {
		h.internalError(w, "expense_summary", err)
		return
	}

	out := make(map[string]json.Number, len(totals))
	for category, total := range totals {
		out[category] = money(total)
	}
	writeJSON(w, http.StatusOK, out)
}

type chartResponse struct {
	Categories []string      `json:"categories"`
	Values     []json.Number `json:"values"`
}

func (h *handlers) expenseChart(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	chart, err := h.expenses.Chart(r.Context(), accountIDFromContext(r.Context()), start, end)
	if err != nil {
		h.internalError(w, "expense_chart", err)
		return
	}

	out := chartResponse{Categories: chart.Categories, Values: make([]json.Number, len(chart.Values))}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	for i, v := range chart.Values {
		out.Values[i] = money(v)
	}
	writeJSON(w, http.StatusOK, out)
}
