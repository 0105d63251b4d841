package httpapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseSummary(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/expenses?start_date=2025-01-01&end_date=2025-01-31", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"food": 15.00, "uncategorized": 3.00}`, rec.Body.String())
	assert.Equal(t, models.NewDate(2025, time.January, 1), f.expenses.gotStart)
	assert.Equal(t, models.NewDate(2025, time.January, 31), f.expenses.gotEnd)
}

func TestExpenseChart(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/charts/expenses?start_date=2025-01-01&end_date=2025-01-31", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories": ["food", "uncategorized"], "values": [15.00, 3.00]}`, rec.Body.String())
}

func TestExpenses_BadDates(t *testing.T) {
	f := newFixture()

	for _, path := range []string{"/expenses", "/charts/expenses"} {
		for _, query := range []string{"", "?start_date=2025-01-01", "?end_date=2025-01-01"} {
			rec := f.do(t, http.MethodGet, path+query, "", true)
			assert.Equal(t, http.StatusBadRequest, rec.Code, path+query)
			assert.Equal(t, "start_date and end_date are required", decodeBody(t, rec)["error"])
		}

		rec := f.do(t, http.MethodGet, path+"?start_date=01-01-2025&end_date=2025-01-31", "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid date format, use YYYY-MM-DD", decodeBody(t, rec)["error"])
	}
}

func TestExpenses_StorageError(t *testing.T) {
	f := newFixture()
	f.expenses.err = common.ErrorStorage

	rec := f.do(t, http.MethodGet, "/expenses?start_date=2025-01-01&end_date=2025-01-31", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	rec = f.do(t, http.MethodGet, "/charts/expenses?start_date=2025-01-01&end_date=2025-01-31", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertStorageErrors(t, f, "expense_chart", "expense_summary")
}
