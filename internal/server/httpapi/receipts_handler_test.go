package httpapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReceipt(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/receipts",
		`{"merchant":"shop","date":"2025-01-01","total":1.5,"items":[{"name":"tea","price":1.5}]}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(42), decodeBody(t, rec)["receipt_id"])
	assert.Equal(t, int64(7), f.receipts.gotAccount)
	assertCounter(t, f, "receipts_saved_total", "Receipts committed to storage.", "receipts_saved_total 1")
}

func TestCreateReceipt_ValidationErrors(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/receipts",
		`{"date":"2025-01-01","total":10,"items":[{"name":"a","price":1},{"name":"b","price":-2}]}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "invalid receipt data", body["error"])
	fields, ok := body["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "merchant", fields[0].(map[string]any)["field"])
	second := fields[1].(map[string]any)
	assert.Equal(t, "item.price", second["field"])
	assert.Equal(t, float64(1), second["index"])
	assertCounter(t, f, "receipts_validation_failures_total", "Submitted receipts rejected by validation.",
		"receipts_validation_failures_total 1")
}

func TestCreateReceipt_MalformedBody(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/receipts", `[1,2,3]`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody(t, rec)["fields"].([]any)
	assert.Equal(t, "body", fields[0].(map[string]any)["field"])
}

func TestCreateReceipt_ServiceErrors(t *testing.T) {
	body := `{"merchant":"shop","date":"2025-01-01","total":1}`

	f := newFixture()
	f.receipts.submitErr = common.ErrorStorage
	rec := f.do(t, http.MethodPost, "/receipts", body, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody(t, rec)["error"])
	assertStorageErrors(t, f, "save_receipt")

	f = newFixture()
	f.receipts.submitErr = common.ErrorAccountNotFound
	rec = f.do(t, http.MethodPost, "/receipts", body, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func sampleStored() []*models.Receipt {
	food := "food"
	qty := "2"
	return []*models.Receipt{{
		ID:        1,
		AccountID: 7,
		Merchant:  "Shop",
		Date:      models.NewDate(2025, time.January, 2),
		Total:     decimal.RequireFromString("12.5"),
		Category:  &food,
		Items: []models.LineItem{
			{ID: 10, ReceiptID: 1, Name: "tea", Quantity: &qty, Price: decimal.RequireFromString("6.25")},
		},
	}, {
		ID:        2,
		AccountID: 8,
		Merchant:  "Other",
		Date:      models.NewDate(2025, time.January, 3),
		Total:     decimal.NewFromInt(1),
		Items:     []models.LineItem{},
	}}
}

func TestGetReceipt(t *testing.T) {
	f := newFixture()
	f.receipts.list = sampleStored()

	rec := f.do(t, http.MethodGet, "/receipts/1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 1, "merchant": "Shop", "date": "2025-01-02", "total": 12.50, "category": "food",
		"items": [{"id": 10, "name": "tea", "quantity": "2", "price": 6.25}],
		"created_at": "0001-01-01T00:00:00Z"
	}`, rec.Body.String())
}

func TestGetReceipt_NotFound(t *testing.T) {
	f := newFixture()
	f.receipts.list = sampleStored()

	for _, path := range []string{"/receipts/2", "/receipts/99", "/receipts/abc", "/receipts/-1"} {
		rec := f.do(t, http.MethodGet, path, "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestGetReceipt_StorageError(t *testing.T) {
	f := newFixture()
	f.receipts.getErr = common.ErrorStorage

	rec := f.do(t, http.MethodGet, "/receipts/1", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListReceipts(t *testing.T) {
	f := newFixture()
	f.receipts.list = sampleStored()[:1]

	rec := f.do(t, http.MethodGet, "/receipts", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), f.receipts.gotAccount)
	assert.Contains(t, rec.Body.String(), `"merchant":"Shop"`)

	f.receipts.list = nil
	rec = f.do(t, http.MethodGet, "/receipts", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
