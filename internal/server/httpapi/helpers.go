package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/normalize"
	"github.com/shopspring/decimal"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string                 `json:"error"`
	Fields []normalize.FieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// money renders an amount as a bare JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type itemResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Quantity *string     `json:"quantity"`
	Price    json.Number `json:"price"`
}

type receiptResponse struct {
	ID        int64          `json:"id"`
	Merchant  string         `json:"merchant"`
	Date      models.Date    `json:"date"`
	Total     json.Number    `json:"total"`
	Category  *string        `json:"category"`
	Items     []itemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

func toReceiptResponse(r *models.Receipt) receiptResponse {
	items := make([]itemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = itemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: money(it.Price)}
	}
	return receiptResponse{
		ID:        r.ID,
		Merchant:  r.Merchant,
		Date:      r.Date,
		Total:     money(r.Total),
		Category:  r.Category,
		Items:     items,
		CreatedAt: r.CreatedAt,
	}
}
