package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/normalize"
	"github.com/go-chi/chi/v5"
)

func (h *handlers) createReceipt(w http.ResponseWriter, r *http.Request) {
	accountID := accountIDFromContext(r.Context())

	raw, err := normalize.DecodeRawReceipt(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		var id int64
		id, err = h.receipts.Submit(r.Context(), raw, accountID)
		if err == nil {
			h.metrics.IncReceiptSaved()
			writeJSON(w, http.StatusCreated, map[string]int64{"receipt_id": id})
			return
		}
	}

	var verr *normalize.ValidationError
	switch {
	case errors.As(err, &verr):
		h.metrics.IncValidationFailure()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid receipt data", Fields: verr.Fields})
	case errors.Is(err, common.ErrorAccountNotFound):
		writeError(w, http.StatusUnauthorized, "account does not exist")
	default:
		h.internalError(w, "save_receipt", err)
	}
}

func (h *handlers) listReceipts(w http.ResponseWriter, r *http.Request) {
	list, err := h.receipts.List(r.Context(), accountIDFromContext(r.Context()))
	if err != nil {
		h.internalError(w, "list_receipts", err)
		return
	}

	out := make([]receiptResponse, len(list))
	for i, rec := range list {
		out[i] = toReceiptResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "receipt not found")
		return
	}

	rec, err := h.receipts.Get(r.Context(), accountIDFromContext(r.Context()), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "receipt not found")
			return
		}
		h.internalError(w, "get_receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, toReceiptResponse(rec))
}
