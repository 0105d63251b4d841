package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return req, false
	}
	return req, true
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, common.ErrorDuplicateName):
			writeError(w, http.StatusConflict, "username already exists")
		default:
			h.internalError(w, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": account.ID})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.internalError(w, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// internalError answers 500 without detail. Services already logged the
// cause; here only the operation is counted.
func (h *handlers) internalError(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, common.ErrorStorage) {
		h.metrics.IncStorageError(operation)
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
