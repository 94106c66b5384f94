package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cryptoledger/src/schemas"
	"cryptoledger/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	transactions, err := h.Controller.GetAllTransactions(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	req, err := h.decodeTransaction(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	created, err := h.Controller.CreateTransaction(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusOK)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	id, err := transactionID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	req, err := h.decodeTransaction(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	updated, err := h.Controller.UpdateTransaction(ctx, id, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	id, err := transactionID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	deleted, err := h.Controller.DeleteTransaction(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, deleted, http.StatusOK)
}

func transactionID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, utils.UnprocessableEntity("transaction id must be an integer")
	}
	return id, nil
}

func (h *Handler) decodeTransaction(r *http.Request) (*schemas.TransactionRequest, error) {
	var req schemas.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if err := h.Validate.Struct(&req); err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}
	return &req, nil
}
