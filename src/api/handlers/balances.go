package handlers

import "net/http"

func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	balances, err := h.Controller.GetBalances(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, balances, http.StatusOK)
}
