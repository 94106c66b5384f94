package handlers

import (
	"net/http"
)

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	f, err := h.Controller.ExportXLSX(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.xlsx")

	if err := f.Write(w); err != nil {
		h.Logger.WithError(err).Error("failed to write xlsx export")
	}
}
