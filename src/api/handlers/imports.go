package handlers

import (
	"errors"
	"net/http"

	"cryptoledger/src/utils"
)

const uploadField = "file"

// ImportCSV expects a multipart form with the CSV document in the "file" field.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleErrors(w, utils.RequestEntityTooLarge("upload exceeds the size limit"))
			return
		}
		h.HandleErrors(w, utils.BadRequest("a CSV file is required in the \"file\" field"))
		return
	}
	defer file.Close()

	res, err := h.Controller.ImportCSV(ctx, header.Filename, file)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}
