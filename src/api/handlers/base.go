package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cryptoledger/src/api/controllers"
	"cryptoledger/src/services"
	"cryptoledger/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 10 * time.Second

type Handler struct {
	Controller     controllers.IController
	Logger         logrus.FieldLogger
	Validate       *validator.Validate
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

func NewHandler(controller controllers.IController, logger logrus.FieldLogger, requestTimeout time.Duration, maxUploadBytes int64) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{
		Controller:     controller,
		Logger:         logger,
		Validate:       validator.New(validator.WithRequiredStructEnabled()),
		RequestTimeout: requestTimeout,
		MaxUploadBytes: maxUploadBytes,
	}
}

// requestContext bounds the request and attaches the request-scoped logger.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), h.RequestTimeout)
	logger := h.Logger
	if reqLogger, ok := r.Context().Value(requestLoggerKey).(logrus.FieldLogger); ok {
		logger = reqLogger
	}
	return utils.WithLogger(ctx, logger), cancel
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps domain and transport errors to a JSON error body.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var pairErr *services.MalformedPairError
	var fieldErr *services.InvalidFieldError
	var formatErr *services.CSVFormatError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case errors.Is(err, services.ErrTransactionNotFound):
		h.respond(w, nil, map[string]string{"error": "Transaction not found"}, http.StatusNotFound)
	case errors.Is(err, services.ErrUnsupportedFileType):
		h.respond(w, nil, map[string]string{"error": "Only CSV files are allowed"}, http.StatusBadRequest)
	case errors.As(err, &pairErr):
		h.respond(w, nil, map[string]string{"error": pairErr.Error()}, http.StatusBadRequest)
	case errors.As(err, &fieldErr), errors.As(err, &formatErr):
		h.respond(w, nil, map[string]string{"error": "Invalid CSV format: " + err.Error()}, http.StatusBadRequest)
	case err != nil:
		h.Logger.WithError(err).Error("unhandled error")
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
