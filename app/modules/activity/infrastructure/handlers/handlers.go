package activityhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	activityservice "github.com/fairway-collective/roundhouse/app/modules/activity/application"
	"github.com/fairway-collective/roundhouse/internal/observability"
	"github.com/go-playground/validator/v10"
)

// defaultContentionRetries bounds how often a handler re-runs an operation
// that lost the header lock before reporting the conflict to the client.
const defaultContentionRetries = 3

// ActivityHandlers exposes the activity service over HTTP.
type ActivityHandlers struct {
	service  activityservice.Service
	logger   *slog.Logger
	metrics  observability.ActivityMetrics
	validate *validator.Validate
	retries  int
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(service activityservice.Service, logger *slog.Logger, metrics observability.ActivityMetrics, contentionRetries int) *ActivityHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	if contentionRetries <= 0 {
		contentionRetries = defaultContentionRetries
	}
	return &ActivityHandlers{
		service:  service,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
		retries:  contentionRetries,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ActivityHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *ActivityHandlers) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors to HTTP responses. Denied and absent
// collapse into one 404 body so callers cannot probe for private activities.
func (h *ActivityHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, activityservice.ErrAccessDenied):
		h.respondError(w, http.StatusNotFound, "activity not accessible")
	case errors.Is(err, activityservice.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, activityservice.ErrDuplicateParticipant):
		h.respondError(w, http.StatusConflict, "participant already exists")
	case errors.Is(err, activityservice.ErrContention):
		h.respondError(w, http.StatusConflict, "concurrent update, retry")
	case errors.Is(err, activityservice.ErrInvalidDetailRecord),
		errors.Is(err, activityservice.ErrInvalidInput),
		errors.Is(err, activityservice.ErrInvalidAttestationTransition),
		errors.Is(err, activityservice.ErrActivityNotPublishable):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Internal error handling request",
			"path", r.URL.Path,
			"error", err,
		)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. A false return means the response has already been written.
func (h *ActivityHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, formatValidationError(err))
		return false
	}
	return true
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	msg := "validation failed:"
	for _, fe := range validationErrors {
		msg += " " + fe.Field() + " (" + fe.Tag() + ")"
	}
	return msg
}
