package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// MessageResponse is the envelope for plain message responses and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a single resource.
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var (
		verrs   model.ValidationErrors
		payment *model.PaymentFailedError
	)

	switch {
	case errors.As(err, &verrs):
		logger.Debug().Err(err).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Message: validationMessage(verrs),
			Errors:  verrs.Fields(),
		})
	case errors.As(err, &payment):
		logger.Info().
			Str("gateway", payment.Outcome.Gateway).
			Str("reason", payment.Outcome.Error).
			Msg("payment failed")
		outcome := payment.Outcome
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Message:      "Payment failed. Please try again.",
			PaymentError: &outcome,
		})
	case errors.Is(err, model.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, model.ErrOrderNotFound.Message, logger)
	case errors.Is(err, model.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "Book not found.", logger)
	case errors.Is(err, model.ErrOrderNotRecorded):
		logger.Error().Err(err).Msg("order not recorded")
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: model.ErrOrderNotRecorded.Message})
	default:
		logger.Error().Err(err).Msg("unexpected service error")
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "internal server error"})
	}
}

// validationMessage summarises field errors the way the API clients expect:
// the first message, followed by a count of the remaining ones.
func validationMessage(verrs model.ValidationErrors) string {
	if len(verrs) == 0 {
		return "The given data was invalid."
	}
	switch rest := len(verrs) - 1; rest {
	case 0:
		return verrs[0].Message
	case 1:
		return fmt.Sprintf("%s (and 1 more error)", verrs[0].Message)
	default:
		return fmt.Sprintf("%s (and %d more errors)", verrs[0].Message, rest)
	}
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// pageParams parses limit and offset query parameters, clamping limit to 1..100.
func pageParams(r *http.Request) (limit, offset int, err error) {
	limit = defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, errors.New("invalid limit parameter")
		}
	}

	if s := r.URL.Query().Get("offset"); s != "" {
		offset, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, errors.New("invalid offset parameter")
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}

// orderIDParam reads the {id} route parameter as an order UUID.
func orderIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid order ID format")
	}
	return id, nil
}
