package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iudanet/gophtasks/internal/validation"
	"github.com/iudanet/gophtasks/pkg/api"
)

const (
	// maxBodyBytes ограничивает размер тела запроса
	maxBodyBytes = 1 << 20

	msgContentType = "Your content-type must be application/json"
	msgInternal    = "internal server error"
	msgInvalidBody = "invalid request body"
)

// errBodyTooLarge is returned when the request body exceeds maxBodyBytes
var errBodyTooLarge = errors.New("request body too large")

// responder holds the JSON response helpers shared by all handlers
type responder struct {
	logger *slog.Logger
}

// sendJSON writes v as a JSON response with the given status
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes an {"error": message} response
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{Error: message}, statusCode)
}

// sendInternalError logs err and answers with a generic 500
func (h responder) sendInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
	h.sendError(w, msgInternal, http.StatusInternalServerError)
}

// isJSON reports whether the request declares a JSON body:
// application/json or any application/*+json type
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// readBody reads at most maxBodyBytes of the request body
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

// decodeRequired reads a JSON object body, checks that the required keys are
// present and decodes it into dst. The returned message is safe to show.
func decodeRequired(w http.ResponseWriter, r *http.Request, required []string, dst any) (string, bool) {
	data, err := readBody(w, r)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			return err.Error(), false
		}
		return msgInvalidBody, false
	}

	if _, err := validation.RequireFields(data, required); err != nil {
		var missing *validation.MissingFieldsError
		if errors.As(err, &missing) {
			return missing.Error(), false
		}
		return msgInvalidBody, false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return msgInvalidBody, false
	}

	return "", true
}

// pathID extracts the numeric {id} route variable
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
