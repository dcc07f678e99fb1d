package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

// requestTimeout bounds every store round trip; the data-access core itself
// carries no timeouts.
const requestTimeout = 5 * time.Second

// SessionValidator resolves a bearer token to a user ID.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (string, bool, error)
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. Returns "" when the header is missing or malformed.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// identityContext validates the request's session token and, when valid,
// returns a context carrying the caller's identity. An absent or invalid
// token leaves the context bare so the service guard rejects the call.
func identityContext(r *http.Request, sessions SessionValidator) context.Context {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return r.Context()
	}
	userID, ok, err := sessions.Validate(r.Context(), token)
	if err != nil || !ok {
		return r.Context()
	}
	return services.WithUserID(r.Context(), userID)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps a domain error to its HTTP status; anything without
// a code is an infrastructure failure and becomes a 500 with a generic
// message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	code := services.CodeOf(err)
	status := http.StatusInternalServerError
	message := fallback

	switch code {
	case services.CodeUnauthenticated:
		status = http.StatusUnauthorized
		message = err.Error()
	case services.CodeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case services.CodeValidationFailed:
		status = http.StatusBadRequest
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: message})
}
