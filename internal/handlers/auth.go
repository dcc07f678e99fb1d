package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

// AuthHandler implements privacy-first account routes: username + password
// only, opaque session tokens in Redis.
type AuthHandler struct {
	Users    *services.UserService
	Sessions *services.SessionService
}

func NewAuthHandler(users *services.UserService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.Users.Register(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "Failed to create account")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusConflict, errorResponse{Success: false, Message: "Username is already taken"})
		return
	}

	token, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    user,
	})
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "Failed to sign in")
		return
	}
	if user == nil {
		// Wrong username and wrong password are indistinguishable on purpose.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	token, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   token,
		User:    user,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	token := extractBearerToken(r.Header.Get("Authorization"))
	userID, ok, err := h.Sessions.Validate(ctx, token)
	if err != nil || !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch account")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
}

// Signout handles POST /api/auth/signout.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		h.Sessions.Invalidate(ctx, token)
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Signed out"})
}
