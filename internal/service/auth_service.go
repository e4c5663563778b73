package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fittrackr/fittrackr/internal/auth"
	"github.com/fittrackr/fittrackr/internal/metrics"
)

// AuthService handles registration and login over HTTP.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// RegisterRoutes mounts the auth endpoints on the router.
func (s *AuthService) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (s *AuthService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := s.authenticator.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Username, "error", err)
		metrics.RecordRegistration("failure")
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, auth.ErrEmptyUsername):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.logger.Info("User registered", "username", account.Username)
	metrics.RecordRegistration("success")
	writeJSON(w, http.StatusCreated, registerResponse{
		Username: account.Username,
		Message:  "Registered successfully! Please log in.",
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (s *AuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := s.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Username)
		metrics.RecordLogin("failure")
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	token, err := s.jwtManager.Generate(account)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", account.Username, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("User logged in", "username", account.Username)
	metrics.RecordLogin("success")
	writeJSON(w, http.StatusOK, loginResponse{
		Username: account.Username,
		Token:    token,
	})
}
