package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/habitual/internal/auth"
	"github.com/mmynk/habitual/internal/models"
	"github.com/mmynk/habitual/internal/storage"
)

// AuthService handles registration and login requests.
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

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		// storage.ErrConflict covers the race where a concurrent request
		// registers the same email between the existence check and the insert.
		case errors.Is(err, auth.ErrEmailExists), errors.Is(err, storage.ErrConflict):
			respondError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, auth.ErrWeakPassword.Error())
		default:
			s.logger.Error("registration failed", "email", req.Email, "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login handles POST /api/auth/login.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			s.logger.Error("login failed", "email", req.Email, "error", err)
			respondError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}
