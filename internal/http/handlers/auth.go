package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/linkinbio-be/internal/http/respond"
	"github.com/hongminglow/linkinbio-be/internal/models/dto"
	"github.com/hongminglow/linkinbio-be/internal/service"
)

// AuthHandler owns register/login endpoints.
type AuthHandler struct {
	auth   *service.Authenticator
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth *service.Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	userID, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		Name:              req.Name,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooLong):
			respond.Error(w, http.StatusBadRequest, "Password must be at most 72 bytes")
		case errors.Is(err, service.ErrValidation):
			respond.Error(w, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, service.ErrDuplicateEmail):
			respond.Error(w, http.StatusConflict, "Email Already Registered.")
		default:
			h.logger.ErrorContext(r.Context(), "register user failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to Register user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{Success: true, UserID: userID})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			respond.Error(w, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, service.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "Invalid Email or Password")
		default:
			h.logger.ErrorContext(r.Context(), "login failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Login Failed")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{Success: true, Token: token})
}
