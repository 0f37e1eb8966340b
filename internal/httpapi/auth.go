package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/invotrack/invotrack/internal/auth"
	"github.com/invotrack/invotrack/internal/httpapi/respond"
	"github.com/invotrack/invotrack/internal/middleware"
	"github.com/invotrack/invotrack/internal/storage"
)

// AuthHandler serves registration, login and profile lookup.
type AuthHandler struct {
	store      storage.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		respond.Error(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Email, digest)
	if err != nil {
		storeError(w, h.logger, "create user", "user", err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	respond.JSON(w, http.StatusCreated, messageResponse{Message: "user created successfully"})
}

// Login handles POST /login. Unknown email and wrong password produce the
// same 401 message so responses never reveal whether an account exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
			return
		}
		storeError(w, h.logger, "get user by email", "user", err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwtManager.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Me handles GET /me for the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		storeError(w, h.logger, "get user by id", "user", err)
		return
	}

	respond.JSON(w, http.StatusOK, user)
}
