package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fandangolas/heimdall/internal/application/commands"
	"github.com/fandangolas/heimdall/internal/application/queries"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
	"github.com/fandangolas/heimdall/internal/infrastructure/http/middleware"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	register      *commands.Register
	login         *commands.Login
	logout        *commands.Logout
	refresh       *commands.Refresh
	validateToken *queries.ValidateToken
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(register *commands.Register, login *commands.Login, logout *commands.Logout, refresh *commands.Refresh, validateToken *queries.ValidateToken, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:      register,
		login:         login,
		logout:        logout,
		refresh:       refresh,
		validateToken: validateToken,
		validate:      validator.New(),
		log:           log,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type registerResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.register.Execute(r.Context(), commands.RegisterInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, domerrors.ErrEmailTaken):
			writeErr(w, http.StatusConflict, "", err.Error())
		case errors.Is(err, domerrors.ErrInvalidEmail), errors.Is(err, domerrors.ErrWeakPassword):
			writeErr(w, http.StatusBadRequest, "", err.Error())
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.register", result.UserID, true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, registerResponse{
		UserID:  result.UserID,
		Email:   result.Email,
		Message: "User created successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), commands.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		switch {
		case errors.Is(err, domerrors.ErrInvalidCredentials), errors.Is(err, domerrors.ErrAccountInactive):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, domerrors.ErrInvalidCredentials.Error())
		case errors.Is(err, domerrors.ErrInvalidEmail), errors.Is(err, domerrors.ErrWeakPassword):
			writeErr(w, http.StatusBadRequest, "", err.Error())
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.login", "", true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   result.ExpiresIn,
	})
}

type validateRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

type validateResponse struct {
	IsValid     bool     `json:"is_valid"`
	UserID      *string  `json:"user_id,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Permissions []string `json:"permissions"`
	Error       *string  `json:"error,omitempty"`
}

// Validate never fails with an HTTP error: every outcome is a 200 with
// is_valid set accordingly.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		msg := "invalid body"
		writeJSON(w, http.StatusOK, validateResponse{IsValid: false, Permissions: []string{}, Error: &msg})
		return
	}
	result := h.validateToken.Execute(r.Context(), body.Token)
	writeJSON(w, http.StatusOK, toValidateResponse(result))
}

type logoutRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	token, err := domain.NewToken(body.Token)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidToken, err.Error())
		return
	}
	if err := h.logout.Execute(r.Context(), token); err != nil {
		AuditLog(h.log, r, "user.logout", "", false, err.Error())
		switch {
		case errors.Is(err, domerrors.ErrSessionNotFound):
			writeErr(w, http.StatusNotFound, "", err.Error())
		case errors.Is(err, domerrors.ErrSessionInvalid):
			writeErr(w, http.StatusConflict, ErrCodeSessionRevoked, err.Error())
		case errors.Is(err, domerrors.ErrInvalidToken), errors.Is(err, domerrors.ErrInvalidID):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
		default:
			h.log.Error().Err(err).Msg("logout failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.logout", "", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

type refreshRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	token, err := domain.NewToken(body.Token)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidToken, err.Error())
		return
	}
	result, err := h.refresh.Execute(r.Context(), token)
	if err != nil {
		AuditLog(h.log, r, "user.refresh", "", false, err.Error())
		middleware.RecordAuthAttempt("refresh", false)
		switch {
		case errors.Is(err, domerrors.ErrInvalidToken), errors.Is(err, domerrors.ErrInvalidID),
			errors.Is(err, domerrors.ErrSessionInvalid):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, "invalid or expired token")
		default:
			h.log.Error().Err(err).Msg("refresh failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.refresh", "", true, "")
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   result.ExpiresIn,
	})
}

// Me returns the claims resolved by the session middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid authorization")
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		IsValid:     true,
		UserID:      &claims.UserID,
		Email:       &claims.Email,
		Permissions: claims.Permissions,
	})
}

func toValidateResponse(result queries.ValidateResult) validateResponse {
	resp := validateResponse{
		IsValid:     result.IsValid,
		Permissions: result.Permissions,
	}
	if resp.Permissions == nil {
		resp.Permissions = []string{}
	}
	if result.IsValid {
		userID := result.UserID
		email := result.Email
		resp.UserID = &userID
		resp.Email = &email
	} else if result.Error != "" {
		errMsg := result.Error
		resp.Error = &errMsg
	}
	return resp
}
