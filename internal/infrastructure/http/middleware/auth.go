package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fandangolas/heimdall/internal/application/queries"
	"github.com/fandangolas/heimdall/internal/domain"
)

// SessionValidator guards routes with the validate query and sets the
// resolved claims in the context (see ClaimsFromContext). Using the
// query keeps this middleware on the read path: it can never write.
type SessionValidator struct {
	validate *queries.ValidateToken
}

func NewSessionValidator(validate *queries.ValidateToken) *SessionValidator {
	return &SessionValidator{validate: validate}
}

func (m *SessionValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")
		result := m.validate.Execute(r.Context(), raw)
		RecordTokenValidation(result.IsValid)
		if !result.IsValid {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims := domain.TokenClaims{
			UserID:      result.UserID,
			Email:       result.Email,
			Permissions: result.Permissions,
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), &claims)))
	})
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
