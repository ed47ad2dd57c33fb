package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// NewSecure returns a security-header middleware. Development mode turns
// the headers into no-ops so local HTTP keeps working; production adds
// HSTS on top of the baseline set.
func NewSecure(isDevelopment bool) func(next http.Handler) http.Handler {
	opts := secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'",
		ReferrerPolicy:        "no-referrer",
	}
	if !isDevelopment {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return secure.New(opts).Handler
}
