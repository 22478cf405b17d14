package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
)

// SecurityConfig controls response hardening and request limits.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	// MaxIterations caps k on /eval.
	MaxIterations uint
	// MaxDigits caps the digits parameter on /eval.
	MaxDigits int
	// MaxExponent caps the decimal exponent of the x literal on /eval.
	MaxExponent int
	// MaxExpArgument caps |x| for exp on /eval.
	MaxExpArgument int64
}

// DefaultSecurityConfig allows any origin for read-only methods.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxIterations:  engine.MaxIterations,
		MaxDigits:      config.MaxDigits,
		MaxExponent:    config.MaxExponent,
		MaxExpArgument: config.MaxExpArgument,
	}
}

// SecurityMiddleware sets hardening headers, applies CORS and answers
// preflight requests without calling next.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if cfg.EnableCORS {
			if origin, ok := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}
