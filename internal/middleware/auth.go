package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// AuthTokenHeader carries the session token on every authenticated
// request.
const AuthTokenHeader = "X-FITTRACK-TOKEN"

type AuthMiddlewareHandler struct {
	sessionChecker       auth.Checker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(sessionChecker auth.Checker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessionChecker: sessionChecker,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,

			// users handler:
			"/register": true,
			"/login":    true,
			"/logout":   true,

			// change feed resolves its own scope, anonymous
			// subscribers get the public one:
			"/events": true,
		},
		allowedPathsPrefixes: []string{
			"/public/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			// resolve the identity even on open paths, the change
			// feed and logout read it from the request context
			authToken := r.Header.Get(AuthTokenHeader)
			if authToken != "" {
				identity, err := h.sessionChecker.CheckSession(ctx, authToken)
				switch {
				case err == nil:
					ctx = auth.ContextWithIdentity(ctx, identity)
					r = r.WithContext(ctx)
				case errors.Is(err, auth.ErrNoSession):
					// stale token, treated same as no token below
				default:
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					http.Error(w, "no can do", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "check-session-err")
					span.RecordError(err)
					return
				}
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := auth.IdentityFromContext(r.Context()); !ok {
				log.Tracef("[invalid or missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
