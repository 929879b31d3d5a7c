package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
)

// Navigation targets handed back with guard rejections.
const (
	LoginPath      = "/login"
	DefaultLanding = "/dashboard/user"
)

// DefaultLandings maps a role to its post-login landing page. New roles
// get a landing entry here, not a new conditional.
var DefaultLandings = map[string]string{
	types.RoleAdmin: "/dashboard/admin",
	types.RoleUser:  "/dashboard/user",
}

// Guard gates protected routes on session and role state.
//
// Resolution order per request: bearer token → subject → profile →
// role check. Every rejection carries the navigation target the client
// should follow:
//
//   - no or invalid token: 401, redirect to the sign-in page
//   - token valid but no profile row: 401, redirect to sign-in; the
//     account state is inconsistent and the client must drop the token
//   - profile role outside the permitted set: 403, redirect to the
//     role's landing page
type Guard struct {
	secret   []byte
	profiles *services.ProfileService
	landings map[string]string
}

// NewGuard constructs a Guard. landings may be nil to use
// DefaultLandings.
func NewGuard(jwtSecret string, profiles *services.ProfileService, landings map[string]string) *Guard {
	if landings == nil {
		landings = DefaultLandings
	}
	return &Guard{
		secret:   []byte(jwtSecret),
		profiles: profiles,
		landings: landings,
	}
}

// LandingFor resolves the landing page for a role by table lookup.
func (g *Guard) LandingFor(role string) string {
	if landing, ok := g.landings[role]; ok {
		return landing
	}
	return DefaultLanding
}

// RequireAuth enforces JWT authentication and injects the subject into
// context. Unauthenticated requests never reach a data-fetching
// handler.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
			return
		}

		subject, err := parseTokenSubject(tokenString, g.secret)
		if err != nil {
			writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
			return
		}

		ctx := context.WithValue(r.Context(), contextSubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireProfile resolves the caller's profile and injects it into
// context. A missing profile row is treated as a corrupt account, not
// a recoverable error: the session is rejected outright.
func (g *Guard) RequireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r.Context())
		if err != nil {
			writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
			return
		}

		profile, err := g.profiles.GetByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}

		ctx := context.WithValue(r.Context(), contextProfileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows only the listed roles past. Rejected callers are
// sent to their own role's landing page. Must run after RequireProfile.
func (g *Guard) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	permitted := make(map[string]bool, len(roles))
	for _, role := range roles {
		permitted[strings.ToLower(role)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := profileFromContext(r.Context())
			if err != nil {
				writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
				return
			}

			if len(permitted) > 0 && !permitted[strings.ToLower(profile.Role)] {
				writeGuardError(w, http.StatusForbidden, "access denied", g.LandingFor(profile.Role))
				return
			}
			next.ServeHTTP(w, r.WithContext(r.Context()))
		})
	}
}

func parseTokenSubject(tokenString string, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
