package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/probashi-portal/apiserver/internal/i18n"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// AuthHandler provides registration, sign-in and credential endpoints.
type AuthHandler struct {
	users      *services.UserService
	profiles   *services.ProfileService
	guard      *Guard
	translator *i18n.Translator
	secret     []byte
	tokenTTL   time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(
	users *services.UserService,
	profiles *services.ProfileService,
	guard *Guard,
	translator *i18n.Translator,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		users:      users,
		profiles:   profiles,
		guard:      guard,
		translator: translator,
		secret:     []byte(jwtSecret),
		tokenTTL:   defaultTokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler, guard *Guard) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(guard.RequireAuth, guard.RequireProfile).Get("/me", handler.Me)
	r.With(guard.RequireAuth).Put("/credentials", handler.UpdateCredentials)
	r.With(guard.RequireAuth).Delete("/me", handler.DeleteAccount)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string        `json:"token"`
	Profile  types.Profile `json:"profile"`
	Redirect string        `json:"redirect"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and its profile. The new session is not
// kept: the client is sent to the sign-in page, mirroring the portal's
// sign-up flow.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	lang := requestLang(r)

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, h.translator.Translate(lang, "emailTaken"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to check account")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user, err := h.users.Create(r.Context(), types.User{
		Email:        req.Email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, h.translator.Translate(lang, "emailTaken"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	if _, err := h.profiles.Create(r.Context(), types.Profile{
		UserID:   user.ID,
		Name:     req.Name,
		Role:     types.RoleUser,
		Language: lang,
	}); err != nil {
		// The identity exists without a profile now; the guard treats
		// that state as unusable and keeps the account locked out.
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, RedirectResponse{Redirect: LoginPath})
}

// Login verifies credentials and returns a JWT plus the role-resolved
// landing page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	lang := requestLang(r)

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, h.translator.Translate(lang, "invalidCredentials"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, h.translator.Translate(lang, "invalidCredentials"))
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, h.translator.Translate(lang, "couldNotLoadProfile"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	token, err := issueToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Profile:  profile,
		Redirect: h.guard.LandingFor(profile.Role),
	})
}

// Me returns the current authenticated profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateCredentials changes the caller's email and/or password.
func (h *AuthHandler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" && req.Password == "" {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update credentials")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if _, err := h.users.UpdateCredentials(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, h.translator.Translate(requestLang(r), "emailTaken"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update credentials")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount destroys the identity; the profile row follows by
// cascade.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, RedirectResponse{Redirect: LoginPath})
}

func issueToken(userID int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// requestLang picks the interface language for callers without a
// loaded profile, e.g. the sign-in screen.
func requestLang(r *http.Request) string {
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Accept-Language")), types.LangBengali) {
		return types.LangBengali
	}
	return types.LangEnglish
}
