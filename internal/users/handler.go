package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAvatar(ctx context.Context, id int) (string, error)
	SetAvatar(ctx context.Context, id int, avatarRef string) error
}

type sessions interface {
	Login(ctx context.Context, identity auth.Identity, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AvatarResponse struct {
	AvatarRef string `json:"avatarRef"`
}

type Handler struct {
	repo     usersRepo
	sessions sessions
}

func NewHandler(repo usersRepo, sessions sessions) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		http.Error(w, "error, password too short", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register failed, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: passwordHash,
		Role:         auth.RoleUser,
		Status:       StatusActive,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}
		log.Errorf("failed to create user [%s]: %s", req.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal new user: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", user.Username)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Errorf("login failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	username := r.Form.Get("username")
	if username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}

	password := r.Form.Get("password")
	if password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Tracef("[username] failed login attempt for user: %s", username)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, get user [%s]: %s", username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	if user.Status == StatusArchived {
		http.Error(w, "error, account archived", http.StatusForbidden)
		return
	}

	token, err := handler.sessions.Login(ctx, user.Identity(), time.Now())
	if err != nil {
		log.Errorf("login failed, create session: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := r.Header.Get("X-FITTRACK-TOKEN")
	if token == "" {
		http.Error(w, "no token", http.StatusBadRequest)
		return
	}

	if err := handler.sessions.Logout(ctx, token); err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			http.Error(w, "no session", http.StatusBadRequest)
			return
		}
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleGetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getAvatar")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	avatarRef, err := handler.repo.GetAvatar(ctx, identity.UserID)
	if err != nil {
		log.Errorf("failed to get avatar for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get avatar", http.StatusInternalServerError)
		return
	}

	avatarJson, err := json.Marshal(AvatarResponse{AvatarRef: avatarRef})
	if err != nil {
		log.Errorf("failed to marshal avatar response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, avatarJson, http.StatusOK)
}

// HandleSetAvatar stores an opaque avatar blob reference. The blob
// itself lives elsewhere; the ledger only keeps the pointer.
func (handler *Handler) HandleSetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.setAvatar")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var req AvatarResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set avatar, unmarshal json params: %s", err)
		http.Error(w, "set avatar failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.SetAvatar(ctx, identity.UserID, req.AvatarRef); err != nil {
		log.Errorf("failed to set avatar for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to set avatar", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "avatar updated")
}
