// Package session owns the signed-in patient: the persisted bearer token, the
// resolved profile and the account operations that change either.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/auth"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/tokenstore"
	"github.com/Varun5711/wecare/internal/validation"
)

var ErrNoUser = errors.New("no signed-in user")

type State int

const (
	StateInit State = iota
	StateResolving
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateResolving:
		return "resolving"
	default:
		return "ready"
	}
}

// Snapshot is an immutable view handed to guards and screens.
type Snapshot struct {
	State   State
	User    *models.User
	Loading bool
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

type Session struct {
	mu     sync.RWMutex
	client *api.Client
	tokens tokenstore.Store
	log    *logger.Logger
	now    func() time.Time

	state State
	user  *models.User
	busy  int

	subsMu sync.Mutex
	subs   []func(Snapshot)
}

func New(client *api.Client, tokens tokenstore.Store) *Session {
	return &Session{
		client: client,
		tokens: tokens,
		log:    logger.New("session"),
		now:    time.Now,
	}
}

// OnChange registers fn to run after every state change. fn must not block.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) notify() {
	snap := s.Snapshot()
	s.subsMu.Lock()
	subs := append([]func(Snapshot){}, s.subs...)
	s.subsMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	var user *models.User
	if s.user != nil {
		cp := *s.user
		user = &cp
	}
	return Snapshot{
		State:   s.state,
		User:    user,
		Loading: s.state != StateReady || s.busy > 0,
	}
}

func (s *Session) User() *models.User {
	return s.Snapshot().User
}

func (s *Session) Loading() bool {
	return s.Snapshot().Loading
}

// Start resolves the persisted token. Without one, or with an expired JWT, the
// session becomes ready immediately and no request is made.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	s.state = StateResolving
	s.mu.Unlock()
	s.notify()

	token := tokenstore.Token(s.tokens)
	if token != "" && auth.TokenExpired(token, s.now()) {
		s.log.Info("Stored token has expired, discarding it")
		_ = s.tokens.Remove()
		token = ""
	}

	if token == "" {
		s.mu.Lock()
		s.user = nil
		s.state = StateReady
		s.mu.Unlock()
		s.notify()
		return
	}

	s.Refresh(ctx)
}

// Refresh re-reads the profile and leaves the session ready. Any failure signs
// the user out locally; it is logged and never returned.
func (s *Session) Refresh(ctx context.Context) {
	s.begin()
	defer s.end()

	user, err := s.client.GetUserData(ctx)

	s.mu.Lock()
	if err != nil {
		s.log.Warn("Failed to resolve user: %v", err)
		s.user = nil
	} else {
		s.user = user
	}
	s.state = StateReady
	s.mu.Unlock()
}

func (s *Session) begin() {
	s.mu.Lock()
	s.busy++
	s.mu.Unlock()
	s.notify()
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy--
	s.mu.Unlock()
	s.notify()
}

// Login stores the issued token and resolves the profile. A failed profile
// fetch still counts as a successful login, leaving User nil.
func (s *Session) Login(ctx context.Context, form validation.LoginForm) error {
	if err := validation.Validate(form); err != nil {
		return err
	}

	resp, err := s.client.Login(ctx, models.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return err
	}

	if err := s.tokens.Set(resp.Token); err != nil {
		s.log.Error("Failed to persist token: %v", err)
		return err
	}

	s.Refresh(ctx)
	s.log.Info("Signed in %s", form.Email)
	return nil
}

// Register creates the account and returns the server's message. It does not
// sign the user in.
func (s *Session) Register(ctx context.Context, form validation.RegisterForm) (string, error) {
	if err := validation.Validate(form); err != nil {
		return "", err
	}

	resp, err := s.client.Register(ctx, models.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout forgets the token and the user together; no request is made.
func (s *Session) Logout() {
	s.mu.Lock()
	if err := s.tokens.Remove(); err != nil {
		s.log.Warn("Failed to remove token: %v", err)
	}
	s.user = nil
	s.mu.Unlock()
	s.notify()
}

func (s *Session) UpdateProfile(ctx context.Context, form validation.ProfileForm) (string, error) {
	current := s.User()
	if current == nil {
		return "", ErrNoUser
	}
	if err := validation.Validate(form); err != nil {
		return "", err
	}

	resp, err := s.client.UpdateProfile(ctx, current.ID, models.ProfileUpdateRequest{
		Name:        form.Name,
		Email:       current.Email,
		PhoneNumber: form.PhoneNumber,
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID == current.ID {
		s.user.Name = form.Name
		s.user.Email = current.Email
		s.user.PhoneNumber = form.PhoneNumber
	}
	s.mu.Unlock()
	s.notify()

	return resp.Message, nil
}

// UpdateProfileImage uploads an already prepared image and stores the returned
// location on the user.
func (s *Session) UpdateProfileImage(ctx context.Context, filename string, data []byte) (string, error) {
	current := s.User()
	if current == nil {
		return "", ErrNoUser
	}
	if err := validation.Validate(validation.ImageForm{Filename: filename, Size: len(data)}); err != nil {
		return "", err
	}

	s.begin()
	defer s.end()

	resp, err := s.client.UploadProfileImage(ctx, current.ID, filename, data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID == current.ID {
		s.user.Image = resp.Data.Image
	}
	s.mu.Unlock()

	return resp.Message, nil
}

func (s *Session) ForgotPassword(ctx context.Context, form validation.ForgotPasswordForm) (string, error) {
	if err := validation.Validate(form); err != nil {
		return "", err
	}
	resp, err := s.client.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: form.Email})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *Session) VerifyOTP(ctx context.Context, form validation.OTPForm) (string, error) {
	if err := validation.Validate(form); err != nil {
		return "", err
	}
	resp, err := s.client.VerifyOTP(ctx, models.VerifyOTPRequest{Email: form.Email, OTP: form.OTP})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *Session) ResetPassword(ctx context.Context, form validation.ResetPasswordForm) (string, error) {
	if err := validation.Validate(form); err != nil {
		return "", err
	}
	resp, err := s.client.ResetPassword(ctx, models.ResetPasswordRequest{
		Email:           form.Email,
		NewPassword:     form.NewPassword,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
