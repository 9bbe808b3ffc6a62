package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go-storefront/models"
	"go-storefront/storage"

	"go.uber.org/zap"
)

// DefaultLoginDelay mimics the round trip of a real sign-in.
const DefaultLoginDelay = 800 * time.Millisecond

// Store is the single signed-in slot of the storefront. The marker is
// mirrored to durable storage so it survives a restart.
type Store struct {
	mu      sync.RWMutex
	current *models.User

	kv     storage.KV
	dir    *Directory
	logger *zap.Logger
}

// NewStore restores the session recorded in kv. A marker that is not exactly
// "true", or an id the directory does not know, leaves the store signed out.
func NewStore(ctx context.Context, kv storage.KV, dir *Directory, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{kv: kv, dir: dir, logger: logger}

	flag, ok, err := kv.Get(ctx, storage.KeyLoggedIn)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok || flag != "true" {
		return s, nil
	}

	raw, ok, err := kv.Get(ctx, storage.KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return s, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("ignoring stored session with malformed user id", zap.String("user_id", raw))
		return s, nil
	}
	user, err := dir.User(id)
	if err != nil {
		logger.Warn("ignoring stored session for unknown user", zap.Int("user_id", id))
		return s, nil
	}

	s.current = &user
	logger.Info("session restored", zap.Int("user_id", id))
	return s, nil
}

// Login records user as signed in.
func (s *Store) Login(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyLoggedIn, "true"); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyUserID, strconv.Itoa(user.ID)); err != nil {
		if derr := s.kv.Delete(ctx, storage.KeyLoggedIn); derr != nil {
			s.logger.Error("failed to roll back session flag", zap.Error(derr))
		}
		return fmt.Errorf("save session: %w", err)
	}

	u := user.Public()
	s.current = &u
	s.logger.Info("user logged in", zap.Int("user_id", user.ID))
	return nil
}

// Logout signs out. The cart is left as it is. Once the flag is gone the
// session is over, so a stale userId alone does not keep the user signed in.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, storage.KeyLoggedIn); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, storage.KeyUserID); err != nil {
		s.logger.Warn("stale user id left in storage", zap.Error(err))
	}

	if s.current != nil {
		s.logger.Info("user logged out", zap.Int("user_id", s.current.ID))
	}
	s.current = nil
	return nil
}

// CurrentUser returns the signed-in customer.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return s.current.Public(), true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// Authenticator checks credentials against the directory and signs the user
// in, after a simulated network delay.
type Authenticator struct {
	Store     *Store
	Directory *Directory
	Delay     time.Duration

	sleep func(time.Duration)
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(store *Store, dir *Directory, delay time.Duration) *Authenticator {
	return &Authenticator{Store: store, Directory: dir, Delay: delay, sleep: time.Sleep}
}

// Authenticate validates the credentials and logs the user in. Blank inputs
// fail immediately; everything else waits out Delay first.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return a.Directory.ValidateCredentials(email, password)
	}

	if a.Delay > 0 {
		a.sleep(a.Delay)
	}

	user, err := a.Directory.ValidateCredentials(email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := a.Store.Login(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
