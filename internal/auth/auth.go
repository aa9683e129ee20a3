// Package auth holds the login session state: at most one current user,
// mirrored to the key/value substrate so a restart restores the session.
//
// The registered-account lists (users and credentials) are mirrored to
// their own substrate keys, separate from the relational catalog store.
// The single Administrator identity is hardcoded and never appears in
// those lists.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/kv"
)

// Store is the auth session state. Not safe for concurrent use.
type Store struct {
	kv      *kv.Store
	current *domain.User
}

// NewStore restores a previously mirrored session, if any. A mirrored
// session whose account is banned is discarded and its key cleared; an
// unparseable session is discarded with a warning.
func NewStore(kvs *kv.Store) *Store {
	s := &Store{kv: kvs}

	var u domain.User
	err := kvs.GetJSON(kv.KeySessionUser, &u)
	switch {
	case err == nil && u.IsBanned:
		slog.Warn("discarding banned persisted session", "username", u.Username)
		if delErr := kvs.Delete(kv.KeySessionUser); delErr != nil {
			slog.Error("failed to clear banned session", "err", delErr)
		}
	case err == nil:
		s.current = &u
	case errors.Is(err, kv.ErrNoKey):
		// No session mirrored.
	default:
		slog.Warn("discarding unreadable session state", "err", err)
	}

	return s
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (domain.User, bool) {
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// Login authenticates a username/password pair. The hardcoded
// Administrator pair is checked first and always wins, regardless of the
// registered-account lists. A banned account fails with CodeBanned and
// the session is left unchanged.
func (s *Store) Login(username, password string) (domain.User, error) {
	const op = "auth.Login"

	if username == domain.AdminUsername && password == domain.AdminPassword {
		admin := domain.AdminUser()
		if err := s.setSession(admin); err != nil {
			return domain.User{}, fmt.Errorf("%s: %w", op, err)
		}
		return admin, nil
	}

	cred, ok := s.findCredential(username)
	if !ok {
		return domain.User{}, &Error{CodeInvalidCredentials, "unknown username or wrong password"}
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return domain.User{}, &Error{CodeInvalidCredentials, "unknown username or wrong password"}
	}

	user, ok := s.findUserByEmail(cred.Email)
	if !ok {
		// Credential without a matching account record; treat the pair as
		// invalid rather than fabricating a user.
		return domain.User{}, &Error{CodeInvalidCredentials, "unknown username or wrong password"}
	}
	if user.IsBanned {
		return domain.User{}, &Error{CodeBanned, "account is banned"}
	}

	if err := s.setSession(user); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Register creates a new account. Fails with CodeEmailTaken or
// CodeUsernameTaken on an exact (case-sensitive) collision; both fields
// are declared unique. Does not log the new account in.
func (s *Store) Register(name, username, email, password string) (domain.User, error) {
	const op = "auth.Register"

	users := s.loadUsers()
	for _, u := range users {
		if u.Email == email {
			return domain.User{}, &Error{CodeEmailTaken, "email is already registered"}
		}
		if u.Username == username {
			return domain.User{}, &Error{CodeUsernameTaken, "username is already taken"}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	creds := s.loadCredentials()
	creds = append(creds, domain.Credential{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	users = append(users, user)

	if err := s.kv.PutJSON(kv.KeyCredentials, creds); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.PutJSON(kv.KeyUsers, users); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("registered user", "op", op, "username", username)
	return user, nil
}

// Logout clears the session unconditionally.
func (s *Store) Logout() error {
	s.current = nil
	if err := s.kv.Delete(kv.KeySessionUser); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}

// SetBanned toggles the banned flag on a registered account (admin
// action). A banned user's live session, if it is the current one, is
// cleared.
func (s *Store) SetBanned(username string, banned bool) error {
	const op = "auth.SetBanned"

	users := s.loadUsers()
	found := false
	for i := range users {
		if users[i].Username == username {
			users[i].IsBanned = banned
			users[i].UpdatedAt = time.Now().UTC()
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%s: user %q not found", op, username)
	}

	if err := s.kv.PutJSON(kv.KeyUsers, users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if banned && s.current != nil && s.current.Username == username {
		if err := s.Logout(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Users returns the registered-account list.
func (s *Store) Users() []domain.User {
	return s.loadUsers()
}

func (s *Store) setSession(u domain.User) error {
	if err := s.kv.PutJSON(kv.KeySessionUser, u); err != nil {
		return err
	}
	s.current = &u
	return nil
}

func (s *Store) findCredential(username string) (domain.Credential, bool) {
	for _, c := range s.loadCredentials() {
		if c.Username == username {
			return c, true
		}
	}
	return domain.Credential{}, false
}

func (s *Store) findUserByEmail(email string) (domain.User, bool) {
	for _, u := range s.loadUsers() {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// loadUsers reads the mirrored user list; a missing or unparseable list
// is an empty one.
func (s *Store) loadUsers() []domain.User {
	var users []domain.User
	if err := s.kv.GetJSON(kv.KeyUsers, &users); err != nil {
		if !errors.Is(err, kv.ErrNoKey) {
			slog.Warn("discarding unreadable user list", "err", err)
		}
		return nil
	}
	return users
}

func (s *Store) loadCredentials() []domain.Credential {
	var creds []domain.Credential
	if err := s.kv.GetJSON(kv.KeyCredentials, &creds); err != nil {
		if !errors.Is(err, kv.ErrNoKey) {
			slog.Warn("discarding unreadable credential list", "err", err)
		}
		return nil
	}
	return creds
}
