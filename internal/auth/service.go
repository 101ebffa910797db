package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// Service keeps the registry of all known principals and performs signup
// and login. Sessions are stateless bearer tokens; the registry is only
// consulted at login time.
type Service struct {
	store  store.Store
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(st store.Store, tokens *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{store: st, tokens: tokens, logger: logger}
}

// Signup registers a new principal. New signups default to OWNER, the
// role the console's signup flow creates.
func (s *Service) Signup(email, password, businessName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = RoleOwner
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		BusinessName: businessName,
		Role:         role,
	}

	err = s.store.Update(func(tx store.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == email {
				return ErrEmailTaken
			}
		}
		users = append(users, persistedUser(*user))
		return tx.Put(store.KeyUsers, users)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login verifies the credentials, appends a login audit entry, and
// returns the user with a signed session token.
func (s *Service) Login(email, password, ip string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user *User
	err := s.store.View(func(tx store.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].Email == email {
				u := User(users[i])
				user = &u
				return nil
			}
		}
		return ErrInvalidCredentials
	})
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	entry := LoginLog{
		ID:           "LOG-" + uuid.NewString()[:8],
		UserID:       user.ID,
		UserEmail:    user.Email,
		BusinessName: user.BusinessName,
		Role:         user.Role,
		Timestamp:    time.Now().Format("Jan 2, 2006 15:04:05"),
		IPAddress:    ip,
	}
	err = s.store.Update(func(tx store.Tx) error {
		var logs []LoginLog
		if err := tx.Get(store.KeyLoginLogs, &logs); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			return err
		}
		logs = append([]LoginLog{entry}, logs...)
		return tx.Put(store.KeyLoginLogs, logs)
	})
	if err != nil {
		// The session is still valid; an unlogged login is not fatal.
		s.logger.Error("failed to append login log", zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("ip", ip))
	return user, token, nil
}

// Get returns the user with the given ID.
func (s *Service) Get(id string) (*User, error) {
	var user *User
	err := s.store.View(func(tx store.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == id {
				u := User(users[i])
				user = &u
				return nil
			}
		}
		return ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every registered principal.
func (s *Service) List() ([]User, error) {
	var out []User
	err := s.store.View(func(tx store.Tx) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		out = make([]User, 0, len(users))
		for _, u := range users {
			out = append(out, User(u))
		}
		return nil
	})
	return out, err
}

// LoginLogs returns the login audit trail, newest first.
func (s *Service) LoginLogs() ([]LoginLog, error) {
	var logs []LoginLog
	err := s.store.View(func(tx store.Tx) error {
		if err := tx.Get(store.KeyLoginLogs, &logs); err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				logs = []LoginLog{}
				return nil
			}
			return err
		}
		return nil
	})
	return logs, err
}

func loadUsers(tx store.Tx) ([]persistedUser, error) {
	var users []persistedUser
	if err := tx.Get(store.KeyUsers, &users); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []persistedUser{}, nil
		}
		return nil, err
	}
	return users, nil
}
