package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"concert-storefront/internal/models"
	"concert-storefront/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// SessionService holds the current identity and simulates credential
// based login and registration. There is no real credential check; any
// well-formed login succeeds. At most one identity exists at a time.
type SessionService struct {
	mu     sync.Mutex
	store  storage.Store
	clock  clockwork.Clock
	delay  time.Duration
	secret []byte

	user          *models.User
	authenticated bool
}

// sessionSnapshot is the persisted shape of the session container
type sessionSnapshot struct {
	User          *models.User `json:"user"`
	Authenticated bool         `json:"is_authenticated"`
}

// NewSessionService creates a session service and restores any persisted
// identity from a prior run
func NewSessionService(store storage.Store, clock clockwork.Clock, delay time.Duration, tokenSecret string) *SessionService {
	s := &SessionService{
		store:  store,
		clock:  clock,
		delay:  delay,
		secret: []byte(tokenSecret),
	}
	s.restore()
	return s
}

func (s *SessionService) restore() {
	data, err := s.store.Load(context.Background(), storage.SessionKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Printf("Session: failed to restore persisted session: %v", err)
		}
		return
	}

	var snapshot sessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("Session: discarding unreadable session snapshot: %v", err)
		return
	}

	s.user = snapshot.User
	s.authenticated = snapshot.Authenticated && snapshot.User != nil
}

// Login performs a mock login. Validation failures return a
// ValidationError and leave the current identity untouched; any
// well-formed credentials succeed and replace the identity.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	// Simulated network round-trip, matching the login UX
	s.clock.Sleep(s.delay)

	req := models.LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	name := models.DisplayNameFromEmail(email)
	user := &models.User{
		ID:     models.GenerateUserID(),
		Name:   name,
		Email:  email,
		Avatar: models.AvatarURL(name),
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.authenticated = true

	if err := s.persist(ctx); err != nil {
		return nil, "", err
	}

	copied := *user
	return &copied, token, nil
}

// Register performs a mock registration and authenticates the new
// identity
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	s.clock.Sleep(s.delay)

	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:     models.GenerateUserID(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: models.AvatarURL(req.Name),
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.authenticated = true

	if err := s.persist(ctx); err != nil {
		return nil, "", err
	}

	copied := *user
	return &copied, token, nil
}

// Logout clears the current identity. It has no failure mode beyond the
// persistence write itself.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.authenticated = false

	return s.persist(ctx)
}

// UpdateProfile merges the provided fields into the current identity.
// It fails with ErrNoActiveSession when nobody is logged in.
func (s *SessionService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.user == nil {
		return nil, models.ErrNoActiveSession
	}

	s.user.Apply(update)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	copied := *s.user
	return &copied, nil
}

// CurrentUser returns a copy of the authenticated identity, if any
func (s *SessionService) CurrentUser() (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.user == nil {
		return nil, false
	}

	copied := *s.user
	return &copied, true
}

// IsAuthenticated reports whether an identity is currently set
func (s *SessionService) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// VerifyToken validates a session token and returns the user id it was
// minted for
func (s *SessionService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("session token has no subject")
	}

	return sub, nil
}

// mintToken signs a mock session token for the identity. Nothing checks
// it server-side; it exists so callers have the token shape a real
// backend would hand out.
func (s *SessionService) mintToken(user *models.User) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// persist writes the full session snapshot. Callers must hold s.mu.
func (s *SessionService) persist(ctx context.Context) error {
	snapshot := sessionSnapshot{User: s.user, Authenticated: s.authenticated}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.store.Save(ctx, storage.SessionKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
