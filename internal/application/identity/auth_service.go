package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
)

// TokenIssuer issues signed access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
}

// AuthService handles registration, login and session bootstrap
type AuthService struct {
	userRepo identity.Repository
	issuer   TokenIssuer
	logger   *zap.Logger

	bootstrapAttempts int
	bootstrapDelay    time.Duration
}

// NewAuthService creates a new AuthService. bootstrapAttempts and
// bootstrapDelay control the startup probe retry.
func NewAuthService(userRepo identity.Repository, issuer TokenIssuer, logger *zap.Logger, bootstrapAttempts int, bootstrapDelay time.Duration) *AuthService {
	if bootstrapAttempts <= 0 {
		bootstrapAttempts = 3
	}
	if bootstrapDelay <= 0 {
		bootstrapDelay = time.Second
	}
	return &AuthService{
		userRepo:          userRepo,
		issuer:            issuer,
		logger:            logger,
		bootstrapAttempts: bootstrapAttempts,
		bootstrapDelay:    bootstrapDelay,
	}
}

// Register creates an account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(user)
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	return s.issueFor(user)
}

// GetUser retrieves the authenticated user's profile
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Bootstrap probes the identity store at startup. Retries with a
// linearly increasing delay: delay, 2*delay, up to the configured
// attempt count. This is the only retry loop in the system.
func (s *AuthService) Bootstrap(ctx context.Context, probe func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= s.bootstrapAttempts; attempt++ {
		if err = probe(ctx); err == nil {
			return nil
		}
		s.logger.Warn("session bootstrap failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.bootstrapAttempts),
			zap.Error(err))

		if attempt == s.bootstrapAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.bootstrapDelay):
		}
	}
	return err
}

func (s *AuthService) issueFor(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
