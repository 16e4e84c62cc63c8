package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"comichub/internal/auth"
	"comichub/internal/config"
	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
)

// Claims carries the authenticated user id as the token subject. The "id"
// key matches the legacy token payload.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Register creates a user and issues a signed token. Tokens from
	// registration carry the same 1-hour expiry as login tokens.
	Register(ctx context.Context, login, password, name string) (*models.User, string, error)
	// Login verifies credentials, enforcing the failed-attempt lockout,
	// and issues a signed token on success.
	Login(ctx context.Context, login, password string) (*models.User, string, error)
	// Authenticate verifies a bearer token and resolves its subject to an
	// existing user record.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.LoginAttemptRepository
	jwtSecret   string
	tokenTTL    time.Duration
	maxAttempts int
	lockout     time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	attemptRepo repository.LoginAttemptRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		jwtSecret:   cfg.JWTSecret,
		tokenTTL:    cfg.JWTExpiry,
		maxAttempts: cfg.LoginMaxAttempts,
		lockout:     cfg.LockoutWindow,
	}
}

func (s *authService) Register(ctx context.Context, login, password, name string) (*models.User, string, error) {
	if _, err := s.userRepo.FindByLogin(ctx, login); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Login:    login,
		Password: hashed,
		Name:     name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent registration with the same login hits the unique index.
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	blockedUntil, err := s.attemptRepo.BlockedUntil(ctx, login)
	if err != nil {
		return nil, "", err
	}
	if blockedUntil != nil {
		return nil, "", &LockedOutError{RetryAfter: time.Until(*blockedUntil)}
	}

	user, err := s.userRepo.FindByLogin(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Unknown login is reported distinctly from a bad password, and
		// still counts toward the lockout.
		s.trackFailure(ctx, login)
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		s.trackFailure(ctx, login)
		return nil, "", ErrInvalidPassword
	}

	if err := s.attemptRepo.Clear(ctx, login); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// trackFailure is best-effort: a broken counter must not mask the real
// authentication outcome.
func (s *authService) trackFailure(ctx context.Context, login string) {
	_, _ = s.attemptRepo.TrackFailure(ctx, login, s.maxAttempts, s.lockout)
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidToken
		default:
			// Anything else is an infrastructure failure, not a bad
			// credential; let it surface as such.
			return nil, err
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
