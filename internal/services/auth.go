package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/repos"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, user *types.User) (string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*types.User, error)
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.BlacklistedTokenRepo
	jwtSecretKey string
	tokenTTL     time.Duration
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	tokenRepo repos.BlacklistedTokenRepo,
	jwtSecretKey string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		tokenTTL:     tokenTTL,
	}
}

func (as *authService) Register(ctx context.Context, user *types.User) (string, error) {
	normalizeUser(user)
	if err := validateRegistration(user); err != nil {
		return "", err
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", apierr.BadRequest("email_taken", fmt.Errorf("email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.ID = uuid.New()
	user.Password = string(hash)

	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	as.log.Info("User registered", "user_id", user.ID)

	return as.signToken(user)
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid email or password"))
	}

	token, err := as.signToken(user)
	if err != nil {
		return nil, "", err
	}
	as.log.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

func (as *authService) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apierr.Unauthorized("missing_token", fmt.Errorf("no token supplied"))
	}
	if err := as.tokenRepo.Create(ctx, nil, token); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (as *authService) Authenticate(ctx context.Context, token string) (*types.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apierr.Unauthorized("missing_token", fmt.Errorf("no token supplied"))
	}

	blacklisted, err := as.tokenRepo.Exists(ctx, nil, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, apierr.Unauthorized("token_blacklisted", fmt.Errorf("token is blacklisted"))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid token"))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid token subject"))
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apierr.Unauthorized("user_not_found", fmt.Errorf("user not found"))
	}
	return user, nil
}

func (as *authService) signToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func normalizeUser(user *types.User) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
}

func validateRegistration(user *types.User) error {
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return apierr.BadRequest("invalid_email", fmt.Errorf("invalid email address"))
	}
	if len(user.Password) < 5 {
		return apierr.BadRequest("weak_password", fmt.Errorf("password must be at least 5 characters"))
	}
	if len(user.FirstName) < 3 {
		return apierr.BadRequest("invalid_name", fmt.Errorf("first name must be at least 3 characters"))
	}
	return nil
}
