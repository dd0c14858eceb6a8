package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// NewJWTTokenGenerator creates a token generator signing with HS256.
func NewJWTTokenGenerator(secret string, tokenTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: tokenTTL,
	}
}

// Register creates a new user and returns it together with a signed token.
// The password is hashed exactly once, here; no later write path touches
// the hash column.
func (s *Service) Register(dto RegisterDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	taken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	taken, err = s.repo.UserIDExists(dto.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("check user id: %w", err)
	}
	if taken {
		return nil, "", ErrUserIDTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	record := dto.ToDataModel(hash)
	if err := s.repo.Create(record); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenGenerator.GenerateToken(record.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user registered", "user_id", record.UserID, "email", record.Email, "role", record.Role)

	return FromDataModel(record), token, nil
}

// Authenticate validates credentials and returns the user with a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(dto LoginDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	storedHash, userID, err := s.repo.GetPasswordForEmail(dto.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(userID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// ValidateAccessToken validates a token and returns its claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID loads the user referenced by token claims, without the
// password hash. Missing users surface as ErrUserNotFound so the middleware
// rejects tokens that outlive a deleted account.
func (s *Service) GetUserByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GenerateToken signs a claims payload carrying the user id.
func (j *JWTTokenGenerator) GenerateToken(userID int64) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies signature and expiry and returns claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
