package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/models"
)

const sessionTTL = 24 * time.Hour

// SessionStore persists opaque session tokens for the cookie-based flow.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// RedisSessionStore keeps sessions in Redis keyed by token.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, "session:"+token, userID.String(), ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, "session:"+token).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, "session:"+token).Err()
}

// AuthService issues and validates credentials for both API surfaces: bearer
// JWTs and opaque cookie sessions backed by the session store.
type AuthService struct {
	db        *gorm.DB
	sessions  SessionStore
	jwtSecret string
	email     *EmailService
	log       *logrus.Logger
}

func NewAuthService(db *gorm.DB, sessions SessionStore, jwtSecret string, email *EmailService, log *logrus.Logger) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		email:     email,
		log:       log,
	}
}

// Register creates a user account. Duplicate username or email is a conflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendWelcome(&user); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("welcome email failed")
		}
	}

	return &user, nil
}

// Login verifies credentials and returns a bearer JWT plus an opaque session
// token stored server-side for the cookie flow.
func (s *AuthService) Login(ctx context.Context, username, password string) (jwtToken, sessionToken string, err error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	jwtToken, err = s.generateToken(user.ID)
	if err != nil {
		return "", "", err
	}

	sessionToken = uuid.NewString()
	if err := s.sessions.Save(ctx, sessionToken, user.ID, sessionTTL); err != nil {
		return "", "", err
	}

	return jwtToken, sessionToken, nil
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Delete(ctx, sessionToken)
}

// ForgotPassword emails reset instructions. An unknown address is reported
// as not found so the handler can answer without leaking account state.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.email == nil {
		return nil
	}
	return s.email.SendPasswordReset(&user)
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken implements middleware.TokenValidator.
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userIDStr, ok := claims["user_id"].(string)
		if !ok {
			return nil, errors.New("invalid token claims")
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, err
		}

		return &middleware.TokenClaims{UserID: userID}, nil
	}

	return nil, errors.New("invalid token")
}

// ValidateSession implements middleware.SessionValidator.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (uuid.UUID, error) {
	return s.sessions.Get(ctx, token)
}
