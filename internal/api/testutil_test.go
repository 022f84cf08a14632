package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrymarket/backend/internal/api"
	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/router"
	"github.com/pantrymarket/backend/internal/service"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func (s *memorySessions) Save(_ context.Context, token string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

func (s *memorySessions) Get(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, service.ErrNotFound
	}
	return id, nil
}

func (s *memorySessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// setupTestServer wires the full route table over an in-memory database.
// Sessions live in memory and the mutation rate limiter is disabled.
func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Recipe{},
		&models.RecipeFavorite{},
	))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	emailService := service.NewEmailService("", "", "", "", "test@example.com", "Test", log)
	sessions := &memorySessions{sessions: make(map[string]uuid.UUID)}
	authService := service.NewAuthService(db, sessions, "test-secret", emailService, log)
	catalogService := service.NewCatalogService(db, false)
	reportService := service.NewReportService(db)
	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db)

	engine := router.Setup(router.Handlers{
		Auth:           api.NewAuthHandler(authService),
		Catalog:        api.NewCatalogHandler(catalogService),
		Reports:        api.NewReportHandler(reportService),
		Recipes:        api.NewRecipeHandler(recipeService, userService, emailService),
		Users:          api.NewUserHandler(userService, recipeService),
		AuthService:    authService,
		MutationLimits: nil,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return engine, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account and returns the session cookie plus
// the bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, username string) (*http.Cookie, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return cookie, token
}

func withCookie(cookie *http.Cookie) func(*http.Request) {
	return func(req *http.Request) { req.AddCookie(cookie) }
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
}
