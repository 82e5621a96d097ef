package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finapp/internal/errors"
	"finapp/internal/middleware"
	"finapp/internal/models"
	"finapp/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn       func(email, password string) (*models.User, error)
	authenticateFn   func(email, password string) (*models.User, error)
	changePasswordFn func(userID, currentPassword, newPassword string) error
	getUserByIDFn    func(id string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
}

func (m *mockUserService) Register(email, password string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(email, password)
	}
	return &models.User{Base: models.Base{ID: "user-1"}, Email: email}, nil
}

func (m *mockUserService) Authenticate(email, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(email, password)
	}
	return &models.User{Base: models.Base{ID: "user-1"}, Email: email}, nil
}

func (m *mockUserService) ChangePassword(userID, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, currentPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{Email: email}, nil
}

type auditEntry struct {
	userID, action, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, _, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID: userID, action: action, resourceID: resourceID})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func newTestTokens() *middleware.TokenService {
	return middleware.NewTokenService("test-secret", "fin-app", 8*time.Hour)
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/change-password", injectUserID("user-1"), handler.ChangePassword)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, message string) {
	t.Helper()
	msg, ok := result["error"].(string)
	if !ok {
		t.Fatalf("expected error string in response, got: %v", result)
	}
	if msg != message {
		t.Errorf("expected error %q, got %q", message, msg)
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns_201_with_a_verifiable_token", func(t *testing.T) {
		tokens := newTestTokens()
		audit := &mockAuditService{}
		userSvc := &mockUserService{
			registerFn: func(email, password string) (*models.User, error) {
				if email != "test@example.com" || password != "password123" {
					t.Errorf("unexpected credentials %q / %q", email, password)
				}
				return &models.User{Base: models.Base{ID: "user-9"}, Email: email}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, tokens, audit))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		if userID, ok := tokens.Verify(token); !ok || userID != "user-9" {
			t.Errorf("expected token for user-9, got %q ok=%v", userID, ok)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "REGISTER" {
			t.Errorf("expected REGISTER audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns_400_on_duplicate_email", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, newTestTokens(), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"dup@example.com","password":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Email already registered")
	})

	t.Run("returns_400_on_malformed_body", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, newTestTokens(), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Invalid request body")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns_token_and_userId", func(t *testing.T) {
		tokens := newTestTokens()
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, tokens, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@example.com","password":"pw"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["userId"] != "user-1" {
			t.Errorf("expected userId user-1, got %v", result["userId"])
		}
		if _, ok := tokens.Verify(result["token"].(string)); !ok {
			t.Error("expected a valid token")
		}
	})

	t.Run("returns_401_on_invalid_credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			authenticateFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, newTestTokens(), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@example.com","password":"bad"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Invalid credentials")
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("returns_ok", func(t *testing.T) {
		audit := &mockAuditService{}
		userSvc := &mockUserService{
			changePasswordFn: func(userID, current, next string) error {
				if userID != "user-1" || current != "old" || next != "new" {
					t.Errorf("unexpected arguments %q %q %q", userID, current, next)
				}
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, newTestTokens(), audit))

		rec := doRequest(r, "POST", "/auth/change-password", `{"currentPassword":"old","newPassword":"new"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["status"] != "ok" {
			t.Error("expected status ok")
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CHANGE_PASSWORD" {
			t.Errorf("expected CHANGE_PASSWORD audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns_401_on_wrong_current_password", func(t *testing.T) {
		userSvc := &mockUserService{
			changePasswordFn: func(_, _, _ string) error { return apperrors.ErrInvalidCredentials },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, newTestTokens(), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/change-password", `{"currentPassword":"x","newPassword":"y"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns_401_without_auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, newTestTokens(), &mockAuditService{})
		r := gin.New()
		r.POST("/auth/change-password", handler.ChangePassword)

		rec := doRequest(r, "POST", "/auth/change-password", `{"currentPassword":"x","newPassword":"y"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Unauthorized")
	})
}
