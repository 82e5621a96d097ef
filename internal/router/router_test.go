package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finapp/internal/middleware"
	"finapp/internal/models"
	"finapp/internal/password"
	"finapp/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	tokens *middleware.TokenService
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, defaultUserID string) *testServer {
	t.Helper()
	return newTestServerWithDB(t, testutil.SetupTestDB(t), Options{
		DefaultUserID: defaultUserID,
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
		Now:           fixedNow,
	})
}

// newTestServerWithDB builds the router on db, filling in test tokens and a
// fast hasher when opts leaves them unset.
func newTestServerWithDB(t *testing.T, db *gorm.DB, opts Options) *testServer {
	t.Helper()
	if opts.Tokens == nil {
		opts.Tokens = middleware.NewTokenService("router-test-secret", "fin-app", time.Hour)
	}
	if opts.Hasher == nil {
		opts.Hasher = password.NewBcryptHasher(bcrypt.MinCost)
	}
	engine, err := New(db, opts)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return &testServer{engine: engine, db: db, tokens: opts.Tokens}
}

// send serves a request built by the caller.
func (s *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, "POST", "/api/auth/register", "", `{"email":"`+email+`","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	return decodeObject(t, rec)["token"].(string)
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return m
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var a []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return a
}

func TestHealthAndCORS(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, "GET", "/api/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}

	rec = s.do(t, "OPTIONS", "/api/transactions", "", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, "")

	token := s.register(t, "Alice@Example.com")
	if _, ok := s.tokens.Verify(token); !ok {
		t.Fatal("register token should verify")
	}

	t.Run("duplicate_registration", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/register", "", `{"email":"alice@example.com","password":"other"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if decodeObject(t, rec)["error"] != "Email already registered" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("login", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"secret123"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeObject(t, rec)
		userID, _ := s.tokens.Verify(body["token"].(string))
		if userID == "" || body["userId"] != userID {
			t.Errorf("token subject %q does not match userId %v", userID, body["userId"])
		}
	})

	t.Run("login_with_wrong_password", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if decodeObject(t, rec)["error"] != "Invalid credentials" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("change_password", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/change-password", token, `{"currentPassword":"secret123","newPassword":"newsecret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = s.do(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"secret123"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("old password should be rejected, got %d", rec.Code)
		}
		rec = s.do(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"newsecret"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("new password should be accepted, got %d", rec.Code)
		}
	})

	t.Run("change_password_requires_bearer", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/auth/change-password", "", `{"currentPassword":"a","newPassword":"b"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("audit_trail", func(t *testing.T) {
		var count int64
		s.db.Model(&models.AuditLog{}).Count(&count)
		if count < 3 {
			t.Errorf("expected audit entries for register, login and change-password, got %d", count)
		}
	})
}

func TestStrictModeRejectsAnonymous(t *testing.T) {
	s := newTestServer(t, "")

	for _, path := range []string{"/api/transactions", "/api/events", "/api/summary", "/api/categories"} {
		rec := s.do(t, "GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	rec := s.do(t, "GET", "/api/transactions", "garbage", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: expected 401, got %d", rec.Code)
	}

	rec = s.do(t, "GET", "/api/currency", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("currency should be public, got %d", rec.Code)
	}
}

func TestDefaultModeUsesDemoUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	demo := testutil.CreateTestUserWithEmail(t, db, "demo@finapp.local")
	s := newTestServerWithDB(t, db, Options{
		DefaultUserID: demo.ID,
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
	})

	rec := s.do(t, "POST", "/api/transactions", "", `{"amount":20,"type":"expense","category":"Transport","date":"2024-03-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	items := decodeArray(t, s.do(t, "GET", "/api/transactions", "", ""))
	if len(items) != 1 || items[0].(map[string]interface{})["user_id"] != demo.ID {
		t.Errorf("expected one demo transaction, got %v", items)
	}

	rec = s.do(t, "GET", "/api/transactions", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("invalid bearer must not fall back to demo user, got %d", rec.Code)
	}
}

func TestTransactionsAndInsights(t *testing.T) {
	s := newTestServer(t, "")
	token := s.register(t, "bob@example.com")

	for _, body := range []string{
		`{"amount":"100","type":"income","category":"Pensja","date":"2024-03-01"}`,
		`{"amount":100,"type":"income","category":"Zlecenie","date":"2024-03-02","sideHustle":"Korepetycje"}`,
		`{"amount":30,"type":"expense","category":"Jedzenie","date":"2024-03-03"}`,
		`{"amount":20.0,"type":"EXPENSE","category":"Jedzenie","date":"2024-03-04"}`,
	} {
		rec := s.do(t, "POST", "/api/transactions", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d: %s", body, rec.Code, rec.Body.String())
		}
	}

	t.Run("list_newest_date_first", func(t *testing.T) {
		items := decodeArray(t, s.do(t, "GET", "/api/transactions", token, ""))
		if len(items) != 4 {
			t.Fatalf("expected 4 transactions, got %d", len(items))
		}
		first := items[0].(map[string]interface{})
		if first["date"] != "2024-03-04" || first["type"] != "expense" {
			t.Errorf("unexpected first transaction %v", first)
		}
		side := items[2].(map[string]interface{})
		if side["side_hustle"] != "Korepetycje" {
			t.Errorf("expected side_hustle projection, got %v", side)
		}
	})

	t.Run("summary", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/summary", token, "")
		if rec.Body.String() != `{"income":200,"expense":50,"balance":150}` {
			t.Errorf("unexpected summary %s", rec.Body.String())
		}
	})

	t.Run("analysis", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/analysis", token, "")
		if rec.Body.String() != `[{"category":"Jedzenie","total":50}]` {
			t.Errorf("unexpected analysis %s", rec.Body.String())
		}
	})

	t.Run("categories", func(t *testing.T) {
		got := decodeArray(t, s.do(t, "GET", "/api/categories", token, ""))
		want := []string{"Inne", "Jedzenie", "Oszczędności", "Pensja", "Stałe", "Transport", "Zlecenie"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("categories[%d] = %v, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/transactions", token, `{"amount":1,"type":"gift"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestOwnerIsolation(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.register(t, "alice@example.com")
	bob := s.register(t, "bob@example.com")

	rec := s.do(t, "POST", "/api/transactions", alice, `{"amount":10,"category":"Jedzenie","date":"2024-03-01"}`)
	aliceTx := decodeObject(t, rec)["id"].(string)
	s.do(t, "POST", "/api/goals", alice, `{"name":"Auto","targetAmount":20000}`)
	s.do(t, "POST", "/api/budgets", alice, `{"month":"2024-03","amount":2500}`)
	s.do(t, "POST", "/api/events", alice, `{"title":"Czynsz","start":"2024-03-10"}`)
	s.do(t, "POST", "/api/hold-items", alice, `{"name":"Rower","price":1800}`)
	s.do(t, "POST", "/api/priorities", alice, `{"title":"Poduszka","month":"2024-03"}`)

	for _, path := range []string{"/api/transactions", "/api/goals", "/api/budgets", "/api/events", "/api/hold-items", "/api/priorities"} {
		items := decodeArray(t, s.do(t, "GET", path, alice, ""))
		if len(items) != 1 {
			t.Fatalf("%s: alice should see her record, got %d", path, len(items))
		}
	}

	for _, path := range []string{"/api/transactions", "/api/goals", "/api/budgets", "/api/events", "/api/hold-items", "/api/priorities"} {
		rec := s.do(t, "GET", path, bob, "")
		if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
			t.Errorf("%s: bob should see nothing, got %d %s", path, rec.Code, rec.Body.String())
		}
	}

	rec = s.do(t, "DELETE", "/api/transactions/"+aliceTx, bob, "")
	if rec.Code != http.StatusOK || decodeObject(t, rec)["status"] != "deleted" {
		t.Fatalf("foreign delete should report deleted, got %d %s", rec.Code, rec.Body.String())
	}
	if items := decodeArray(t, s.do(t, "GET", "/api/transactions", alice, "")); len(items) != 1 {
		t.Errorf("alice's transaction must survive a foreign delete, got %d", len(items))
	}

	rec = s.do(t, "DELETE", "/api/transactions/"+aliceTx, alice, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if items := decodeArray(t, s.do(t, "GET", "/api/transactions", alice, "")); len(items) != 0 {
		t.Errorf("expected transaction deleted, got %d", len(items))
	}

	rec = s.do(t, "DELETE", "/api/transactions/"+aliceTx, alice, "")
	if rec.Code != http.StatusOK {
		t.Errorf("repeated delete should succeed, got %d", rec.Code)
	}
}

func TestPlanningRecordsUseDefaults(t *testing.T) {
	s := newTestServer(t, "")
	token := s.register(t, "carol@example.com")

	s.do(t, "POST", "/api/events", token, `{}`)
	s.do(t, "POST", "/api/hold-items", token, `{"price":"abc"}`)
	s.do(t, "POST", "/api/priorities", token, `{}`)

	event := decodeArray(t, s.do(t, "GET", "/api/events", token, ""))[0].(map[string]interface{})
	if event["title"] != "Nowe wydarzenie" || event["start"] != "2024-03-15" {
		t.Errorf("unexpected event defaults %v", event)
	}

	item := decodeArray(t, s.do(t, "GET", "/api/hold-items", token, ""))[0].(map[string]interface{})
	if item["name"] != "Nowy zakup" || item["price"] != float64(0) || item["added_date"] != "2024-03-15" {
		t.Errorf("unexpected hold item defaults %v", item)
	}

	priority := decodeArray(t, s.do(t, "GET", "/api/priorities", token, ""))[0].(map[string]interface{})
	if priority["title"] != "Priorytet" || priority["month"] != "2024-03" {
		t.Errorf("unexpected priority defaults %v", priority)
	}
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServerWithDB(t, testutil.SetupTestDB(t), Options{
		AuthRateLimit: 0.001,
		AuthRateBurst: 2,
	})

	for i := 0; i < 2; i++ {
		rec := s.do(t, "POST", "/api/auth/login", "", `{"email":"x@example.com","password":"y"}`)
		if rec.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d should not be limited", i)
		}
	}
	rec := s.do(t, "POST", "/api/auth/login", "", `{"email":"x@example.com","password":"y"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if decodeObject(t, rec)["error"] != "Too many requests" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	if rec := s.do(t, "GET", "/api/knowledge", "", ""); rec.Code != http.StatusOK {
		t.Errorf("non-auth routes must not be limited, got %d", rec.Code)
	}
}

func TestConcurrentCreatesStayIsolated(t *testing.T) {
	s := newTestServerWithDB(t, testutil.SetupFileTestDB(t), Options{
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
		Now:           fixedNow,
	})
	tokens := map[string]string{
		"alice": s.register(t, "alice@example.com"),
		"bob":   s.register(t, "bob@example.com"),
	}

	const perUser = 10
	codes := make(chan int, 2*perUser)
	var wg sync.WaitGroup
	for i := 0; i < perUser; i++ {
		for name, token := range tokens {
			wg.Add(1)
			go func(name, token string, i int) {
				defer wg.Done()
				body := fmt.Sprintf(`{"amount":%d,"category":"%s","date":"2024-03-%02d"}`, i+1, name, i+1)
				codes <- s.do(t, "POST", "/api/transactions", token, body).Code
			}(name, token, i)
		}
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		if code != http.StatusCreated {
			t.Fatalf("expected 201 for every create, got %d", code)
		}
	}

	for name, token := range tokens {
		items := decodeArray(t, s.do(t, "GET", "/api/transactions", token, ""))
		if len(items) != perUser {
			t.Fatalf("%s: expected %d transactions, got %d", name, perUser, len(items))
		}
		owner := items[0].(map[string]interface{})["user_id"]
		for _, item := range items {
			record := item.(map[string]interface{})
			if record["category"] != name || record["user_id"] != owner {
				t.Errorf("%s: foreign record in list %v", name, record)
			}
		}
	}
}

func TestAuthRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestServerWithDB(t, testutil.SetupTestDB(t), Options{
		AuthRateLimit: 0.001,
		AuthRateBurst: 1,
	})

	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"x@example.com","password":"y"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		if s.send(req).Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 49 {
		t.Errorf("expected 49 of 50 requests from one peer to be limited, got %d", limited)
	}
}

func TestTrustedProxyForwardsClientIP(t *testing.T) {
	s := newTestServerWithDB(t, testutil.SetupTestDB(t), Options{
		AuthRateLimit:  0.001,
		AuthRateBurst:  1,
		TrustedProxies: []string{"192.0.2.0/24"},
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"x@example.com","password":"y"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		if rec := s.send(req); rec.Code == http.StatusTooManyRequests {
			t.Errorf("client %d behind a trusted proxy should have its own bucket", i)
		}
	}
}

func TestNewRejectsInvalidTrustedProxies(t *testing.T) {
	_, err := New(testutil.SetupTestDB(t), Options{
		Tokens:         middleware.NewTokenService("secret", "fin-app", time.Hour),
		Hasher:         password.NewBcryptHasher(bcrypt.MinCost),
		AuthRateLimit:  1,
		AuthRateBurst:  1,
		TrustedProxies: []string{"not-an-ip"},
	})
	if err == nil {
		t.Fatal("expected error for invalid trusted proxy")
	}
}

func TestOutOfRangeAmountsCoerceToZero(t *testing.T) {
	s := newTestServer(t, "")
	token := s.register(t, "dave@example.com")

	for _, body := range []string{
		`{"amount":1e50000000,"date":"2024-03-01"}`,
		`{"amount":"1e-999999999","date":"2024-03-01"}`,
	} {
		rec := s.do(t, "POST", "/api/transactions", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: expected 201, got %d: %s", body, rec.Code, rec.Body.String())
		}
	}

	for _, item := range decodeArray(t, s.do(t, "GET", "/api/transactions", token, "")) {
		if amount := item.(map[string]interface{})["amount"]; amount != float64(0) {
			t.Errorf("expected amount 0, got %v", amount)
		}
	}
}

func TestSwaggerDocFollowsAnnotations(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, "GET", "/swagger/doc.json", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc struct {
		BasePath string `json:"basePath"`
		Paths    map[string]map[string]struct {
			Summary   string `json:"summary"`
			Responses map[string]struct {
				Description string `json:"description"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Errorf("expected basePath /api, got %q", doc.BasePath)
	}
	create, ok := doc.Paths["/events"]["post"]
	if !ok {
		t.Fatal("expected POST /events in doc")
	}
	if got := create.Responses["201"].Description; got != "Event created" {
		t.Errorf("expected 201 description %q, got %q", "Event created", got)
	}
	if got := doc.Paths["/events"]["get"].Responses["200"].Description; got != "Events" {
		t.Errorf("expected 200 description %q, got %q", "Events", got)
	}
}
