package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/mfadlih/cukurid-backend/pkg/auth"
	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "cukurid-test",
		ExpirationMinutes: 15,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, now time.Time, outletID *uuid.UUID) (string, uuid.UUID) {
	t.Helper()
	employeeID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg, now, pkgauth.AccessTokenPayload{
		EmployeeID: employeeID,
		OutletID:   outletID,
		Role:       enums.RoleCashier,
	})
	if err != nil {
		t.Fatalf("minting token failed: %v", err)
	}
	return token, employeeID
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	cfg := testJWTConfig()
	outletID := uuid.New()
	token, employeeID := mintToken(t, cfg, time.Now(), &outletID)

	var gotEmployee, gotRole, gotOutlet string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmployee = EmployeeIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotOutlet = OutletIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotEmployee != employeeID.String() {
		t.Fatalf("employee id not seeded: %q", gotEmployee)
	}
	if gotRole != string(enums.RoleCashier) {
		t.Fatalf("role not seeded: %q", gotRole)
	}
	if gotOutlet != outletID.String() {
		t.Fatalf("outlet id not seeded: %q", gotOutlet)
	}
}

func TestAuthRejectsMissingAndMalformedCredentials(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid credentials")
	}))

	headers := []string{"", "Bearer ", "Bearer not-a-jwt"}
	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/items", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, resp.Code)
		}
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintToken(t, cfg, time.Now().Add(-2*time.Hour), nil)

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "other-secret"
	token, _ := mintToken(t, other, time.Now(), nil)

	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(nil, string(enums.RoleManager), string(enums.RoleAdmin))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses/abc/review", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.RoleManager)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("manager should pass, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/expenses/abc/review", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.RoleCashier)))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("cashier should be rejected, got %d", resp.Code)
	}

	// No role in context at all.
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/expenses/abc/review", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("missing role should be rejected, got %d", resp.Code)
	}
}
