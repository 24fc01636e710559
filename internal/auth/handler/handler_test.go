package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Richard-avalos/legendme-login-svc/internal/auth"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/account"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/credentials"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/token"
	"github.com/Richard-avalos/legendme-login-svc/internal/directory"
)

type stubDirectory struct {
	profiles map[string]directory.Profile
}

func (d *stubDirectory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := d.profiles[email]
	return ok, nil
}

func (d *stubDirectory) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (d *stubDirectory) CreateLocalUser(_ context.Context, params directory.CreateLocalUserParams) (directory.Profile, error) {
	if _, ok := d.profiles[params.Email]; ok {
		return directory.Profile{}, directory.ErrConflict
	}
	profile := directory.Profile{
		ID:        "remote-1",
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Username:  params.Username,
		Email:     params.Email,
		Provider:  "LOCAL",
		Active:    true,
	}
	d.profiles[params.Email] = profile
	return profile, nil
}

func (d *stubDirectory) FindByEmail(_ context.Context, email string) (directory.Profile, error) {
	profile, ok := d.profiles[email]
	if !ok {
		return directory.Profile{}, directory.ErrNotFound
	}
	return profile, nil
}

func (d *stubDirectory) UpsertGoogleUser(_ context.Context, params directory.GoogleUserParams) (directory.Profile, error) {
	profile := directory.Profile{ID: "remote-9", Email: params.Email, Provider: "GOOGLE", Active: true}
	d.profiles[params.Email] = profile
	return profile, nil
}

type stubVerifier struct {
	identity *auth.Identity
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	return v.identity, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := token.New("test-issuer", "0123456789abcdef0123456789abcdef", 15, 7)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	svc := account.NewService(
		credentials.NewMemoryStore(),
		&stubDirectory{profiles: map[string]directory.Profile{}},
		&stubVerifier{identity: &auth.Identity{
			Subject:       "google-sub-1",
			Email:         "ana@gmail.com",
			EmailVerified: true,
			Name:          "Ana Lee",
		}},
		issuer,
	)

	router := gin.New()
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRegisterThenDuplicate(t *testing.T) {
	router := newTestRouter(t)
	body := map[string]string{
		"firstName": "Ana",
		"lastName":  "Lee",
		"email":     "ana@site.com",
		"password":  "secretpw1",
	}

	rec := doJSON(t, router, "/auth/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	res := decode(t, rec)
	if res["status"] != "ACTIVE" {
		t.Errorf("status = %v, want ACTIVE", res["status"])
	}
	if res["userId"] == "" {
		t.Error("expected userId")
	}

	rec = doJSON(t, router, "/auth/register", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}
	if code := decode(t, rec)["code"]; code != "EMAIL_ALREADY_REGISTERED" {
		t.Fatalf("code = %v, want EMAIL_ALREADY_REGISTERED", code)
	}
}

func TestLoginWrongThenCorrectPassword(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, "/auth/register", map[string]string{
		"firstName": "Ana",
		"lastName":  "Lee",
		"email":     "ana@site.com",
		"password":  "secretpw1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}

	rec = doJSON(t, router, "/auth/login", map[string]string{
		"email":    "ana@SITE.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := decode(t, rec)["code"]; code != "INVALID_CREDENTIALS" {
		t.Fatalf("code = %v, want INVALID_CREDENTIALS", code)
	}

	rec = doJSON(t, router, "/auth/login", map[string]string{
		"email":    "ana@SITE.com",
		"password": "secretpw1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	res := decode(t, rec)
	if res["accessToken"] == "" {
		t.Error("expected accessToken")
	}
	if res["expiresIn"] != float64(15*60) {
		t.Errorf("expiresIn = %v, want %d", res["expiresIn"], 15*60)
	}
	if res["tokenType"] != "Bearer" {
		t.Errorf("tokenType = %v, want Bearer", res["tokenType"])
	}
}

func TestGoogleAuthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "/auth/google", map[string]string{"idToken": "raw-token"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	res := decode(t, rec)
	if res["accessToken"] == "" || res["refreshToken"] == "" {
		t.Fatal("expected token pair")
	}
	if res["userId"] != "remote-9" {
		t.Errorf("userId = %v", res["userId"])
	}

	rec = doJSON(t, router, "/auth/google", map[string]string{"idToken": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank token status = %d, want 400", rec.Code)
	}
	if code := decode(t, rec)["code"]; code != "MISSING_TOKEN" {
		t.Fatalf("code = %v, want MISSING_TOKEN", code)
	}
}
