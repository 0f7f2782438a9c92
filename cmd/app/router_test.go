package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"mothwallet/internal/api/controllers"
	"mothwallet/internal/config"
	"mothwallet/internal/infra/infratest"
	"mothwallet/internal/repositories"
	"mothwallet/internal/services"
	mem "mothwallet/pkg/memcache"
	"mothwallet/pkg/metrics"
	"mothwallet/pkg/middleware"
	"mothwallet/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t       *testing.T
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := infratest.NewSQLite(t)
	log := zap.NewNop()
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "console"}}

	accounts := repositories.NewAccountRepository(db)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	accountService, err := services.NewAccountService(accounts, utils.NewBcryptHasher(bcrypt.MinCost), tokens, mem.NewLoginLimiter(600, 100), log)
	require.NoError(t, err)
	directory := services.NewAccountDirectory(accounts)
	tagService := services.NewTagService(repositories.NewTagRepository(db), accounts, log)
	paymentService := services.NewPaymentMethodService(repositories.NewPaymentMethodRepository(db), accounts, log)
	m := metrics.New()

	engine, err := ProvideRouter(cfg, log, m, tokens,
		controllers.NewAccountController(accountService, directory, tokens, m, false),
		controllers.NewTagController(tagService, directory, m),
		controllers.NewPaymentMethodController(paymentService, directory, m),
	)
	require.NoError(t, err)

	return &testApp{t: t, handler: middleware.MethodOverride(engine)}
}

func (a *testApp) do(method, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) json(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// signUpAndLogin registers username and returns its session cookie.
func (a *testApp) signUpAndLogin(username string) *http.Cookie {
	a.t.Helper()
	w := a.do(http.MethodPost, "/signup", url.Values{
		"email":           {username + "@example.com"},
		"username":        {username},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	require.Contains(a.t, w.Body.String(), "Account created. You can now log in.")

	w = a.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {"secret1"}}, nil)
	require.Equal(a.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(a.t, "/home", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	a.t.Fatal("no session cookie")
	return nil
}

func TestPublicAndGuardedRoutes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Landing page", http.MethodGet, "/", http.StatusOK},
		{"Login page", http.MethodGet, "/login", http.StatusOK},
		{"Sign-up page", http.MethodGet, "/signup", http.StatusOK},
		{"Home requires auth", http.MethodGet, "/home", http.StatusFound},
		{"Tag manager requires auth", http.MethodGet, "/tag-manager", http.StatusFound},
		{"Payment methods require auth", http.MethodGet, "/payment-method", http.StatusFound},
		{"API requires a bearer token", http.MethodGet, "/api/v1/tags", http.StatusUnauthorized},
		{"Metrics", http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(tt.method, tt.path, nil, nil)
			assert.Equal(t, tt.wantStatus, w.Code, "%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestSignUpRejectsDuplicates(t *testing.T) {
	app := newTestApp(t)
	app.signUpAndLogin("alice")

	w := app.do(http.MethodPost, "/signup", url.Values{
		"email":           {"alice@example.com"},
		"username":        {"alice2"},
		"password":        {"secret1"},
		"repeat_password": {"other12"},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email alice@example.com already exists.")

	w = app.do(http.MethodPost, "/signup", url.Values{
		"email":           {"new@example.com"},
		"username":        {"alice"},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username alice already exists.")
}

func TestSignUpCannotTakeAnotherAccountsEmailAsUsername(t *testing.T) {
	app := newTestApp(t)
	bob := app.signUpAndLogin("bob")
	w := app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"bob-secret"}}, bob)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/signup", url.Values{
		"email":           {"m@example.com"},
		"username":        {"bob@example.com"},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/login", url.Values{"username": {"bob@example.com"}, "password": {"secret1"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = app.do(http.MethodPost, "/signup", url.Values{
		"email":           {"m@example.com"},
		"username":        {"mallory"},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(http.MethodPost, "/login", url.Values{"username": {"mallory"}, "password": {"secret1"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	var mallory *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			mallory = c
		}
	}
	require.NotNil(t, mallory)

	w = app.do(http.MethodGet, "/tag-manager", nil, mallory)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "bob-secret")
}

func TestLoginFailuresLookAlike(t *testing.T) {
	app := newTestApp(t)
	app.signUpAndLogin("alice")

	wrong := app.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"wrong-pw"}}, nil)
	unknown := app.do(http.MethodPost, "/login", url.Values{"username": {"nobody"}, "password": {"wrong-pw"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Contains(t, wrong.Body.String(), "Invalid username or password.")
	assert.Contains(t, unknown.Body.String(), "Invalid username or password.")
	assert.Empty(t, wrong.Result().Cookies())
}

func TestTagManagerFlow(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUpAndLogin("alice")

	w := app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"food"}, "description": {"groceries"}}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "was created successfully.")
	assert.Contains(t, w.Body.String(), "groceries")

	w = app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"food"}}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists.")

	w = app.do(http.MethodGet, "/tag-manager/1/edit", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="food"`)

	w = app.do(http.MethodPost, "/tag-manager/1", url.Values{"_method": {"PATCH"}, "name": {"dining"}}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "was updated successfully.")

	w = app.do(http.MethodGet, "/tag-manager/abc/edit", nil, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/tag-manager/1", url.Values{"_method": {"DELETE"}}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "was deleted successfully.")
	assert.Contains(t, w.Body.String(), "No tags yet.")
}

func TestCrossAccountDeleteLeavesTag(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUpAndLogin("alice")
	bob := app.signUpAndLogin("bob")

	w := app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"food"}}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/tag-manager/1", url.Values{"_method": {"DELETE"}}, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Tag not found or not authorized.")

	w = app.do(http.MethodGet, "/tag-manager", nil, alice)
	assert.Contains(t, w.Body.String(), "food")
}

func TestMalformedIDKeepsListOnPage(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUpAndLogin("alice")

	w := app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"food"}}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/tag-manager/abc", url.Values{"_method": {"DELETE"}}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Tag not found or not authorized.")
	assert.Contains(t, w.Body.String(), "food")

	w = app.do(http.MethodPost, "/tag-manager/abc", url.Values{"_method": {"PATCH"}, "name": {"dining"}}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "food")
}

func TestPaymentMethodFlow(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUpAndLogin("alice")

	w := app.do(http.MethodGet, "/payment-method/add", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodPost, "/payment-method/add", url.Values{"name": {"Visa"}}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(http.MethodPost, "/payment-method/add", url.Values{"name": {"Cash"}}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/payment-method/edit/1", url.Values{"_method": {"PATCH"}, "name": {"Cash"}}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(http.MethodPost, "/payment-method/edit/1", url.Values{"_method": {"PATCH"}, "name": {"Visa"}, "description": {"credit"}}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodPost, "/payment-method/delete/2", url.Values{"_method": {"DELETE"}}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/payment-method", nil, alice)
	assert.Contains(t, w.Body.String(), "Visa")
	assert.NotContains(t, w.Body.String(), "Cash")
}

func TestDeleteAccountEndsSession(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUpAndLogin("alice")
	app.do(http.MethodPost, "/tag-manager", url.Values{"name": {"food"}}, alice)

	w := app.do(http.MethodPost, "/account/delete", url.Values{}, alice)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// the old token is still signed but no longer names an account
	w = app.do(http.MethodGet, "/tag-manager", nil, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized account.")
}

func TestJSONAPI(t *testing.T) {
	app := newTestApp(t)

	w := app.json(http.MethodPost, "/api/v1/accounts/register",
		`{"email":"alice@example.com","username":"alice","password":"secret1","repeat_password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret1")

	w = app.json(http.MethodPost, "/api/v1/accounts/login", `{"identifier":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Data struct {
			Token     string `json:"token"`
			ExpiresIn int64  `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)
	assert.Equal(t, int64(3600), login.Data.ExpiresIn)
	token := login.Data.Token

	w = app.json(http.MethodPost, "/api/v1/tags", `{"name":"food","description":"groceries"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "food", created.Data.Name)
	id := strconv.FormatUint(uint64(created.Data.ID), 10)

	w = app.json(http.MethodPost, "/api/v1/tags", `{"name":"food"}`, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.json(http.MethodPost, "/api/v1/tags", `{"description":"no name"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.json(http.MethodPatch, "/api/v1/tags/"+id, `{"name":"dining"}`, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.json(http.MethodGet, "/api/v1/tags", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dining")

	w = app.json(http.MethodDelete, "/api/v1/tags/"+id, "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.json(http.MethodGet, "/api/v1/tags/"+id, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.json(http.MethodPost, "/api/v1/payment-methods", `{"name":"Cash"}`, token)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAppGraphIsComplete(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, URL: "file::memory:"},
		Auth: config.AuthConfig{
			SessionTTL:             time.Hour,
			BcryptCost:             bcrypt.MinCost,
			LoginAttemptsPerMinute: 10,
			LoginBurst:             5,
			LimiterSweep:           "@every 10m",
		},
		Log: config.LogConfig{Level: "info", Format: "console"},
	}

	assert.NoError(t, fx.ValidateApp(appOptions(cfg)))
}
