package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tritonops/admin-gateway/internal/api/dto"
	"github.com/tritonops/admin-gateway/internal/api/http/handlers"
	"github.com/tritonops/admin-gateway/internal/auth"
	"github.com/tritonops/admin-gateway/internal/directory"
	"github.com/tritonops/admin-gateway/internal/events"
	"github.com/tritonops/admin-gateway/internal/observability"
	"github.com/tritonops/admin-gateway/internal/upstream"
)

const testSecret = "router-test-secret"

type unreachableDirectory struct{}

func (unreachableDirectory) BindAndFetch(_ context.Context, _, _ string) (*directory.Record, error) {
	return nil, directory.NewError(directory.KindConnection, errors.New("dial tcp: connection refused"))
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	metrics.Register(dispatcher)

	pool := auth.NewBindPool(unreachableDirectory{}, 1)
	t.Cleanup(pool.Close)

	cache := directory.NewMemoryCache(time.Minute)
	verifier := auth.NewVerifier(auth.NewDevRegistry(), pool, cache, dispatcher, logger, 2*time.Second)
	tokens := auth.NewTokenManager(testSecret, 1)
	gate := auth.NewMiddleware(tokens, dispatcher, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Auth:      handlers.NewAuthHandler(auth.NewService(verifier, tokens)),
		Ping:      handlers.NewPingHandler("gateway-test", "test", "dc-test", metrics),
		VMs:       handlers.NewVMsHandler(upstream.NewVMAPI("", logger)),
		Inventory: handlers.NewInventoryHandler(upstream.NewCNAPI("", logger), upstream.NewNAPI("", logger)),
		Catalog:   handlers.NewCatalogHandler(upstream.NewPAPI("", logger), upstream.NewIMGAPI("", logger)),
		Gate:      gate,
	})
	return app, tokens
}

func doLogin(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	body := `{"username": "` + username + `", "password": "` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLoginDevAdmin(t *testing.T) {
	app, tokens := newTestApp(t)

	resp := doLogin(t, app, "admin", "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "00000000-0000-0000-0000-000000000000", payload.User.ID)
	assert.Equal(t, "Administrator", payload.User.Name)
	assert.Equal(t, []string{"admin"}, payload.User.Roles)

	claims, err := tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doLogin(t, app, "admin", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginDirectoryUnreachableIs401(t *testing.T) {
	app, _ := newTestApp(t)

	// connection failures collapse into the same client-facing rejection
	resp := doLogin(t, app, "jdoe", "hunter2")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doLogin(t, app, "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWhoAmI(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doLogin(t, app, "admin", "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me dto.UserInfo
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, login.User, me)
}

func TestWhoAmIWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutIsStateless(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRouteWithoutHeader(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/vms", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Missing authorization header"}`, string(payload))
}

func TestAdminGuardOnMutatingRoutes(t *testing.T) {
	app, tokens := newTestApp(t)

	resp := doLogin(t, app, "operator", "operator")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	claims, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	require.Equal(t, []string{"operator"}, claims.Roles)

	req := httptest.NewRequest(http.MethodPost, "/api/vms", strings.NewReader(`{"alias": "new-vm"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	createResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, createResp.StatusCode)
}

func TestCatalogMutationRoutesRegistered(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doLogin(t, app, "operator", "operator")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/packages"},
		{http.MethodPatch, "/api/packages/" + uuid.Nil.String()},
		{http.MethodPatch, "/api/images/" + uuid.Nil.String()},
	}
	for _, tc := range cases {
		// unauthenticated requests hit the gate, not a routing miss
		anon, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, anon.StatusCode, "%s %s", tc.method, tc.path)

		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"name": "updated"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+login.Token)
		guarded, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, guarded.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestPingIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "gateway-test", payload["service"])
	assert.Contains(t, payload, "stats")
}
