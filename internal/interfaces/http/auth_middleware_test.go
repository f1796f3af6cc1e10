package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
	apphttp "github.com/jhoicas/myshop-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/myshop-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "myshop-pos-test"
	testExpMin    = 60
)

// fakeVerifier resuelve tokens fijos a identidades.
type fakeVerifier struct {
	ids map[string]*auth.Identity
	err error
}

func (f fakeVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.ids[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}

var testVerifier = fakeVerifier{ids: map[string]*auth.Identity{
	"tok-admin":   {UserID: "u-admin", Role: entity.RoleAdmin},
	"tok-manager": {UserID: "u-manager", Role: entity.RoleManager},
	"tok-cashier": {UserID: "u-cashier", Role: entity.RoleCashier},
	"tok-norole":  {UserID: "u-norole"},
}}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware + RequireRole
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildTestApp(verifier apphttp.TokenVerifier, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(verifier),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(testVerifier, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-admin")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "u-admin", body["user_id"])
}

func TestRequireRole_ManagerAccedeRutaAdminOManager(t *testing.T) {
	app := buildTestApp(testVerifier, entity.RoleAdmin, entity.RoleManager)
	resp := doRequest(t, app, "Bearer tok-manager")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SinRolesBastaAutenticado(t *testing.T) {
	app := buildTestApp(testVerifier)
	resp := doRequest(t, app, "Bearer tok-cashier")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_CajeroBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(testVerifier, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-cashier")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := readBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_IdentidadSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(testVerifier, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-norole")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := readBody(t, resp)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(testVerifier)
	resp := doRequest(t, app, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := readBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(testVerifier)
	resp := doRequest(t, app, "Token tok-admin")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", readBody(t, resp)["code"])
}

func TestAuthMiddleware_TokenDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(testVerifier)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", readBody(t, resp)["code"])
}

func TestAuthMiddleware_ErrorDelVerificador_Retorna500(t *testing.T) {
	app := buildTestApp(fakeVerifier{err: errors.New("conexión cerrada")})
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
}

// El rol sale de la DB, no del token: un usuario degradado pierde acceso aunque su token diga admin.
func TestAuthMiddleware_RolDesdeLaBase(t *testing.T) {
	store := repotest.NewStore()
	const userID = "00000000-0000-0000-0000-000000000001"
	store.Users[userID] = &entity.User{ID: userID, Username: "dara", Role: entity.RoleCashier, IsActive: true}
	uc := auth.NewAuthUseCase(store.UserRepo(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	tok, err := pkgjwt.Generate(testJWTSecret, userID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(uc, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	store.Users[userID].IsActive = false
	resp = doRequest(t, buildTestApp(uc), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
