package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/pkg/token"
)

// testErrorHandler is a stripped-down copy of the API's error boundary so
// envelope shape can be asserted without importing the handler package.
func testErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{"error": fiber.Map{
			"code":    appErr.Code,
			"message": appErr.Message,
		}})
	}
	return fiber.DefaultErrorHandler(c, err)
}

func newTestCodec() *token.Codec {
	return token.NewCodec("access-secret", "refresh-secret", 15*time.Minute, time.Hour, "victor-ops-test")
}

func newTestApp(codec *token.Codec, roles ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})

	handlers := []fiber.Handler{AuthRequired(codec)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(identity)
	})

	app.Get("/protected", handlers...)
	return app
}

func signAccessFor(t *testing.T, codec *token.Codec, role domain.Role) string {
	t.Helper()
	accessToken, err := codec.SignAccess(token.Payload{
		Subject: uuid.New(),
		Email:   "handler@victorexecutive.com",
		Role:    role,
	})
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	return accessToken
}

func decodeErrorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return body.Error.Code
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	app := newTestApp(newTestCodec())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := decodeErrorCode(t, resp); code != "UNAUTHORIZED" {
		t.Errorf("error code = %q, want UNAUTHORIZED", code)
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	codec := newTestCodec()
	expiredCodec := token.NewCodec("access-secret", "refresh-secret", -time.Minute, time.Hour, "victor-ops-test")
	otherCodec := token.NewCodec("other-secret", "refresh-secret", 15*time.Minute, time.Hour, "victor-ops-test")

	tests := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Basic abc123"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + signAccessFor(t, expiredCodec, domain.RoleHandler)},
		{"wrong secret", "Bearer " + signAccessFor(t, otherCodec, domain.RoleHandler)},
		{"refresh token as access", "Bearer " + signRefreshFor(t, codec)},
	}

	app := newTestApp(codec)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set(fiber.HeaderAuthorization, tt.header)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func signRefreshFor(t *testing.T, codec *token.Codec) string {
	t.Helper()
	refreshToken, err := codec.SignRefresh(token.Payload{
		Subject: uuid.New(),
		Email:   "handler@victorexecutive.com",
		Role:    domain.RoleHandler,
	})
	if err != nil {
		t.Fatalf("sign refresh token: %v", err)
	}
	return refreshToken
}

func TestAuthRequiredAttachesIdentity(t *testing.T) {
	codec := newTestCodec()
	app := newTestApp(codec)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signAccessFor(t, codec, domain.RoleOperatorAdmin))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200 (body %s)", resp.StatusCode, body)
	}

	var identity domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.Role != domain.RoleOperatorAdmin {
		t.Errorf("role = %q, want OperatorAdmin", identity.Role)
	}
	if identity.Email != "handler@victorexecutive.com" {
		t.Errorf("email = %q", identity.Email)
	}
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	codec := newTestCodec()
	app := newTestApp(codec, domain.RoleVictorAdmin, domain.RoleOperatorAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signAccessFor(t, codec, domain.RoleVictorAdmin))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireRolesForbidsUnlistedRole(t *testing.T) {
	codec := newTestCodec()
	app := newTestApp(codec, domain.RoleVictorAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signAccessFor(t, codec, domain.RoleHandler))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := decodeErrorCode(t, resp); code != "FORBIDDEN" {
		t.Errorf("error code = %q, want FORBIDDEN", code)
	}
}

func TestRequireRolesWithoutAuthGate(t *testing.T) {
	// Role checks mounted without the bearer gate fail closed.
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Get("/misconfigured", RequireRoles(domain.RoleVictorAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/misconfigured", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
