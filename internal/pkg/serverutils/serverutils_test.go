package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, body io.Reader) Response[map[string]interface{}] {
	t.Helper()
	var res Response[map[string]interface{}]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", map[string]interface{}{"user_id": UserId(ctx).String()}))
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	app.Get("/gone", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newApp()
	userId := uuid.New()

	valid := signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(time.Hour).Unix()}, jwt.SigningMethodHS256, []byte(testSecret))
	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
	}{
		{name: "bearer header", header: "Bearer " + valid, wantCode: 200},
		{name: "query token", query: "?token=" + valid, wantCode: 200},
		{name: "missing", wantCode: 401},
		{name: "wrong secret", header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": userId.String()}, jwt.SigningMethodHS256, []byte("other")), wantCode: 401},
		{name: "no user id", header: "Bearer " + signToken(t, jwt.MapClaims{"sub": "x"}, jwt.SigningMethodHS256, []byte(testSecret)), wantCode: 401},
		{name: "expired", header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(-time.Hour).Unix()}, jwt.SigningMethodHS256, []byte(testSecret)), wantCode: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			res := decode(t, resp.Body)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantCode == 200 {
				assert.True(t, res.Success)
				assert.Equal(t, userId.String(), res.Data["user_id"])
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/gone", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	res := decode(t, resp.Body)
	assert.False(t, res.Success)
	assert.Equal(t, "Session not found", res.Message)
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Position *int   `validate:"required"`
		Title    string `validate:"required,max=5"`
	}

	zero := 0
	assert.NoError(t, ValidateRequest(request{Position: &zero, Title: "ok"}))

	err := ValidateRequest(request{Title: "too long"})
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Position is required")
	assert.Contains(t, fiberErr.Message, "Title must satisfy max=5")
}
