package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/service"
	internalWS "docedit-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authorizeOnly struct {
	service.IDocumentService
	owner uuid.UUID
}

func (s *authorizeOnly) Authorize(ctx context.Context, userId uuid.UUID, sessionId string) error {
	if userId != s.owner || sessionId != "s-1" {
		return service.ErrSessionNotFound
	}
	return nil
}

func TestServeWsHandshake(t *testing.T) {
	t.Setenv("JWT_SECRET", "ws-secret")
	owner := uuid.New()

	app := fiber.New()
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	NewDocumentSocketHandler(&authorizeOnly{owner: owner}, hub, logger.NewNopLogger()).RegisterRoutes(app)

	sign := func(userId uuid.UUID) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId.String()}).SignedString([]byte("ws-secret"))
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "missing token", path: "/document/v1/s-1/ws", wantCode: fiber.StatusUnauthorized},
		{name: "garbage token", path: "/document/v1/s-1/ws?token=abc", wantCode: fiber.StatusUnauthorized},
		{name: "foreign session", path: "/document/v1/s-1/ws?token=" + sign(uuid.New()), wantCode: fiber.StatusNotFound},
		{name: "unknown session", path: "/document/v1/s-2/ws?token=" + sign(owner), wantCode: fiber.StatusNotFound},
		{name: "plain http request", path: "/document/v1/s-1/ws?token=" + sign(owner), wantCode: fiber.StatusUpgradeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
