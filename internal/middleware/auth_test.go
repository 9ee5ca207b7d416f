package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_NoSession(t *testing.T) {
	app := fiber.New()
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin_RegularUser(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"role":    "regular",
		})
		return c.Next()
	})
	app.Get("/admin", RequireAuth(), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestActorHelpers(t *testing.T) {
	app := fiber.New()
	id := uuid.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": id.String(),
			"role":    "admin",
			"phone":   "0551234567",
		})
		assert.Equal(t, id, ActorID(c))
		assert.Equal(t, "admin", ActorRole(c))
		assert.Equal(t, "0551234567", ActorPhone(c))
		return c.SendString("ok")
	})
	_, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
}

func TestActorID_GarbageSession(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": "not-a-uuid"})
		assert.Equal(t, uuid.Nil, ActorID(c))
		c.Locals("user", "not even a map")
		assert.Equal(t, uuid.Nil, ActorID(c))
		return c.SendString("ok")
	})
	_, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
}
