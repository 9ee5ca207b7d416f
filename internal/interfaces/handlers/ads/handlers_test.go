package ads

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	adsvc "souqah-backend/internal/application/ads"
	listsvc "souqah-backend/internal/application/listings"
	"souqah-backend/internal/infrastructure/database"
	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdsHandlers(t *testing.T) (*Handlers, *gorm.DB, *models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	user := &models.User{Name: "Seller", Email: "s@example.com", Phone: "0551234567", PasswordHash: "x", Role: constants.RoleRegular, Status: constants.UserActive}
	require.NoError(t, db.Create(user).Error)
	cat := &models.Category{Slug: "cars", NameAr: "سيارات", NameEn: "Cars"}
	require.NoError(t, db.Create(cat).Error)

	h := &Handlers{
		Ads:      &adsvc.Service{DB: db, AdTTL: 30 * 24 * time.Hour},
		Listings: &listsvc.Service{DB: db, DefaultPageSize: 12, MaxPageSize: 50},
	}
	return h, db, user
}

func withSession(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": user.UserID.String(),
			"name":    user.Name,
			"role":    user.Role,
			"phone":   user.Phone,
		})
		return c.Next()
	}
}

func TestCreateAndListAds(t *testing.T) {
	h, _, user := setupAdsHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/ads", withSession(user), h.Create)
	app.Get("/api/v1/ads", h.List)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Toyota Camry 2020",
		"description": "Clean, single owner",
		"price":       "85000",
		"category":    "cars",
		"city":        "Riyadh",
	})
	req := httptest.NewRequest("POST", "/api/v1/ads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/ads", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var out struct {
		Status   string            `json:"status"`
		Data     []json.RawMessage `json:"data"`
		Metadata struct {
			Pagination struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"total_pages"`
				HasMore    bool  `json:"has_more"`
			} `json:"pagination"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "success", out.Status)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, int64(1), out.Metadata.Pagination.Total)
	assert.Equal(t, 1, out.Metadata.Pagination.TotalPages)
	assert.False(t, out.Metadata.Pagination.HasMore)
}

func TestList_BadQueryParams(t *testing.T) {
	h, _, _ := setupAdsHandlers(t)
	app := fiber.New()
	app.Get("/api/v1/ads", h.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/ads?page=zero", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/ads?sort=alphabetical", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/ads?user_id=not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGet_InvalidAndMissing(t *testing.T) {
	h, _, _ := setupAdsHandlers(t)
	app := fiber.New()
	app.Get("/api/v1/ads/:id", h.Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/ads/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/ads/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGet_CountsView(t *testing.T) {
	h, db, user := setupAdsHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/ads", withSession(user), h.Create)
	app.Get("/api/v1/ads/:id", h.Get)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Desk", "description": "Wood desk", "price": "300",
		"category": "cars", "city": "Riyadh",
	})
	req := httptest.NewRequest("POST", "/api/v1/ads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ad models.Ad
	require.NoError(t, db.First(&ad).Error)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/ads/"+ad.AdID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Ad
	require.NoError(t, db.First(&got, "ad_id = ?", ad.AdID).Error)
	assert.Equal(t, int64(1), got.ViewCount)
}

func TestDeleteThenSoldConflict(t *testing.T) {
	h, db, user := setupAdsHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/ads", withSession(user), h.Create)
	app.Delete("/api/v1/ads/:id", withSession(user), h.Delete)
	app.Post("/api/v1/ads/:id/sold", withSession(user), h.MarkSold)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Desk", "description": "Wood desk", "price": "300",
		"category": "cars", "city": "Riyadh",
	})
	req := httptest.NewRequest("POST", "/api/v1/ads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ad models.Ad
	require.NoError(t, db.First(&ad).Error)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/ads/"+ad.AdID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A deleted ad is gone from the owner path too.
	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/ads/"+ad.AdID.String()+"/sold", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
