package router

import (
	"context"
	"net/http"
	"time"

	adsvc "souqah-backend/internal/application/ads"
	authsvc "souqah-backend/internal/application/auth"
	"souqah-backend/internal/application/badge"
	catsvc "souqah-backend/internal/application/categories"
	favsvc "souqah-backend/internal/application/favorites"
	listsvc "souqah-backend/internal/application/listings"
	msgsvc "souqah-backend/internal/application/messages"
	modsvc "souqah-backend/internal/application/moderation"
	ratesvc "souqah-backend/internal/application/ratings"
	repsvc "souqah-backend/internal/application/reports"
	uploadsvc "souqah-backend/internal/application/uploads"
	"souqah-backend/internal/config"
	"souqah-backend/internal/infrastructure/database"
	adhandler "souqah-backend/internal/interfaces/handlers/ads"
	adminhandler "souqah-backend/internal/interfaces/handlers/admin"
	authhandler "souqah-backend/internal/interfaces/handlers/auth"
	cathandler "souqah-backend/internal/interfaces/handlers/categories"
	favhandler "souqah-backend/internal/interfaces/handlers/favorites"
	healthhandler "souqah-backend/internal/interfaces/handlers/health"
	msghandler "souqah-backend/internal/interfaces/handlers/messages"
	ratehandler "souqah-backend/internal/interfaces/handlers/ratings"
	rephandler "souqah-backend/internal/interfaces/handlers/reports"
	uploadhandler "souqah-backend/internal/interfaces/handlers/uploads"
	"souqah-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp wires the full application: middleware chain, database, Redis
// and every route group. The returned db/rdb handles are for the caller's
// readiness checks and shutdown.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               10 * 1024 * 1024,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.RequestStats(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb}
	app.Get("/health", hh.Live)
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		hh.DB = db
	}

	if db == nil || rdb == nil {
		return app, db, rdb, nil
	}

	// Services.
	bdg := &badge.Badge{DB: db, Rdb: rdb}
	as := &adsvc.Service{
		DB:                 db,
		Badge:              bdg,
		ModerationRequired: cfg.ModerationRequired,
		AdTTL:              time.Duration(cfg.AdTTLDays) * 24 * time.Hour,
	}
	ls := &listsvc.Service{DB: db, DefaultPageSize: cfg.DefaultPageSize, MaxPageSize: cfg.MaxPageSize}
	mods := &modsvc.Service{DB: db, Badge: bdg}
	cats := &catsvc.Service{DB: db}
	msgs := &msgsvc.Service{DB: db}
	favs := &favsvc.Service{DB: db}
	rates := &ratesvc.Service{DB: db}
	reps := &repsvc.Service{DB: db}
	ups := &uploadsvc.Service{
		Client: &uploadsvc.HTTPClient{BaseURL: cfg.StorageURL, SecretKey: cfg.StorageSecretKey},
	}

	if err := cats.Seed(context.Background(), catsvc.DefaultCategories()); err != nil {
		log.Warn().Err(err).Msg("category seed failed")
	}

	// Auth.
	ah := &authhandler.Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config:  sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", middleware.RequireAuth(), ah.Me)
	authGroup.Delete("/logout", middleware.RequireAuth(), ah.Logout)

	// Ads: public browse, authed writes.
	adh := &adhandler.Handlers{Ads: as, Listings: ls}
	app.Get("/api/v1/ads", adh.List)
	app.Get("/api/v1/ads/:id", adh.Get)
	app.Post("/api/v1/ads", middleware.RequireAuth(), adh.Create)
	app.Put("/api/v1/ads/:id", middleware.RequireAuth(), adh.Update)
	app.Delete("/api/v1/ads/:id", middleware.RequireAuth(), adh.Delete)
	app.Post("/api/v1/ads/:id/sold", middleware.RequireAuth(), adh.MarkSold)
	app.Get("/api/v1/my/ads", middleware.RequireAuth(), adh.MyAds)

	// Categories.
	ch := &cathandler.Handlers{Service: cats}
	app.Get("/api/v1/categories", ch.List)
	app.Get("/api/v1/categories/:slug", ch.Get)

	// Messages.
	mh := &msghandler.Handlers{Service: msgs}
	app.Post("/api/v1/messages", middleware.RequireAuth(), mh.Send)
	app.Get("/api/v1/conversations", middleware.RequireAuth(), mh.Conversations)
	app.Get("/api/v1/conversations/:adId/:userId", middleware.RequireAuth(), mh.Thread)

	// Favorites.
	fh := &favhandler.Handlers{Service: favs}
	fg := app.Group("/api/v1/favorites", middleware.RequireAuth())
	fg.Get("/", fh.List)
	fg.Post("/:adId", fh.Add)
	fg.Delete("/:adId", fh.Remove)

	// Ratings: public read, authed write.
	rh := &ratehandler.Handlers{Service: rates}
	app.Get("/api/v1/users/:id/ratings", rh.ListForUser)
	app.Post("/api/v1/users/:id/ratings", middleware.RequireAuth(), rh.Rate)

	// Reports.
	reph := &rephandler.Handlers{Service: reps}
	app.Post("/api/v1/reports", middleware.RequireAuth(), reph.Create)

	// Uploads.
	uph := &uploadhandler.Handlers{Service: ups}
	app.Post("/api/v1/uploads/ad-image", middleware.RequireAuth(), uph.UploadAdImage)

	// Admin.
	admh := &adminhandler.Handlers{Moderation: mods}
	ag := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	ag.Get("/ads/pending", admh.PendingAds)
	ag.Patch("/ads/:id", admh.TransitionAd)
	ag.Patch("/users/:id", admh.TransitionUser)
	ag.Get("/reports", admh.ListReports)
	ag.Patch("/reports/:id", admh.ResolveReport)
	ag.Get("/stats", admh.Stats)

	return app, db, rdb, nil
}

// Handler adapts the Fiber app to net/http, mostly for tests.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
