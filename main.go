package main

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"portfolio/admin"
	"portfolio/analytics"
	"portfolio/backoffice"
	"portfolio/blog"
	"portfolio/cache"
	"portfolio/common"
	"portfolio/contact"
	"portfolio/database"
	"portfolio/email"
	"portfolio/site"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := common.NewLogger(cfg)
	log.Info().Str("env", cfg.Env).Msg("starting portfolio backend")

	db, err := common.ConnectDb(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if err := cache.ClearOld(cacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to prune response cache")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
	})
	router.Use(sessions.Sessions("portfolio-session", store))
	router.Use(common.CORSMiddleware())
	router.Use(cache.Middleware(cacheTTL))

	router.Static("/public", "./public")

	analyticsModule := analytics.NewAnalyticsModule(db, log)
	mailer := email.NewEmailService(cfg)

	blog.NewBlogModule(db, analyticsModule, log).RegisterRoutes(router)
	admin.NewAdminModule(db, analyticsModule, log).RegisterRoutes(router)
	backoffice.NewBackofficeModule(db, log).RegisterRoutes(router)
	contact.NewContactModule(db, mailer, analyticsModule, cfg.ResumeURL, log).RegisterRoutes(router)
	site.NewSiteModule(db, cfg.Domain).RegisterRoutes(router)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
