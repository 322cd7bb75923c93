package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/config"
	"github.com/iliyamo/realestate-listing/internal/database"
	"github.com/iliyamo/realestate-listing/internal/handler"
	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/middleware"
	"github.com/iliyamo/realestate-listing/internal/queue"
	"github.com/iliyamo/realestate-listing/internal/repository"
	"github.com/iliyamo/realestate-listing/internal/router"
	"github.com/iliyamo/realestate-listing/internal/utils"
	"github.com/iliyamo/realestate-listing/internal/validation"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the cache and the rate limiter
	// into pass-throughs.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	properties := repository.NewPropertyRepo(db)
	comments := repository.NewCommentRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	reviews := repository.NewReviewRepo(db)
	notifications := repository.NewNotificationRepo(db)
	languages := repository.NewLanguageRepo(db)

	i18nStore := i18n.NewStore(languages, time.Duration(cfg.LangCacheSec)*time.Second)
	signup := &validation.Validator{Checker: users}

	authH := handler.NewAuthHandler(cfg, users, tokens, signup, i18nStore)
	profileH := handler.NewProfileHandler(users, i18nStore)
	publicH := handler.NewPublicPropertyHandler(properties, reviews, i18nStore)
	commentH := handler.NewCommentHandler(comments, properties, users, i18nStore)
	favoriteH := handler.NewFavoriteHandler(favorites, properties, i18nStore)
	reviewH := handler.NewReviewHandler(reviews, properties, i18nStore)
	notificationH := handler.NewNotificationHandler(notifications)
	sellerH := handler.NewSellerPropertyHandler(properties, i18nStore)
	adminH := handler.NewAdminHandler(users, properties, comments, reviews, languages, i18nStore)

	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	locale := middleware.ResolveLocale(i18nStore, users)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, profileH, cfg.JWTSecret, locale)
	router.RegisterPublic(e, publicH, commentH, reviewH, locale, cache)
	router.RegisterUser(e, cfg.JWTSecret, locale, favoriteH, notificationH, commentH, reviewH)
	router.RegisterSeller(e, sellerH, cfg.JWTSecret, locale)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, locale)

	// Turns comment.posted events into notification rows in the background.
	go func() {
		if err := queue.StartNotificationConsumer(notifications); err != nil {
			log.Printf("notify-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
