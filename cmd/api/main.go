package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/bookmark"
	"mealgo/internal/common"
	"mealgo/internal/databases"
	"mealgo/internal/diet"
	"mealgo/internal/env"
	"mealgo/internal/kv"
	"mealgo/internal/logger"
	"mealgo/internal/neis"
	"mealgo/internal/realtime"
	v0bookmarks "mealgo/internal/v0/bookmarks"
	"mealgo/internal/v0/day"
	v0diet "mealgo/internal/v0/diet"
	"mealgo/internal/v0/meal"
	"mealgo/internal/v0/settings"
	"mealgo/internal/v0/timetable"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	zlog, err := logger.New(logger.Config{
		Level:  env.GetEnv(env.EnvLogLevel, "info"),
		Format: env.GetEnv(env.EnvLogFormat, "json"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := databases.OpenMigrated(env.GetEnv(env.EnvAppDBPath, "internal/databases/mealgo.db"), zlog)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Key-value storage: per-user state plus the shared provider cache
	baseStore, closeStore, err := openStore(db, zlog)
	if err != nil {
		zlog.Fatal("failed to open key-value store", zap.Error(err))
	}
	defer closeStore()
	broker := kv.NewBroker()
	store := kv.Notifying(baseStore, broker)

	loc := loadLocation(env.GetEnv(env.EnvTimezone, "Asia/Seoul"), zlog)
	now := func() time.Time { return time.Now().In(loc) }

	// Provider client
	provider := neis.NewClient(neis.Config{
		APIKey:     env.GetEnv(env.EnvNeisAPIKey, ""),
		BaseURL:    env.GetEnv(env.EnvNeisBaseURL, neis.DefaultBaseURL),
		OfficeCode: env.GetEnv(env.EnvNeisOfficeCode, neis.DefaultOfficeCode),
		SchoolCode: env.GetEnv(env.EnvNeisSchoolCode, neis.DefaultSchoolCode),
		Level:      neis.SchoolLevel(env.GetEnv(env.EnvNeisSchoolLevel, string(neis.LevelHigh))),
		Timeout:    env.GetDuration(env.EnvNeisTimeout, neis.DefaultTimeout),
	}, zlog).WithCache(kv.Scoped(baseStore, kv.SharedOwner))

	if env.GetBool(env.EnvPrefetchEnable, true) {
		prefetcher, err := neis.NewPrefetcher(provider, env.GetEnv(env.EnvPrefetchCron, neis.DefaultPrefetchSchedule), loc, zlog)
		if err != nil {
			zlog.Fatal("invalid prefetch schedule", zap.Error(err))
		}
		prefetcher.Start()
		defer prefetcher.Stop()
	}

	// Initialize auth components
	authRepo := auth.NewRepository(db)
	jwtManager, err := auth.NewJWTManager(
		env.GetEnv(env.EnvJWTSecret, ""),
		env.GetDuration(env.EnvJWTTTL, auth.DefaultAccessTokenTTL),
	)
	if err != nil {
		zlog.Fatal("invalid JWT_SECRET", zap.Error(err))
	}
	stateStore := auth.NewOAuthStateStore(authRepo)
	refreshStore := auth.NewRefreshTokenStore(authRepo, env.GetDuration(env.EnvRefreshTokenTTL, auth.DefaultRefreshTokenTTL))
	googleProvider := auth.NewGoogleProvider(
		auth.ProviderConfig{
			ClientID:     env.GetEnv(env.EnvGoogleClientID, ""),
			ClientSecret: env.GetEnv(env.EnvGoogleClientSecret, ""),
		},
		env.GetEnv(env.EnvAuthCallbackBaseURL, "http://localhost:9237"),
	)
	authHandler := auth.NewHandler(
		authRepo,
		googleProvider,
		stateStore,
		refreshStore,
		jwtManager,
		zlog,
		env.GetBool(env.EnvSecureCookies, false),
	)
	authMiddleware := auth.NewMiddleware(jwtManager, authRepo)

	janitor := auth.NewJanitor(stateStore, refreshStore, zlog)
	janitor.Start(ctx)

	// Realtime change feed
	hub := realtime.NewHub(broker, zlog)
	go hub.Run(ctx)

	// Feature services
	bookmarks := bookmark.NewRepository(store)
	history := diet.NewHistory(store)
	settingsService := settings.NewService(store, broker)
	dayService := day.NewService(day.NewLoader(provider, provider), settingsService, bookmarks, zlog, now)

	gin.SetMode(env.GetEnv(gin.EnvGinMode, gin.ReleaseMode))
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestID(), logger.Middleware(zlog))
	router.Use(common.CORS(env.GetList(env.EnvCORSOrigins, nil)))

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, neis.DefaultBaseURL, provider.SchoolCode())
	auth.RegisterRoutes(global, authHandler, authMiddleware)

	// v0 API routes, every one scoped to the signed-in user
	v0Group := router.Group("/api/v0")
	v0Group.Use(authMiddleware.RequireUser(), authMiddleware.RequireActiveUser())
	{
		if err := settings.RegisterRoutes(v0Group, settings.NewHandler(settingsService, zlog)); err != nil {
			zlog.Fatal("failed to register settings routes", zap.Error(err))
		}
		if err := timetable.RegisterRoutes(v0Group, timetable.NewHandler(provider, settingsService, zlog, now)); err != nil {
			zlog.Fatal("failed to register timetable routes", zap.Error(err))
		}
		if err := day.RegisterRoutes(v0Group, day.NewHandler(dayService, zlog)); err != nil {
			zlog.Fatal("failed to register day routes", zap.Error(err))
		}
		meal.RegisterRoutes(v0Group, meal.NewHandler(provider, bookmarks, zlog, now))
		v0bookmarks.RegisterRoutes(v0Group, v0bookmarks.NewHandler(bookmarks, zlog))
		v0diet.RegisterRoutes(v0Group, v0diet.NewHandler(provider, history, zlog, now))
		realtime.RegisterRoutes(v0Group, realtime.NewHandler(hub, env.GetList(env.EnvCORSOrigins, nil)))
	}

	srv := &http.Server{
		Addr:              ":" + env.GetEnv(env.EnvPort, "9237"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown handling
	<-ctx.Done()
	zlog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	janitor.Stop()
}

// openStore selects the key-value backend from STORAGE_DRIVER
func openStore(db *sql.DB, zlog *zap.Logger) (kv.Store, func(), error) {
	switch driver := env.GetEnv(env.EnvStorageDriver, "sqlite"); driver {
	case "redis":
		store, err := kv.NewRedisStore(kv.RedisConfig{
			Addr:     env.GetEnv(env.EnvRedisAddr, "localhost:6379"),
			Password: env.GetEnv(env.EnvRedisPassword, ""),
			DB:       env.GetInt(env.EnvRedisDB, 0),
		}, zlog)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		if driver != "sqlite" {
			zlog.Warn("unknown storage driver, using sqlite", zap.String("driver", driver))
		}
		return kv.NewSQLiteStore(db), func() {}, nil
	}
}

func loadLocation(name string, zlog *zap.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		zlog.Warn("unknown timezone, using local time", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
