package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/services"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

const userAgent = "quran-reader-client/1.0"

// App holds everything a command needs to talk to the API.
type App struct {
	Client    internal.ApiClient
	Store     internal.TokenStore
	Session   *session.Session
	Auth      services.AuthService
	Users     services.UserService
	Quran     services.QuranService
	Bookmarks services.BookmarkService
	Uploads   services.UploadService

	sqlite *internal.SQLiteStore
	closer func() error
}

func (app *App) Close() error {
	if app.closer == nil {
		return nil
	}
	return app.closer()
}

// bootstrap initialises shared resources used by every command: the token
// store, the authenticated client and the session restored from the store.
func bootstrap(ctx context.Context, dbPath string) (*App, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	app := &App{}
	if err := app.openStore(dbPath); err != nil {
		return nil, err
	}

	timeout := internal.DefaultTimeout
	if value := os.Getenv("QURAN_API_TIMEOUT"); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("invalid QURAN_API_TIMEOUT %q: %w", value, err)
		}
		timeout = d
	}

	app.Client = internal.NewApiClient(os.Getenv("QURAN_API_URL"), app.Store, &http.Client{Timeout: timeout}, userAgent)
	app.Auth = services.NewAuthService(app.Client)
	app.Users = services.NewUserService(app.Client)
	app.Quran = services.NewQuranService(app.Client)
	app.Bookmarks = services.NewBookmarkService(app.Client)
	app.Uploads = services.NewUploadService(app.Client)
	app.Session = session.New(app.Store, app.Auth)
	log.Printf("Using API at %s (timeout %s)", app.Client.BaseUrl(), timeout)

	if _, err := app.Session.Restore(ctx); err != nil {
		log.Printf("Previous session could not be restored: %v", err)
	}

	return app, nil
}

func (app *App) openStore(dbPath string) error {
	switch kind := os.Getenv("TOKEN_STORE"); kind {
	case "", "sqlite":
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := internal.Connect(dbPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := internal.Migrate(dbPath); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate SQL: %w", err)
		}
		app.sqlite = internal.NewSQLiteStore(db)
		app.Store = app.sqlite
		app.closer = app.sqlite.Close

	case "redis":
		redisDB := 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			if db, err := strconv.Atoi(dbStr); err == nil {
				redisDB = db
			}
		}
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		store := internal.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		}), "quran-reader:")
		if err := store.Ping(context.Background()); err != nil {
			_ = store.Close()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.Store = store
		app.closer = store.Close

	case "memory":
		log.Println("WARNING: using in-memory token store, the session will not survive a restart")
		app.Store = internal.NewMemoryStore()

	default:
		return fmt.Errorf("unknown TOKEN_STORE %q (expected sqlite, redis or memory)", kind)
	}
	return nil
}
