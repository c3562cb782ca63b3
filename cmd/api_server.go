package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/aurowora/compress"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/godx"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/routes"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

// storeCheck reports the token store as healthy when a read succeeds.
type storeCheck struct {
	store internal.TokenStore
}

func (c storeCheck) Pass() bool {
	_, _, err := c.store.Get(internal.KeyTheme)
	return err == nil
}

func (c storeCheck) Name() string {
	return "token-store"
}

func ApiServer(dbPath string, port int, debug bool) error {

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	app, err := bootstrap(context.Background(), dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("failed to close token store: %v", err)
		}
	}()

	if _, err := internal.StartCron(app.Session, app.Quran); err != nil {
		return fmt.Errorf("failed to start CRON jobs: %w", err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
		compress.Compress(),
		cors.Default(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	storeHealth := checks.Check(storeCheck{store: app.Store})
	if app.sqlite != nil {
		storeHealth = app.sqlite.Check()
	}
	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{storeHealth})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %v", err)
	}

	v1 := r.Group("/v1")
	v1.GET("/session", routes.Status(app.Session, app.Client))
	v1.GET("/me", routes.Me(app.Session))

	quran := v1.Group("/quran")
	quran.GET("/surahs", routes.Surahs(app.Quran, app.Session))
	quran.GET("/surahs/:number", routes.Surah(app.Quran, app.Session))
	quran.GET("/surahs/:number/verses", routes.Verses(app.Quran, app.Session))
	quran.GET("/search", routes.Search(app.Quran, app.Session))
	quran.GET("/juz", routes.JuzList(app.Quran, app.Session))
	quran.GET("/juz/:number", routes.Juz(app.Quran, app.Session))

	bookmarks := v1.Group("/bookmarks")
	bookmarks.GET("", routes.Bookmarks(app.Bookmarks, app.Session))
	bookmarks.POST("", routes.CreateBookmark(app.Bookmarks, app.Session))
	bookmarks.GET("/progress", routes.ReadingProgress(app.Bookmarks, app.Session))
	bookmarks.DELETE("/:id", routes.DeleteBookmark(app.Bookmarks, app.Session))

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %v", port, err)
	}

	return nil
}
