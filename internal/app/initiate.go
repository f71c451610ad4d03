package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgconfig"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkglog"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgmetric"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgrouter"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgroutine"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkguid"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg

	logCloser := pkglog.Configure(pkglog.Options{
		Level:     cfg.GetString("log.level"),
		SeqURL:    cfg.GetString("log.seq_url"),
		SeqAPIKey: cfg.GetString("log.seq_api_key"),
	})
	if logCloser != nil {
		if a.closerFn == nil {
			a.closerFn = map[string]func(context.Context) error{}
		}
		a.closerFn["Logger"] = logCloser
	}
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	snow, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = snow

	a.metrics = pkgmetric.New()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
