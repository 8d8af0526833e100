package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	classroom "github.com/goliatone/go-classroom"
	"github.com/goliatone/go-classroom/config"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// App wires configuration, persistence, and the HTTP surface together.
type App struct {
	config *gconfig.Container[*config.App]
	logger *glog.BaseLogger
	bunDB  *bun.DB
	repo   classroom.RepositoryManager
	auther *classroom.Auther
	srv    router.Server[*fiber.App]
}

func (a *App) Config() *config.App {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("classroom"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.App{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		lgr.Error("unable to load configuration", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		lgr.Error("unable to initialize persistence", "error", err)
		os.Exit(1)
	}

	if err := WithAuthentication(ctx, app); err != nil {
		lgr.Error("unable to initialize authentication", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.Error("unable to initialize http server", "error", err)
		os.Exit(1)
	}

	port := app.Config().GetServer().GetPort()
	lgr.Info("server starting", "port", port, "env", app.Config().GetEnvironment())

	go func() {
		if err := app.srv.Serve(":" + port); err != nil {
			lgr.Error("server stopped", "error", err)
		}
	}()

	sig := WaitExitSignal()
	lgr.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.srv.Shutdown(shutdownCtx); err != nil {
		lgr.Error("shutdown error", "error", err)
	}

	if app.bunDB != nil {
		if err := app.bunDB.Close(); err != nil {
			lgr.Error("database close error", "error", err)
		}
	}

	lgr.Info("goodbye")
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	sqldb, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		return err
	}

	if err := classroom.Migrate(ctx, sqldb); err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	app.bunDB = db
	app.repo = classroom.NewRepositoryManager(db)

	return app.repo.Validate()
}

func WithAuthentication(ctx context.Context, app *App) error {
	acfg := app.Config().GetAuth()

	if err := acfg.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "auth configuration is invalid")
	}

	app.auther = classroom.NewAuthenticator(app.repo.Users(), acfg).
		WithLogger(app.GetLogger("auth"))

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       app.Config().GetName(),
			StrictRouting: false,
			UnescapePath:  true,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	acfg := app.Config().GetAuth()

	auther, err := classroom.NewHTTPAuthenticator(app.auther, acfg)
	if err != nil {
		return err
	}
	auther.WithLogger(app.GetLogger("http-auth"))

	manager, err := classroom.NewFileManager(app.Config().GetFiles().GetBaseDir())
	if err != nil {
		return err
	}

	r := srv.Router()

	if app.Config().GetEnvironment() == "development" {
		app.GetLogger("config").Debug("configuration", "values", print.MaybePrettyJSON(app.Config()))
	}

	classroom.RegisterAuthRoutes(r,
		classroom.WithControllerAuther(app.auther),
		classroom.WithControllerLogger(app.GetLogger("auth-routes")),
	)

	protected := r.Group("/")
	protected.Use(auther.ProtectedRoute())

	users := classroom.NewUsersController(app.repo.Users(), app.auther).
		WithLogger(app.GetLogger("users"))
	classroom.RegisterUserRoutes(protected, users)

	articles := classroom.NewArticlesController(app.repo.Articles()).
		WithLogger(app.GetLogger("articles"))
	lessons := classroom.NewLessonsController(app.repo.Lessons()).
		WithLogger(app.GetLogger("lessons"))
	classroom.RegisterContentRoutes(protected, articles, lessons)

	files := classroom.NewFilesController(manager.WithLogger(app.GetLogger("files")))
	classroom.RegisterFileRoutes(protected, files)

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
