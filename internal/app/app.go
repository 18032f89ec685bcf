package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shoplens/shoplens/config"
	"github.com/shoplens/shoplens/internal/activity"
	"github.com/shoplens/shoplens/internal/catalog"
	"github.com/shoplens/shoplens/internal/classify"
	"github.com/shoplens/shoplens/internal/identity"
	"github.com/shoplens/shoplens/pkg/metrics"
)

const (
	DefaultAdminEmail    = "admin@shoplens.local"
	DefaultAdminPassword = "admin123"
)

type Application struct {
	appConfig  *config.AppConfig
	catalog    *catalog.Store
	users      *identity.Store
	journal    *activity.Journal
	classifier *classify.Classifier
	sched      *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider     = (*Application)(nil)
	_ CatalogProvider    = (*Application)(nil)
	_ UserStoreProvider  = (*Application)(nil)
	_ JournalProvider    = (*Application)(nil)
	_ ClassifierProvider = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Catalog() *catalog.Store {
	return a.catalog
}

func (a *Application) Users() *identity.Store {
	return a.users
}

func (a *Application) Journal() *activity.Journal {
	return a.journal
}

func (a *Application) Classifier() *classify.Classifier {
	return a.classifier
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	cfg.InitDirs()

	// Initialize metrics with workdir convention
	err = metrics.InitMetrics(cfg.System.Workdir)
	if err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	a.users = identity.NewStore(cfg.UsersFile())
	a.journal = activity.NewJournal(cfg.LogsFile())
	a.classifier = classify.New(cfg.Classifier)
	a.catalog = catalog.NewStore(cfg.Catalog.DatasetsDir, cfg.Catalog.Currency)

	snap, err := a.catalog.Reload()
	if err != nil {
		zap.S().Errorf("initial catalog load failed: %s", err)
	} else {
		zap.S().Infof("catalog loaded, %d products from %d files", len(snap.Products), snap.SourceCount)
	}

	if err := a.users.EnsureAdmin(DefaultAdminEmail, DefaultAdminPassword); err != nil {
		zap.S().Errorf("admin bootstrap failed: %s", err)
	}

	a.initJob()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.classifier != nil {
		a.classifier.Close()
	}

	if a.journal != nil {
		a.journal.Flush()
	}

	_ = metrics.Close()
	_ = zap.L().Sync()
}
