package app

import (
	"github.com/robfig/cron/v3"

	"github.com/shoplens/shoplens/config"
	"github.com/shoplens/shoplens/internal/activity"
	"github.com/shoplens/shoplens/internal/catalog"
	"github.com/shoplens/shoplens/internal/classify"
	"github.com/shoplens/shoplens/internal/identity"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the product catalog store
type CatalogProvider interface {
	Catalog() *catalog.Store
}

// UserStoreProvider provides the durable identity store
type UserStoreProvider interface {
	Users() *identity.Store
}

// JournalProvider provides the activity journal
type JournalProvider interface {
	Journal() *activity.Journal
}

// ClassifierProvider provides the image classifier client
type ClassifierProvider interface {
	Classifier() *classify.Classifier
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	CatalogProvider
	UserStoreProvider
	JournalProvider
	ClassifierProvider
	SchedulerProvider
}
