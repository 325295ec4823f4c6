package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/supercomputers/shopd/config"
	"github.com/supercomputers/shopd/internal/booking"
	"github.com/supercomputers/shopd/internal/catalog"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ServiceProvider provides the shop services
type ServiceProvider interface {
	Catalog() *catalog.Service
	Booking() *booking.Service
}

// SettingsManagerProvider provides settings manager access
type SettingsManagerProvider interface {
	Settings() *SettingsManager
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	ServiceProvider
	SettingsManagerProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
