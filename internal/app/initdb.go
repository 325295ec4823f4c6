package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/supercomputers/shopd/config"
	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/pkg/common"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := gormlogger.Silent
	if cfg.Debug {
		loglevel = gormlogger.Info
	}
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(loglevel),
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		dialector = sqlite.Open(filepath.Join(workdir, "data", cfg.Name+".db"))
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		panic(errors.Wrap(err, "database connect"))
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxIdleConns(8)
		sqlDB.SetMaxOpenConns(64)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}

// checkSettings seeds the settings table with the defaults the shop front and
// the invoice renderer read. Existing values are never overwritten.
func (a *Application) checkSettings() {
	defaults := []domain.SysConfig{
		{Sort: 1, Type: "system", Name: "SiteName", Value: "Super Computers", Remark: "Shop display name"},
		{Sort: 2, Type: "system", Name: "SiteAddress1", Value: "Galiveedu, Near ZPHS Boys High School", Remark: "Address line 1"},
		{Sort: 3, Type: "system", Name: "SiteAddress2", Value: "Annamyya Dist, Andhra Pradesh - 516267", Remark: "Address line 2"},
		{Sort: 4, Type: "system", Name: "SitePhone", Value: "+91 8688188948", Remark: "Support phone"},
		{Sort: 5, Type: "catalog", Name: "StrictOfferValidation", Value: common.ENABLED, Remark: "Reject out-of-range offers instead of clamping"},
		{Sort: 6, Type: "booking", Name: "AdminListLimit", Value: "300", Remark: "Max rows in admin listings"},
	}

	for _, item := range defaults {
		var existing domain.SysConfig
		err := a.gormDB.Where("type = ? and name = ?", item.Type, item.Name).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		item.ID = common.UUIDint64()
		item.CreatedAt = time.Now()
		item.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&item).Error; err != nil {
			zap.L().Error("failed to seed setting", zap.String("name", item.Name), zap.Error(err))
		}
	}
}
