package app

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/pkg/common"
)

const settingsCacheTTL = 30 * time.Second

// SettingsManager is a cached reader/writer over the sys_config table.
type SettingsManager struct {
	db       *gorm.DB
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db}
}

func (m *SettingsManager) load() map[string]string {
	m.mu.RLock()
	if m.cache != nil && time.Since(m.loadedAt) < settingsCacheTTL {
		cache := m.cache
		m.mu.RUnlock()
		return cache
	}
	m.mu.RUnlock()

	var rows []domain.SysConfig
	if err := m.db.Find(&rows).Error; err != nil {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.cache
	}

	cache := make(map[string]string, len(rows))
	for _, row := range rows {
		cache[row.Type+"/"+row.Name] = row.Value
	}

	m.mu.Lock()
	m.cache = cache
	m.loadedAt = time.Now()
	m.mu.Unlock()
	return cache
}

// GetString returns a setting value, or empty when unset.
func (m *SettingsManager) GetString(category, name string) string {
	return m.load()[category+"/"+name]
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

// GetBool treats "enabled" and the usual truthy spellings as true.
func (m *SettingsManager) GetBool(category, name string) bool {
	v := m.GetString(category, name)
	return v == common.ENABLED || cast.ToBool(v)
}

// Set upserts a setting row and invalidates the cache.
func (m *SettingsManager) Set(category, name, value string) error {
	var row domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = domain.SysConfig{
			ID:        common.UUIDint64(),
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := m.db.Create(&row).Error; err != nil {
			return errors.Wrap(err, "create setting")
		}
	case err != nil:
		return errors.Wrap(err, "query setting")
	default:
		if err := m.db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error; err != nil {
			return errors.Wrap(err, "update setting")
		}
	}

	m.mu.Lock()
	m.cache = nil
	m.mu.Unlock()
	return nil
}
