package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/doctor-schedule-engine/internal/config"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// CacheAdapter - LRU-кэш сгенерированных дневных сеток.
// Ключ: doctorID_date. Включается только вместе со слушателем событий,
// который инвалидирует дни при изменении записей и правил, иначе кэш
// отдавал бы устаревшие сетки.
type CacheAdapter struct {
	cache  *lru.Cache[string, *domain.DailySchedule]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[string, *domain.DailySchedule](cfg.Cache.DaysSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DaysSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func cacheKey(doctorID uuid.UUID, date json_types.Date) string {
	return fmt.Sprintf("%s_%s", doctorID, date)
}

func (c *CacheAdapter) GetDaySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.DailySchedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schedule, exists := c.cache.Get(cacheKey(doctorID, date))
	if !exists {
		c.logger.Debug("cache.day.get.miss", out.LogFields{
			"doctorId": doctorID,
			"date":     date,
		})
		return nil, false
	}

	c.logger.Debug("cache.day.get.hit", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": schedule.TotalSlots,
	})

	return schedule, true
}

func (c *CacheAdapter) StoreDaySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date, schedule domain.DailySchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.day.store", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": schedule.TotalSlots,
	})

	c.cache.Add(cacheKey(doctorID, date), &schedule)
}

func (c *CacheAdapter) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(cacheKey(doctorID, date))
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := doctorID.String() + "_"
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
