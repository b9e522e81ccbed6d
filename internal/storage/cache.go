package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/and161185/paygate/internal/model"
	"github.com/redis/go-redis/v9"
)

const settingsKey = "paygate:payment_settings"

type SettingsSource interface {
	GetPaymentSettings(ctx context.Context) (model.PaymentSettings, error)
}

// SettingsCache is a Redis read-through cache in front of the settings
// document. The document changes rarely but is read on every webhook, so
// a short TTL keeps the store out of the hot path. A cache failure falls
// back to the primary silently.
type SettingsCache struct {
	source SettingsSource
	rdb    *redis.Client
	ttl    time.Duration
}

func NewSettingsCache(source SettingsSource, rdb *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{source: source, rdb: rdb, ttl: ttl}
}

func (c *SettingsCache) GetPaymentSettings(ctx context.Context) (model.PaymentSettings, error) {
	data, err := c.rdb.Get(ctx, settingsKey).Bytes()
	if err == nil {
		var settings model.PaymentSettings
		if json.Unmarshal(data, &settings) == nil {
			return settings, nil
		}
	}

	settings, err := c.source.GetPaymentSettings(ctx)
	if err != nil {
		return model.PaymentSettings{}, err
	}

	if data, err := json.Marshal(settings); err == nil {
		c.rdb.Set(ctx, settingsKey, data, c.ttl)
	}

	return settings, nil
}

// Invalidate drops the cached document; the next read repopulates it.
func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsKey).Err()
}
