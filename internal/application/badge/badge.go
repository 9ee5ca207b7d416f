package badge

import (
	"context"
	"strconv"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const pendingAdsKey = "badge:pending_ads"

// Badge maintains the admin pending-ads counter in Redis. The counter is an
// advisory cache: reads fall through to a DB count when the key is missing, so
// a lost increment heals on the next cold read.
type Badge struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// PendingAds returns the number of ads awaiting review. On a Redis miss the
// value is recomputed from the ads table and cached.
func (b *Badge) PendingAds(ctx context.Context) (int64, error) {
	if b.Rdb != nil {
		v, err := b.Rdb.Get(ctx, pendingAdsKey).Result()
		if err == nil {
			n, perr := strconv.ParseInt(v, 10, 64)
			if perr == nil && n >= 0 {
				return n, nil
			}
		}
	}
	var count int64
	if err := b.DB.WithContext(ctx).Model(&models.Ad{}).Where("status = ?", constants.AdPending).Count(&count).Error; err != nil {
		return 0, err
	}
	if b.Rdb != nil {
		if err := b.Rdb.Set(ctx, pendingAdsKey, count, 0).Err(); err != nil {
			log.Warn().Err(err).Msg("pending badge cache set failed")
		}
	}
	return count, nil
}

// Incr bumps the pending counter after an ad enters the review queue.
func (b *Badge) Incr(ctx context.Context) {
	if b.Rdb == nil {
		return
	}
	if err := b.Rdb.Incr(ctx, pendingAdsKey).Err(); err != nil {
		log.Warn().Err(err).Msg("pending badge incr failed")
	}
}

// Decr bumps the counter down after an ad leaves the review queue.
func (b *Badge) Decr(ctx context.Context) {
	if b.Rdb == nil {
		return
	}
	if err := b.Rdb.Decr(ctx, pendingAdsKey).Err(); err != nil {
		log.Warn().Err(err).Msg("pending badge decr failed")
	}
}
