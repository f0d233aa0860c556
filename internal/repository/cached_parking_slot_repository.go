package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/pkg/logger"
	"github.com/prohmpiriya/smart-parking/pkg/redis"
)

const (
	slotCacheKeyPrefix     = "slot:"
	slotListCacheKeyPrefix = "slots:list:"
	slotCacheTTL           = 5 * time.Minute
	slotListCacheTTL       = 30 * time.Second
)

// CachedParkingSlotRepository wraps a ParkingSlotRepository with a Redis
// read-through cache. Slot state changes frequently, so the list cache is
// deliberately short-lived and every write invalidates both key spaces.
type CachedParkingSlotRepository struct {
	inner ParkingSlotRepository
	cache *redis.Client
}

var _ ParkingSlotRepository = (*CachedParkingSlotRepository)(nil)

// NewCachedParkingSlotRepository creates a caching wrapper around the given repository
func NewCachedParkingSlotRepository(inner ParkingSlotRepository, cache *redis.Client) *CachedParkingSlotRepository {
	return &CachedParkingSlotRepository{
		inner: inner,
		cache: cache,
	}
}

func slotCacheKey(id string) string {
	return slotCacheKeyPrefix + id
}

func slotListCacheKey(filter *SlotFilter) string {
	if filter == nil {
		filter = &SlotFilter{}
	}
	floor := ""
	if filter.Floor != nil {
		floor = fmt.Sprintf("%d", *filter.Floor)
	}
	return fmt.Sprintf("%s%s:%s:%s:%s:%s",
		slotListCacheKeyPrefix, filter.Status, floor, filter.Section, filter.Type, filter.Building)
}

// GetByID retrieves a slot, serving from cache when possible
func (r *CachedParkingSlotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingSlot, error) {
	key := slotCacheKey(id)

	data, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		slot := &domain.ParkingSlot{}
		if err := json.Unmarshal(data, slot); err == nil {
			return slot, nil
		}
		// Corrupt entry, drop it and fall through
		r.cache.Del(ctx, key)
	} else if err != goredis.Nil {
		logger.Get().Warn("slot cache read failed",
			zap.String("key", key),
			zap.Error(err))
	}

	slot, err := r.inner.GetByID(ctx, id)
	if err != nil || slot == nil {
		return slot, err
	}

	if data, err := json.Marshal(slot); err == nil {
		if err := r.cache.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
			logger.Get().Warn("slot cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return slot, nil
}

// List retrieves slots matching the filter, serving from cache when possible
func (r *CachedParkingSlotRepository) List(ctx context.Context, filter *SlotFilter) ([]*domain.ParkingSlot, error) {
	key := slotListCacheKey(filter)

	data, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var slots []*domain.ParkingSlot
		if err := json.Unmarshal(data, &slots); err == nil {
			return slots, nil
		}
		r.cache.Del(ctx, key)
	} else if err != goredis.Nil {
		logger.Get().Warn("slot list cache read failed",
			zap.String("key", key),
			zap.Error(err))
	}

	slots, err := r.inner.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := r.cache.Set(ctx, key, data, slotListCacheTTL).Err(); err != nil {
			logger.Get().Warn("slot list cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return slots, nil
}

// Create persists a new slot and invalidates list caches
func (r *CachedParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) error {
	if err := r.inner.Create(ctx, slot); err != nil {
		return err
	}
	r.invalidateLists(ctx)
	return nil
}

// Update overwrites a slot and invalidates its caches
func (r *CachedParkingSlotRepository) Update(ctx context.Context, slot *domain.ParkingSlot) error {
	if err := r.inner.Update(ctx, slot); err != nil {
		return err
	}
	r.invalidate(ctx, slot.ID)
	return nil
}

// Delete removes a slot and invalidates its caches
func (r *CachedParkingSlotRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// TryReserve delegates to the inner repository and invalidates on success.
// The reservation itself is never answered from cache: only the conditional
// UPDATE can arbitrate concurrent requests.
func (r *CachedParkingSlotRepository) TryReserve(ctx context.Context, id string) (bool, error) {
	reserved, err := r.inner.TryReserve(ctx, id)
	if err != nil {
		return false, err
	}
	if reserved {
		r.invalidate(ctx, id)
	}
	return reserved, nil
}

// ReleaseIfPresent delegates to the inner repository and invalidates
func (r *CachedParkingSlotRepository) ReleaseIfPresent(ctx context.Context, id string) error {
	if err := r.inner.ReleaseIfPresent(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedParkingSlotRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.Del(ctx, slotCacheKey(id)).Err(); err != nil {
		logger.Get().Warn("slot cache invalidation failed",
			zap.String("slot_id", id),
			zap.Error(err))
	}
	r.invalidateLists(ctx)
}

func (r *CachedParkingSlotRepository) invalidateLists(ctx context.Context) {
	if err := r.cache.DeleteByPrefix(ctx, slotListCacheKeyPrefix); err != nil {
		logger.Get().Warn("slot list cache invalidation failed", zap.Error(err))
	}
}
