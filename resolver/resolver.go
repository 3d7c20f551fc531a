// Package resolver maps an inbound slug to the couple that owns it. It is the
// only tenant lookup on the public path, so it exposes a deliberately narrow
// identity set instead of the full record.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/constants"
	"wedding_manager/model"
)

// ResolvedTenant is what downstream handlers may see about the couple.
type ResolvedTenant struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	GroomName   string    `json:"groomName"`
	BrideName   string    `json:"brideName"`
	WeddingDate time.Time `json:"weddingDate"`
}

type Resolver struct {
	db    *gorm.DB
	cache *redis.Client
	ttl   time.Duration
}

// New builds a resolver. cache may be nil; resolution then always hits the
// database.
func New(db *gorm.DB, cache *redis.Client, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Resolver{db: db, cache: cache, ttl: ttl}
}

func cacheKey(slug string) string {
	return fmt.Sprintf("tenant:%s", slug)
}

// Resolve finds the active, published couple behind slug. A missing couple,
// an inactive one and an unpublished one are indistinguishable to callers:
// all come back as a NotFound error, so the public edge cannot be used to
// enumerate tenants.
func (r *Resolver) Resolve(ctx context.Context, slug string) (*ResolvedTenant, error) {
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, cacheKey(slug)).Bytes(); err == nil {
			var t ResolvedTenant
			if json.Unmarshal(raw, &t) == nil {
				return &t, nil
			}
		}
	}

	var couple model.Couple
	err := r.db.WithContext(ctx).
		Select("id", "slug", "groom_name", "bride_name", "wedding_date").
		Where("slug = ? AND is_active = ? AND is_published = ?", slug, true, true).
		First(&couple).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(constants.COUPLE_NOT_FOUND)
		}
		return nil, apperr.Transient(constants.ERROR_INTERNAL_ERROR, err)
	}

	t := &ResolvedTenant{
		ID:          couple.ID,
		Slug:        couple.Slug,
		GroomName:   couple.GroomName,
		BrideName:   couple.BrideName,
		WeddingDate: couple.WeddingDate,
	}

	if r.cache != nil {
		if raw, err := json.Marshal(t); err == nil {
			if err := r.cache.Set(ctx, cacheKey(slug), raw, r.ttl).Err(); err != nil {
				log.Debug().Err(err).Str("slug", slug).Msg("tenant cache write failed")
			}
		}
	}

	return t, nil
}

// Invalidate drops the cached entry after any mutation that changes what the
// public site shows.
func (r *Resolver) Invalidate(ctx context.Context, slug string) {
	if r.cache == nil || slug == "" {
		return
	}
	if err := r.cache.Del(ctx, cacheKey(slug)).Err(); err != nil {
		log.Debug().Err(err).Str("slug", slug).Msg("tenant cache invalidate failed")
	}
}
