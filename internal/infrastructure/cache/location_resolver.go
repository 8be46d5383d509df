package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ stock.LocationResolver = (*LocationResolver)(nil)

// LocationResolver resuelve códigos de ubicación contra la BD con un caché
// Redis por delante. Los códigos son inmutables, así que las entradas solo
// expiran por TTL. Con rdb nil funciona sin caché (Redis deshabilitado).
type LocationResolver struct {
	locations repository.StorageLocationRepository
	rdb       *redis.Client
	ttl       time.Duration
}

// NewLocationResolver construye el resolutor. rdb puede ser nil.
func NewLocationResolver(locations repository.StorageLocationRepository, rdb *redis.Client, ttl time.Duration) *LocationResolver {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocationResolver{locations: locations, rdb: rdb, ttl: ttl}
}

// Resolve devuelve la ubicación para un código, o domain.ErrLocationNotFound.
func (r *LocationResolver) Resolve(ctx context.Context, code string) (*entity.StorageLocation, error) {
	if r.rdb != nil {
		// caché caído o miss: seguir contra la BD
		if raw, err := r.rdb.Get(ctx, "location:code:"+code).Bytes(); err == nil {
			var loc entity.StorageLocation
			if json.Unmarshal(raw, &loc) == nil {
				return &loc, nil
			}
		}
	}
	loc, err := r.locations.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	if r.rdb != nil {
		if raw, err := json.Marshal(loc); err == nil {
			_ = r.rdb.Set(ctx, "location:code:"+code, raw, r.ttl).Err()
		}
		_ = r.rdb.Set(ctx, "location:id:"+loc.ID, loc.Code, r.ttl).Err()
	}
	return loc, nil
}

// CodeOf devuelve el código de una ubicación por ID, o domain.ErrLocationNotFound.
func (r *LocationResolver) CodeOf(ctx context.Context, storageLocationID string) (string, error) {
	if r.rdb != nil {
		if code, err := r.rdb.Get(ctx, "location:id:"+storageLocationID).Result(); err == nil {
			return code, nil
		}
	}
	loc, err := r.locations.GetByID(storageLocationID)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return "", domain.ErrLocationNotFound
	}
	if r.rdb != nil {
		_ = r.rdb.Set(ctx, "location:id:"+loc.ID, loc.Code, r.ttl).Err()
	}
	return loc.Code, nil
}
