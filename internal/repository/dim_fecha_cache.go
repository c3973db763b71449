package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cachedDimFechaRepo is a Redis read-through cache in front of the date
// dimension. Only positive hits are cached: the ETL may append dates later, so
// a miss must always reach the database.
type cachedDimFechaRepo struct {
	next DimFechaRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedDimFechaRepository wraps next with a Redis cache. A nil client
// returns next unchanged.
func NewCachedDimFechaRepository(next DimFechaRepository, rdb *redis.Client, ttl time.Duration) DimFechaRepository {
	if rdb == nil {
		return next
	}
	return &cachedDimFechaRepo{next: next, rdb: rdb, ttl: ttl}
}

func keyPorFecha(fecha time.Time) string { return "dimfecha:fecha:" + fecha.Format(time.DateOnly) }
func keyPorID(id int) string              { return "dimfecha:id:" + strconv.Itoa(id) }

func (r *cachedDimFechaRepo) FindIDByFecha(ctx context.Context, fecha time.Time) (int, error) {
	key := keyPorFecha(fecha)
	if v, err := r.rdb.Get(ctx, key).Int(); err == nil {
		return v, nil
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("dim_fecha cache read failed")
	}

	id, err := r.next.FindIDByFecha(ctx, fecha)
	if err != nil {
		return 0, err
	}
	r.store(ctx, key, strconv.Itoa(id))
	r.store(ctx, keyPorID(id), fecha.Format(time.DateOnly))
	return id, nil
}

func (r *cachedDimFechaRepo) FindFechaByID(ctx context.Context, id int) (time.Time, error) {
	key := keyPorID(id)
	if v, err := r.rdb.Get(ctx, key).Result(); err == nil {
		if fecha, perr := time.Parse(time.DateOnly, v); perr == nil {
			return fecha, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("dim_fecha cache read failed")
	}

	fecha, err := r.next.FindFechaByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	r.store(ctx, key, fecha.Format(time.DateOnly))
	r.store(ctx, keyPorFecha(fecha), strconv.Itoa(id))
	return fecha, nil
}

func (r *cachedDimFechaRepo) store(ctx context.Context, key, value string) {
	if err := r.rdb.Set(ctx, key, value, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dim_fecha cache write failed")
	}
}
