package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis serializes booking attempts. A booking takes two short-lived locks:
// one keyed by enterprise (one booking in flight per enterprise) and one
// keyed by booth (one booking in flight per booth). The real invariant is
// still enforced by the conditional update in the booth store; the locks
// close the window where two callers pass the pre-checks together.
type Redis struct {
	Client  *redis.Client
	LockTTL time.Duration
	Logger  *log.Logger
}

func NewRedis(client *redis.Client, lockTTL time.Duration) *Redis {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &Redis{
		Client:  client,
		LockTTL: lockTTL,
		Logger:  log.Default(),
	}
}

func enterpriseKey(enterpriseID string) string { return "booking_lock:enterprise:" + enterpriseID }
func boothKey(boothID string) string           { return "booking_lock:booth:" + boothID }

// LockBooking takes both locks, rolling back the first if the second is
// already held.
func (r *Redis) LockBooking(enterpriseID, boothID string) (bool, error) {
	ctx := context.Background()

	ok, err := r.Client.SetNX(ctx, enterpriseKey(enterpriseID), boothID, r.LockTTL).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	ok, err = r.Client.SetNX(ctx, boothKey(boothID), enterpriseID, r.LockTTL).Result()
	if err != nil {
		r.release(ctx, enterpriseKey(enterpriseID), boothID)
		return false, err
	}
	if !ok {
		r.release(ctx, enterpriseKey(enterpriseID), boothID)
		return false, nil
	}

	return true, nil
}

// UnlockBooking releases both locks. Each lock is deleted only if this
// booking still owns it.
func (r *Redis) UnlockBooking(enterpriseID, boothID string) error {
	ctx := context.Background()

	var firstErr error
	if err := r.release(ctx, enterpriseKey(enterpriseID), boothID); err != nil {
		firstErr = err
	}
	if err := r.release(ctx, boothKey(boothID), enterpriseID); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (r *Redis) release(ctx context.Context, key, owner string) error {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already expired
	}
	if err != nil {
		return err
	}
	if val == owner {
		if _, err := r.Client.Del(ctx, key).Result(); err != nil {
			return err
		}
	} else {
		r.Logger.Println(fmt.Sprintf("REDIS: lock %s held by another booking, not releasing", key))
	}
	return nil
}
