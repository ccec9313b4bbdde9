package repository

import "errors"

var (
	ErrRedisConnection    = errors.New("redis connection error")
	ErrInvalidBookingData = errors.New("invalid booking data")
	ErrUnknownBackend     = errors.New("unknown booking store backend")
)
