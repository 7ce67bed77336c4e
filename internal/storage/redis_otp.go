package storage

import (
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "wecare:otp:"

// RedisOTPStorage keeps password reset codes in Redis so they expire on their
// own. Everything else goes to the wrapped Storage.
type RedisOTPStorage struct {
	Storage
	rdb *redis.Client
}

func WithRedisOTPs(base Storage, rdb *redis.Client) *RedisOTPStorage {
	return &RedisOTPStorage{Storage: base, rdb: rdb}
}

func otpKey(email string) string {
	return otpKeyPrefix + normalizeEmail(email)
}

func (s *RedisOTPStorage) SaveOTP(email string, otp OTP) error {
	ctx, cancel := queryContext()
	defer cancel()

	ttl := time.Until(otp.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}

	key := otpKey(email)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", otp.Code,
			"expires_at", strconv.FormatInt(otp.ExpiresAt.UnixMilli(), 10),
			"verified", strconv.FormatBool(otp.Verified),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *RedisOTPStorage) GetOTP(email string) (*OTP, error) {
	ctx, cancel := queryContext()
	defer cancel()

	fields, err := s.rdb.HGetAll(ctx, otpKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, errors.New("malformed otp entry")
	}
	verified, _ := strconv.ParseBool(fields["verified"])

	return &OTP{
		Code:      fields["code"],
		ExpiresAt: time.UnixMilli(expiresAt),
		Verified:  verified,
	}, nil
}

func (s *RedisOTPStorage) MarkOTPVerified(email string) error {
	ctx, cancel := queryContext()
	defer cancel()

	// HSET keeps the key's TTL.
	n, err := s.rdb.Exists(ctx, otpKey(email)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return s.rdb.HSet(ctx, otpKey(email), "verified", "true").Err()
}

func (s *RedisOTPStorage) DeleteOTP(email string) error {
	ctx, cancel := queryContext()
	defer cancel()

	return s.rdb.Del(ctx, otpKey(email)).Err()
}

// DeleteExpiredOTPs is a no-op; Redis expires the keys itself.
func (s *RedisOTPStorage) DeleteExpiredOTPs(time.Time) (int64, error) {
	return 0, nil
}

var _ Storage = (*RedisOTPStorage)(nil)
