package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisOTPStorage_Lifecycle(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	s := WithRedisOTPs(NewMemoryStorage(), rdb)
	email := uniqueID("otp") + "@Example.com"
	expires := time.Now().Add(time.Minute).Truncate(time.Millisecond)

	if err := s.MarkOTPVerified(email); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before save, got %v", err)
	}

	if err := s.SaveOTP(email, OTP{Code: "654321", ExpiresAt: expires}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.MarkOTPVerified(email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otp, err := s.GetOTP(email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otp.Code != "654321" || !otp.Verified || !otp.ExpiresAt.Equal(expires) {
		t.Errorf("expected stored otp, got %+v", otp)
	}

	ttl, _ := rdb.TTL(context.Background(), otpKey(email)).Result()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within a minute, got %v", ttl)
	}

	_ = s.DeleteOTP(email)
	if _, err := s.GetOTP(email); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisOTPStorage_DelegatesUsers(t *testing.T) {
	base := NewMemoryStorage()
	s := WithRedisOTPs(base, nil)

	if err := s.SaveDoctor(&SeedDoctors[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := base.GetDoctor(SeedDoctors[0].ID); err != nil {
		t.Errorf("expected doctor in wrapped storage, got %v", err)
	}
}
