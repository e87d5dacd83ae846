package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedLimiterIsolatesKeys(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "test",
		Burst:         1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	if !kl.Allow("session-a") {
		t.Error("first request for session-a should be allowed")
	}
	if kl.Allow("session-a") {
		t.Error("second request for session-a should be rejected")
	}
	if !kl.Allow("session-b") {
		t.Error("session-b must not be affected by session-a's bucket")
	}
}

func TestKeyedLimiterEmptyKey(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "test",
		Burst:         1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	for range 5 {
		if !kl.Allow("") {
			t.Fatal("empty key must never be limited")
		}
	}
}

func TestKeyedLimiterActiveCount(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "test",
		Burst:         5,
		RefillRate:    1,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	kl.Allow("a")
	kl.Allow("b")
	kl.Allow("a")

	if got := kl.GetActiveCount(); got != 2 {
		t.Errorf("GetActiveCount() = %d, want 2", got)
	}
}

func TestKeyedLimiterGetAvailable(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "test",
		Burst:         3,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	if got := kl.GetAvailable("unknown"); got != 3 {
		t.Errorf("GetAvailable for unknown key = %v, want burst", got)
	}

	kl.Allow("a")
	if got := kl.GetAvailable("a"); got >= 3 {
		t.Errorf("GetAvailable after consume = %v, want < 3", got)
	}
}
