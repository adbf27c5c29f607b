package ajbsp

import (
	"context"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SplitCost != kSplitCostDefault {
		t.Errorf("expected split cost %d, got %d", kSplitCostDefault, cfg.SplitCost)
	}
	if !cfg.CompressNodes {
		t.Error("expected CompressNodes to default to true")
	}
	if cfg.Limits.CheckInterval != 64 {
		t.Errorf("expected check interval 64, got %d", cfg.Limits.CheckInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}.validate()

	if cfg.SplitCost != kSplitCostDefault {
		t.Errorf("expected zero-value SplitCost to default to %d, got %d", kSplitCostDefault, cfg.SplitCost)
	}
	if cfg.Limits.CheckInterval != DefaultLimits().CheckInterval {
		t.Errorf("expected zero-value CheckInterval to default, got %d", cfg.Limits.CheckInterval)
	}
}

func TestCancelChecker(t *testing.T) {
	t.Run("basic cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cc := newCancelChecker(ctx, 10)

		if cc.CheckNow() {
			t.Error("should not be cancelled initially")
		}

		cancel()
		if !cc.CheckNow() {
			t.Error("should be cancelled after cancel()")
		}
		if cc.Err() != ErrBuildCancelled {
			t.Errorf("expected ErrBuildCancelled, got %v", cc.Err())
		}
	})

	t.Run("periodic checking", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cc := newCancelChecker(ctx, 100)

		for i := 0; i < 99; i++ {
			if cc.Check() {
				t.Errorf("iteration %d should not be cancelled", i)
			}
		}
		cancel()
		// Counter has not reached the interval boundary yet, so the
		// cheap path may still report false until CheckNow is used.
		if !cc.CheckNow() {
			t.Error("CheckNow should observe cancellation immediately")
		}
	})
}
