package core

import (
	"testing"
)

func TestTrialSeed_Deterministic(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		a := TrialSeed(42, trial)
		b := TrialSeed(42, trial)
		if a != b {
			t.Fatalf("TrialSeed(42, %d) not deterministic: %d != %d", trial, a, b)
		}
	}
}

func TestTrialSeed_DistinctAcrossTrials(t *testing.T) {
	seen := make(map[int64]int)
	for trial := 0; trial < 10_000; trial++ {
		s := TrialSeed(42, trial)
		if prev, dup := seen[s]; dup {
			t.Fatalf("trials %d and %d collided on seed %d", prev, trial, s)
		}
		seen[s] = trial
	}
}

func TestTrialSeed_DependsOnBase(t *testing.T) {
	if TrialSeed(1, 0) == TrialSeed(2, 0) {
		t.Error("different base seeds produced the same trial seed")
	}
}

func TestRunFingerprint(t *testing.T) {
	cfg := []byte(`{"voters":100}`)

	t.Run("stable", func(t *testing.T) {
		a := RunFingerprint(cfg, 42, []string{"borda", "plurality"})
		b := RunFingerprint(cfg, 42, []string{"borda", "plurality"})
		if a != b {
			t.Errorf("identical inputs produced different fingerprints: %s vs %s", a, b)
		}
	})

	t.Run("sensitive to seed", func(t *testing.T) {
		a := RunFingerprint(cfg, 42, []string{"plurality"})
		b := RunFingerprint(cfg, 43, []string{"plurality"})
		if a == b {
			t.Error("different seeds produced the same fingerprint")
		}
	})

	t.Run("sensitive to methods", func(t *testing.T) {
		a := RunFingerprint(cfg, 42, []string{"plurality"})
		b := RunFingerprint(cfg, 42, []string{"borda"})
		if a == b {
			t.Error("different method sets produced the same fingerprint")
		}
	})
}
