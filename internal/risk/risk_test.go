package risk

import "testing"

func TestLimitsAllow(t *testing.T) {
	limits := Limits{MaxOpenPairs: 2}
	if !limits.Allow(0) {
		t.Fatalf("expected entry allowed with no open pairs")
	}
	if !limits.Allow(1) {
		t.Fatalf("expected entry allowed below cap")
	}
	if limits.Allow(2) {
		t.Fatalf("expected entry rejected at cap")
	}
}

func TestLimitsZeroCapUnlimited(t *testing.T) {
	limits := Limits{}
	if !limits.Allow(1000) {
		t.Fatalf("expected zero cap to disable the check")
	}
}
