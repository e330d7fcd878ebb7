package pairs

import (
	"errors"
	"math"
	"testing"
)

func TestSpread(t *testing.T) {
	a := []float64{1, 0.5, 0}
	b := []float64{0, 0.5, 1}
	got := spread(a, b)
	want := []float64{1, 0, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestDispersionSampleStdDev(t *testing.T) {
	// sample variance of {1,2,3,4} is 5/3
	got, err := dispersion([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("dispersion returned error: %v", err)
	}
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDispersionConstantSeries(t *testing.T) {
	got, err := dispersion([]float64{2, 2, 2})
	if err != nil {
		t.Fatalf("dispersion returned error: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestDispersionInsufficientHistory(t *testing.T) {
	if _, err := dispersion([]float64{1}); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := dispersion(nil); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}
