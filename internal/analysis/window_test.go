package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/proplines/lines-api/internal/models"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		windowSize int
		wantMean   float64
		wantStdDev float64
		wantCount  int
	}{
		{
			name:       "Window Spans Whole Log",
			values:     []float64{20, 22, 25, 24, 26, 28, 30, 29, 31, 33},
			windowSize: 10,
			wantMean:   26.8,
			wantStdDev: 4.131182,
			wantCount:  10,
		},
		{
			name:       "Window Takes Most Recent Games",
			values:     []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			windowSize: 5,
			wantMean:   8,
			wantStdDev: 1.581139,
			wantCount:  5,
		},
		{
			name:       "Short Log Caps Count",
			values:     []float64{10, 12, 14},
			windowSize: 10,
			wantMean:   12,
			wantStdDev: 2,
			wantCount:  3,
		},
		{
			name:       "Identical Values Have Zero Deviation",
			values:     []float64{7, 7, 7, 7},
			windowSize: 4,
			wantMean:   7,
			wantStdDev: 0,
			wantCount:  4,
		},
		{
			name:       "Single Game Has Zero Deviation",
			values:     []float64{23},
			windowSize: 5,
			wantMean:   23,
			wantStdDev: 0,
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Window(makeLog(tt.values, nil), tt.windowSize)
			if err != nil {
				t.Fatalf("Window() error = %v", err)
			}
			if !almostEqual(got.Mean, tt.wantMean, 1e-6) {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.wantMean)
			}
			if !almostEqual(got.StdDev, tt.wantStdDev, 1e-6) {
				t.Errorf("StdDev = %v, want %v", got.StdDev, tt.wantStdDev)
			}
			if got.StdDev < 0 {
				t.Errorf("StdDev = %v, must never be negative", got.StdDev)
			}
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
			if got.WindowSize != tt.windowSize {
				t.Errorf("WindowSize = %d, want %d", got.WindowSize, tt.windowSize)
			}
		})
	}
}

func TestWindowEmptyLog(t *testing.T) {
	_, err := Window(models.GameLog{}, 5)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Window() error = %v, want ErrInsufficientData", err)
	}
}

func TestWindowInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := Window(makeLog([]float64{10}, nil), size); err == nil {
			t.Errorf("Window(size=%d) expected error, got nil", size)
		}
	}
}

func TestWindowOutliersFlaggedNotExcluded(t *testing.T) {
	// Ten quiet games and one blowout. The blowout is flagged but still
	// moves the mean.
	values := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 100}
	got, err := Window(makeLog(values, nil), len(values))
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}

	if !reflect.DeepEqual(got.Outliers, []int{10}) {
		t.Errorf("Outliers = %v, want [10]", got.Outliers)
	}
	wantMean := 200.0 / 11.0
	if !almostEqual(got.Mean, wantMean, 1e-6) {
		t.Errorf("Mean = %v, want %v (outlier must count toward the mean)", got.Mean, wantMean)
	}
}

func TestWindowNoOutliersWithoutSpread(t *testing.T) {
	got, err := Window(makeLog([]float64{5, 5, 5}, nil), 3)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if len(got.Outliers) != 0 {
		t.Errorf("Outliers = %v, want none", got.Outliers)
	}
}

func TestWindowDeterministic(t *testing.T) {
	log := makeLog([]float64{20, 22, 25, 24, 26, 28, 30, 29, 31, 33}, nil)
	first, err := Window(log, 5)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	second, err := Window(log, 5)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Window() over the same log differs: %+v vs %+v", first, second)
	}
}
