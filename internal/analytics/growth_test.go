package analytics

import "testing"

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"regular increase", 150, 100, 50},
		{"regular decrease", 3500, 5000, -30},
		{"appeared from nothing", 500, 0, 100},
		{"stayed at nothing", 0, 0, 0},
		{"dropped to nothing", 0, 8000, -100},
		{"negative previous", 250, -100, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Growth(tt.current, tt.previous)
			if got != tt.want {
				t.Errorf("Growth(%.2f, %.2f) = %.4f, want %.4f", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}
