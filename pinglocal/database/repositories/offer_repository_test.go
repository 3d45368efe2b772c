package repositories

import "testing"

func TestFloorDecrement(t *testing.T) {
	tests := []struct {
		name    string
		current int
		by      int
		want    int
	}{
		{"SimpleDecrement", 5, 1, 4},
		{"PartyOfThree", 7, 3, 4},
		{"HitsZeroExactly", 3, 3, 0},
		{"ClampedAtZero", 1, 3, 0},
		{"AlreadyZero", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := floorDecrement(tt.current, tt.by); got != tt.want {
				t.Errorf("floorDecrement(%d, %d) = %d, want %d", tt.current, tt.by, got, tt.want)
			}
		})
	}
}

func TestFloorDecrement_RepeatedFromZero(t *testing.T) {
	count := 2
	for i := 0; i < 5; i++ {
		count = floorDecrement(count, 1)
		if count < 0 {
			t.Fatalf("counter went negative after %d decrements: %d", i+1, count)
		}
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}
