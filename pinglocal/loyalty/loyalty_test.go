package loyalty

import "testing"

func TestPointsForBill(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole amount", amount: 10.00, want: 100},
		{name: "rounds down below half", amount: 10.04, want: 100},
		{name: "rounds down at half", amount: 10.05, want: 100},
		{name: "sub-point amount", amount: 0.09, want: 0},
		{name: "zero", amount: 0, want: 0},
		{name: "large bill", amount: 1234.56, want: 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsForBill(tt.amount); got != tt.want {
				t.Errorf("PointsForBill(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   string
	}{
		{name: "zero is member", points: 0, want: TierMember},
		{name: "just below hero", points: 9, want: TierMember},
		{name: "hero lower bound", points: 10, want: TierHero},
		{name: "hero upper bound", points: 1199, want: TierHero},
		{name: "champion lower bound", points: 1200, want: TierChampion},
		{name: "champion upper bound", points: 9999, want: TierChampion},
		{name: "legend lower bound", points: 10000, want: TierLegend},
		{name: "far past legend", points: 500000, want: TierLegend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierForPoints(tt.points); got != tt.want {
				t.Errorf("TierForPoints(%v) = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}

func TestTierMonotonicity(t *testing.T) {
	rank := map[string]int{
		TierMember:   0,
		TierHero:     1,
		TierChampion: 2,
		TierLegend:   3,
	}

	previous := TierForPoints(0)
	for points := int64(1); points <= 11000; points++ {
		current := TierForPoints(points)
		if rank[current] < rank[previous] {
			t.Fatalf("tier decreased from %s to %s at %d points", previous, current, points)
		}
		previous = current
	}
}
