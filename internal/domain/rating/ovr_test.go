package rating

import (
	"math"
	"testing"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

func TestDefaultWeightTable_SumsToOne(t *testing.T) {
	table := DefaultWeightTable()
	if len(table) != len(player.AllPositions) {
		t.Fatalf("expected %d positions, got %d", len(player.AllPositions), len(table))
	}

	for pos, weights := range table {
		if !weights.Valid() {
			t.Fatalf("weights for %s sum to %f", pos, weights.Sum())
		}
	}

	if !GenericMidfieldWeights.Valid() {
		t.Fatalf("generic midfield weights sum to %f", GenericMidfieldWeights.Sum())
	}
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(nil)

	flat := player.AttributeProfile{Pace: 70, Shooting: 70, Passing: 70, Dribbling: 70, Defending: 70, Physical: 70}
	for pos := range player.AllPositions {
		// A flat profile must score the same for any position since the
		// weights sum to one.
		if ovr := calc.Compute(flat, pos); ovr != 70 {
			t.Fatalf("flat profile for %s: expected 70, got %d", pos, ovr)
		}
	}
}

func TestCalculator_Compute_UnknownPositionFallsBack(t *testing.T) {
	calc := NewCalculator(nil)
	attrs := player.AttributeProfile{Pace: 80, Shooting: 60, Passing: 90, Dribbling: 70, Defending: 50, Physical: 65}

	got := calc.Compute(attrs, player.Position("Mediocampista Central"))
	want := calc.Compute(attrs, player.PositionCentralMidfielder)
	if got != want {
		t.Fatalf("unknown position: expected generic midfield ovr %d, got %d", want, got)
	}
}

func TestCalculator_Compute_MonotoneInEachAttribute(t *testing.T) {
	calc := NewCalculator(nil)
	base := player.AttributeProfile{Pace: 50, Shooting: 50, Passing: 50, Dribbling: 50, Defending: 50, Physical: 50}

	for pos := range player.AllPositions {
		for _, attr := range player.Attributes {
			prev := calc.Compute(base, pos)
			for value := 51; value <= 99; value += 12 {
				bumped := base
				bumped.Set(attr, value)
				next := calc.Compute(bumped, pos)
				if next < prev {
					t.Fatalf("ovr decreased for %s when raising %s to %d: %d -> %d", pos, attr, value, prev, next)
				}
				prev = next
			}
		}
	}
}

func TestCalculator_Compute_Clamped(t *testing.T) {
	calc := NewCalculator(nil)

	low := player.AttributeProfile{Pace: 1, Shooting: 1, Passing: 1, Dribbling: 1, Defending: 1, Physical: 1}
	if ovr := calc.Compute(low, player.PositionForward); ovr != player.AttributeMin {
		t.Fatalf("expected min ovr, got %d", ovr)
	}

	high := player.AttributeProfile{Pace: 99, Shooting: 99, Passing: 99, Dribbling: 99, Defending: 99, Physical: 99}
	if ovr := calc.Compute(high, player.PositionForward); ovr != player.AttributeMax {
		t.Fatalf("expected max ovr, got %d", ovr)
	}
}

func TestTeamOVR(t *testing.T) {
	tests := []struct {
		name string
		ovrs []int
		want int
	}{
		{name: "empty", ovrs: nil, want: 0},
		{name: "single", ovrs: []int{84}, want: 84},
		{name: "rounds up", ovrs: []int{80, 81}, want: 81},
		{name: "exact mean", ovrs: []int{70, 80, 90}, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeamOVR(tt.ovrs); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWeights_Get_CoversAllAttributes(t *testing.T) {
	weights := GenericMidfieldWeights
	sum := 0.0
	for _, attr := range player.Attributes {
		sum += weights.Get(attr)
	}
	if math.Abs(sum-weights.Sum()) > WeightSumTolerance {
		t.Fatalf("Get does not cover every attribute: %f vs %f", sum, weights.Sum())
	}
}
