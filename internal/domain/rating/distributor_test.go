package rating

import (
	"errors"
	"math"
	"testing"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
)

func TestBandForRating(t *testing.T) {
	tests := []struct {
		rating  int
		want    Band
		wantErr bool
	}{
		{rating: 0, wantErr: true},
		{rating: 11, wantErr: true},
		{rating: -3, wantErr: true},
		{rating: 1, want: Band{Lower: 40, Upper: 49}},
		{rating: 2, want: Band{Lower: 50, Upper: 54}},
		{rating: 5, want: Band{Lower: 65, Upper: 69}},
		{rating: 9, want: Band{Lower: 85, Upper: 89}},
		{rating: 10, want: Band{Lower: 90, Upper: 99}},
	}

	for _, tt := range tests {
		band, err := BandForRating(tt.rating)
		if tt.wantErr {
			if !errors.Is(err, ErrRatingOutOfRange) {
				t.Fatalf("rating %d: expected ErrRatingOutOfRange, got %v", tt.rating, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("rating %d: unexpected error %v", tt.rating, err)
		}
		if band != tt.want {
			t.Fatalf("rating %d: expected %+v, got %+v", tt.rating, tt.want, band)
		}
	}
}

func TestDistributor_FirstRating_StaysInBand(t *testing.T) {
	dist := NewDistributor(nil, rng.NewRandomSource(), DefaultTuning())

	for generalRating := RatingMin; generalRating <= RatingMax; generalRating++ {
		band, err := BandForRating(generalRating)
		if err != nil {
			t.Fatalf("band for %d: %v", generalRating, err)
		}
		for pos := range player.AllPositions {
			// Jitter is live here, so run a few rounds per combination.
			for round := 0; round < 20; round++ {
				attrs, err := dist.Distribute(generalRating, pos, nil)
				if err != nil {
					t.Fatalf("distribute(%d, %s): %v", generalRating, pos, err)
				}
				for _, attr := range player.Attributes {
					if value := attrs.Get(attr); !band.Contains(value) {
						t.Fatalf("distribute(%d, %s): %s=%d outside band %+v", generalRating, pos, attr, value, band)
					}
				}
			}
		}
	}
}

func TestDistributor_DeterministicUnderFixedSource(t *testing.T) {
	current := &player.AttributeProfile{Pace: 66, Shooting: 72, Passing: 68, Dribbling: 70, Defending: 55, Physical: 61}

	first := NewDistributor(nil, rng.FixedSource{Value: 1}, DefaultTuning())
	second := NewDistributor(nil, rng.FixedSource{Value: 1}, DefaultTuning())

	a, err := first.Distribute(7, player.PositionWinger, current)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	b, err := second.Distribute(7, player.PositionWinger, current)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if a != b {
		t.Fatalf("same source and input must yield identical output: %+v vs %+v", a, b)
	}
}

func TestDistributor_FirstRating_WeightsPushTowardBandTop(t *testing.T) {
	dist := NewDistributor(nil, rng.FixedSource{Value: 0}, DefaultTuning())

	attrs, err := dist.Distribute(9, player.PositionForward, nil)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	// Forward weighting: shooting above midpoint, defending below.
	if attrs.Shooting <= attrs.Defending {
		t.Fatalf("expected shooting > defending for a forward, got %d vs %d", attrs.Shooting, attrs.Defending)
	}

	band := Band{Lower: 85, Upper: 89}
	for _, attr := range player.Attributes {
		if value := attrs.Get(attr); !band.Contains(value) {
			t.Fatalf("%s=%d outside band %+v before jitter", attr, value, band)
		}
	}
}

func TestDistributor_Reevaluation_BlendsCurrentAndTarget(t *testing.T) {
	tuning := DefaultTuning()
	dist := NewDistributor(nil, rng.FixedSource{Value: 0}, tuning)

	current := &player.AttributeProfile{Pace: 70, Shooting: 70, Passing: 70, Dribbling: 70, Defending: 70, Physical: 70}
	attrs, err := dist.Distribute(8, player.PositionCentralMidfielder, current)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	band, _ := BandForRating(8)
	base := band.Midpoint()
	variance := band.HalfWidth()

	weights := DefaultWeightTable()[player.PositionCentralMidfielder]
	for _, attr := range player.Attributes {
		target := base + (variance*weights.Get(attr)*2 - variance)
		blended := tuning.CurrentShare*float64(current.Get(attr)) + tuning.TargetShare*target
		want := band.Clamp(int(math.Round(blended)))
		if got := attrs.Get(attr); got != want {
			t.Fatalf("%s: expected pre-jitter blend %d, got %d", attr, want, got)
		}
	}
}

func TestDistributor_JitterBounded(t *testing.T) {
	tuning := DefaultTuning()
	deterministic := NewDistributor(nil, rng.FixedSource{Value: 0}, tuning)
	jittered := NewDistributor(nil, rng.NewRandomSource(), tuning)

	current := &player.AttributeProfile{Pace: 60, Shooting: 64, Passing: 62, Dribbling: 66, Defending: 58, Physical: 63}

	baseline, err := deterministic.Distribute(6, player.PositionFullBack, current)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	for round := 0; round < 50; round++ {
		attrs, err := jittered.Distribute(6, player.PositionFullBack, current)
		if err != nil {
			t.Fatalf("distribute: %v", err)
		}
		for _, attr := range player.Attributes {
			delta := attrs.Get(attr) - baseline.Get(attr)
			if delta < -tuning.JitterRange || delta > tuning.JitterRange {
				t.Fatalf("%s: jitter %d exceeds +-%d", attr, delta, tuning.JitterRange)
			}
		}
	}
}

func TestDistributor_InvalidRating(t *testing.T) {
	dist := NewDistributor(nil, rng.NewRandomSource(), DefaultTuning())

	for _, generalRating := range []int{0, 11, 100, -1} {
		if _, err := dist.Distribute(generalRating, player.PositionForward, nil); !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("rating %d: expected ErrRatingOutOfRange, got %v", generalRating, err)
		}
	}
}

func TestDistributor_UnknownPositionFallsBack(t *testing.T) {
	dist := NewDistributor(nil, rng.FixedSource{Value: 0}, DefaultTuning())

	unknown, err := dist.Distribute(7, player.Position("SWEEPER"), nil)
	if err != nil {
		t.Fatalf("distribute unknown position: %v", err)
	}
	generic, err := dist.Distribute(7, player.PositionCentralMidfielder, nil)
	if err != nil {
		t.Fatalf("distribute generic midfield: %v", err)
	}
	if unknown != generic {
		t.Fatalf("unknown position must use generic midfield weights: %+v vs %+v", unknown, generic)
	}
}
