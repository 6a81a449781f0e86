package rating

import (
	"errors"
	"fmt"
	"math"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
)

var ErrRatingOutOfRange = errors.New("general rating out of range")

const (
	RatingMin = 1
	RatingMax = 10
)

// Band is the numeric range of plausible attribute values for one coarse
// 1-10 rating.
type Band struct {
	Lower int
	Upper int
}

func (b Band) Midpoint() float64 {
	return float64(b.Lower+b.Upper) / 2
}

func (b Band) HalfWidth() float64 {
	return float64(b.Upper-b.Lower) / 2
}

func (b Band) Clamp(value int) int {
	if value < b.Lower {
		return b.Lower
	}
	if value > b.Upper {
		return b.Upper
	}
	return value
}

func (b Band) Contains(value int) bool {
	return value >= b.Lower && value <= b.Upper
}

// BandForRating maps a coarse rating to its attribute band. Ratings 2-9 are
// five points wide; the extremes are widened so rating 1 reaches down to 40
// and rating 10 allows exceptional ceiling values up to 99.
func BandForRating(generalRating int) (Band, error) {
	if generalRating < RatingMin || generalRating > RatingMax {
		return Band{}, fmt.Errorf("%w: %d", ErrRatingOutOfRange, generalRating)
	}
	switch generalRating {
	case RatingMin:
		return Band{Lower: 40, Upper: 49}, nil
	case RatingMax:
		return Band{Lower: 90, Upper: 99}, nil
	default:
		lower := 40 + generalRating*5
		return Band{Lower: lower, Upper: lower + 4}, nil
	}
}

// Tuning carries the distributor constants that were tuned by inspection in
// the original ruleset. They are parameters, not fixed law, so tests and
// future calibration can swap them.
type Tuning struct {
	// CurrentShare and TargetShare blend prior attributes into the target
	// band on re-evaluation, smoothing out single-evaluation jumps.
	CurrentShare float64
	TargetShare  float64
	// FirstRatingSpread scales how far position weights push attributes
	// from the band midpoint on a first-time rating.
	FirstRatingSpread float64
	// JitterRange bounds the random offset applied per attribute.
	JitterRange int
}

func DefaultTuning() Tuning {
	return Tuning{
		CurrentShare:      0.3,
		TargetShare:       0.7,
		FirstRatingSpread: 3,
		JitterRange:       2,
	}
}

// Distributor maps a coarse 1-10 evaluation rating into a full attribute
// profile, weighted by position so the attributes that matter for the role
// land toward the top of the band.
type Distributor struct {
	table  WeightTable
	random rng.Source
	tuning Tuning
}

func NewDistributor(table WeightTable, random rng.Source, tuning Tuning) *Distributor {
	if table == nil {
		table = DefaultWeightTable()
	}
	if random == nil {
		random = rng.NewRandomSource()
	}
	return &Distributor{table: table, random: random, tuning: tuning}
}

const meanWeight = 1.0 / 6.0

// Distribute computes the new profile for a rating. A nil current profile
// means a first-time rating; otherwise prior attributes are blended in.
// Unknown positions fall back to the generic midfield weights.
func (d *Distributor) Distribute(generalRating int, pos player.Position, current *player.AttributeProfile) (player.AttributeProfile, error) {
	band, err := BandForRating(generalRating)
	if err != nil {
		return player.AttributeProfile{}, err
	}

	weights := d.table.ForPosition(pos)
	base := band.Midpoint()
	variance := band.HalfWidth()

	var out player.AttributeProfile
	for _, attr := range player.Attributes {
		w := weights.Get(attr)

		var value int
		if current == nil {
			value = int(math.Round(base + (w-meanWeight)*variance*d.tuning.FirstRatingSpread))
		} else {
			target := base + (variance*w*2 - variance)
			blended := d.tuning.CurrentShare*float64(current.Get(attr)) + d.tuning.TargetShare*target
			value = int(math.Round(blended))
		}
		value = band.Clamp(value)

		jitter := d.random.IntBetween(-d.tuning.JitterRange, d.tuning.JitterRange)
		out.Set(attr, band.Clamp(value+jitter))
	}

	return out, nil
}
