package rating

import (
	"math"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

// Weights is one position's weighting over the six attributes. A valid vector
// sums to 1.0 within WeightSumTolerance.
type Weights struct {
	Pace      float64
	Shooting  float64
	Passing   float64
	Dribbling float64
	Defending float64
	Physical  float64
}

const WeightSumTolerance = 1e-6

func (w Weights) Get(attr player.Attribute) float64 {
	switch attr {
	case player.AttrPace:
		return w.Pace
	case player.AttrShooting:
		return w.Shooting
	case player.AttrPassing:
		return w.Passing
	case player.AttrDribbling:
		return w.Dribbling
	case player.AttrDefending:
		return w.Defending
	case player.AttrPhysical:
		return w.Physical
	default:
		return 0
	}
}

func (w Weights) Sum() float64 {
	return w.Pace + w.Shooting + w.Passing + w.Dribbling + w.Defending + w.Physical
}

func (w Weights) Valid() bool {
	return math.Abs(w.Sum()-1.0) <= WeightSumTolerance
}

// GenericMidfieldWeights is the explicit fallback for positions missing from
// a table. Imported rosters carry inconsistent position strings, so lookups
// degrade to a central-midfield profile instead of failing.
var GenericMidfieldWeights = Weights{
	Pace:      0.15,
	Shooting:  0.10,
	Passing:   0.25,
	Dribbling: 0.20,
	Defending: 0.15,
	Physical:  0.15,
}

// WeightTable maps positions to attribute weight vectors. Tables are built
// once and injected; nothing mutates them after construction.
type WeightTable map[player.Position]Weights

func DefaultWeightTable() WeightTable {
	return WeightTable{
		player.PositionGoalkeeper: {
			Pace: 0.10, Shooting: 0.05, Passing: 0.15, Dribbling: 0.05, Defending: 0.35, Physical: 0.30,
		},
		player.PositionCenterBack: {
			Pace: 0.10, Shooting: 0.05, Passing: 0.10, Dribbling: 0.05, Defending: 0.40, Physical: 0.30,
		},
		player.PositionFullBack: {
			Pace: 0.20, Shooting: 0.05, Passing: 0.15, Dribbling: 0.10, Defending: 0.30, Physical: 0.20,
		},
		player.PositionDefensiveMidfielder: {
			Pace: 0.10, Shooting: 0.05, Passing: 0.25, Dribbling: 0.10, Defending: 0.30, Physical: 0.20,
		},
		player.PositionCentralMidfielder: GenericMidfieldWeights,
		player.PositionAttackingMidfielder: {
			Pace: 0.15, Shooting: 0.20, Passing: 0.25, Dribbling: 0.25, Defending: 0.05, Physical: 0.10,
		},
		player.PositionWinger: {
			Pace: 0.25, Shooting: 0.20, Passing: 0.15, Dribbling: 0.25, Defending: 0.05, Physical: 0.10,
		},
		player.PositionForward: {
			Pace: 0.20, Shooting: 0.30, Passing: 0.10, Dribbling: 0.20, Defending: 0.05, Physical: 0.15,
		},
	}
}

// ForPosition resolves the weight vector for a position, falling back to
// GenericMidfieldWeights when the position is not in the table.
func (t WeightTable) ForPosition(pos player.Position) Weights {
	if w, ok := t[pos]; ok {
		return w
	}
	return GenericMidfieldWeights
}
