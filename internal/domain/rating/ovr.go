package rating

import (
	"math"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

// Calculator derives a single overall rating (OVR) from an attribute profile
// using the weight vector of the player's position.
type Calculator struct {
	table WeightTable
}

func NewCalculator(table WeightTable) *Calculator {
	if table == nil {
		table = DefaultWeightTable()
	}
	return &Calculator{table: table}
}

// Compute returns the position-weighted sum of the six attributes, rounded to
// the nearest integer and clamped to [1,99]. Unknown positions resolve to the
// generic midfield weights, never an error.
func (c *Calculator) Compute(attrs player.AttributeProfile, pos player.Position) int {
	weights := c.table.ForPosition(pos)

	sum := 0.0
	for _, attr := range player.Attributes {
		sum += float64(attrs.Get(attr)) * weights.Get(attr)
	}

	return player.ClampAttribute(int(math.Round(sum)))
}

// TeamOVR is the rounded mean of member OVRs; zero for an empty slice.
func TeamOVR(ovrs []int) int {
	if len(ovrs) == 0 {
		return 0
	}
	sum := 0
	for _, ovr := range ovrs {
		sum += ovr
	}
	return int(math.Round(float64(sum) / float64(len(ovrs))))
}
