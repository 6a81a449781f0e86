package player

import (
	"fmt"
	"time"
)

// Position represents the detailed on-pitch role a player is registered with.
type Position string

const (
	PositionGoalkeeper          Position = "GK"
	PositionCenterBack          Position = "CB"
	PositionFullBack            Position = "FB"
	PositionDefensiveMidfielder Position = "CDM"
	PositionCentralMidfielder   Position = "CM"
	PositionAttackingMidfielder Position = "CAM"
	PositionWinger              Position = "WG"
	PositionForward             Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper:          {},
	PositionCenterBack:          {},
	PositionFullBack:            {},
	PositionDefensiveMidfielder: {},
	PositionCentralMidfielder:   {},
	PositionAttackingMidfielder: {},
	PositionWinger:              {},
	PositionForward:             {},
}

// Role is the simplified 4-value grouping used when assembling teams.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DEF"
	RoleMidfielder Role = "MID"
	RoleForward    Role = "FWD"
)

func (p Position) Role() Role {
	switch p {
	case PositionGoalkeeper:
		return RoleGoalkeeper
	case PositionCenterBack, PositionFullBack:
		return RoleDefender
	case PositionDefensiveMidfielder, PositionCentralMidfielder, PositionAttackingMidfielder:
		return RoleMidfielder
	case PositionWinger, PositionForward:
		return RoleForward
	default:
		return RoleMidfielder
	}
}

// Attribute names one of the six skill dimensions.
type Attribute string

const (
	AttrPace      Attribute = "pace"
	AttrShooting  Attribute = "shooting"
	AttrPassing   Attribute = "passing"
	AttrDribbling Attribute = "dribbling"
	AttrDefending Attribute = "defending"
	AttrPhysical  Attribute = "physical"
)

// Attributes is the canonical ordering used wherever the six dimensions are iterated.
var Attributes = [6]Attribute{
	AttrPace,
	AttrShooting,
	AttrPassing,
	AttrDribbling,
	AttrDefending,
	AttrPhysical,
}

const (
	AttributeMin = 1
	AttributeMax = 99
)

// AttributeProfile is the six-dimensional skill vector. Every field stays
// inside [AttributeMin, AttributeMax]; computed values are clamped before
// they are stored. Only the rating distributor and the tag applier mutate it.
type AttributeProfile struct {
	Pace      int
	Shooting  int
	Passing   int
	Dribbling int
	Defending int
	Physical  int
}

func ClampAttribute(value int) int {
	if value < AttributeMin {
		return AttributeMin
	}
	if value > AttributeMax {
		return AttributeMax
	}
	return value
}

func (a AttributeProfile) Get(attr Attribute) int {
	switch attr {
	case AttrPace:
		return a.Pace
	case AttrShooting:
		return a.Shooting
	case AttrPassing:
		return a.Passing
	case AttrDribbling:
		return a.Dribbling
	case AttrDefending:
		return a.Defending
	case AttrPhysical:
		return a.Physical
	default:
		return 0
	}
}

func (a *AttributeProfile) Set(attr Attribute, value int) {
	switch attr {
	case AttrPace:
		a.Pace = value
	case AttrShooting:
		a.Shooting = value
	case AttrPassing:
		a.Passing = value
	case AttrDribbling:
		a.Dribbling = value
	case AttrDefending:
		a.Defending = value
	case AttrPhysical:
		a.Physical = value
	}
}

// Clamped returns a copy with every attribute forced into the legal range.
func (a AttributeProfile) Clamped() AttributeProfile {
	out := a
	for _, attr := range Attributes {
		out.Set(attr, ClampAttribute(out.Get(attr)))
	}
	return out
}

func (a AttributeProfile) Validate() error {
	for _, attr := range Attributes {
		value := a.Get(attr)
		if value < AttributeMin || value > AttributeMax {
			return fmt.Errorf("attribute %s out of range: %d", attr, value)
		}
	}
	return nil
}

// HistoryEntry is one appended record of a played match, kept for analytics.
type HistoryEntry struct {
	MatchID       string
	PlayedAt      time.Time
	ScoredFor     int
	ScoredAgainst int
}

// Player is one member of the recurring roster. The persistence layer owns
// the long-term copy; services receive a value, compute updates and hand the
// result back.
type Player struct {
	ID          string
	Name        string
	Position    Position
	Attributes  AttributeProfile
	OVR         int
	OriginalOVR *int
	History     []HistoryEntry
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if err := p.Attributes.Validate(); err != nil {
		return fmt.Errorf("player %s: %w", p.ID, err)
	}
	return nil
}
