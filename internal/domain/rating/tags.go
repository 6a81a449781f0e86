package rating

import "github.com/fulbito-app/fulbito/internal/domain/player"

// Tag is a discrete post-match observation carrying a fixed attribute bonus.
type Tag string

const (
	TagGoal        Tag = "goal"
	TagAssist      Tag = "assist"
	TagKeyPass     Tag = "key_pass"
	TagDribbleRun  Tag = "dribble_run"
	TagSpeedster   Tag = "speedster"
	TagCleanSheet  Tag = "clean_sheet"
	TagBigSaves    Tag = "big_saves"
	TagHardTackler Tag = "hard_tackler"
	TagBoxToBox    Tag = "box_to_box"
)

// TagDelta is one attribute bonus granted by a tag.
type TagDelta struct {
	Attr   player.Attribute
	Points int
}

// TagCatalog maps tags to their bonuses. The catalog evolves independently of
// stored evaluations, so unknown tag ids in old records are ignored.
type TagCatalog map[Tag][]TagDelta

func DefaultTagCatalog() TagCatalog {
	return TagCatalog{
		TagGoal:        {{Attr: player.AttrShooting, Points: 2}},
		TagAssist:      {{Attr: player.AttrPassing, Points: 2}},
		TagKeyPass:     {{Attr: player.AttrDribbling, Points: 1}, {Attr: player.AttrPassing, Points: 1}},
		TagDribbleRun:  {{Attr: player.AttrDribbling, Points: 2}},
		TagSpeedster:   {{Attr: player.AttrPace, Points: 2}},
		TagCleanSheet:  {{Attr: player.AttrDefending, Points: 2}},
		TagBigSaves:    {{Attr: player.AttrDefending, Points: 1}, {Attr: player.AttrPhysical, Points: 1}},
		TagHardTackler: {{Attr: player.AttrDefending, Points: 1}, {Attr: player.AttrPhysical, Points: 1}},
		TagBoxToBox:    {{Attr: player.AttrPhysical, Points: 2}},
	}
}

// TagApplier applies fixed tag bonuses to an attribute profile. This path is
// deliberately simpler than the distributor: small additive nudges, no
// randomness.
type TagApplier struct {
	catalog TagCatalog
}

func NewTagApplier(catalog TagCatalog) *TagApplier {
	if catalog == nil {
		catalog = DefaultTagCatalog()
	}
	return &TagApplier{catalog: catalog}
}

// Apply accumulates the deltas of every known tag per attribute, then clamps
// each attribute to [1,99]. Unknown tags are skipped.
func (a *TagApplier) Apply(attrs player.AttributeProfile, tags []Tag) player.AttributeProfile {
	deltas := make(map[player.Attribute]int)
	for _, tag := range tags {
		bonuses, ok := a.catalog[tag]
		if !ok {
			continue
		}
		for _, bonus := range bonuses {
			deltas[bonus.Attr] += bonus.Points
		}
	}

	out := attrs
	for attr, delta := range deltas {
		out.Set(attr, player.ClampAttribute(out.Get(attr)+delta))
	}
	return out
}
