package player

import "testing"

func TestAttributeProfile_Clamped(t *testing.T) {
	attrs := AttributeProfile{Pace: 0, Shooting: 120, Passing: 50, Dribbling: -7, Defending: 99, Physical: 1}
	clamped := attrs.Clamped()

	want := AttributeProfile{Pace: 1, Shooting: 99, Passing: 50, Dribbling: 1, Defending: 99, Physical: 1}
	if clamped != want {
		t.Fatalf("expected %+v, got %+v", want, clamped)
	}
	if err := clamped.Validate(); err != nil {
		t.Fatalf("clamped profile must validate: %v", err)
	}
}

func TestAttributeProfile_GetSetRoundTrip(t *testing.T) {
	var attrs AttributeProfile
	for idx, attr := range Attributes {
		attrs.Set(attr, 10+idx)
	}
	for idx, attr := range Attributes {
		if got := attrs.Get(attr); got != 10+idx {
			t.Fatalf("%s: expected %d, got %d", attr, 10+idx, got)
		}
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{
		ID:         "p1",
		Name:       "Diego",
		Position:   PositionAttackingMidfielder,
		Attributes: AttributeProfile{Pace: 70, Shooting: 80, Passing: 85, Dribbling: 92, Defending: 40, Physical: 60},
	}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Player) {}},
		{name: "missing id", mutate: func(p *Player) { p.ID = "" }, wantErr: true},
		{name: "missing name", mutate: func(p *Player) { p.Name = "" }, wantErr: true},
		{name: "bad position", mutate: func(p *Player) { p.Position = "LIBERO" }, wantErr: true},
		{name: "attribute out of range", mutate: func(p *Player) { p.Attributes.Pace = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPosition_Role(t *testing.T) {
	tests := []struct {
		pos  Position
		want Role
	}{
		{PositionGoalkeeper, RoleGoalkeeper},
		{PositionCenterBack, RoleDefender},
		{PositionFullBack, RoleDefender},
		{PositionDefensiveMidfielder, RoleMidfielder},
		{PositionCentralMidfielder, RoleMidfielder},
		{PositionAttackingMidfielder, RoleMidfielder},
		{PositionWinger, RoleForward},
		{PositionForward, RoleForward},
		{Position("???"), RoleMidfielder},
	}

	for _, tt := range tests {
		if got := tt.pos.Role(); got != tt.want {
			t.Fatalf("%s: expected %s, got %s", tt.pos, tt.want, got)
		}
	}
}
