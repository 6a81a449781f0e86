package memory

import (
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
)

// SeedPlayers returns a starter roster for in-memory mode, enough for a full
// 7v7 with substitutes. OVRs are computed from the attribute profiles so the
// seed can never drift from the weight table.
func SeedPlayers() []player.Player {
	players := []player.Player{
		{ID: "pl-gk-01", Name: "Chino Ramirez", Position: player.PositionGoalkeeper, Attributes: player.AttributeProfile{Pace: 48, Shooting: 35, Passing: 55, Dribbling: 42, Defending: 70, Physical: 74}},
		{ID: "pl-gk-02", Name: "Tato Funes", Position: player.PositionGoalkeeper, Attributes: player.AttributeProfile{Pace: 45, Shooting: 30, Passing: 50, Dribbling: 40, Defending: 66, Physical: 69}},
		{ID: "pl-cb-01", Name: "Negro Acosta", Position: player.PositionCenterBack, Attributes: player.AttributeProfile{Pace: 58, Shooting: 40, Passing: 60, Dribbling: 48, Defending: 82, Physical: 80}},
		{ID: "pl-cb-02", Name: "Rusito Pereyra", Position: player.PositionCenterBack, Attributes: player.AttributeProfile{Pace: 55, Shooting: 38, Passing: 58, Dribbling: 45, Defending: 78, Physical: 76}},
		{ID: "pl-fb-01", Name: "Flaco Juarez", Position: player.PositionFullBack, Attributes: player.AttributeProfile{Pace: 76, Shooting: 45, Passing: 62, Dribbling: 60, Defending: 70, Physical: 66}},
		{ID: "pl-fb-02", Name: "Colo Benitez", Position: player.PositionFullBack, Attributes: player.AttributeProfile{Pace: 73, Shooting: 42, Passing: 60, Dribbling: 58, Defending: 68, Physical: 64}},
		{ID: "pl-cdm-01", Name: "Tano Gentile", Position: player.PositionDefensiveMidfielder, Attributes: player.AttributeProfile{Pace: 60, Shooting: 50, Passing: 70, Dribbling: 58, Defending: 76, Physical: 74}},
		{ID: "pl-cm-01", Name: "Lucho Medina", Position: player.PositionCentralMidfielder, Attributes: player.AttributeProfile{Pace: 64, Shooting: 58, Passing: 78, Dribbling: 70, Defending: 60, Physical: 62}},
		{ID: "pl-cm-02", Name: "Pipa Sosa", Position: player.PositionCentralMidfielder, Attributes: player.AttributeProfile{Pace: 62, Shooting: 55, Passing: 74, Dribbling: 66, Defending: 58, Physical: 60}},
		{ID: "pl-cam-01", Name: "Enzo Villalba", Position: player.PositionAttackingMidfielder, Attributes: player.AttributeProfile{Pace: 68, Shooting: 70, Passing: 80, Dribbling: 78, Defending: 40, Physical: 55}},
		{ID: "pl-wg-01", Name: "Rata Moyano", Position: player.PositionWinger, Attributes: player.AttributeProfile{Pace: 84, Shooting: 62, Passing: 64, Dribbling: 80, Defending: 35, Physical: 52}},
		{ID: "pl-wg-02", Name: "Kun Barrios", Position: player.PositionWinger, Attributes: player.AttributeProfile{Pace: 80, Shooting: 60, Passing: 60, Dribbling: 76, Defending: 34, Physical: 50}},
		{ID: "pl-fwd-01", Name: "Toro Ledesma", Position: player.PositionForward, Attributes: player.AttributeProfile{Pace: 74, Shooting: 82, Passing: 55, Dribbling: 68, Defending: 30, Physical: 75}},
		{ID: "pl-fwd-02", Name: "Polaco Vega", Position: player.PositionForward, Attributes: player.AttributeProfile{Pace: 70, Shooting: 78, Passing: 52, Dribbling: 64, Defending: 32, Physical: 72}},
		{ID: "pl-fwd-03", Name: "Gordo Quiroga", Position: player.PositionForward, Attributes: player.AttributeProfile{Pace: 58, Shooting: 74, Passing: 50, Dribbling: 56, Defending: 35, Physical: 80}},
		{ID: "pl-cm-03", Name: "Mono Ferreyra", Position: player.PositionCentralMidfielder, Attributes: player.AttributeProfile{Pace: 60, Shooting: 52, Passing: 68, Dribbling: 62, Defending: 55, Physical: 58}},
	}

	calc := rating.NewCalculator(nil)
	for i := range players {
		players[i].OVR = calc.Compute(players[i].Attributes, players[i].Position)
	}

	return players
}
