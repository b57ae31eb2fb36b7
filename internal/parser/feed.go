package parser

// Feed is the normalised match document produced by the extraction layer.
type Feed struct {
	MatchID          string       `json:"match_id" validate:"required,max=128"`
	CoordinateSystem string       `json:"coordinate_system" validate:"omitempty,oneof=meters opta"`
	Home             FeedTeam     `json:"home" validate:"required"`
	Away             FeedTeam     `json:"away" validate:"required"`
	Roster           []FeedPlayer `json:"roster" validate:"dive"`
	Events           []FeedEvent  `json:"events"`
}

type FeedTeam struct {
	TeamID int64  `json:"team_id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required,max=100"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
}

type FeedPlayer struct {
	PlayerID    int64  `json:"player_id" validate:"required,gt=0"`
	TeamID      int64  `json:"team_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	ShirtNumber int    `json:"shirt_number" validate:"gte=0,lte=99"`
	Position    string `json:"position"`
	IsStarter   bool   `json:"is_starter"`
}

// FeedEvent fields are checked one by one during conversion; defects degrade
// the event instead of rejecting the match.
type FeedEvent struct {
	TeamID     int64    `json:"team_id"`
	PlayerID   int64    `json:"player_id"`
	Period     int      `json:"period"`
	Minute     int      `json:"minute"`
	Second     int      `json:"second"`
	Type       string   `json:"type"`
	Outcome    string   `json:"outcome"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	EndX       *float64 `json:"end_x"`
	EndY       *float64 `json:"end_y"`
	Qualifiers []string `json:"qualifiers"`
	XG         *float64 `json:"xg"`
}
