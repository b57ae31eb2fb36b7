package model

// EventType is the normalised kind of an on-pitch action.
type EventType string

const (
	EventPass            EventType = "Pass"
	EventCarry           EventType = "Carry"
	EventShot            EventType = "Shot"
	EventTackle          EventType = "Tackle"
	EventInterception    EventType = "Interception"
	EventClearance       EventType = "Clearance"
	EventBlock           EventType = "Block"
	EventFoul            EventType = "Foul"
	EventCard            EventType = "Card"
	EventDribble         EventType = "Dribble"
	EventTouch           EventType = "Touch"
	EventAerial          EventType = "Aerial"
	EventSave            EventType = "Save"
	EventError           EventType = "Error"
	EventDispossessed    EventType = "Dispossessed"
	EventOffside         EventType = "Offside"
	EventBallRecovery    EventType = "BallRecovery"
	EventChallenge       EventType = "Challenge"
	EventSubstitutionOn  EventType = "SubstitutionOn"
	EventSubstitutionOff EventType = "SubstitutionOff"
	EventUnknown         EventType = "Unknown"
)

var knownEventTypes = map[EventType]struct{}{
	EventPass: {}, EventCarry: {}, EventShot: {}, EventTackle: {}, EventInterception: {},
	EventClearance: {}, EventBlock: {}, EventFoul: {}, EventCard: {}, EventDribble: {},
	EventTouch: {}, EventAerial: {}, EventSave: {}, EventError: {}, EventDispossessed: {},
	EventOffside: {}, EventBallRecovery: {}, EventChallenge: {}, EventSubstitutionOn: {},
	EventSubstitutionOff: {},
}

// Known reports whether t is part of the closed event vocabulary.
func (t EventType) Known() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// IsTouch reports whether the action involves the player touching the ball.
func (t EventType) IsTouch() bool {
	switch t {
	case EventPass, EventCarry, EventShot, EventTackle, EventInterception, EventClearance,
		EventBlock, EventDribble, EventTouch, EventAerial, EventSave, EventDispossessed,
		EventBallRecovery, EventChallenge, EventError:
		return true
	}
	return false
}

// IsDefensive reports whether t is a defensive action.
func (t EventType) IsDefensive() bool {
	switch t {
	case EventTackle, EventInterception, EventClearance, EventBlock, EventChallenge:
		return true
	}
	return false
}

// Outcome is the normalised result of an event.
type Outcome string

const (
	OutcomeSuccessful   Outcome = "Successful"
	OutcomeUnsuccessful Outcome = "Unsuccessful"
	OutcomeGoal         Outcome = "Goal"
	OutcomeSavedShot    Outcome = "SavedShot"
	OutcomeMissedShot   Outcome = "MissedShot"
	OutcomePost         Outcome = "Post"
	OutcomeBlockedShot  Outcome = "BlockedShot"
	OutcomeUnknown      Outcome = "Unknown"
)

// Period identifies the phase of the match.
type Period int

const (
	PeriodFirstHalf       Period = 1
	PeriodSecondHalf      Period = 2
	PeriodExtraFirstHalf  Period = 3
	PeriodExtraSecondHalf Period = 4
	PeriodPenaltyShootout Period = 5
)

func (p Period) String() string {
	switch p {
	case PeriodFirstHalf:
		return "1H"
	case PeriodSecondHalf:
		return "2H"
	case PeriodExtraFirstHalf:
		return "ET1"
	case PeriodExtraSecondHalf:
		return "ET2"
	case PeriodPenaltyShootout:
		return "PEN"
	default:
		return "?"
	}
}

// Qualifier is a provider-defined event tag.
type Qualifier string

const (
	QualKeyPass       Qualifier = "KeyPass"
	QualAssist        Qualifier = "Assist"
	QualBigChance     Qualifier = "BigChance"
	QualGoal          Qualifier = "Goal"
	QualOwnGoal       Qualifier = "OwnGoal"
	QualPenalty       Qualifier = "Penalty"
	QualFreeKick      Qualifier = "FreeKick"
	QualCorner        Qualifier = "Corner"
	QualThrowIn       Qualifier = "ThrowIn"
	QualSetPiece      Qualifier = "SetPiece"
	QualCounterAttack Qualifier = "CounterAttack"
	QualHead          Qualifier = "Head"
	QualLeftFoot      Qualifier = "LeftFoot"
	QualRightFoot     Qualifier = "RightFoot"
	QualOtherBodyPart Qualifier = "OtherBodyPart"
	QualYellowCard    Qualifier = "YellowCard"
	QualRedCard       Qualifier = "RedCard"
	QualSecondYellow  Qualifier = "SecondYellow"
	QualLeadToShot    Qualifier = "LeadToShot"
	QualLeadToGoal    Qualifier = "LeadToGoal"
	QualBadTouch      Qualifier = "BadTouch"
	QualCross         Qualifier = "Cross"
	QualLongBall      Qualifier = "LongBall"
)

// Qualifiers is the tag set attached to an event.
type Qualifiers []Qualifier

// Has is an exact tag lookup.
func (qs Qualifiers) Has(q Qualifier) bool {
	for _, v := range qs {
		if v == q {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the given tags is present.
func (qs Qualifiers) HasAny(q ...Qualifier) bool {
	for _, v := range q {
		if qs.Has(v) {
			return true
		}
	}
	return false
}

// ---- Raw events supplied by the feed ----

// RawEvent is one on-pitch action as delivered by the extraction layer.
// Coordinates are metres on a 105x68 pitch.
type RawEvent struct {
	TeamID   int64
	PlayerID int64 // 0 if none
	Period   Period
	Minute   int
	Second   int
	Type     EventType
	Outcome  Outcome

	X, Y        float64
	HasLocation bool
	EndX, EndY  float64
	HasEnd      bool

	Qualifiers Qualifiers
	XG         *float64 // provider xG, nil when absent
}

// AnnotatedEvent is a RawEvent plus its derived metrics. One per RawEvent.
type AnnotatedEvent struct {
	RawEvent

	Index int

	Distance       float64
	AngleToGoal    float64
	DistanceToGoal float64

	// AttacksRight is the resolved direction of play for the event's team in its period.
	AttacksRight bool
	// AX/AY/AEndX/AEndY are the coordinates in the attacking frame (goal at x=105).
	AX, AY       float64
	AEndX, AEndY float64

	IsSuccessful  bool
	IsProgressive bool
	IsKeyPass     bool
	IsAssist      bool
	IsGoal        bool
	IsOwnGoal     bool

	XG          float64
	XGEstimated bool

	CumulativeMinute float64
}

// ClockSeconds returns the cumulative match clock in seconds.
func (e *AnnotatedEvent) ClockSeconds() float64 {
	return e.CumulativeMinute * 60
}

// ---- Match input ----

// RosterEntry describes one squad member.
type RosterEntry struct {
	PlayerID    int64
	TeamID      int64
	Name        string
	ShirtNumber int
	Position    string
	IsStarter   bool
}

// Roster maps player id to squad information.
type Roster map[int64]RosterEntry

// TeamInfo identifies one side of the match.
type TeamInfo struct {
	ID    int64
	Name  string
	Color string
}

// Match is the normalised two-team feed.
type Match struct {
	ID     string
	Hash   string // sha256 of the source document, empty when built in memory
	Home   TeamInfo
	Away   TeamInfo
	Roster Roster
	Events []RawEvent
}

// Opponent returns the other team's id, or 0 if teamID plays in neither side.
func (m *Match) Opponent(teamID int64) int64 {
	switch teamID {
	case m.Home.ID:
		return m.Away.ID
	case m.Away.ID:
		return m.Home.ID
	}
	return 0
}
