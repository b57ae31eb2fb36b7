// Package parser loads a normalised match feed from JSON into model.Match.
package parser

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

var (
	ErrInvalidMatch = crerr.New("invalid match feed")
	ErrEmptyFeed    = crerr.New("feed has no events")
)

// Provider names that map onto a canonical type, some also fixing the outcome.
var typeAliases = map[string]struct {
	typ     model.EventType
	outcome model.Outcome
}{
	"TakeOn":       {model.EventDribble, ""},
	"BlockedPass":  {model.EventBlock, ""},
	"OffsidePass":  {model.EventOffside, ""},
	"MissedShots":  {model.EventShot, model.OutcomeMissedShot},
	"SavedShot":    {model.EventShot, model.OutcomeSavedShot},
	"ShotOnPost":   {model.EventShot, model.OutcomePost},
	"Goal":         {model.EventShot, model.OutcomeGoal},
	"KeeperPickup": {model.EventSave, model.OutcomeSuccessful},
}

var knownOutcomes = map[model.Outcome]struct{}{
	model.OutcomeSuccessful: {}, model.OutcomeUnsuccessful: {}, model.OutcomeGoal: {},
	model.OutcomeSavedShot: {}, model.OutcomeMissedShot: {}, model.OutcomePost: {},
	model.OutcomeBlockedShot: {}, model.OutcomeUnknown: {},
}

// Warning records a tolerated per-event defect.
type Warning struct {
	Index   int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("event %d: %s", w.Index, w.Message)
}

// Result is a parsed match plus the defects tolerated along the way.
type Result struct {
	Match    *model.Match
	Warnings []Warning
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseFile reads and parses the feed at path. The sha256 of the file is the match hash.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrap(err, "read feed")
	}
	res, err := Parse(data)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse %s", path)
	}
	return res, nil
}

// Parse decodes data and converts it. Match-level problems are errors; event-level
// problems become warnings and the event is kept.
func Parse(data []byte) (*Result, error) {
	var feed Feed
	if err := sonic.Unmarshal(data, &feed); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode feed"), ErrInvalidMatch)
	}
	res, err := Convert(&feed)
	if err != nil {
		return nil, err
	}
	res.Match.Hash = fmt.Sprintf("%x", sha256.Sum256(data))
	return res, nil
}

// Convert validates feed and builds the match.
func Convert(feed *Feed) (*Result, error) {
	if err := validate.Struct(feed); err != nil {
		return nil, crerr.Wrapf(ErrInvalidMatch, "validation failed: %v", err)
	}
	if feed.Home.TeamID == feed.Away.TeamID {
		return nil, crerr.Wrapf(ErrInvalidMatch, "home and away share team id %d", feed.Home.TeamID)
	}
	if len(feed.Events) == 0 {
		return nil, crerr.Wrapf(ErrEmptyFeed, "match %s", feed.MatchID)
	}

	m := &model.Match{
		ID:     feed.MatchID,
		Home:   model.TeamInfo{ID: feed.Home.TeamID, Name: feed.Home.Name, Color: feed.Home.Color},
		Away:   model.TeamInfo{ID: feed.Away.TeamID, Name: feed.Away.Name, Color: feed.Away.Color},
		Roster: make(model.Roster, len(feed.Roster)),
		Events: make([]model.RawEvent, 0, len(feed.Events)),
	}
	for _, p := range feed.Roster {
		if p.TeamID != m.Home.ID && p.TeamID != m.Away.ID {
			return nil, crerr.Wrapf(ErrInvalidMatch, "player %d belongs to team %d, which is not in the match", p.PlayerID, p.TeamID)
		}
		if _, dup := m.Roster[p.PlayerID]; dup {
			return nil, crerr.Wrapf(ErrInvalidMatch, "player %d listed twice", p.PlayerID)
		}
		m.Roster[p.PlayerID] = model.RosterEntry{
			PlayerID:    p.PlayerID,
			TeamID:      p.TeamID,
			Name:        p.Name,
			ShirtNumber: p.ShirtNumber,
			Position:    p.Position,
			IsStarter:   p.IsStarter,
		}
	}

	scale := coordScale{x: 1, y: 1}
	if feed.CoordinateSystem == "opta" {
		scale = coordScale{x: geometry.PitchLength / 100, y: geometry.PitchWidth / 100}
	}

	res := &Result{Match: m}
	for i := range feed.Events {
		ev, warns := convertEvent(&feed.Events[i], m, scale)
		m.Events = append(m.Events, ev)
		for _, w := range warns {
			res.Warnings = append(res.Warnings, Warning{Index: i, Message: w})
		}
	}
	return res, nil
}

type coordScale struct{ x, y float64 }

func convertEvent(fe *FeedEvent, m *model.Match, scale coordScale) (model.RawEvent, []string) {
	var warns []string
	ev := model.RawEvent{
		TeamID:   fe.TeamID,
		PlayerID: fe.PlayerID,
		Period:   model.Period(fe.Period),
		Minute:   fe.Minute,
		Second:   fe.Second,
		Outcome:  model.Outcome(fe.Outcome),
	}

	if fe.TeamID != m.Home.ID && fe.TeamID != m.Away.ID {
		warns = append(warns, fmt.Sprintf("team %d is not in the match", fe.TeamID))
	}
	if fe.Period < int(model.PeriodFirstHalf) || fe.Period > int(model.PeriodPenaltyShootout) {
		warns = append(warns, fmt.Sprintf("period %d out of range", fe.Period))
	}
	if fe.Minute < 0 || fe.Second < 0 || fe.Second > 59 {
		warns = append(warns, fmt.Sprintf("clock %d:%02d out of range", fe.Minute, fe.Second))
	}
	if fe.PlayerID != 0 {
		if entry, ok := m.Roster[fe.PlayerID]; ok && entry.TeamID != fe.TeamID {
			warns = append(warns, fmt.Sprintf("player %d is rostered for team %d", fe.PlayerID, entry.TeamID))
		}
	}

	ev.Type = model.EventType(fe.Type)
	if alias, ok := typeAliases[fe.Type]; ok {
		ev.Type = alias.typ
		if alias.outcome != "" {
			ev.Outcome = alias.outcome
		}
	}
	if !ev.Type.Known() {
		warns = append(warns, fmt.Sprintf("unknown type %q", fe.Type))
		ev.Type = model.EventUnknown
	}
	if ev.Outcome == "" {
		ev.Outcome = model.OutcomeUnknown
	}
	if _, ok := knownOutcomes[ev.Outcome]; !ok {
		warns = append(warns, fmt.Sprintf("unknown outcome %q", fe.Outcome))
		ev.Outcome = model.OutcomeUnknown
	}

	if fe.X != nil && fe.Y != nil {
		x, y := *fe.X*scale.x, *fe.Y*scale.y
		if geometry.InBounds(x, y) {
			ev.X, ev.Y, ev.HasLocation = x, y, true
		} else {
			warns = append(warns, fmt.Sprintf("location (%.1f, %.1f) off the pitch", x, y))
		}
	}
	if ev.HasLocation && fe.EndX != nil && fe.EndY != nil {
		x, y := *fe.EndX*scale.x, *fe.EndY*scale.y
		if geometry.InBounds(x, y) {
			ev.EndX, ev.EndY, ev.HasEnd = x, y, true
		} else {
			warns = append(warns, fmt.Sprintf("end location (%.1f, %.1f) off the pitch", x, y))
		}
	}

	if len(fe.Qualifiers) > 0 {
		ev.Qualifiers = make(model.Qualifiers, 0, len(fe.Qualifiers))
		for _, q := range fe.Qualifiers {
			if q = strings.TrimSpace(q); q != "" {
				ev.Qualifiers = append(ev.Qualifiers, model.Qualifier(q))
			}
		}
	}

	if fe.XG != nil {
		switch {
		case ev.Type != model.EventShot:
			warns = append(warns, "xg on a non-shot event ignored")
		case *fe.XG < 0 || *fe.XG > 1:
			warns = append(warns, fmt.Sprintf("xg %.3f outside [0,1] ignored", *fe.XG))
		default:
			v := *fe.XG
			ev.XG = &v
		}
	}
	return ev, warns
}
