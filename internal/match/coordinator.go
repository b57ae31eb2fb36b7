// Package match is the query facade over one analyzed match. The event table is
// annotated once in New; every query derives its answer from that table and
// returns fresh values, so a Coordinator is safe for concurrent readers.
package match

import (
	"github.com/cockroachdb/errors"

	"github.com/DataKnight1/PostMatchReport/internal/aggregator"
	"github.com/DataKnight1/PostMatchReport/internal/events"
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/momentum"
	"github.com/DataKnight1/PostMatchReport/internal/xg"
	"github.com/DataKnight1/PostMatchReport/internal/zones"
)

var (
	ErrInvalidMatch = errors.New("invalid match")
	ErrUnknownTeam  = errors.New("team does not play in this match")
	ErrInvalidGrid  = errors.New("grid needs at least one row and one column")
)

// Config gathers the thresholds of every component.
type Config struct {
	Events   events.Config            `koanf:"events"`
	XG       xg.Config                `koanf:"xg"`
	Network  aggregator.NetworkConfig `koanf:"network"`
	Momentum momentum.Config          `koanf:"momentum"`
	Zones    zones.Config             `koanf:"zones"`
}

func DefaultConfig() Config {
	return Config{
		Events:   events.DefaultConfig(),
		XG:       xg.DefaultConfig(),
		Network:  aggregator.DefaultNetworkConfig(),
		Momentum: momentum.DefaultConfig(),
		Zones:    zones.DefaultConfig(),
	}
}

type Option func(*Coordinator)

func WithConfig(cfg Config) Option {
	return func(c *Coordinator) {
		c.cfg = cfg
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		c.log = l
	}
}

// WithEstimator replaces the heuristic xG model built from Config.XG.
func WithEstimator(e events.Estimator) Option {
	return func(c *Coordinator) {
		c.estimator = e
	}
}

// Coordinator answers every derived query for one match.
type Coordinator struct {
	cfg       Config
	log       *logging.Logger
	estimator events.Estimator

	id     string
	hash   string
	home   model.TeamInfo
	away   model.TeamInfo
	roster model.Roster

	table    []model.AnnotatedEvent
	momentum *momentum.Engine
}

// New validates m and annotates its events.
func New(m *model.Match, opts ...Option) (*Coordinator, error) {
	if m == nil {
		return nil, errors.Wrap(ErrInvalidMatch, "nil match")
	}
	if m.Home.ID == 0 || m.Away.ID == 0 {
		return nil, errors.Wrapf(ErrInvalidMatch, "match %q: missing team id", m.ID)
	}
	if m.Home.ID == m.Away.ID {
		return nil, errors.Wrapf(ErrInvalidMatch, "match %q: home and away are both team %d", m.ID, m.Home.ID)
	}

	c := &Coordinator{
		cfg:    DefaultConfig(),
		log:    logging.NewNop(),
		id:     m.ID,
		hash:   m.Hash,
		home:   m.Home,
		away:   m.Away,
		roster: make(model.Roster, len(m.Roster)),
	}
	for _, opt := range opts {
		opt(c)
	}
	for id, entry := range m.Roster {
		c.roster[id] = entry
	}
	if c.estimator == nil {
		c.estimator = xg.NewModel(c.cfg.XG)
	}

	proc := events.NewProcessor(c.cfg.Events, c.estimator, events.WithLogger(c.log))
	c.table = proc.Process(events.TeamPair{Home: m.Home.ID, Away: m.Away.ID}, m.Events)
	c.momentum = momentum.NewEngine(c.cfg.Momentum)
	return c, nil
}

func (c *Coordinator) ID() string { return c.id }

func (c *Coordinator) Hash() string { return c.hash }

func (c *Coordinator) Home() model.TeamInfo { return c.home }

func (c *Coordinator) Away() model.TeamInfo { return c.away }

func (c *Coordinator) Config() Config { return c.cfg }

// Roster returns a copy of the squad lists.
func (c *Coordinator) Roster() model.Roster {
	out := make(model.Roster, len(c.roster))
	for id, entry := range c.roster {
		out[id] = entry
	}
	return out
}

// Team returns the identity of teamID.
func (c *Coordinator) Team(teamID int64) (model.TeamInfo, error) {
	switch teamID {
	case c.home.ID:
		return c.home, nil
	case c.away.ID:
		return c.away, nil
	}
	return model.TeamInfo{}, errors.Wrapf(ErrUnknownTeam, "team %d", teamID)
}

// Events returns a copy of the full annotated table in feed order.
func (c *Coordinator) Events() []model.AnnotatedEvent {
	return events.Filter(c.table)
}

// Shots returns teamID's shots; zero returns both teams'.
func (c *Coordinator) Shots(teamID int64) []model.AnnotatedEvent {
	return events.Shots(c.table, teamID)
}

func (c *Coordinator) Passes(teamID int64, successfulOnly bool) []model.AnnotatedEvent {
	return events.Passes(c.table, teamID, successfulOnly)
}

func (c *Coordinator) DefensiveActions(teamID int64) []model.AnnotatedEvent {
	return events.DefensiveActions(c.table, teamID)
}

func (c *Coordinator) Carries(teamID int64) []model.AnnotatedEvent {
	return events.Carries(c.table, teamID)
}

func (c *Coordinator) KeyMoments() []model.AnnotatedEvent {
	return events.KeyMoments(c.table)
}

// EventsInZone returns located events inside z, judged in each team's attacking frame.
func (c *Coordinator) EventsInZone(z geometry.Zone, teamID int64) []model.AnnotatedEvent {
	return events.Filter(c.table, events.ByTeam(teamID), events.InZone(z))
}

// EstimatedShots counts shots valued by the heuristic model.
func (c *Coordinator) EstimatedShots() int {
	n := 0
	for i := range c.table {
		if c.table[i].XGEstimated {
			n++
		}
	}
	return n
}

func (c *Coordinator) teamEvents(teamID int64) ([]model.AnnotatedEvent, error) {
	if _, err := c.Team(teamID); err != nil {
		return nil, err
	}
	return events.Filter(c.table, events.ByTeam(teamID)), nil
}

// Network is one team's average positions and passing edges.
type Network struct {
	TeamID      int64
	Positions   []model.PlayerPosition
	Connections []model.PassConnection
}

// PassNetwork builds teamID's network with the configured network settings.
func (c *Coordinator) PassNetwork(teamID int64) (Network, error) {
	return c.PassNetworkWith(teamID, c.cfg.Network)
}

// PassNetworkWith builds teamID's network with explicit settings.
func (c *Coordinator) PassNetworkWith(teamID int64, cfg aggregator.NetworkConfig) (Network, error) {
	evs, err := c.teamEvents(teamID)
	if err != nil {
		return Network{}, err
	}
	pos, conns := aggregator.AggregatePlayers(evs, c.roster, cfg)
	return Network{TeamID: teamID, Positions: pos, Connections: conns}, nil
}

func (c *Coordinator) PlayerStats(teamID int64) ([]model.PlayerStats, error) {
	evs, err := c.teamEvents(teamID)
	if err != nil {
		return nil, err
	}
	return aggregator.PlayerStatsFor(evs, c.roster), nil
}

// TeamStats returns teamID's statistic record, possession share included.
func (c *Coordinator) TeamStats(teamID int64) (model.TeamStatRecord, error) {
	if _, err := c.Team(teamID); err != nil {
		return nil, err
	}
	h, a := c.statPair()
	if teamID == c.home.ID {
		return h, nil
	}
	return a, nil
}

func (c *Coordinator) statPair() (model.TeamStatRecord, model.TeamStatRecord) {
	home := events.Filter(c.table, events.ByTeam(c.home.ID))
	away := events.Filter(c.table, events.ByTeam(c.away.ID))
	return aggregator.AggregatePair(home, away)
}

func (c *Coordinator) Momentum() []model.MomentumSample {
	return c.momentum.Compute(c.table, c.home.ID, c.away.ID)
}

func (c *Coordinator) Goals() []model.GoalMarker {
	return c.momentum.Goals(c.table, c.home.ID, c.away.ID)
}

// ZonalControl classifies every located touch on a rows x cols grid.
func (c *Coordinator) ZonalControl(rows, cols int) (model.ZoneGrid, error) {
	if rows < 1 || cols < 1 {
		return model.ZoneGrid{}, errors.Wrapf(ErrInvalidGrid, "%dx%d", rows, cols)
	}
	return c.classify(zones.Preset{Rows: rows, Cols: cols}), nil
}

// Territory is the coarse all-touch grid.
func (c *Coordinator) Territory() model.ZoneGrid {
	return c.classify(c.cfg.Zones.Territory)
}

// TacticalControl is the finer grid over successful on-ball actions.
func (c *Coordinator) TacticalControl() model.ZoneGrid {
	return c.classify(c.cfg.Zones.Tactical)
}

func (c *Coordinator) classify(p zones.Preset) model.ZoneGrid {
	return zones.ClassifyEvents(c.table, c.home.ID, c.away.ID, p, c.cfg.Zones.Threshold)
}

// Summary bundles identities, score, xG and both stat records. Own goals count
// for the opponent.
func (c *Coordinator) Summary() model.Summary {
	h, a := c.statPair()
	homeOG := aggregator.OwnGoals(events.Filter(c.table, events.ByTeam(c.home.ID)))
	awayOG := aggregator.OwnGoals(events.Filter(c.table, events.ByTeam(c.away.ID)))
	return model.Summary{
		MatchID:    c.id,
		Home:       c.home,
		Away:       c.away,
		HomeScore:  h.Int(model.StatGoals) + awayOG,
		AwayScore:  a.Int(model.StatGoals) + homeOG,
		HomeXG:     h.Get(model.StatXG),
		AwayXG:     a.Get(model.StatXG),
		EventCount: len(c.table),
		HomeStats:  h,
		AwayStats:  a,
	}
}
