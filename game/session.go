package game

import (
	"fmt"
	"time"
)

// DefaultMaxRounds is the standard game length. Shorter games are allowed
// for diagnostic sessions, down to a single round.
const DefaultMaxRounds = 5

// Phase is the state a session is in. Only RoundAnnounced and RoundSettled
// survive a persist/resume cycle; SelectingWinner and EnteringLosses hold
// transient entry state and a resumed session restarts the round's winner
// selection instead.
type Phase string

const (
	PhaseSelectingRoster Phase = "selecting_roster"
	PhaseRoundAnnounced  Phase = "round_announced"
	PhaseSelectingWinner Phase = "selecting_winner"
	PhaseEnteringLosses  Phase = "entering_losses"
	PhaseRoundSettled    Phase = "round_settled"
	PhaseGameComplete    Phase = "game_complete"
)

// Snapshot is the persisted image of an in-progress session. It carries
// everything needed to resume after a crash or reload; the pending winner
// is deliberately absent.
type Snapshot struct {
	Roster       []Player  `json:"roster"`
	CurrentRound int       `json:"current_round"`
	Mission      string    `json:"mission"`
	RoundStarted bool      `json:"round_started"`
	StartedAt    time.Time `json:"started_at"`
}

// Session is the state machine for one game, from roster creation through
// final results. It is a plain value owned by the caller; all I/O
// (persistence, history) happens outside it.
type Session struct {
	phase         Phase
	roster        []Player
	currentRound  int
	maxRounds     int
	missions      MissionTable
	pendingWinner int
	startedAt     time.Time
}

// NewSession creates a session waiting for a roster. A maxRounds below 1
// falls back to the default game length.
func NewSession(maxRounds int, missions MissionTable) *Session {
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	if missions == nil {
		missions = DefaultMissions()
	}
	return &Session{
		phase:        PhaseSelectingRoster,
		currentRound: 1,
		maxRounds:    maxRounds,
		missions:     missions,
	}
}

// Resume rebuilds a session from a persisted snapshot. It lands on
// RoundAnnounced when the round was underway, otherwise on the settled
// scoreboard view for the same round pointer; a snapshot past the last
// round lands on GameComplete.
func Resume(snap Snapshot, maxRounds int, missions MissionTable) *Session {
	s := NewSession(maxRounds, missions)
	s.roster = snap.Roster
	s.currentRound = snap.CurrentRound
	s.startedAt = snap.StartedAt

	switch {
	case snap.CurrentRound > s.maxRounds:
		s.phase = PhaseGameComplete
	case snap.RoundStarted:
		s.phase = PhaseRoundAnnounced
	default:
		s.phase = PhaseRoundSettled
	}
	return s
}

// Start finalizes the roster and begins round 1. The caller supplies the
// wall-clock start time, which later feeds the duration eligibility check.
func (s *Session) Start(names []string, now time.Time) error {
	if s.phase != PhaseSelectingRoster {
		return fmt.Errorf("%w: cannot start from %s", ErrWrongPhase, s.phase)
	}
	roster, err := NewRoster(names)
	if err != nil {
		return err
	}
	s.roster = roster
	s.currentRound = 1
	s.startedAt = now
	s.phase = PhaseRoundAnnounced
	return nil
}

// AnnounceRound returns the current round number and its mission label.
// It is idempotent within RoundAnnounced, and also moves a settled session
// on to the next round's announcement.
func (s *Session) AnnounceRound() (int, string, error) {
	switch s.phase {
	case PhaseRoundAnnounced:
		// Re-announcing is safe; resume relies on it.
	case PhaseRoundSettled:
		s.phase = PhaseRoundAnnounced
	case PhaseGameComplete:
		return 0, "", ErrGameComplete
	default:
		return 0, "", fmt.Errorf("%w: cannot announce a round from %s", ErrWrongPhase, s.phase)
	}
	return s.currentRound, s.missions.Label(s.currentRound), nil
}

// OpenWinnerSelection moves from the announced round to picking a winner.
func (s *Session) OpenWinnerSelection() error {
	if s.phase != PhaseRoundAnnounced {
		return fmt.Errorf("%w: cannot select a winner from %s", ErrWrongPhase, s.phase)
	}
	s.phase = PhaseSelectingWinner
	return nil
}

// ChooseWinner records the round's winner and opens loss entry.
func (s *Session) ChooseWinner(playerID int) error {
	if s.phase != PhaseSelectingWinner {
		return fmt.Errorf("%w: cannot choose a winner from %s", ErrWrongPhase, s.phase)
	}
	if !hasPlayer(s.roster, playerID) {
		return fmt.Errorf("%w: id %d", ErrUnknownPlayer, playerID)
	}
	s.pendingWinner = playerID
	s.phase = PhaseEnteringLosses
	return nil
}

// Settle validates the entered losses and closes the round. On success the
// round pointer advances and the session lands on RoundSettled, or on
// GameComplete after the final round. On a validation error nothing
// changes; the caller can correct the entries and retry.
func (s *Session) Settle(losses map[int]int) error {
	if s.phase != PhaseEnteringLosses {
		return fmt.Errorf("%w: cannot settle from %s", ErrWrongPhase, s.phase)
	}

	updated, err := SettleRound(s.roster, s.pendingWinner, losses, s.currentRound, s.missions.Label(s.currentRound))
	if err != nil {
		return err
	}

	s.roster = updated
	s.currentRound++
	s.pendingWinner = 0
	if s.currentRound > s.maxRounds {
		s.phase = PhaseGameComplete
	} else {
		s.phase = PhaseRoundSettled
	}
	return nil
}

// Abandon discards the session from any phase and returns it to roster
// selection. The remembered last-roster names live outside the session
// and survive this.
func (s *Session) Abandon() {
	s.roster = nil
	s.currentRound = 1
	s.pendingWinner = 0
	s.startedAt = time.Time{}
	s.phase = PhaseSelectingRoster
}

// Snapshot captures the persistable image of the session. During winner
// selection and loss entry the snapshot still reads as an announced round,
// so an interrupted entry resumes from the round announcement.
func (s *Session) Snapshot() Snapshot {
	roundStarted := false
	switch s.phase {
	case PhaseRoundAnnounced, PhaseSelectingWinner, PhaseEnteringLosses:
		roundStarted = true
	}
	roster := make([]Player, len(s.roster))
	copy(roster, s.roster)
	return Snapshot{
		Roster:       roster,
		CurrentRound: s.currentRound,
		Mission:      s.missions.Label(s.currentRound),
		RoundStarted: roundStarted,
		StartedAt:    s.startedAt,
	}
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) CurrentRound() int { return s.currentRound }

func (s *Session) MaxRounds() int { return s.maxRounds }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) Complete() bool { return s.phase == PhaseGameComplete }

// MissionLabel returns the label for the round in play.
func (s *Session) MissionLabel() string { return s.missions.Label(s.currentRound) }

// Roster returns a copy of the roster in entry order.
func (s *Session) Roster() []Player {
	roster := make([]Player, len(s.roster))
	copy(roster, s.roster)
	return roster
}

// Standings returns the roster ranked ascending by score.
func (s *Session) Standings() []Player {
	return Standings(s.roster)
}

// Winner returns the leading player. Only meaningful once at least one
// round has settled; the leader of a complete game is its winner.
func (s *Session) Winner() (Player, bool) {
	if len(s.roster) == 0 {
		return Player{}, false
	}
	return Standings(s.roster)[0], true
}
