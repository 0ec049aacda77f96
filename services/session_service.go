package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"puisje/game"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService drives game sessions over the gateway contracts. Live
// sessions are held in memory and mirrored to the persistence gateway on
// every transition, so a crash or reload resumes from the last settled or
// announced round; a gateway failure degrades to in-memory-only operation
// with a warning instead of blocking play.
type SessionService struct {
	gateway  game.PersistenceGateway
	history  game.HistoryStore
	registry game.PlayerRegistry
	guard    game.Guard
	clock    quartz.Clock
	logger   zerolog.Logger

	maxRounds int
	missions  game.MissionTable
	testMode  bool

	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewSessionService(
	gateway game.PersistenceGateway,
	history game.HistoryStore,
	registry game.PlayerRegistry,
	guard game.Guard,
	clock quartz.Clock,
	logger zerolog.Logger,
	maxRounds int,
	testMode bool,
) *SessionService {
	return &SessionService{
		gateway:   gateway,
		history:   history,
		registry:  registry,
		guard:     guard,
		clock:     clock,
		logger:    logger,
		maxRounds: maxRounds,
		missions:  game.DefaultMissions(),
		testMode:  testMode,
		sessions:  make(map[string]*game.Session),
	}
}

type StartSessionRequest struct {
	Names []string `json:"names" binding:"required"`
}

type SettleRequest struct {
	WinnerID int         `json:"winner_id" binding:"required"`
	Losses   map[int]int `json:"losses" binding:"required"`
}

// SessionView is the handler-facing image of a session.
type SessionView struct {
	Code      string        `json:"code"`
	Phase     game.Phase    `json:"phase"`
	Round     int           `json:"round"`
	MaxRounds int           `json:"max_rounds"`
	Mission   string        `json:"mission"`
	Roster    []game.Player `json:"roster"`
	Standings []game.Player `json:"standings"`
	StartedAt time.Time     `json:"started_at"`
}

// CompletionResult is returned once the final round settles.
type CompletionResult struct {
	Standings   []game.Player `json:"standings"`
	Winner      string        `json:"winner"`
	WinnerScore int           `json:"winner_score"`
	DurationMs  int64         `json:"duration_ms"`
	Eligible    bool          `json:"eligible"`
	IsNewRecord bool          `json:"is_new_record"`
	Position    int           `json:"position"`
}

// StartSession creates a session from the given names and begins round 1.
// The names are registered globally and remembered for the next prefill.
func (s *SessionService) StartSession(ctx context.Context, names []string) (*SessionView, error) {
	session := game.NewSession(s.maxRounds, s.missions)
	if err := session.Start(names, s.clock.Now()); err != nil {
		return nil, err
	}

	code := generateCode()
	s.mu.Lock()
	s.sessions[code] = session
	s.mu.Unlock()

	if err := s.registry.Register(ctx, names); err != nil {
		s.logger.Warn().Err(err).Msg("player registry unavailable, continuing without registration")
	}
	if err := s.gateway.SaveLastNames(ctx, names); err != nil {
		s.logger.Warn().Err(err).Msg("failed to remember roster names")
	}
	s.persist(ctx, code, session)

	s.logger.Info().Str("code", code).Int("players", len(names)).Msg("session started")
	return s.view(code, session), nil
}

// GetSession returns the current state of a session, resuming it from its
// persisted snapshot when it is not in memory (fresh process, reload).
func (s *SessionService) GetSession(ctx context.Context, code string) (*SessionView, error) {
	session, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.view(code, session), nil
}

// AnnounceRound announces (or re-announces) the current round. Safe to
// repeat; a resumed session calls it to land back on the round screen.
func (s *SessionService) AnnounceRound(ctx context.Context, code string) (*SessionView, error) {
	session, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	if _, _, err := session.AnnounceRound(); err != nil {
		return nil, err
	}
	s.persist(ctx, code, session)
	return s.view(code, session), nil
}

// SettleRound drives one round to settlement: the winner choice and the
// loss entries arrive together, the transient selection phases live only
// inside this call. On a validation error the session is rewound to the
// announced round, exactly as a resume would land it.
func (s *SessionService) SettleRound(ctx context.Context, code string, winnerID int, losses map[int]int) (*SessionView, *CompletionResult, error) {
	session, err := s.load(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	// A session sitting on the settled scoreboard moves on to the next
	// round's announcement first.
	if session.Phase() == game.PhaseRoundSettled {
		if _, _, err := session.AnnounceRound(); err != nil {
			return nil, nil, err
		}
	}

	if err := s.driveSettle(session, winnerID, losses); err != nil {
		// Rewind the transient phases; the snapshot never carries them.
		s.mu.Lock()
		s.sessions[code] = game.Resume(session.Snapshot(), s.maxRounds, s.missions)
		s.mu.Unlock()
		return nil, nil, err
	}

	s.persist(ctx, code, session)

	if !session.Complete() {
		return s.view(code, session), nil, nil
	}

	result := s.finishGame(ctx, session)

	// The finished session is released from memory; a final-screen reload
	// resumes it from the persisted snapshot.
	s.mu.Lock()
	delete(s.sessions, code)
	s.mu.Unlock()

	return s.view(code, session), result, nil
}

func (s *SessionService) driveSettle(session *game.Session, winnerID int, losses map[int]int) error {
	if err := session.OpenWinnerSelection(); err != nil {
		return err
	}
	if err := session.ChooseWinner(winnerID); err != nil {
		return err
	}
	return session.Settle(losses)
}

// finishGame classifies the completed session against history and writes
// it back. History problems never block completion: the evaluator ranks
// against an empty board and the players still see their final results.
func (s *SessionService) finishGame(ctx context.Context, session *game.Session) *CompletionResult {
	standings := session.Standings()
	winner := standings[0]
	duration := s.clock.Now().Sub(session.StartedAt())
	eligible := s.guard.Eligible(duration, s.testMode)

	board, err := s.history.TopScores(ctx, 0)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history unavailable, ranking against empty board")
		board = nil
	}
	outcome := game.Rank(winner.Score, board)
	if !eligible {
		// A rushed game is recorded for the counters but never ranks.
		outcome = game.Outcome{}
	}

	record := game.CompletedGame{
		Players:     session.Roster(),
		Winner:      winner.Name,
		WinnerScore: winner.Score,
		Duration:    duration,
		Eligible:    eligible,
	}
	if err := s.history.Append(ctx, record); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record completed game")
	}

	if eligible {
		for _, p := range standings {
			won := p.ID == winner.ID
			if err := s.registry.UpdateStats(ctx, p.Name, won, p.Score); err != nil {
				s.logger.Warn().Err(err).Str("player", p.Name).Msg("failed to update player stats")
			}
		}
	} else {
		s.logger.Info().Dur("duration", duration).Msg("game finished too quickly, excluded from leaderboard")
	}

	return &CompletionResult{
		Standings:   standings,
		Winner:      winner.Name,
		WinnerScore: winner.Score,
		DurationMs:  duration.Milliseconds(),
		Eligible:    eligible,
		IsNewRecord: outcome.IsNewRecord,
		Position:    outcome.Position,
	}
}

// Abandon discards a session. The remembered last-roster names survive so
// the next game can prefill them.
func (s *SessionService) Abandon(ctx context.Context, code string) error {
	session, err := s.load(ctx, code)
	if err != nil {
		return err
	}
	session.Abandon()

	s.mu.Lock()
	delete(s.sessions, code)
	s.mu.Unlock()

	if err := s.gateway.ClearSnapshot(ctx, code); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("failed to clear session snapshot")
	}
	s.logger.Info().Str("code", code).Msg("session abandoned")
	return nil
}

// LastNames returns the roster of the most recent game for prefill.
func (s *SessionService) LastNames(ctx context.Context) ([]string, error) {
	return s.gateway.LastNames(ctx)
}

// load finds a live session or resumes one from its snapshot.
func (s *SessionService) load(ctx context.Context, code string) (*game.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[code]
	s.mu.RUnlock()
	if ok {
		return session, nil
	}

	snap, found, err := s.gateway.LoadSnapshot(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("failed to load session snapshot")
		return nil, ErrSessionNotFound
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	session = game.Resume(snap, s.maxRounds, s.missions)
	s.mu.Lock()
	s.sessions[code] = session
	s.mu.Unlock()

	s.logger.Info().Str("code", code).Int("round", snap.CurrentRound).
		Bool("round_started", snap.RoundStarted).Msg("session resumed from snapshot")
	return session, nil
}

// persist mirrors the session to the gateway. Failures degrade to
// in-memory-only play; a player must always be able to finish.
func (s *SessionService) persist(ctx context.Context, code string, session *game.Session) {
	if err := s.gateway.SaveSnapshot(ctx, code, session.Snapshot()); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("failed to persist session, continuing in memory")
	}
}

func (s *SessionService) view(code string, session *game.Session) *SessionView {
	return &SessionView{
		Code:      code,
		Phase:     session.Phase(),
		Round:     session.CurrentRound(),
		MaxRounds: session.MaxRounds(),
		Mission:   session.MissionLabel(),
		Roster:    session.Roster(),
		Standings: session.Standings(),
		StartedAt: session.StartedAt(),
	}
}

func generateCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:6]
}
