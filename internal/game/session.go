package game

import (
	"sync"
	"time"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

type Song struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type Participant struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Session holds the full lifecycle state for one group's game. All
// fields below mu are guarded by it; the engine and the scheduler are
// the only writers.
type Session struct {
	GroupID   string
	CreatorID string
	CreatedAt time.Time

	mu            sync.Mutex
	status        Status
	participants  map[string]*Participant
	order         []string // join order, for stable ranking on ties
	currentSong   Song
	hintLevel     int
	roundNum      int
	roundAnswered bool

	// token identifies the currently live round. Any timer or deferred
	// round advance carrying a stale token must be a no-op.
	token uint64
	timer *time.Timer
}

func newSession(groupID, creatorID, creatorName string) *Session {
	s := &Session{
		GroupID:      groupID,
		CreatorID:    creatorID,
		CreatedAt:    time.Now(),
		status:       StatusWaiting,
		participants: make(map[string]*Participant),
	}
	s.participants[creatorID] = &Participant{UserID: creatorID, Name: creatorName}
	s.order = append(s.order, creatorID)
	return s
}

// stopTimerLocked cancels the round clock if one is armed. Idempotent;
// callers must hold mu.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// rankedLocked snapshots the roster in join order.
func (s *Session) rankedLocked() []RankedPlayer {
	players := make([]RankedPlayer, 0, len(s.order))
	for _, id := range s.order {
		p := s.participants[id]
		players = append(players, RankedPlayer{UserID: p.UserID, Name: p.Name, Score: p.Score})
	}
	return players
}

// View is a read-only snapshot of a session for the REST API and the
// websocket feed. The current title is never included mid-round.
type View struct {
	GroupID   string        `json:"group_id"`
	Status    Status        `json:"status"`
	Round     int           `json:"round"`
	HintLevel int           `json:"hint_level"`
	Players   []Participant `json:"players"`
	CreatedAt time.Time     `json:"created_at"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		GroupID:   s.GroupID,
		Status:    s.status,
		Round:     s.roundNum,
		HintLevel: s.hintLevel,
		CreatedAt: s.CreatedAt,
	}
	for _, id := range s.order {
		v.Players = append(v.Players, *s.participants[id])
	}
	return v
}
