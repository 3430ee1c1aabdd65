package game

import (
	"strings"
	"time"
)

// SongSource supplies the next song for a group, excluding recently
// served ones, and resolves a playable reference for a song id.
type SongSource interface {
	PickNext(groupID string) (Song, error)
	AudioURL(songID int64) string
}

type ClipResult int

const (
	ClipDelivered ClipResult = iota
	ClipDegraded             // delivery timed out, fall back to a link
	ClipFailed
)

// Messenger delivers outbound messages to the group chat. Fire and
// forget from the engine's perspective; failures degrade, never abort.
type Messenger interface {
	SendClip(groupID, audioURL string, timeout time.Duration) ClipResult
	SendText(groupID, text string)
}

// Ledger persists per-group cumulative scores at settlement.
type Ledger interface {
	SaveResult(groupID string, rounds int, result Settlement) error
}

// Events receives game lifecycle notifications for the live feed.
type Events interface {
	Publish(groupID, event string, data any)
}

type Config struct {
	RoundDuration time.Duration
	MaxRounds     int
	MinPlayers    int
	MaxPlayers    int
	ClipTimeout   time.Duration
	RevealPause   time.Duration
}

// Engine is the state machine orchestrating every group's session:
// roster changes, answer arbitration, the round clock and settlement.
type Engine struct {
	cfg      Config
	registry *Registry
	songs    SongSource
	msg      Messenger
	ledger   Ledger
	events   Events
	sched    *Scheduler
}

func NewEngine(cfg Config, songs SongSource, msg Messenger, ledger Ledger, events Events) *Engine {
	return &Engine{
		cfg:      cfg,
		registry: NewRegistry(),
		songs:    songs,
		msg:      msg,
		ledger:   ledger,
		events:   events,
		sched:    NewScheduler(cfg.RoundDuration),
	}
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) publish(groupID, event string, data any) {
	if e.events != nil {
		e.events.Publish(groupID, event, data)
	}
}

// Create opens a waiting session with the creator auto-enrolled.
func (e *Engine) Create(groupID, creatorID, creatorName string) (*Session, error) {
	sess, err := e.registry.Create(groupID, creatorID, creatorName)
	if err != nil {
		return nil, err
	}
	e.publish(groupID, "game_created", sess.Snapshot())
	return sess, nil
}

// Game returns a snapshot of the group's session, if one exists.
func (e *Engine) Game(groupID string) (View, bool) {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return View{}, false
	}
	return sess.Snapshot(), true
}

func (e *Engine) Games() []View { return e.registry.Snapshots() }

type JoinInfo struct {
	Count  int
	Status Status
}

// Join enrolls a player; allowed while waiting and mid-game.
func (e *Engine) Join(groupID, userID, name string) (JoinInfo, error) {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return JoinInfo{}, ErrNoActiveGame
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status == StatusEnded {
		return JoinInfo{}, ErrNoActiveGame
	}
	if _, joined := sess.participants[userID]; joined {
		return JoinInfo{}, ErrAlreadyJoined
	}
	if len(sess.participants) >= e.cfg.MaxPlayers {
		return JoinInfo{}, ErrRosterFull
	}

	sess.participants[userID] = &Participant{UserID: userID, Name: name}
	sess.order = append(sess.order, userID)
	info := JoinInfo{Count: len(sess.participants), Status: sess.status}
	e.publish(groupID, "player_joined", Participant{UserID: userID, Name: name})
	return info, nil
}

// Start moves a waiting session to playing and kicks off the first
// round. Only the creator or an admin may start.
func (e *Engine) Start(groupID, userID string, isAdmin bool) error {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return ErrNoActiveGame
	}

	sess.mu.Lock()
	if sess.status != StatusWaiting {
		sess.mu.Unlock()
		return ErrNotWaiting
	}
	if sess.CreatorID != userID && !isAdmin {
		sess.mu.Unlock()
		return ErrUnauthorized
	}
	if len(sess.participants) < e.cfg.MinPlayers {
		sess.mu.Unlock()
		return ErrTooFewPlayers
	}

	sess.status = StatusPlaying
	sess.roundNum = 0
	sess.roundAnswered = true // no open round yet
	sess.token++
	token := sess.token

	names := make([]string, 0, len(sess.order))
	for _, id := range sess.order {
		names = append(names, sess.participants[id].Name)
	}
	sess.mu.Unlock()

	e.msg.SendText(groupID, startText(names))
	go e.nextRound(sess, token)
	return nil
}

type AnswerOutcome int

const (
	// AnswerIgnored covers everything that changes no state: wrong
	// answers, commands, answers after the round was already won.
	AnswerIgnored AnswerOutcome = iota
	// AnswerNotJoined means the text matched but the sender is not
	// enrolled; the caller may prompt them to join.
	AnswerNotJoined
	AnswerCorrect
)

// SubmitAnswer checks a free-text submission against the current song.
// The first correct answer wins the round: it marks the round answered
// and stops the clock inside one critical section, so a concurrently
// firing timer or a second answer can never double-resolve the round.
func (e *Engine) SubmitAnswer(groupID, userID, name, text string) AnswerOutcome {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "/") {
		return AnswerIgnored
	}

	sess, ok := e.registry.Get(groupID)
	if !ok {
		return AnswerIgnored
	}

	sess.mu.Lock()
	if sess.status != StatusPlaying || sess.currentSong.Title == "" {
		sess.mu.Unlock()
		return AnswerIgnored
	}
	if !Match(text, sess.currentSong.Title) {
		sess.mu.Unlock()
		return AnswerIgnored
	}
	if sess.roundAnswered {
		sess.mu.Unlock()
		return AnswerIgnored
	}
	p, joined := sess.participants[userID]
	if !joined {
		sess.mu.Unlock()
		return AnswerNotJoined
	}

	sess.roundAnswered = true
	sess.stopTimerLocked()
	p.Score++
	total := p.Score
	song := sess.currentSong
	token := sess.token
	sess.mu.Unlock()

	e.msg.SendText(groupID, correctText(name, song, total))
	e.publish(groupID, "round_result", map[string]any{
		"winner": name,
		"song":   song,
	})
	go e.advanceAfterPause(sess, token)
	return AnswerCorrect
}

type HintInfo struct {
	Level  int
	Masked string
	Artist string
}

// RequestHint reveals one more leading character of the title, capped
// at its length.
func (e *Engine) RequestHint(groupID string) (HintInfo, error) {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return HintInfo{}, ErrNoActiveGame
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != StatusPlaying || sess.currentSong.Title == "" {
		return HintInfo{}, ErrNotPlaying
	}

	if sess.hintLevel < len([]rune(sess.currentSong.Title)) {
		sess.hintLevel++
	}
	return HintInfo{
		Level:  sess.hintLevel,
		Masked: Hint(sess.currentSong.Title, sess.hintLevel),
		Artist: sess.currentSong.Artist,
	}, nil
}

// Reveal resolves the current round by announcing the answer and moving
// on. Losing the race against a correct answer or the clock is a silent
// no-op, never an error.
func (e *Engine) Reveal(groupID string) error {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return ErrNoActiveGame
	}

	sess.mu.Lock()
	if sess.status != StatusPlaying || sess.currentSong.Title == "" {
		sess.mu.Unlock()
		return ErrNotPlaying
	}
	if sess.roundAnswered {
		sess.mu.Unlock()
		return nil
	}

	sess.roundAnswered = true
	sess.stopTimerLocked()
	song := sess.currentSong
	token := sess.token
	sess.mu.Unlock()

	e.msg.SendText(groupID, revealText(song))
	go e.advanceAfterPause(sess, token)
	return nil
}

// Terminate ends a waiting or playing session, revealing the current
// answer if mid-round, then settles.
func (e *Engine) Terminate(groupID string) error {
	sess, ok := e.registry.Get(groupID)
	if !ok {
		return ErrNoActiveGame
	}

	sess.mu.Lock()
	if sess.status == StatusEnded {
		sess.mu.Unlock()
		return ErrNoActiveGame
	}
	var midRound *Song
	if sess.status == StatusPlaying && sess.currentSong.Title != "" && !sess.roundAnswered {
		song := sess.currentSong
		midRound = &song
	}
	sess.mu.Unlock()

	if midRound != nil {
		e.msg.SendText(groupID, answerLine(*midRound))
	}
	e.endGame(sess)
	return nil
}
