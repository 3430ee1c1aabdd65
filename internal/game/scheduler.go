package game

import "time"

// Scheduler owns the timeout clock for the current round of a session.
// Exactly one timer is armed per round, tagged with the round token it
// was armed for. Three events race to consume a round: the clock
// elapsing, a correct answer, or an administrative reveal/terminate.
// Whichever wins marks the round answered and stops the clock under the
// session lock; the expired callback re-checks token and answered state
// under the same lock, so a losing clock is a silent no-op.
type Scheduler struct {
	duration time.Duration
}

func NewScheduler(duration time.Duration) *Scheduler {
	return &Scheduler{duration: duration}
}

// Arm starts the round clock. Does nothing if the session has moved on
// from the given token, so a stale arm request cannot resurrect a
// finished round.
func (sc *Scheduler) Arm(sess *Session, token uint64, expired func()) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != StatusPlaying || sess.token != token {
		return
	}
	sess.stopTimerLocked()
	sess.timer = time.AfterFunc(sc.duration, expired)
}

// Cancel stops the armed clock, if any. Safe to call from any of the
// three resolving paths, repeatedly, and after the clock has fired.
func (sc *Scheduler) Cancel(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.stopTimerLocked()
}
