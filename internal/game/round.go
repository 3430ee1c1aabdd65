package game

import (
	"log"
	"math/rand"
	"time"
)

// advanceAfterPause waits the readability pause between an answer
// reveal and the next round, then advances. The token guards against a
// session that ended or moved on during the pause.
func (e *Engine) advanceAfterPause(sess *Session, fromToken uint64) {
	time.Sleep(e.cfg.RevealPause)
	e.nextRound(sess, fromToken)
}

// nextRound runs the round-advance algorithm: bump the round counter,
// pick a song, re-arm the clock. fromToken is the token of the round
// just resolved (or the start token); if the session has minted a newer
// one, someone else already advanced and this call must do nothing.
func (e *Engine) nextRound(sess *Session, fromToken uint64) {
	sess.mu.Lock()
	if sess.status != StatusPlaying || sess.token != fromToken {
		sess.mu.Unlock()
		return
	}
	if sess.roundNum+1 > e.cfg.MaxRounds {
		sess.mu.Unlock()
		e.endGame(sess)
		return
	}
	sess.mu.Unlock()

	// Song selection talks to the network; no lock held here. The token
	// re-check below covers anything that happened meanwhile.
	song, err := e.songs.PickNext(sess.GroupID)
	if err != nil {
		sess.mu.Lock()
		stale := sess.status != StatusPlaying || sess.token != fromToken
		sess.mu.Unlock()
		if stale {
			return
		}
		e.msg.SendText(sess.GroupID, "❌ 无法获取歌曲，游戏结束。")
		e.endGame(sess)
		return
	}

	sess.mu.Lock()
	if sess.status != StatusPlaying || sess.token != fromToken {
		sess.mu.Unlock()
		return
	}
	sess.roundNum++
	sess.currentSong = song
	sess.hintLevel = 0
	sess.roundAnswered = false
	sess.token++
	token := sess.token
	round := sess.roundNum
	sess.mu.Unlock()

	e.publish(sess.GroupID, "round_started", map[string]any{
		"round": round,
		"total": e.cfg.MaxRounds,
	})
	e.presentRound(sess.GroupID, song, round)
	e.sched.Arm(sess, token, func() { e.roundExpired(sess, token) })
}

// presentRound sends the audio clue, degrading to a plain link when
// clip delivery times out or fails. Delivery trouble never aborts the
// round.
func (e *Engine) presentRound(groupID string, song Song, round int) {
	audioURL := e.songs.AudioURL(song.ID)
	result := e.msg.SendClip(groupID, audioURL, e.cfg.ClipTimeout)
	e.msg.SendText(groupID, roundText(round, e.cfg.MaxRounds, audioURL, int(e.cfg.RoundDuration/time.Second), result))
}

// roundExpired is the clock path. It runs the same consume check as the
// answer and reveal paths: stale token or an already answered round
// means another path won the race, and the clock exits silently.
func (e *Engine) roundExpired(sess *Session, token uint64) {
	sess.mu.Lock()
	if sess.status != StatusPlaying || sess.token != token || sess.roundAnswered {
		sess.mu.Unlock()
		return
	}
	sess.roundAnswered = true
	sess.stopTimerLocked()
	song := sess.currentSong
	sess.mu.Unlock()

	e.msg.SendText(sess.GroupID, timeoutText(song))
	e.publish(sess.GroupID, "round_result", map[string]any{"song": song})
	e.advanceAfterPause(sess, token)
}

// endGame settles the session: final ranking, ledger merge for anyone
// who scored, challenge prompt, removal from the registry. Callable
// from the round-limit path, song exhaustion and termination; only the
// first caller does anything.
func (e *Engine) endGame(sess *Session) {
	sess.mu.Lock()
	if sess.status == StatusEnded {
		sess.mu.Unlock()
		return
	}
	sess.status = StatusEnded
	sess.token++ // invalidate any in-flight clock or pending advance
	sess.stopTimerLocked()
	players := sess.rankedLocked()
	rounds := sess.roundNum
	sess.mu.Unlock()

	e.registry.Remove(sess.GroupID)

	if len(players) == 0 {
		e.msg.SendText(sess.GroupID, "🎵 【猜歌游戏结束】\n本局无人参与")
		e.publish(sess.GroupID, "game_over", Settlement{})
		return
	}

	kind := ChallengeTruth
	if rand.Intn(2) == 1 {
		kind = ChallengeDare
	}
	result := Settle(players, kind)

	if hasScorer(result.Ranking) {
		if err := e.ledger.SaveResult(sess.GroupID, rounds, result); err != nil {
			log.Printf("game: save result for group %s: %v", sess.GroupID, err)
		}
	}

	e.msg.SendText(sess.GroupID, settlementText(rounds, result))
	e.publish(sess.GroupID, "game_over", result)
}

func hasScorer(ranking []RankedPlayer) bool {
	for _, p := range ranking {
		if p.Score > 0 {
			return true
		}
	}
	return false
}
