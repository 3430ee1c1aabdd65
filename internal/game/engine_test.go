package game

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeSongs struct {
	mu    sync.Mutex
	songs []Song
	next  int
}

func (f *fakeSongs) PickNext(groupID string) (Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.songs) {
		return Song{}, ErrSongUnavailable
	}
	s := f.songs[f.next]
	f.next++
	return s, nil
}

func (f *fakeSongs) AudioURL(songID int64) string {
	return fmt.Sprintf("http://songs.test/%d.mp3", songID)
}

type fakeMessenger struct {
	mu    sync.Mutex
	texts []string
	clips []string
}

func (f *fakeMessenger) SendClip(groupID, audioURL string, timeout time.Duration) ClipResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clips = append(f.clips, audioURL)
	return ClipDelivered
}

func (f *fakeMessenger) SendText(groupID, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fakeMessenger) clipCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clips)
}

func (f *fakeMessenger) allText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.texts, "\n---\n")
}

type fakeLedger struct {
	mu     sync.Mutex
	groups []string
	saves  []Settlement
}

func (f *fakeLedger) SaveResult(groupID string, rounds int, result Settlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups = append(f.groups, groupID)
	f.saves = append(f.saves, result)
	return nil
}

func (f *fakeLedger) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

type fixture struct {
	engine *Engine
	songs  *fakeSongs
	msg    *fakeMessenger
	ledger *fakeLedger
}

func testConfig() Config {
	return Config{
		RoundDuration: 500 * time.Millisecond,
		MaxRounds:     3,
		MinPlayers:    1,
		MaxPlayers:    10,
		ClipTimeout:   50 * time.Millisecond,
		RevealPause:   10 * time.Millisecond,
	}
}

func newFixture(cfg Config, titles ...string) *fixture {
	songs := &fakeSongs{}
	for i, title := range titles {
		songs.songs = append(songs.songs, Song{ID: int64(i + 1), Title: title, Artist: "测试歌手"})
	}
	msg := &fakeMessenger{}
	ledger := &fakeLedger{}
	return &fixture{
		engine: NewEngine(cfg, songs, msg, ledger, nil),
		songs:  songs,
		msg:    msg,
		ledger: ledger,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCreateDuplicateRejected(t *testing.T) {
	fx := newFixture(testConfig(), "月亮")

	if _, err := fx.engine.Create("g1", "u1", "小明"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.engine.Create("g1", "u2", "小红"); err != ErrGameExists {
		t.Errorf("second create err = %v, want ErrGameExists", err)
	}
	// other groups are independent
	if _, err := fx.engine.Create("g2", "u2", "小红"); err != nil {
		t.Errorf("create in other group: %v", err)
	}
}

func TestJoinErrors(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPlayers = 2
	fx := newFixture(cfg, "月亮")

	if _, err := fx.engine.Join("g1", "u1", "小明"); err != ErrNoActiveGame {
		t.Errorf("join without game err = %v, want ErrNoActiveGame", err)
	}

	fx.engine.Create("g1", "u1", "小明")
	if _, err := fx.engine.Join("g1", "u1", "小明"); err != ErrAlreadyJoined {
		t.Errorf("rejoin err = %v, want ErrAlreadyJoined", err)
	}
	if info, err := fx.engine.Join("g1", "u2", "小红"); err != nil || info.Count != 2 {
		t.Errorf("join = %+v, %v; want count 2", info, err)
	}
	if _, err := fx.engine.Join("g1", "u3", "小刚"); err != ErrRosterFull {
		t.Errorf("join past limit err = %v, want ErrRosterFull", err)
	}
	if view, _ := fx.engine.Game("g1"); len(view.Players) != 2 {
		t.Errorf("roster size after rejected join = %d, want 2", len(view.Players))
	}
}

func TestStartAuthorization(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 2
	fx := newFixture(cfg, "月亮")

	fx.engine.Create("g1", "u1", "小明")

	if err := fx.engine.Start("g1", "u1", false); err != ErrTooFewPlayers {
		t.Errorf("start below minimum err = %v, want ErrTooFewPlayers", err)
	}

	fx.engine.Join("g1", "u2", "小红")
	if err := fx.engine.Start("g1", "u2", false); err != ErrUnauthorized {
		t.Errorf("start by non-creator err = %v, want ErrUnauthorized", err)
	}
	if err := fx.engine.Start("g1", "u2", true); err != nil {
		t.Errorf("start by admin: %v", err)
	}
	if err := fx.engine.Start("g1", "u1", false); err != ErrNotWaiting {
		t.Errorf("start while playing err = %v, want ErrNotWaiting", err)
	}
}

func TestFirstCorrectAnswerWins(t *testing.T) {
	cfg := testConfig()
	cfg.RevealPause = 300 * time.Millisecond
	fx := newFixture(cfg, "月亮", "晴天", "七里香")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Join("g1", "u2", "小红")
	if err := fx.engine.Start("g1", "u1", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if out := fx.engine.SubmitAnswer("g1", "u1", "小明", "月亮"); out != AnswerCorrect {
		t.Fatalf("first answer outcome = %v, want AnswerCorrect", out)
	}
	if out := fx.engine.SubmitAnswer("g1", "u2", "小红", "月亮"); out != AnswerIgnored {
		t.Errorf("second answer outcome = %v, want AnswerIgnored", out)
	}

	view, _ := fx.engine.Game("g1")
	scores := map[string]int{}
	for _, p := range view.Players {
		scores[p.UserID] = p.Score
	}
	if scores["u1"] != 1 || scores["u2"] != 0 {
		t.Errorf("scores = %v, want u1:1 u2:0", scores)
	}
}

func TestAnswerFromNonParticipantDoesNotConsumeRound(t *testing.T) {
	cfg := testConfig()
	cfg.RevealPause = 300 * time.Millisecond
	fx := newFixture(cfg, "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if out := fx.engine.SubmitAnswer("g1", "u9", "路人", "月亮"); out != AnswerNotJoined {
		t.Fatalf("outsider outcome = %v, want AnswerNotJoined", out)
	}
	// the round is still open for enrolled players
	if out := fx.engine.SubmitAnswer("g1", "u1", "小明", "月亮"); out != AnswerCorrect {
		t.Errorf("enrolled answer after outsider = %v, want AnswerCorrect", out)
	}
}

func TestCommandTextIgnored(t *testing.T) {
	fx := newFixture(testConfig(), "月亮")
	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if out := fx.engine.SubmitAnswer("g1", "u1", "小明", "#月亮"); out != AnswerIgnored {
		t.Errorf("command-prefixed outcome = %v, want AnswerIgnored", out)
	}
	if out := fx.engine.SubmitAnswer("g1", "u1", "小明", "  "); out != AnswerIgnored {
		t.Errorf("blank outcome = %v, want AnswerIgnored", out)
	}
}

func TestTimeoutAdvancesRound(t *testing.T) {
	cfg := testConfig()
	cfg.RoundDuration = 40 * time.Millisecond
	fx := newFixture(cfg, "月亮", "晴天", "七里香", "黄昏")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)

	waitFor(t, "timeout message", func() bool {
		return strings.Contains(fx.msg.allText(), "时间到")
	})
	waitFor(t, "second round", func() bool { return fx.msg.clipCount() >= 2 })
}

func TestTimerIsNoOpAfterCorrectAnswer(t *testing.T) {
	fx := newFixture(testConfig(), "月亮", "晴天", "七里香")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	fx.engine.SubmitAnswer("g1", "u1", "小明", "月亮")
	waitFor(t, "second round", func() bool { return fx.msg.clipCount() == 2 })

	// well before round 2's clock: round 1's cancelled clock must not
	// have fired, and no extra advance happened
	time.Sleep(100 * time.Millisecond)
	if got := fx.msg.clipCount(); got != 2 {
		t.Errorf("rounds presented = %d, want 2", got)
	}
	if strings.Contains(fx.msg.allText(), "时间到") {
		t.Errorf("cancelled timer produced a timeout message:\n%s", fx.msg.allText())
	}
}

func TestRevealLosesRaceSilently(t *testing.T) {
	cfg := testConfig()
	cfg.RevealPause = 300 * time.Millisecond
	fx := newFixture(cfg, "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	fx.engine.SubmitAnswer("g1", "u1", "小明", "月亮")
	if err := fx.engine.Reveal("g1"); err != nil {
		t.Errorf("losing reveal err = %v, want nil no-op", err)
	}
	if strings.Contains(fx.msg.allText(), "公布答案") {
		t.Error("losing reveal still announced the answer")
	}

	waitFor(t, "second round", func() bool { return fx.msg.clipCount() == 2 })
	time.Sleep(100 * time.Millisecond)
	if got := fx.msg.clipCount(); got != 2 {
		t.Errorf("rounds presented = %d, want 2 (single advance)", got)
	}
}

func TestRevealAdvancesRound(t *testing.T) {
	fx := newFixture(testConfig(), "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if err := fx.engine.Reveal("g1"); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !strings.Contains(fx.msg.allText(), "公布答案") {
		t.Error("reveal did not announce the answer")
	}
	waitFor(t, "second round", func() bool { return fx.msg.clipCount() == 2 })
}

func TestRoundLimitEndsGame(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRounds = 1
	fx := newFixture(cfg, "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Join("g1", "u2", "小红")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	fx.engine.SubmitAnswer("g1", "u1", "小明", "月亮")
	waitFor(t, "settlement", func() bool {
		return strings.Contains(fx.msg.allText(), "猜歌游戏结束")
	})

	if fx.ledger.saveCount() != 1 {
		t.Errorf("ledger saves = %d, want 1", fx.ledger.saveCount())
	}
	if _, ok := fx.engine.Game("g1"); ok {
		t.Error("session still registered after settlement")
	}
	// and a fresh game can be created right away
	if _, err := fx.engine.Create("g1", "u2", "小红"); err != nil {
		t.Errorf("create after end: %v", err)
	}
}

func TestSongExhaustionEndsGame(t *testing.T) {
	fx := newFixture(testConfig()) // no songs at all

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)

	waitFor(t, "exhaustion notice", func() bool {
		return strings.Contains(fx.msg.allText(), "无法获取歌曲")
	})
	waitFor(t, "session removal", func() bool {
		_, ok := fx.engine.Game("g1")
		return !ok
	})
	if fx.ledger.saveCount() != 0 {
		t.Errorf("ledger saves = %d, want 0 when nobody scored", fx.ledger.saveCount())
	}
}

// blockingSongs stalls PickNext until released, then fails, to pin the
// engine inside a song fetch.
type blockingSongs struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSongs) PickNext(groupID string) (Song, error) {
	b.entered <- struct{}{}
	<-b.release
	return Song{}, ErrSongUnavailable
}

func (b *blockingSongs) AudioURL(songID int64) string { return "" }

func TestTerminateDuringSongFetchStaysSilent(t *testing.T) {
	songs := &blockingSongs{entered: make(chan struct{}, 1), release: make(chan struct{})}
	msg := &fakeMessenger{}
	ledger := &fakeLedger{}
	engine := NewEngine(testConfig(), songs, msg, ledger, nil)

	engine.Create("g1", "u1", "小明")
	engine.Start("g1", "u1", false)
	<-songs.entered // round advance is now inside the fetch

	if err := engine.Terminate("g1"); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	close(songs.release)

	waitFor(t, "settlement", func() bool {
		return strings.Contains(msg.allText(), "猜歌游戏结束")
	})
	time.Sleep(100 * time.Millisecond)
	if strings.Contains(msg.allText(), "无法获取歌曲") {
		t.Errorf("fetch failure after terminate produced a stray message:\n%s", msg.allText())
	}
}

func TestHintProgression(t *testing.T) {
	fx := newFixture(testConfig(), "七里香")

	if _, err := fx.engine.RequestHint("g1"); err != ErrNoActiveGame {
		t.Errorf("hint without game err = %v, want ErrNoActiveGame", err)
	}

	fx.engine.Create("g1", "u1", "小明")
	if _, err := fx.engine.RequestHint("g1"); err != ErrNotPlaying {
		t.Errorf("hint while waiting err = %v, want ErrNotPlaying", err)
	}

	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	wantLevels := []int{1, 2, 3, 3, 3}
	for i, want := range wantLevels {
		info, err := fx.engine.RequestHint("g1")
		if err != nil {
			t.Fatalf("hint %d: %v", i+1, err)
		}
		if info.Level != want {
			t.Errorf("hint %d level = %d, want %d", i+1, info.Level, want)
		}
	}

	info, _ := fx.engine.RequestHint("g1")
	if info.Masked != "七里香" {
		t.Errorf("fully revealed hint = %q, want the title", info.Masked)
	}
	if info.Artist != "测试歌手" {
		t.Errorf("hint artist = %q", info.Artist)
	}
}

func TestLateJoinCountedInSettlement(t *testing.T) {
	fx := newFixture(testConfig(), "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if info, err := fx.engine.Join("g1", "u2", "小红"); err != nil || info.Status != StatusPlaying {
		t.Fatalf("late join = %+v, %v", info, err)
	}

	if err := fx.engine.Terminate("g1"); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	if !strings.Contains(fx.msg.allText(), "小红") {
		t.Error("late joiner missing from settlement")
	}
}

func TestTerminateMidRound(t *testing.T) {
	fx := newFixture(testConfig(), "月亮", "晴天")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Join("g1", "u2", "小红")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	if err := fx.engine.Terminate("g1"); err != nil {
		t.Fatalf("terminate: %v", err)
	}

	text := fx.msg.allText()
	if !strings.Contains(text, "答案是") {
		t.Error("mid-round terminate did not reveal the answer")
	}
	if !strings.Contains(text, "猜歌游戏结束") {
		t.Error("terminate did not settle")
	}
	// nobody scored: persistence skipped, challenge still emitted
	if fx.ledger.saveCount() != 0 {
		t.Errorf("ledger saves = %d, want 0", fx.ledger.saveCount())
	}
	if !strings.Contains(text, "挑战") {
		t.Error("settlement with two players missing challenge prompt")
	}

	if err := fx.engine.Terminate("g1"); err != ErrNoActiveGame {
		t.Errorf("second terminate err = %v, want ErrNoActiveGame", err)
	}

	// a pending advance from the terminated game must stay dead
	time.Sleep(100 * time.Millisecond)
	if fx.msg.clipCount() != 1 {
		t.Errorf("rounds presented after terminate = %d, want 1", fx.msg.clipCount())
	}
}

func TestLedgerContents(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRounds = 1
	fx := newFixture(cfg, "月亮")

	fx.engine.Create("g1", "u1", "小明")
	fx.engine.Join("g1", "u2", "小红")
	fx.engine.Start("g1", "u1", false)
	waitFor(t, "first round", func() bool { return fx.msg.clipCount() == 1 })

	fx.engine.SubmitAnswer("g1", "u2", "小红", "我猜是月亮")
	waitFor(t, "settlement save", func() bool { return fx.ledger.saveCount() == 1 })

	saved := fx.ledger.saves[0]
	if saved.Ranking[0].UserID != "u2" || saved.Ranking[0].Score != 1 {
		t.Errorf("top of saved ranking = %+v, want u2 with 1", saved.Ranking[0])
	}
	if fx.ledger.groups[0] != "g1" {
		t.Errorf("saved group = %s, want g1", fx.ledger.groups[0])
	}
}
