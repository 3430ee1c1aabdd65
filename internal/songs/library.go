package songs

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"guess-song-backend/internal/game"
)

const (
	playlistHot      = 3778678  // 热歌榜
	playlistClassics = 19723756 // 经典老歌

	maxTracksPerPlaylist = 100
	scanLimit            = 200
	replayWindow         = 24 * time.Hour
)

var defaultPlaylists = map[string]int64{
	"热门": playlistHot,
	"经典": playlistClassics,
}

// Titles must be 2-7 pure-Han characters and artists pure Han, so that
// hint masking and the lenient matcher behave sensibly.
var (
	validTitle  = regexp.MustCompile(`^[\x{4e00}-\x{9fff}]{2,7}$`)
	validArtist = regexp.MustCompile(`^[\x{4e00}-\x{9fff}]+$`)
)

// Library serves candidate songs from NetEase Cloud Music playlists,
// keeping a rolling per-group record of recently served songs so the
// same clip is not replayed within 24 hours.
type Library struct {
	httpClient *http.Client
	baseURL    string
	playlists  map[string]int64

	mu     sync.Mutex
	cache  map[string][]game.Song
	played map[string]map[int64]time.Time

	now func() time.Time
}

func NewLibrary() *Library {
	return &Library{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://music.163.com",
		playlists:  defaultPlaylists,
		cache:      make(map[string][]game.Song),
		played:     make(map[string]map[int64]time.Time),
		now:        time.Now,
	}
}

// Preload fetches all configured playlists. Failures are logged per
// playlist; an empty cache is retried lazily on the next pick.
func (l *Library) Preload() {
	for name, id := range l.playlists {
		tracks, err := l.fetchPlaylist(id)
		if err != nil {
			log.Printf("songs: load playlist %s: %v", name, err)
			continue
		}
		l.mu.Lock()
		l.cache[name] = tracks
		l.mu.Unlock()
		log.Printf("songs: playlist %s loaded, %d usable tracks", name, len(tracks))
	}
}

// AudioURL resolves the outer media URL for a song id.
func (l *Library) AudioURL(songID int64) string {
	return fmt.Sprintf("%s/song/media/outer/url?id=%d.mp3", l.baseURL, songID)
}

// PickNext returns a random song not served to this group within the
// replay window. Once every candidate has been served, the group's
// record is reset and picking starts over.
func (l *Library) PickNext(groupID string) (game.Song, error) {
	all := l.allCached()
	if len(all) == 0 {
		l.Preload()
		all = l.allCached()
	}
	if len(all) == 0 {
		return game.Song{}, game.ErrSongUnavailable
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	record := l.played[groupID]
	for id, servedAt := range record {
		if now.Sub(servedAt) > replayWindow {
			delete(record, id)
		}
	}

	available := all
	if len(record) > 0 {
		available = make([]game.Song, 0, len(all))
		for _, s := range all {
			if _, seen := record[s.ID]; !seen {
				available = append(available, s)
			}
		}
		if len(available) == 0 {
			log.Printf("songs: group %s exhausted all tracks, resetting record", groupID)
			l.played[groupID] = make(map[int64]time.Time)
			available = all
		}
	}

	song := available[rand.Intn(len(available))]
	if l.played[groupID] == nil {
		l.played[groupID] = make(map[int64]time.Time)
	}
	l.played[groupID][song.ID] = now
	return song, nil
}

func (l *Library) allCached() []game.Song {
	l.mu.Lock()
	defer l.mu.Unlock()
	var all []game.Song
	for _, tracks := range l.cache {
		all = append(all, tracks...)
	}
	return all
}

type playlistResponse struct {
	Code   int `json:"code"`
	Result struct {
		Tracks []struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			Fee     int    `json:"fee"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"tracks"`
	} `json:"result"`
}

// fetchPlaylist downloads one playlist and filters it down to freely
// playable tracks with usable titles and artist names.
func (l *Library) fetchPlaylist(playlistID int64) ([]game.Song, error) {
	url := fmt.Sprintf("%s/api/playlist/detail?id=%d", l.baseURL, playlistID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://music.163.com/")
	req.Header.Set("Origin", "https://music.163.com")
	req.AddCookie(&http.Cookie{Name: "appver", Value: "2.9.11"})
	req.AddCookie(&http.Cookie{Name: "os", Value: "pc"})

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var parsed playlistResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if parsed.Code != 200 {
		return nil, fmt.Errorf("playlist api code %d", parsed.Code)
	}

	tracks := parsed.Result.Tracks
	if len(tracks) > scanLimit {
		tracks = tracks[:scanLimit]
	}

	var songs []game.Song
	for _, track := range tracks {
		// fee 0 is free, 8 is free at low quality; everything else is VIP
		if track.Fee != 0 && track.Fee != 8 {
			continue
		}
		title := strings.TrimSpace(track.Name)
		if !validTitle.MatchString(title) {
			continue
		}
		if len(track.Artists) == 0 {
			continue
		}
		ok := true
		names := make([]string, 0, len(track.Artists))
		for _, a := range track.Artists {
			name := strings.TrimSpace(a.Name)
			if !validArtist.MatchString(name) {
				ok = false
				break
			}
			names = append(names, name)
		}
		if !ok {
			continue
		}

		songs = append(songs, game.Song{
			ID:     track.ID,
			Title:  title,
			Artist: strings.Join(names, "、"),
		})
		if len(songs) >= maxTracksPerPlaylist {
			break
		}
	}
	return songs, nil
}
