package services

import (
	"errors"
	"time"

	"guess-song-backend/internal/game"
	"guess-song-backend/internal/models"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// creditScorer folds one settlement entry into a stats row: the score
// accumulates, the win counter goes up, and the nickname is refreshed
// to whatever the player currently uses.
func creditScorer(stat *models.GroupStat, p game.RankedPlayer) {
	stat.Nickname = p.Name
	stat.Score += p.Score
	stat.Wins++
}

// SaveResult folds a finished game into the per-group stats. Every
// participant who scored is credited; zero scorers are never written.
func (s *LeaderboardService) SaveResult(groupID string, rounds int, result game.Settlement) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range result.Ranking {
			if p.Score <= 0 {
				continue
			}

			var stat models.GroupStat
			err := tx.Where("group_id = ? AND user_id = ?", groupID, p.UserID).First(&stat).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				stat = models.GroupStat{GroupID: groupID, UserID: p.UserID}
			case err != nil:
				return err
			}

			creditScorer(&stat, p)
			if err := tx.Save(&stat).Error; err != nil {
				return err
			}
		}

		record := models.GameRecord{
			GroupID:  groupID,
			Rounds:   rounds,
			Players:  len(result.Ranking),
			PlayedAt: time.Now(),
		}
		if len(result.Ranking) > 0 {
			record.WinnerID = result.Ranking[0].UserID
			record.Winner = result.Ranking[0].Name
			record.TopScore = result.Ranking[0].Score
		}
		if result.Challenge != nil {
			record.Challenge = result.Challenge.Kind
		}
		return tx.Create(&record).Error
	})
}

// Top returns the group's leaderboard ordered by cumulative score.
func (s *LeaderboardService) Top(groupID string, limit int) ([]models.GroupStat, error) {
	var stats []models.GroupStat
	err := s.db.Where("group_id = ?", groupID).
		Order("score DESC, wins DESC").
		Limit(limit).
		Find(&stats).Error
	return stats, err
}

// History returns the group's most recent finished games.
func (s *LeaderboardService) History(groupID string, limit int) ([]models.GameRecord, error) {
	var records []models.GameRecord
	err := s.db.Where("group_id = ?", groupID).
		Order("played_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
