// Package store persists finished games and serves the leaderboard.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// GameResult is one finished playthrough.
type GameResult struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"index"`
	Player       string `gorm:"index"`
	Language     string
	Word         string
	WrongGuesses int
	Won          bool
	CreatedAt    time.Time
}

func (GameResult) TableName() string { return "game_results" }

// LeaderboardEntry aggregates one player's record. BestScore is the fewest
// wrong guesses across their wins, nil when they have none.
type LeaderboardEntry struct {
	Player    string `json:"player"`
	Wins      int    `json:"wins"`
	BestScore *int   `json:"best_score"`
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&GameResult{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveResult(ctx context.Context, res GameResult) error {
	if err := s.db.WithContext(ctx).Create(&res).Error; err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// TopPlayers returns up to limit players ordered by wins, ties broken by the
// lowest best score.
func (s *Store) TopPlayers(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.WithContext(ctx).
		Model(&GameResult{}).
		Select("player, count(*) filter (where won) as wins, min(wrong_guesses) filter (where won) as best_score").
		Group("player").
		Order("wins desc, best_score asc nulls last").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	return entries, nil
}
