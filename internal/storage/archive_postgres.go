package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cricsaga/internal/ports"
)

// matchRow is the gorm mapping for one archived match.
type matchRow struct {
	ID        uint   `gorm:"primaryKey"`
	MatchID   string `gorm:"uniqueIndex;size:64"`
	DisplayID string `gorm:"size:32"`
	Mode      string `gorm:"size:16"`
	Name      string

	Winner string
	Margin string
	Tied   bool

	FirstInnings  string
	SecondInnings string

	FirstInningsRate  float64
	SecondInningsRate float64

	Boundaries   int
	Sixes        int
	DotBalls     int
	BestOverRuns int

	CreatorID   string `gorm:"index;size:64"`
	CreatorName string
	JoinerID    string `gorm:"index;size:64"`
	JoinerName  string

	PlayedAt time.Time
}

func (matchRow) TableName() string { return "match_history" }

func rowFromRecord(rec ports.MatchRecord) matchRow {
	return matchRow{
		MatchID:           rec.MatchID,
		DisplayID:         rec.DisplayID,
		Mode:              rec.Mode,
		Name:              rec.Name,
		Winner:            rec.Winner,
		Margin:            rec.Margin,
		Tied:              rec.Tied,
		FirstInnings:      rec.FirstInnings,
		SecondInnings:     rec.SecondInnings,
		FirstInningsRate:  rec.FirstInningsRate,
		SecondInningsRate: rec.SecondInningsRate,
		Boundaries:        rec.Boundaries,
		Sixes:             rec.Sixes,
		DotBalls:          rec.DotBalls,
		BestOverRuns:      rec.BestOverRuns,
		CreatorID:         rec.CreatorID,
		CreatorName:       rec.CreatorName,
		JoinerID:          rec.JoinerID,
		JoinerName:        rec.JoinerName,
		PlayedAt:          rec.PlayedAt,
	}
}

func (r matchRow) record() ports.MatchRecord {
	return ports.MatchRecord{
		MatchID:           r.MatchID,
		DisplayID:         r.DisplayID,
		Mode:              r.Mode,
		Name:              r.Name,
		Winner:            r.Winner,
		Margin:            r.Margin,
		Tied:              r.Tied,
		FirstInnings:      r.FirstInnings,
		SecondInnings:     r.SecondInnings,
		FirstInningsRate:  r.FirstInningsRate,
		SecondInningsRate: r.SecondInningsRate,
		Boundaries:        r.Boundaries,
		Sixes:             r.Sixes,
		DotBalls:          r.DotBalls,
		BestOverRuns:      r.BestOverRuns,
		CreatorID:         r.CreatorID,
		CreatorName:       r.CreatorName,
		JoinerID:          r.JoinerID,
		JoinerName:        r.JoinerName,
		PlayedAt:          r.PlayedAt,
	}
}

// PostgresArchive stores finished matches in Postgres via gorm.
type PostgresArchive struct {
	db *gorm.DB
}

// NewPostgresArchive connects to the database and migrates the history table.
func NewPostgresArchive(dsn string) (*PostgresArchive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect to postgres")
	}
	if err := db.AutoMigrate(&matchRow{}); err != nil {
		return nil, eris.Wrap(err, "failed to migrate match history table")
	}
	return &PostgresArchive{db: db}, nil
}

func (a *PostgresArchive) Save(ctx context.Context, rec ports.MatchRecord) error {
	row := rowFromRecord(rec)
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		return eris.Wrap(err, "failed to save match record")
	}
	return nil
}

func (a *PostgresArchive) ListByUser(ctx context.Context, userID string, limit int) ([]ports.MatchRecord, error) {
	var rows []matchRow
	q := a.db.WithContext(ctx).
		Where("creator_id = ? OR joiner_id = ?", userID, userID).
		Order("played_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, eris.Wrap(err, "failed to list match records")
	}

	out := make([]ports.MatchRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (a *PostgresArchive) Get(ctx context.Context, matchID string) (ports.MatchRecord, error) {
	var row matchRow
	err := a.db.WithContext(ctx).Where("match_id = ?", matchID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.MatchRecord{}, ErrNotFound
	}
	if err != nil {
		return ports.MatchRecord{}, eris.Wrap(err, "failed to fetch match record")
	}
	return row.record(), nil
}

func (a *PostgresArchive) Delete(ctx context.Context, matchID, userID string) error {
	res := a.db.WithContext(ctx).
		Where("match_id = ? AND (creator_id = ? OR joiner_id = ?)", matchID, userID, userID).
		Delete(&matchRow{})
	if res.Error != nil {
		return eris.Wrap(res.Error, "failed to delete match record")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
