package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"github.com/lutefd/pokedex-api/internal/storage"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

type teamRow struct {
	Seq       uint           `gorm:"primaryKey;autoIncrement"`
	RecordID  string         `gorm:"uniqueIndex;not null"`
	PokemonID int            `gorm:"not null"`
	Name      string         `gorm:"not null"`
	SpriteURL string         `gorm:"not null"`
	Types     []string       `gorm:"serializer:json"`
	Stats     []pokemon.Stat `gorm:"serializer:json"`
	Height    int
	Weight    int
	CreatedAt time.Time
}

func (teamRow) TableName() string { return "team_members" }

type battleRow struct {
	Seq      uint           `gorm:"primaryKey;autoIncrement"`
	RecordID string         `gorm:"uniqueIndex;not null"`
	Pokemon1 string         `gorm:"not null"`
	Pokemon2 string         `gorm:"not null"`
	Winner   string         `gorm:"not null"`
	Rounds   []battle.Round `gorm:"serializer:json"`
	Date     string         `gorm:"not null"`
}

func (battleRow) TableName() string { return "battles" }

// Store keeps both collections in a single SQLite file for local, single-user setups.
type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DSN:        path,
		DriverName: "sqlite",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&teamRow{}, &battleRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *Store) ListTeam(ctx context.Context) ([]pokemon.Member, error) {
	var rows []teamRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]pokemon.Member, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.RecordID)
		if err != nil {
			return nil, err
		}
		items = append(items, pokemon.Member{
			RecordID:  id,
			ID:        r.PokemonID,
			Name:      r.Name,
			SpriteURL: r.SpriteURL,
			Types:     r.Types,
			Stats:     r.Stats,
			Height:    r.Height,
			Weight:    r.Weight,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (s *Store) InsertTeamMember(ctx context.Context, v pokemon.Member) (pokemon.Member, error) {
	v.RecordID = uuid.New()
	v.CreatedAt = time.Now().UTC()
	row := teamRow{
		RecordID:  v.RecordID.String(),
		PokemonID: v.ID,
		Name:      v.Name,
		SpriteURL: v.SpriteURL,
		Types:     v.Types,
		Stats:     v.Stats,
		Height:    v.Height,
		Weight:    v.Weight,
		CreatedAt: v.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return pokemon.Member{}, err
	}
	return v, nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("record_id = ?", id.String()).Delete(&teamRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListBattles(ctx context.Context) ([]battle.Record, error) {
	var rows []battleRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]battle.Record, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.RecordID)
		if err != nil {
			return nil, err
		}
		items = append(items, battle.Record{
			ID:       id,
			Pokemon1: r.Pokemon1,
			Pokemon2: r.Pokemon2,
			Winner:   r.Winner,
			Rounds:   r.Rounds,
			Date:     r.Date,
		})
	}
	return items, nil
}

func (s *Store) InsertBattle(ctx context.Context, v battle.Record) (battle.Record, error) {
	v.ID = uuid.New()
	row := battleRow{
		RecordID: v.ID.String(),
		Pokemon1: v.Pokemon1,
		Pokemon2: v.Pokemon2,
		Winner:   v.Winner,
		Rounds:   v.Rounds,
		Date:     v.Date,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return battle.Record{}, err
	}
	return v, nil
}
