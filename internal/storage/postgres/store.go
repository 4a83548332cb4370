package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"github.com/lutefd/pokedex-api/internal/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ListTeam(ctx context.Context) ([]pokemon.Member, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pokemon_id, name, sprite_url, types, stats, height, weight, created_at
		FROM team_members
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]pokemon.Member, 0)
	for rows.Next() {
		var (
			v         pokemon.Member
			statsJSON []byte
		)
		if err := rows.Scan(
			&v.RecordID, &v.ID, &v.Name, &v.SpriteURL, &v.Types, &statsJSON, &v.Height, &v.Weight, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(statsJSON, &v.Stats); err != nil {
			return nil, fmt.Errorf("decode stats for %s: %w", v.RecordID, err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *Store) InsertTeamMember(ctx context.Context, v pokemon.Member) (pokemon.Member, error) {
	v.RecordID = uuid.New()
	v.CreatedAt = time.Now().UTC()
	if v.Types == nil {
		v.Types = []string{}
	}
	statsJSON, err := json.Marshal(v.Stats)
	if err != nil {
		return pokemon.Member{}, err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO team_members (id, pokemon_id, name, sprite_url, types, stats, height, weight, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, v.RecordID, v.ID, v.Name, v.SpriteURL, v.Types, statsJSON, v.Height, v.Weight, v.CreatedAt)
	if err != nil {
		return pokemon.Member{}, err
	}
	return v, nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListBattles(ctx context.Context) ([]battle.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pokemon1, pokemon2, winner, rounds, date
		FROM battles
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]battle.Record, 0)
	for rows.Next() {
		var (
			v          battle.Record
			roundsJSON []byte
		)
		if err := rows.Scan(&v.ID, &v.Pokemon1, &v.Pokemon2, &v.Winner, &roundsJSON, &v.Date); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(roundsJSON, &v.Rounds); err != nil {
			return nil, fmt.Errorf("decode rounds for %s: %w", v.ID, err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *Store) InsertBattle(ctx context.Context, v battle.Record) (battle.Record, error) {
	v.ID = uuid.New()
	roundsJSON, err := json.Marshal(v.Rounds)
	if err != nil {
		return battle.Record{}, err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO battles (id, pokemon1, pokemon2, winner, rounds, date)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, v.ID, v.Pokemon1, v.Pokemon2, v.Winner, roundsJSON, v.Date)
	if err != nil {
		return battle.Record{}, err
	}
	return v, nil
}
