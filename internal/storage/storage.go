package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

var ErrNotFound = errors.New("record not found")

// Store holds the two flat record collections. Inserts assign the record id and
// creation time; lists return records in insertion order.
type Store interface {
	ListTeam(ctx context.Context) ([]pokemon.Member, error)
	InsertTeamMember(ctx context.Context, m pokemon.Member) (pokemon.Member, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
	ListBattles(ctx context.Context) ([]battle.Record, error)
	InsertBattle(ctx context.Context, r battle.Record) (battle.Record, error)
	Close()
}
