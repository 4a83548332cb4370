package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"github.com/lutefd/pokedex-api/internal/storage"
)

const MaxSize = 6

var (
	ErrCapacityExceeded = errors.New("team is already full (max 6 pokemon)")
	ErrRemoveFailed     = errors.New("failed to remove pokemon from team")
	ErrPersistence      = errors.New("team store write failed")
)

type Store interface {
	ListTeam(ctx context.Context) ([]pokemon.Member, error)
	InsertTeamMember(ctx context.Context, m pokemon.Member) (pokemon.Member, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) List(ctx context.Context) ([]pokemon.Member, error) {
	return m.store.ListTeam(ctx)
}

// Add re-reads the roster right before inserting. Two concurrent adds can both pass the
// check; the store itself enforces no limit.
func (m *Manager) Add(ctx context.Context, member pokemon.Member) (pokemon.Member, error) {
	current, err := m.store.ListTeam(ctx)
	if err != nil {
		return pokemon.Member{}, err
	}
	if len(current) >= MaxSize {
		return pokemon.Member{}, ErrCapacityExceeded
	}
	saved, err := m.store.InsertTeamMember(ctx, member)
	if err != nil {
		return pokemon.Member{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}

func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	if err := m.store.DeleteTeamMember(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrRemoveFailed, err)
		}
		return fmt.Errorf("%w: %w: %v", ErrRemoveFailed, ErrPersistence, err)
	}
	return nil
}

// RemoveFrom deletes id and returns roster without it, without re-listing the store.
func (m *Manager) RemoveFrom(ctx context.Context, roster []pokemon.Member, id uuid.UUID) ([]pokemon.Member, error) {
	if err := m.Remove(ctx, id); err != nil {
		return roster, err
	}
	return Without(roster, id), nil
}

func Without(roster []pokemon.Member, id uuid.UUID) []pokemon.Member {
	out := make([]pokemon.Member, 0, len(roster))
	for _, member := range roster {
		if member.RecordID != id {
			out = append(out, member)
		}
	}
	return out
}
