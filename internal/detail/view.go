package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

var (
	ErrAlreadyAdded = errors.New("pokemon already added from this view")
	ErrEmptyQuery   = errors.New("pokemon name or id is required")
)

type Catalog interface {
	Detail(ctx context.Context, nameOrID string) (pokemon.Entry, error)
}

type Team interface {
	Add(ctx context.Context, m pokemon.Member) (pokemon.Member, error)
}

// View is one opened detail page. Its add latch is not shared with other views, so the
// same pokemon can be added again from a fresh view.
type View struct {
	Entry pokemon.Entry

	team  Team
	mu    sync.Mutex
	added bool
}

func Open(ctx context.Context, c Catalog, t Team, nameOrID string) (*View, error) {
	q := pokemon.NormalizeQuery(nameOrID)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	entry, err := c.Detail(ctx, q)
	if err != nil {
		return nil, err
	}
	return &View{Entry: entry, team: t}, nil
}

func (v *View) CanAdd() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.added
}

func (v *View) AddToTeam(ctx context.Context) (pokemon.Member, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.added {
		return pokemon.Member{}, ErrAlreadyAdded
	}
	saved, err := v.team.Add(ctx, pokemon.Project(v.Entry))
	if err != nil {
		return pokemon.Member{}, err
	}
	v.added = true
	return saved, nil
}
