package history

import (
	"context"
	"log"

	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

type Store interface {
	ListBattles(ctx context.Context) ([]battle.Record, error)
}

type Catalog interface {
	Detail(ctx context.Context, nameOrID string) (pokemon.Entry, error)
}

type Entry struct {
	battle.Record
	Loser       string `json:"loser"`
	WinnerImage string `json:"winnerImage"`
	LoserImage  string `json:"loserImage"`
}

type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, c Catalog) *Service {
	return &Service{store: store, catalog: c}
}

// List returns battles newest first by store order, with participant images.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	records, err := s.store.ListBattles(ctx)
	if err != nil {
		return nil, err
	}

	images := newImageCache(s.catalog)
	out := make([]Entry, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		loser := rec.Loser()
		out = append(out, Entry{
			Record:      rec,
			Loser:       loser,
			WinnerImage: images.resolve(ctx, rec.Winner),
			LoserImage:  images.resolve(ctx, loser),
		})
	}
	return out, nil
}

// imageCache lives for a single List call.
type imageCache struct {
	catalog Catalog
	byName  map[string]string
}

func newImageCache(c Catalog) *imageCache {
	return &imageCache{catalog: c, byName: map[string]string{}}
}

func (c *imageCache) resolve(ctx context.Context, name string) string {
	if url, ok := c.byName[name]; ok {
		return url
	}
	url := pokemon.FallbackSprite
	entry, err := c.catalog.Detail(ctx, name)
	if err != nil {
		log.Printf("resolve image for %s: %v", name, err)
	} else if entry.SpriteURL != "" {
		url = entry.SpriteURL
	}
	c.byName[name] = url
	return url
}
