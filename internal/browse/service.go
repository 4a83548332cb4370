package browse

import (
	"context"
	"errors"
	"math"

	"github.com/lutefd/pokedex-api/internal/catalog"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"golang.org/x/sync/errgroup"
)

const PageSize = 20

// MaxPage keeps the page offset from overflowing.
const MaxPage = math.MaxInt / PageSize

var (
	ErrUnknownType    = errors.New("unknown pokemon type")
	ErrPageOutOfRange = errors.New("page out of range")
)

type Catalog interface {
	List(ctx context.Context, limit, offset int) (catalog.ListPage, error)
	Detail(ctx context.Context, nameOrID string) (pokemon.Entry, error)
	ListByType(ctx context.Context, typeTag string) ([]catalog.Ref, error)
}

type Query struct {
	Page   int
	Type   string
	Search string
}

// Page is one catalog window. Paginated is false while a search term is active.
type Page struct {
	Items     []pokemon.Summary `json:"items"`
	Page      int               `json:"page"`
	Total     int               `json:"total"`
	PageCount int               `json:"pageCount"`
	Paginated bool              `json:"paginated"`
}

type Service struct {
	catalog Catalog
}

func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

func (s *Service) Page(ctx context.Context, q Query) (Page, error) {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Page > MaxPage {
		return Page{}, ErrPageOutOfRange
	}
	if term := pokemon.NormalizeQuery(q.Search); term != "" {
		return s.search(ctx, term)
	}

	var (
		names []string
		total int
	)
	if q.Type != "" {
		if !pokemon.IsTypeTag(q.Type) {
			return Page{}, ErrUnknownType
		}
		refs, err := s.catalog.ListByType(ctx, q.Type)
		if err != nil {
			return Page{}, err
		}
		total = len(refs)
		names = refNames(window(refs, q.Page*PageSize, PageSize))
	} else {
		list, err := s.catalog.List(ctx, PageSize, q.Page*PageSize)
		if err != nil {
			return Page{}, err
		}
		total = list.Count
		names = refNames(list.Results)
	}

	items, err := s.details(ctx, names)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:     items,
		Page:      q.Page,
		Total:     total,
		PageCount: pageCount(total),
		Paginated: true,
	}, nil
}

func (s *Service) search(ctx context.Context, term string) (Page, error) {
	entry, err := s.catalog.Detail(ctx, term)
	if errors.Is(err, catalog.ErrNotFound) {
		return Page{Items: []pokemon.Summary{}}, nil
	}
	if err != nil {
		return Page{}, err
	}
	return Page{Items: []pokemon.Summary{pokemon.Summarize(entry)}, Total: 1, PageCount: 1}, nil
}

// details fetches every name concurrently and keeps the input order.
func (s *Service) details(ctx context.Context, names []string) ([]pokemon.Summary, error) {
	out := make([]pokemon.Summary, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			entry, err := s.catalog.Detail(gctx, name)
			if err != nil {
				return err
			}
			out[i] = pokemon.Summarize(entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func window(refs []catalog.Ref, start, size int) []catalog.Ref {
	if start < 0 || start >= len(refs) {
		return nil
	}
	end := start + size
	if end > len(refs) {
		end = len(refs)
	}
	return refs[start:end]
}

func refNames(refs []catalog.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}

func pageCount(total int) int {
	return (total + PageSize - 1) / PageSize
}
