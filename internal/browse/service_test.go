package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lutefd/pokedex-api/internal/catalog"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

type catalogMock struct {
	mu      sync.Mutex
	count   int
	refs    []catalog.Ref
	byType  map[string][]catalog.Ref
	failOn  string
	offsets []int
	details []string
}

func newCatalogMock(n int) *catalogMock {
	m := &catalogMock{count: n, byType: map[string][]catalog.Ref{}}
	for i := 1; i <= n; i++ {
		m.refs = append(m.refs, catalog.Ref{Name: fmt.Sprintf("mon-%d", i)})
	}
	return m
}

func (m *catalogMock) List(_ context.Context, limit, offset int) (catalog.ListPage, error) {
	m.mu.Lock()
	m.offsets = append(m.offsets, offset)
	m.mu.Unlock()
	return catalog.ListPage{Count: m.count, Results: window(m.refs, offset, limit)}, nil
}

func (m *catalogMock) Detail(_ context.Context, name string) (pokemon.Entry, error) {
	m.mu.Lock()
	m.details = append(m.details, name)
	m.mu.Unlock()

	if name == m.failOn {
		return pokemon.Entry{}, catalog.ErrFetchFailure
	}
	var id int
	if _, err := fmt.Sscanf(name, "mon-%d", &id); err != nil {
		return pokemon.Entry{}, catalog.ErrNotFound
	}
	// later entries answer first so ordering is exercised
	time.Sleep(time.Duration(25-id%25) * time.Millisecond / 10)
	return pokemon.Entry{ID: id, Name: name, Types: []string{"normal"}}, nil
}

func (m *catalogMock) ListByType(_ context.Context, tag string) ([]catalog.Ref, error) {
	return m.byType[tag], nil
}

func TestPageWithoutFilterKeepsCatalogOrder(t *testing.T) {
	mock := newCatalogMock(45)
	svc := NewService(mock)

	page, err := svc.Page(context.Background(), Query{Page: 1})
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if len(mock.offsets) != 1 || mock.offsets[0] != 20 {
		t.Fatalf("expected offset 20, got %+v", mock.offsets)
	}
	if page.Total != 45 || page.PageCount != 3 || !page.Paginated {
		t.Fatalf("unexpected paging: %+v", page)
	}
	if len(page.Items) != PageSize {
		t.Fatalf("expected %d items, got %d", PageSize, len(page.Items))
	}
	for i, item := range page.Items {
		if item.ID != 21+i {
			t.Fatalf("item %d out of order: %+v", i, item)
		}
	}
	if page.Items[0].DisplayName != "Mon 21" {
		t.Fatalf("unexpected display name %q", page.Items[0].DisplayName)
	}
}

func TestPageWithTypeFilterSlicesLocally(t *testing.T) {
	mock := newCatalogMock(0)
	for i := 1; i <= 23; i++ {
		mock.byType["rock"] = append(mock.byType["rock"], catalog.Ref{Name: fmt.Sprintf("mon-%d", i)})
	}
	svc := NewService(mock)

	page, err := svc.Page(context.Background(), Query{Page: 1, Type: "rock"})
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if page.Total != 23 || page.PageCount != 2 {
		t.Fatalf("expected filtered totals, got %+v", page)
	}
	if len(page.Items) != 3 || page.Items[0].ID != 21 || page.Items[2].ID != 23 {
		t.Fatalf("unexpected window: %+v", page.Items)
	}
	if len(mock.offsets) != 0 {
		t.Fatalf("global list must not be called with a type filter")
	}

	beyond, err := svc.Page(context.Background(), Query{Page: 5, Type: "rock"})
	if err != nil {
		t.Fatalf("page beyond end failed: %v", err)
	}
	if len(beyond.Items) != 0 || beyond.Total != 23 {
		t.Fatalf("expected empty window, got %+v", beyond)
	}

	if _, err := svc.Page(context.Background(), Query{Page: MaxPage + 1, Type: "rock"}); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
	last, err := svc.Page(context.Background(), Query{Page: MaxPage, Type: "rock"})
	if err != nil || len(last.Items) != 0 {
		t.Fatalf("expected empty last page, got %+v, %v", last, err)
	}
	if len(window(mock.byType["rock"], -20, PageSize)) != 0 {
		t.Fatalf("negative start must give an empty window")
	}
}

func TestPageRejectsUnknownType(t *testing.T) {
	_, err := NewService(newCatalogMock(1)).Page(context.Background(), Query{Type: "shadow"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestPageFailsWholeWhenOneDetailFails(t *testing.T) {
	mock := newCatalogMock(20)
	mock.failOn = "mon-7"

	_, err := NewService(mock).Page(context.Background(), Query{})
	if !errors.Is(err, catalog.ErrFetchFailure) {
		t.Fatalf("expected ErrFetchFailure, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	mock := newCatalogMock(30)
	svc := NewService(mock)

	tests := []struct {
		name      string
		search    string
		wantItems int
		paginated bool
	}{
		{name: "exact hit", search: "  MON-3 ", wantItems: 1},
		{name: "miss is empty", search: "mon", wantItems: 0},
		{name: "blank behaves like no search", search: "   ", wantItems: PageSize, paginated: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.Page(context.Background(), Query{Search: tc.search})
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(page.Items) != tc.wantItems {
				t.Fatalf("expected %d items, got %d", tc.wantItems, len(page.Items))
			}
			if page.Paginated != tc.paginated {
				t.Fatalf("expected paginated=%v", tc.paginated)
			}
		})
	}

	hit, _ := svc.Page(context.Background(), Query{Search: "Mon-3"})
	if hit.Items[0].Name != "mon-3" {
		t.Fatalf("expected lower-cased lookup, got %+v", hit.Items[0])
	}
}
