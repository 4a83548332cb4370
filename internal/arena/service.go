package arena

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"github.com/lutefd/pokedex-api/internal/events"
)

var (
	ErrMemberNotFound = errors.New("team member not found")
	ErrPersistence    = errors.New("battle store write failed")
)

type Store interface {
	ListTeam(ctx context.Context) ([]pokemon.Member, error)
	ListBattles(ctx context.Context) ([]battle.Record, error)
	InsertBattle(ctx context.Context, r battle.Record) (battle.Record, error)
}

type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type Service struct {
	store       Store
	bus         Publisher
	now         func() time.Time
	saveTimeout time.Duration
	pending     sync.WaitGroup
}

func NewService(store Store, bus Publisher) *Service {
	return &Service{
		store:       store,
		bus:         bus,
		now:         time.Now,
		saveTimeout: 10 * time.Second,
	}
}

// Fight simulates a battle between two distinct roster entries and returns the result
// without waiting for it to be recorded. A failed save is logged and never changes the result.
func (s *Service) Fight(ctx context.Context, id1, id2 uuid.UUID) (battle.Result, error) {
	if id1 == id2 {
		return battle.Result{}, battle.ErrSelfBattle
	}
	roster, err := s.store.ListTeam(ctx)
	if err != nil {
		return battle.Result{}, err
	}
	a, err := findMember(roster, id1)
	if err != nil {
		return battle.Result{}, err
	}
	b, err := findMember(roster, id2)
	if err != nil {
		return battle.Result{}, err
	}

	res, err := battle.Simulate(a, b)
	if err != nil {
		return battle.Result{}, err
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		saveCtx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		if _, err := s.Save(saveCtx, res); err != nil {
			log.Printf("save battle %s vs %s: %v", res.Pokemon1, res.Pokemon2, err)
		}
	}()
	return res, nil
}

// Save stamps the record with the current time and appends it to the battle history.
func (s *Service) Save(ctx context.Context, res battle.Result) (battle.Record, error) {
	rec := battle.NewRecord(res)
	rec.Date = s.now().UTC().Format(time.RFC3339Nano)

	saved, err := s.store.InsertBattle(ctx, rec)
	if err != nil {
		return battle.Record{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if s.bus != nil {
		if err := s.bus.Publish(ctx, events.Event{Name: events.BattleRecorded, Payload: saved}); err != nil {
			log.Printf("publish battle %s: %v", saved.ID, err)
		}
	}
	return saved, nil
}

func (s *Service) Records(ctx context.Context) ([]battle.Record, error) {
	return s.store.ListBattles(ctx)
}

// Wait blocks until background saves started by Fight have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func findMember(roster []pokemon.Member, id uuid.UUID) (pokemon.Member, error) {
	for _, m := range roster {
		if m.RecordID == id {
			return m, nil
		}
	}
	return pokemon.Member{}, fmt.Errorf("%s: %w", id, ErrMemberNotFound)
}
