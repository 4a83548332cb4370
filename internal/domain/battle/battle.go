package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

// RoundStats are compared in order. The count must stay odd so an overall tie cannot happen.
var RoundStats = []string{"hp", "attack", "speed"}

var (
	ErrMissingStat = errors.New("pokemon is missing a battle stat")
	ErrSelfBattle  = errors.New("a pokemon cannot battle itself")
)

type Round struct {
	Stat   string `json:"stat"`
	Value1 int    `json:"value1"`
	Value2 int    `json:"value2"`
	Winner string `json:"winner"`
}

type Result struct {
	Pokemon1 string  `json:"pokemon1"`
	Pokemon2 string  `json:"pokemon2"`
	Winner   string  `json:"winner"`
	Rounds   []Round `json:"rounds"`
}

// Record is a persisted Result. Date is an RFC 3339 timestamp set when the record is saved.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Pokemon1 string    `json:"pokemon1"`
	Pokemon2 string    `json:"pokemon2"`
	Winner   string    `json:"winner"`
	Rounds   []Round   `json:"rounds"`
	Date     string    `json:"date"`
}

func (r Record) Loser() string {
	if r.Winner == r.Pokemon1 {
		return r.Pokemon2
	}
	return r.Pokemon1
}

func NewRecord(res Result) Record {
	return Record{
		Pokemon1: res.Pokemon1,
		Pokemon2: res.Pokemon2,
		Winner:   res.Winner,
		Rounds:   append([]Round(nil), res.Rounds...),
	}
}

// RoundWinner returns the first participant only on a strict win; ties go to the second.
func RoundWinner(name1 string, v1 int, name2 string, v2 int) string {
	if v1 > v2 {
		return name1
	}
	return name2
}

// Simulate runs the three stat rounds. Two members of the same species may fight; the
// result then carries the same name on both sides.
func Simulate(a, b pokemon.Member) (Result, error) {
	res := Result{
		Pokemon1: a.Name,
		Pokemon2: b.Name,
		Rounds:   make([]Round, 0, len(RoundStats)),
	}
	var winsA, winsB int
	for _, stat := range RoundStats {
		v1, ok := a.BaseStat(stat)
		if !ok {
			return Result{}, fmt.Errorf("%s has no %s: %w", a.Name, stat, ErrMissingStat)
		}
		v2, ok := b.BaseStat(stat)
		if !ok {
			return Result{}, fmt.Errorf("%s has no %s: %w", b.Name, stat, ErrMissingStat)
		}

		winner := RoundWinner(a.Name, v1, b.Name, v2)
		if winner == a.Name {
			winsA++
		} else {
			winsB++
		}
		res.Rounds = append(res.Rounds, Round{Stat: stat, Value1: v1, Value2: v2, Winner: winner})
	}

	res.Winner = b.Name
	if winsA > winsB {
		res.Winner = a.Name
	}
	return res, nil
}
