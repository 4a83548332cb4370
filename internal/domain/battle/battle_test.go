package battle

import (
	"errors"
	"testing"

	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

func member(name string, hp, attack, speed int) pokemon.Member {
	return pokemon.Member{
		Name: name,
		Stats: []pokemon.Stat{
			{Name: "hp", Base: hp},
			{Name: "attack", Base: attack},
			{Name: "defense", Base: 40},
			{Name: "speed", Base: speed},
		},
	}
}

func roundsWon(res Result, name string) int {
	n := 0
	for _, r := range res.Rounds {
		if r.Winner == name {
			n++
		}
	}
	return n
}

func TestRoundWinner(t *testing.T) {
	tests := []struct {
		name string
		v1   int
		v2   int
		want string
	}{
		{name: "first strictly greater", v1: 90, v2: 20, want: "a"},
		{name: "second greater", v1: 20, v2: 90, want: "b"},
		{name: "equal favours second", v1: 50, v2: 50, want: "b"},
		{name: "zero values", v1: 0, v2: 0, want: "b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoundWinner("a", tc.v1, "b", tc.v2); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSimulatePikachuVersusGeodude(t *testing.T) {
	res, err := Simulate(member("pikachu", 35, 55, 90), member("geodude", 40, 80, 20))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if res.Winner != "geodude" {
		t.Fatalf("expected geodude to win, got %s", res.Winner)
	}
	want := []Round{
		{Stat: "hp", Value1: 35, Value2: 40, Winner: "geodude"},
		{Stat: "attack", Value1: 55, Value2: 80, Winner: "geodude"},
		{Stat: "speed", Value1: 90, Value2: 20, Winner: "pikachu"},
	}
	if len(res.Rounds) != len(want) {
		t.Fatalf("expected %d rounds, got %d", len(want), len(res.Rounds))
	}
	for i := range want {
		if res.Rounds[i] != want[i] {
			t.Fatalf("round %d: expected %+v, got %+v", i, want[i], res.Rounds[i])
		}
	}
}

func TestSimulateWinnerTakesMajority(t *testing.T) {
	values := []int{10, 50, 90}
	for _, hp := range values {
		for _, atk := range values {
			for _, spd := range values {
				a := member("alpha", hp, atk, spd)
				b := member("beta", 50, 50, 50)
				res, err := Simulate(a, b)
				if err != nil {
					t.Fatalf("simulate failed: %v", err)
				}
				wonA := roundsWon(res, "alpha")
				wonB := roundsWon(res, "beta")
				if wonA+wonB != len(RoundStats) {
					t.Fatalf("every round needs a winner, got %d+%d", wonA, wonB)
				}
				if wonA == wonB {
					t.Fatalf("overall tie reached with %+v", res.Rounds)
				}
				if roundsWon(res, res.Winner) < 2 {
					t.Fatalf("winner %s won fewer than 2 rounds: %+v", res.Winner, res.Rounds)
				}
			}
		}
	}
}

func TestSimulateMissingStat(t *testing.T) {
	a := member("pikachu", 35, 55, 90)
	b := pokemon.Member{Name: "ditto", Stats: []pokemon.Stat{{Name: "hp", Base: 48}}}

	_, err := Simulate(a, b)
	if !errors.Is(err, ErrMissingStat) {
		t.Fatalf("expected ErrMissingStat, got %v", err)
	}
}

func TestSimulateSameSpecies(t *testing.T) {
	a := member("pikachu", 35, 55, 90)
	b := member("pikachu", 36, 50, 90)
	res, err := Simulate(a, b)
	if err != nil {
		t.Fatalf("same species should be able to battle: %v", err)
	}
	if res.Winner != "pikachu" || res.Pokemon1 != "pikachu" || res.Pokemon2 != "pikachu" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Rounds[0].Value1 != 35 || res.Rounds[0].Value2 != 36 {
		t.Fatalf("rounds should keep positional values: %+v", res.Rounds[0])
	}
}

func TestRecordLoser(t *testing.T) {
	rec := NewRecord(Result{Pokemon1: "pikachu", Pokemon2: "geodude", Winner: "geodude"})
	if got := rec.Loser(); got != "pikachu" {
		t.Fatalf("expected pikachu, got %s", got)
	}
	rec.Winner = "pikachu"
	if got := rec.Loser(); got != "geodude" {
		t.Fatalf("expected geodude, got %s", got)
	}
}
