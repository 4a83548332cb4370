package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

var (
	ErrNotFound     = errors.New("pokemon not found")
	ErrFetchFailure = errors.New("catalog unavailable")
)

type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ListPage struct {
	Count   int   `json:"count"`
	Results []Ref `json:"results"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

func (c *Client) List(ctx context.Context, limit, offset int) (ListPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out ListPage
	if err := c.get(ctx, "/pokemon?"+q.Encode(), &out); err != nil {
		return ListPage{}, err
	}
	return out, nil
}

func (c *Client) Detail(ctx context.Context, nameOrID string) (pokemon.Entry, error) {
	var raw apiPokemon
	if err := c.get(ctx, "/pokemon/"+url.PathEscape(nameOrID), &raw); err != nil {
		return pokemon.Entry{}, err
	}
	return raw.toEntry(), nil
}

// ListByType returns every catalog member of a type tag in catalog order.
func (c *Client) ListByType(ctx context.Context, typeTag string) ([]Ref, error) {
	var raw apiType
	if err := c.get(ctx, "/type/"+url.PathEscape(typeTag), &raw); err != nil {
		return nil, err
	}
	out := make([]Ref, 0, len(raw.Pokemon))
	for _, p := range raw.Pokemon {
		out = append(out, p.Pokemon)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: %s returned status %d", ErrFetchFailure, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrFetchFailure, path, err)
	}
	return nil
}

type apiSprite struct {
	FrontDefault string `json:"front_default"`
}

type apiPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork apiSprite `json:"official-artwork"`
			Home            apiSprite `json:"home"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int `json:"slot"`
		Type Ref `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     Ref `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  Ref  `json:"ability"`
		IsHidden bool `json:"is_hidden"`
	} `json:"abilities"`
	Moves []struct {
		Move Ref `json:"move"`
	} `json:"moves"`
}

type apiType struct {
	Pokemon []struct {
		Pokemon Ref `json:"pokemon"`
	} `json:"pokemon"`
}

func (p apiPokemon) spriteURL() string {
	for _, candidate := range []string{
		p.Sprites.Other.OfficialArtwork.FrontDefault,
		p.Sprites.Other.Home.FrontDefault,
		p.Sprites.FrontDefault,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return pokemon.FallbackSprite
}

func (p apiPokemon) toEntry() pokemon.Entry {
	slots := append(p.Types[:0:0], p.Types...)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })

	e := pokemon.Entry{
		ID:        p.ID,
		Name:      p.Name,
		SpriteURL: p.spriteURL(),
		Weight:    p.Weight,
		Height:    p.Height,
		Types:     make([]string, 0, len(slots)),
		Stats:     make([]pokemon.Stat, 0, len(p.Stats)),
		Abilities: make([]pokemon.Ability, 0, len(p.Abilities)),
		Moves:     make([]string, 0, len(p.Moves)),
	}
	for _, t := range slots {
		e.Types = append(e.Types, t.Type.Name)
	}
	for _, s := range p.Stats {
		e.Stats = append(e.Stats, pokemon.Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	for _, a := range p.Abilities {
		e.Abilities = append(e.Abilities, pokemon.Ability{Name: a.Ability.Name, Hidden: a.IsHidden})
	}
	for _, m := range p.Moves {
		e.Moves = append(e.Moves, m.Move.Name)
	}
	return e
}
