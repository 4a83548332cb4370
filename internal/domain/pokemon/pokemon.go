package pokemon

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const FallbackSprite = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/25.png"

type Stat struct {
	Name string `json:"name"`
	Base int    `json:"baseStat"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"isHidden"`
}

// Entry is a full catalog record. It is never mutated locally.
type Entry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SpriteURL string    `json:"spriteUrl"`
	Types     []string  `json:"types"`
	Weight    int       `json:"weight"`
	Height    int       `json:"height"`
	Stats     []Stat    `json:"stats"`
	Abilities []Ability `json:"abilities"`
	Moves     []string  `json:"moves"`
}

// Member is a team roster record. RecordID and CreatedAt are assigned by the store.
type Member struct {
	RecordID  uuid.UUID `json:"recordId"`
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SpriteURL string    `json:"spriteUrl"`
	Types     []string  `json:"types"`
	Stats     []Stat    `json:"stats"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

type Summary struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	SpriteURL   string   `json:"spriteUrl"`
	Types       []string `json:"types"`
	Weight      int      `json:"weight"`
	Height      int      `json:"height"`
}

func Project(e Entry) Member {
	return Member{
		ID:        e.ID,
		Name:      e.Name,
		SpriteURL: e.SpriteURL,
		Types:     append([]string(nil), e.Types...),
		Stats:     append([]Stat(nil), e.Stats...),
		Height:    e.Height,
		Weight:    e.Weight,
	}
}

func Summarize(e Entry) Summary {
	return Summary{
		ID:          e.ID,
		Name:        e.Name,
		DisplayName: DisplayName(e.Name),
		SpriteURL:   e.SpriteURL,
		Types:       append([]string(nil), e.Types...),
		Weight:      e.Weight,
		Height:      e.Height,
	}
}

// DisplayName turns a catalog slug such as "mr-mime" into "Mr Mime".
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// NormalizeQuery lower-cases and trims a user supplied name or id.
func NormalizeQuery(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

func (m Member) BaseStat(name string) (int, bool) {
	for _, s := range m.Stats {
		if s.Name == name {
			return s.Base, true
		}
	}
	return 0, false
}
