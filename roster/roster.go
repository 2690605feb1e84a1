// Package roster groups flat appearance records into players and orders them
// for display.
package roster

import (
	"cmp"
	"fmt"
	"slices"
)

// Player is one row of the chart: every appearance recorded for a name.
type Player struct {
	Name string `json:"name"`
	// FirstYear is the year of the first record encountered for this player,
	// which is only the true minimum when the input is ordered by year.
	FirstYear Number       `json:"firstYear"`
	BirthYear Number       `json:"birthYear"`
	DebutYear Number       `json:"debutYear"`
	Records   []Appearance `json:"records"`
}

// MinYear returns the smallest valid year across all records.
func (p *Player) MinYear() Number {
	var lowest Number
	for _, r := range p.Records {
		if !r.Year.Valid {
			continue
		}
		if !lowest.Valid || r.Year.Value < lowest.Value {
			lowest = r.Year
		}
	}
	return lowest
}

// StartsInFirstTier reports whether the player's record for FirstYear was
// played at the first tier. The first record matching FirstYear decides; when
// FirstYear is missing, the first record without a year matches it.
func (p *Player) StartsInFirstTier() bool {
	for _, r := range p.Records {
		if r.Year.Equal(p.FirstYear) || (!r.Year.Valid && !p.FirstYear.Valid) {
			return r.Tier() == TierFirst
		}
	}
	return false
}

// Build groups records by player in a single pass. Players come back in
// first-encounter order; each player's records keep input order.
func Build(records []Appearance) []*Player {
	index := make(map[string]*Player)
	var players []*Player

	for _, rec := range records {
		p, ok := index[rec.Player]
		if !ok {
			p = &Player{
				Name:      rec.Player,
				FirstYear: rec.Year,
				BirthYear: rec.BirthYear,
				DebutYear: rec.DebutYear,
			}
			index[rec.Player] = p
			players = append(players, p)
		}
		p.Records = append(p.Records, rec)
	}

	return players
}

// SortKey selects the field that orders the roster.
type SortKey int

const (
	SortFirstGame SortKey = iota
	SortBirth
	SortDebut
)

var SortKeys = []SortKey{SortFirstGame, SortBirth, SortDebut}

func (k SortKey) Key() string {
	switch k {
	case SortFirstGame:
		return "firstGame"
	case SortBirth:
		return "birth"
	case SortDebut:
		return "debut"
	default:
		return fmt.Sprintf("sort(%d)", int(k))
	}
}

func (k SortKey) Label() string {
	switch k {
	case SortFirstGame:
		return "First Appearance"
	case SortBirth:
		return "Birth Year"
	case SortDebut:
		return "Debut Year"
	default:
		return "Unknown"
	}
}

func (k SortKey) String() string { return k.Key() }

func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if k.Key() == s {
			return k, nil
		}
	}
	return SortFirstGame, fmt.Errorf("unknown sort key %q", s)
}

// sortValue returns the primary key for p, or ok=false when the key is not
// one of the known sort keys.
func sortValue(key SortKey, p *Player) (float64, bool) {
	switch key {
	case SortFirstGame:
		return p.FirstYear.SortValue(), true
	case SortBirth:
		return p.BirthYear.SortValue(), true
	case SortDebut:
		return p.DebutYear.SortValue(), true
	default:
		return 0, false
	}
}

// Compare orders two players under key: primary field with missing values
// last, then FirstYear, then first-tier starters ahead of second-tier ones.
func Compare(key SortKey, a, b *Player) int {
	av, aok := sortValue(key, a)
	bv, bok := sortValue(key, b)
	if aok && bok {
		if c := cmp.Compare(av, bv); c != 0 {
			return c
		}
	}

	if key != SortFirstGame {
		if c := cmp.Compare(a.FirstYear.SortValue(), b.FirstYear.SortValue()); c != 0 {
			return c
		}
	}

	aFirst, bFirst := a.StartsInFirstTier(), b.StartsInFirstTier()
	switch {
	case aFirst && !bFirst:
		return -1
	case !aFirst && bFirst:
		return 1
	}
	return 0
}

// Rank returns a stably sorted copy of players. The *Player values are
// shared with the input, only the order is new.
func Rank(players []*Player, key SortKey) []*Player {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b *Player) int {
		return Compare(key, a, b)
	})
	return ranked
}
