package roster

import "strings"

// Appearance is one player-year-level entry from the source data.
type Appearance struct {
	Player    string `json:"player"`
	Year      Number `json:"year"`
	Level     string `json:"level"`
	Games     Number `json:"games"`
	Avg       Number `json:"avg"`
	Runs      Number `json:"runs"`
	OPS       Number `json:"ops"`
	OBP       Number `json:"obp"`
	BirthYear Number `json:"birthYear"`
	DebutYear Number `json:"debutYear"`
}

// Tier is the league level an appearance was recorded at.
type Tier int

const (
	TierUnknown Tier = iota
	TierFirst
	TierSecond
)

// ParseTier accepts both the english labels and the labels used by the
// original data files ("一軍" / "二軍").
func ParseTier(level string) Tier {
	switch strings.TrimSpace(level) {
	case "first-tier", "一軍":
		return TierFirst
	case "second-tier", "二軍":
		return TierSecond
	default:
		return TierUnknown
	}
}

func (t Tier) String() string {
	switch t {
	case TierFirst:
		return "first-tier"
	case TierSecond:
		return "second-tier"
	default:
		return "unknown"
	}
}

func (a Appearance) Tier() Tier {
	return ParseTier(a.Level)
}
