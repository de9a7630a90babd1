package progression

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/structs"
	"github.com/go4it-sports/starpath/pkg/enum"
	"github.com/mitchellh/mapstructure"
)

type AchievementKind string

var (
	AchievementKindAchievement = enum.New(AchievementKind("achievement"))
	AchievementKindBadge       = enum.New(AchievementKind("badge"))
)

type Achievement struct {
	ID          string          `mapstructure:"id" structs:"id"`
	Kind        AchievementKind `mapstructure:"-" structs:"-"`
	Name        string          `mapstructure:"name" structs:"name"`
	Description string          `mapstructure:"description" structs:"description"`
	Icon        string          `mapstructure:"icon" structs:"icon,omitempty"`
	Points      int64           `mapstructure:"points" structs:"points"`
	Rule        Rule            `mapstructure:"rule" structs:"rule"`

	// MaxProgress caps the displayed progress of a badge.
	MaxProgress int64 `mapstructure:"max_progress" structs:"max_progress,omitempty"`
}

// Progress returns how far the player is toward the achievement, capped at
// MaxProgress for badges and at the rule threshold otherwise.
func (a Achievement) Progress(facts Facts) int64 {
	limit := a.Rule.Threshold
	if a.Kind == AchievementKindBadge && a.MaxProgress > 0 {
		limit = a.MaxProgress
	}

	measure := a.Rule.Measure(facts)
	if measure > limit {
		return limit
	}

	return measure
}

// Catalog is the static list of achievements. It is read-only once built.
type Catalog struct {
	achievements []Achievement
	index        map[string]int
}

func NewCatalog(achievements ...Achievement) (*Catalog, error) {
	catalog := &Catalog{index: make(map[string]int)}
	for _, a := range achievements {
		if a.ID == "" {
			return nil, fmt.Errorf("achievement %q has an empty id", a.Name)
		}

		if _, ok := catalog.index[a.ID]; ok {
			return nil, fmt.Errorf("duplicated achievement id %s", a.ID)
		}

		if a.Kind == "" {
			a.Kind = AchievementKindAchievement
		}

		if _, err := enum.ToEnum[AchievementKind](string(a.Kind)); err != nil {
			return nil, fmt.Errorf("achievement %s: %w", a.ID, err)
		}

		if a.Points < 0 {
			return nil, fmt.Errorf("achievement %s has negative points", a.ID)
		}

		if err := a.Rule.Validate(); err != nil {
			return nil, fmt.Errorf("achievement %s: %w", a.ID, err)
		}

		catalog.index[a.ID] = len(catalog.achievements)
		catalog.achievements = append(catalog.achievements, a)
	}

	return catalog, nil
}

func (c *Catalog) All() []Achievement {
	return c.achievements
}

func (c *Catalog) Get(id string) (Achievement, bool) {
	i, ok := c.index[id]
	if !ok {
		return Achievement{}, false
	}

	return c.achievements[i], true
}

func (c *Catalog) Len() int {
	return len(c.achievements)
}

type catalogFile struct {
	Achievement []map[string]any `toml:"achievement"`
	Badge       []map[string]any `toml:"badge"`
}

// LoadCatalog reads a TOML catalog made of [[achievement]] and [[badge]]
// tables. An empty path returns the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("cannot decode catalog %s: %w", path, err)
	}

	return decodeCatalog(file)
}

func ParseCatalog(data string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, err
	}

	return decodeCatalog(file)
}

func decodeCatalog(file catalogFile) (*Catalog, error) {
	achievements := []Achievement{}
	for _, table := range []struct {
		kind    AchievementKind
		entries []map[string]any
	}{
		{kind: AchievementKindAchievement, entries: file.Achievement},
		{kind: AchievementKindBadge, entries: file.Badge},
	} {
		for _, data := range table.entries {
			a := Achievement{Kind: table.kind}
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				ErrorUnused: true,
				Result:      &a,
			})
			if err != nil {
				return nil, err
			}

			if err := decoder.Decode(data); err != nil {
				return nil, fmt.Errorf("cannot decode %s: %w", table.kind, err)
			}

			achievements = append(achievements, a)
		}
	}

	return NewCatalog(achievements...)
}

// EncodeCatalog returns the TOML form read by LoadCatalog.
func EncodeCatalog(c *Catalog) (string, error) {
	var file catalogFile
	for _, a := range c.achievements {
		if a.Kind == AchievementKindBadge {
			file.Badge = append(file.Badge, structs.Map(a))
		} else {
			file.Achievement = append(file.Achievement, structs.Map(a))
		}
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(file); err != nil {
		return "", err
	}

	return sb.String(), nil
}
