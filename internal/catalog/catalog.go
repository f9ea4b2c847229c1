// Package catalog loads the read-only raid definitions.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// ErrRaidNotFound is returned when no definition exists for a raid id
var ErrRaidNotFound = errors.New("raid not found")

// Catalog exposes immutable raid definitions by id
type Catalog interface {
	// GetRaid returns the definition for a raid id
	GetRaid(raidID string) (*models.RaidDefinition, error)

	// ListRaids returns every definition ordered by id
	ListRaids() []*models.RaidDefinition
}

type document struct {
	Raids map[string]*models.RaidDefinition `yaml:"raids"`
}

type static struct {
	raids map[string]*models.RaidDefinition
}

// Load reads a YAML catalog file
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return NewStatic(doc.Raids)
}

// NewStatic validates the definitions, resolves each progression shape and
// returns a catalog over them
func NewStatic(raids map[string]*models.RaidDefinition) (Catalog, error) {
	c := &static{raids: make(map[string]*models.RaidDefinition, len(raids))}
	for id, def := range raids {
		if def == nil {
			return nil, fmt.Errorf("raid %q: empty definition", id)
		}
		def.ID = id
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("raid %q: %w", id, err)
		}
		def.Shape = def.ResolveShape()
		c.raids[id] = def
	}
	return c, nil
}

func validate(def *models.RaidDefinition) error {
	if def.ResolveShape() == "" {
		return errors.New("no waves, phases, objectives or boss_rush declared")
	}
	if def.MinPlayers < 1 {
		return fmt.Errorf("min_players must be at least 1, got %d", def.MinPlayers)
	}
	if def.MaxPlayers < def.MinPlayers {
		return fmt.Errorf("max_players %d is below min_players %d", def.MaxPlayers, def.MinPlayers)
	}
	if def.Difficulty == "" {
		def.Difficulty = models.DifficultyNormal
	}
	for i, w := range def.Waves {
		if w == nil {
			return fmt.Errorf("wave %d is empty", i+1)
		}
		if w.Count > 0 && len(w.Enemies) == 0 {
			return errors.New("wave spawns enemies but has an empty enemy pool")
		}
	}
	for i, p := range def.Phases {
		if p == nil {
			return fmt.Errorf("phase %d is empty", i+1)
		}
	}
	for i, o := range def.Objectives {
		if o == nil {
			return fmt.Errorf("objective %d is empty", i+1)
		}
	}
	for i, b := range def.BossRush {
		if b == nil {
			return fmt.Errorf("boss_rush entry %d is empty", i+1)
		}
	}
	return nil
}

func (c *static) GetRaid(raidID string) (*models.RaidDefinition, error) {
	def, ok := c.raids[raidID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRaidNotFound, raidID)
	}
	return def, nil
}

func (c *static) ListRaids() []*models.RaidDefinition {
	defs := make([]*models.RaidDefinition, 0, len(c.raids))
	for _, def := range c.raids {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}
