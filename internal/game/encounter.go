package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/samdwyer/turnbattle/internal/entity"
	"github.com/samdwyer/turnbattle/internal/gamedata"
)

// NewEncounter loads what cfg names from store and builds a battle.
// opts.RNG picks the encounter group and drives the battle.
func NewEncounter(ctx context.Context, cfg Config, store *gamedata.Store, opts Options) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.RNG == nil {
		return nil, errors.New("encounter needs a random source")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if ok, err := store.LoadSpells(ctx); err != nil {
		return nil, fmt.Errorf("failed to load spells: %w", err)
	} else if !ok {
		logger.Warn("no spell file, skills will use placeholders")
	}

	party := make(entity.Roster, 0, len(cfg.Party))
	for _, id := range cfg.Party {
		ok, err := store.LoadCombatant(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load party member %s: %w", id, err)
		}
		if !ok {
			return nil, fmt.Errorf("party member %s not found", id)
		}
		party = append(party, store.MakePlayer(id, cfg.PartyLevel))
	}

	ok, err := store.LoadEnemiesForLevel(ctx, cfg.EnemyLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to load enemies for level %d: %w", cfg.EnemyLevel, err)
	}
	if !ok {
		return nil, fmt.Errorf("no enemies for level %d", cfg.EnemyLevel)
	}

	groupID := cfg.Encounter
	if groupID == "" {
		group, ok := store.RandomGroup(opts.RNG)
		if !ok {
			return nil, fmt.Errorf("level %d has no spawnable encounter groups", cfg.EnemyLevel)
		}
		groupID = group.ID
	}
	enemies := store.MakeEncounter(groupID)
	if len(enemies) == 0 {
		return nil, fmt.Errorf("encounter %s has no enemies", groupID)
	}
	logger.Info("encounter ready", zap.String("group", groupID), zap.Int("enemies", len(enemies)))

	if opts.Spells == nil {
		opts.Spells = store
	}
	if opts.LogSize == 0 {
		opts.LogSize = cfg.LogSize
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = cfg.Timings
	}
	opts.SpeedOrder = opts.SpeedOrder || cfg.SpeedOrder
	return NewBattle(ctx, party, enemies, opts), nil
}
