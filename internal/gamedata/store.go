package gamedata

import (
	"context"
	"errors"
	"io/fs"
	"math/rand"
	"sort"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/turnbattle/internal/entity"
	"github.com/samdwyer/turnbattle/internal/telemetry"
)

// File names inside the store's filesystem.
const (
	spellsFile = "spells.txt"
)

func partyFile(id string) string { return "party_" + id + ".txt" }
func enemyFile(level int) string { return "enemies_level_" + strconv.Itoa(level) + ".txt" }

// Store parses battle configuration files and caches the records by id.
// Each battle (or test) owns its own Store.
type Store struct {
	fsys   fs.FS
	logger *zap.Logger

	spells         map[string]SpellRecord
	templates      map[string]CombatantTemplate
	enemies        map[string]CombatantTemplate
	groups         map[string]EncounterGroup
	encounterRates map[string]int

	spellsLoaded bool
	enemyLevel   int // 0 means no enemy file loaded yet
}

// NewStore creates an empty store reading from fsys. A nil logger disables logging.
func NewStore(fsys fs.FS, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fsys:           fsys,
		logger:         logger.Named("gamedata"),
		spells:         make(map[string]SpellRecord),
		templates:      make(map[string]CombatantTemplate),
		enemies:        make(map[string]CombatantTemplate),
		groups:         make(map[string]EncounterGroup),
		encounterRates: make(map[string]int),
	}
}

// =============================================================================
// Loading
// =============================================================================
//
// Every Load* method returns (false, nil) when its file does not exist and
// (false, err) when the file is malformed. In both cases the cache is left
// exactly as it was.

// LoadSpells loads spells.txt. Calling it again after a success is a no-op.
func (s *Store) LoadSpells(ctx context.Context) (bool, error) {
	if s.spellsLoaded {
		return true, nil
	}

	_, span := telemetry.Tracer("gamedata").Start(ctx, "config.load")
	defer span.End()
	span.SetAttributes(attribute.String("config.file", spellsFile))

	entries, ok, err := s.read(spellsFile)
	if !ok {
		return false, err
	}
	spells, err := parseSpells(spellsFile, entries)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	for id, spell := range spells {
		s.spells[id] = spell
	}
	s.spellsLoaded = true
	span.SetAttributes(attribute.Int("config.records", len(spells)))
	s.logger.Info("loaded spells", zap.String("file", spellsFile), zap.Int("count", len(spells)))
	return true, nil
}

// LoadCombatant loads party_<id>.txt. Already cached ids are not reloaded.
func (s *Store) LoadCombatant(ctx context.Context, id string) (bool, error) {
	if _, ok := s.templates[id]; ok {
		return true, nil
	}

	file := partyFile(id)
	_, span := telemetry.Tracer("gamedata").Start(ctx, "config.load")
	defer span.End()
	span.SetAttributes(attribute.String("config.file", file))

	entries, ok, err := s.read(file)
	if !ok {
		return false, err
	}
	template, err := parseTemplate(file, entries)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	s.templates[id] = template
	s.logger.Info("loaded combatant template", zap.String("file", file), zap.String("id", id))
	return true, nil
}

// LoadEnemiesForLevel loads enemies_level_<level>.txt, replacing the enemies,
// groups and encounter rates of any previously loaded level.
func (s *Store) LoadEnemiesForLevel(ctx context.Context, level int) (bool, error) {
	if s.enemyLevel == level && level != 0 {
		return true, nil
	}

	file := enemyFile(level)
	_, span := telemetry.Tracer("gamedata").Start(ctx, "config.load")
	defer span.End()
	span.SetAttributes(
		attribute.String("config.file", file),
		attribute.Int("config.level", level),
	)

	entries, ok, err := s.read(file)
	if !ok {
		return false, err
	}
	set, err := parseEnemies(file, entries)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	s.enemies = set.enemies
	s.groups = set.groups
	s.encounterRates = set.rates
	s.enemyLevel = level
	span.SetAttributes(
		attribute.Int("config.records", len(set.enemies)),
		attribute.Int("config.groups", len(set.groups)),
	)
	s.logger.Info("loaded enemies",
		zap.String("file", file),
		zap.Int("level", level),
		zap.Int("enemies", len(set.enemies)),
		zap.Int("groups", len(set.groups)),
	)
	return true, nil
}

// read returns the entries of file. ok is false if the file is missing
// (err nil) or unreadable (err set).
func (s *Store) read(file string) ([]entry, bool, error) {
	entries, err := readEntries(s.fsys, file)
	if err == nil {
		return entries, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("configuration file not found", zap.String("file", file))
		return nil, false, nil
	}
	return nil, false, err
}

// EnemyLevel returns the level of the loaded enemy file, or 0.
func (s *Store) EnemyLevel() int {
	return s.enemyLevel
}

// =============================================================================
// Lookup
// =============================================================================

// Spell returns the spell record with the given id.
func (s *Store) Spell(id string) (SpellRecord, bool) {
	spell, ok := s.spells[id]
	return spell, ok
}

// Template returns the party template with the given id.
func (s *Store) Template(id string) (CombatantTemplate, bool) {
	t, ok := s.templates[id]
	return t, ok
}

// Enemy returns the enemy template with the given id.
func (s *Store) Enemy(id string) (CombatantTemplate, bool) {
	t, ok := s.enemies[id]
	return t, ok
}

// Group returns the encounter group with the given id.
func (s *Store) Group(id string) (EncounterGroup, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// EncounterRate returns the ENCOUNTER_RATE_<name> value.
func (s *Store) EncounterRate(name string) (int, bool) {
	rate, ok := s.encounterRates[name]
	return rate, ok
}

// PartyMemberIDs returns the cached party template ids, sorted.
func (s *Store) PartyMemberIDs() []string { return sortedKeys(s.templates) }

// EnemyIDs returns the cached enemy ids, sorted.
func (s *Store) EnemyIDs() []string { return sortedKeys(s.enemies) }

// GroupIDs returns the cached encounter group ids, sorted.
func (s *Store) GroupIDs() []string { return sortedKeys(s.groups) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RandomGroup picks an encounter group weighted by its encounter rate.
// Groups without a rate weigh 1. Groups with a rate of 0 or less, and groups
// naming no loaded enemy, never spawn.
func (s *Store) RandomGroup(rng *rand.Rand) (EncounterGroup, bool) {
	ids := s.GroupIDs()
	weights := make([]int, len(ids))
	total := 0
	for i, id := range ids {
		w, ok := s.encounterRates[id]
		if !ok {
			w = 1
		}
		if w < 0 || !s.spawnable(id) {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return EncounterGroup{}, false
	}

	roll := rng.Intn(total)
	cumulative := 0
	for i, id := range ids {
		cumulative += weights[i]
		if roll < cumulative {
			return s.groups[id], true
		}
	}
	return EncounterGroup{}, false
}

// spawnable reports whether MakeEncounter(groupID) yields at least one enemy.
func (s *Store) spawnable(groupID string) bool {
	for _, id := range s.groups[groupID].EnemyIDs {
		if _, ok := s.enemies[id]; ok {
			return true
		}
	}
	return false
}

// =============================================================================
// Factories
// =============================================================================

// MakePlayer projects the party template id at level. Each stat grows by
// its growth delta per level above 1. Levels below 1 are treated as 1.
// An unknown id yields a combatant named UnknownPlayerName.
func (s *Store) MakePlayer(id string, level int) *entity.Combatant {
	if level < 1 {
		s.logger.Warn("level below 1, using 1", zap.String("id", id), zap.Int("level", level))
		level = 1
	}
	t, ok := s.templates[id]
	if !ok {
		s.logger.Warn("party member not found", zap.String("id", id), zap.String("fallback", UnknownPlayerName))
		t = unknownPlayer
	}

	steps := level - 1
	c := entity.NewCombatant(t.Name,
		t.HP+t.Growth.HP*steps,
		t.Attack+t.Growth.Attack*steps,
		t.Defense+t.Growth.Defense*steps,
		t.Speed+t.Growth.Speed*steps,
		t.MP+t.Growth.MP*steps,
		true,
	)
	decorate(c, t)
	return c
}

// MakeEnemy projects the enemy template id at its base stats.
// An unknown id yields a combatant named UnknownEnemyName.
func (s *Store) MakeEnemy(id string) *entity.Combatant {
	t, ok := s.enemies[id]
	if !ok {
		s.logger.Warn("enemy not found", zap.String("id", id), zap.String("fallback", UnknownEnemyName))
		t = unknownEnemy
	}
	c := entity.NewCombatant(t.Name, t.HP, t.Attack, t.Defense, t.Speed, t.MP, false)
	decorate(c, t)
	return c
}

func decorate(c *entity.Combatant, t CombatantTemplate) {
	c.Sprite = t.Sprite
	c.Color = t.Color
	c.Spells = append([]string(nil), t.Spells...)
}

// MakeEncounter projects every enemy of a group, skipping ids that are not loaded.
func (s *Store) MakeEncounter(groupID string) entity.Roster {
	group, ok := s.groups[groupID]
	if !ok {
		s.logger.Warn("encounter group not found", zap.String("group", groupID))
		return nil
	}
	roster := make(entity.Roster, 0, len(group.EnemyIDs))
	for _, id := range group.EnemyIDs {
		if _, ok := s.enemies[id]; !ok {
			s.logger.Warn("skipping unknown enemy in group", zap.String("group", groupID), zap.String("id", id))
			continue
		}
		roster = append(roster, s.MakeEnemy(id))
	}
	return roster
}

// MakeSpell returns the battle view of spell id.
// An unknown id yields a spell named UnknownSpellName.
func (s *Store) MakeSpell(id string) Spell {
	record, ok := s.spells[id]
	if !ok {
		s.logger.Warn("spell not found", zap.String("id", id), zap.String("fallback", UnknownSpellName))
		return unknownSpell
	}
	return Spell{
		Name:        record.Name,
		MPCost:      record.MPCost,
		BaseDamage:  record.BaseDamage,
		SpellType:   record.SpellType,
		TargetType:  record.TargetType,
		Description: record.Description,
	}
}

// SpellsFor returns the known spells of party template id. Missing spell
// ids are skipped.
func (s *Store) SpellsFor(id string) []Spell {
	t, ok := s.templates[id]
	if !ok {
		return nil
	}
	spells := make([]Spell, 0, len(t.Spells))
	for _, spellID := range t.Spells {
		if _, ok := s.spells[spellID]; ok {
			spells = append(spells, s.MakeSpell(spellID))
		}
	}
	return spells
}
