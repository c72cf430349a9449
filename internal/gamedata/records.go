package gamedata

import "strings"

// =============================================================================
// CONFIGURATION FORMAT
// =============================================================================
//
// Battle data lives in plain-text files of "KEY VALUE" lines. Blank lines and
// lines starting with '#' are ignored, unknown keys are skipped, and a value
// runs to the end of the line after the key.
//
// spells.txt - repeated blocks:
//
//	SPELL_ID fireball
//	NAME Fireball
//	MP_COST 8
//	BASE_DAMAGE 25
//	SPELL_TYPE fire
//	TARGET_TYPE single_enemy
//	DESCRIPTION Hurls a ball of flame
//	END_SPELL
//
// party_<id>.txt - one template per file, no delimiters:
//
//	NAME Hero
//	HP 80
//	HP_GROWTH 10
//	SPELL fireball
//
// enemies_level_<n>.txt - ENEMY_ID/END_ENEMY blocks with template keys,
// plus free lines outside any block:
//
//	GROUP_FOREST forest_pack GOBLIN SLIME
//	ENCOUNTER_RATE_forest_pack 60
//
// The first token after a GROUP_ key is the group id, the rest are enemy ids.

// SpellRecord is a parsed spell. Never modified after loading.
type SpellRecord struct {
	ID          string
	Name        string
	MPCost      int
	BaseDamage  int
	SpellType   string
	TargetType  string
	Description string
}

// Growth holds per-level stat deltas applied above level 1.
type Growth struct {
	HP      int
	Attack  int
	Defense int
	Speed   int
	MP      int
}

// CombatantTemplate is the stat blueprint shared by party members and enemies.
// It is keyed by id in the Store and never modified after loading.
type CombatantTemplate struct {
	Name    string
	HP      int
	Attack  int
	Defense int
	Speed   int
	MP      int

	Growth Growth   // Party templates only
	Spells []string // Known spell ids, in file order

	Sprite      string
	Color       string
	Description string

	// Equipment slots (party templates)
	WeaponType    string
	ArmorType     string
	AccessoryType string

	// Enemy behaviour and rewards
	AIType        string
	AISpellChance int
	ExpReward     int
	GoldReward    int
}

// EncounterGroup is an ordered list of enemy ids spawned together.
type EncounterGroup struct {
	ID       string
	EnemyIDs []string
}

// Spell is the battle-facing view of a spell produced by Store.MakeSpell.
type Spell struct {
	Name        string
	MPCost      int
	BaseDamage  int
	SpellType   string
	TargetType  string
	Description string
}

// Offensive reports whether the spell strikes an opponent. Heals and
// ally-targeted spells are not offensive.
func (s Spell) Offensive() bool {
	return s.SpellType != "heal" && !strings.Contains(s.TargetType, "ally") && s.TargetType != "self"
}

// Sentinel names returned by the factories for unknown ids.
const (
	UnknownPlayerName = "Unknown"
	UnknownEnemyName  = "Unknown Enemy"
	UnknownSpellName  = "Unknown Spell"
)

var (
	unknownPlayer = CombatantTemplate{Name: UnknownPlayerName, HP: 50, Attack: 10, Defense: 10, Speed: 10, MP: 20}
	unknownEnemy  = CombatantTemplate{Name: UnknownEnemyName, HP: 30, Attack: 8, Defense: 5, Speed: 10, MP: 10}
	unknownSpell  = Spell{Name: UnknownSpellName, MPCost: 5, BaseDamage: 10, Description: "Unknown spell"}
)
