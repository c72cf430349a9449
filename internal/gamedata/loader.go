package gamedata

import (
	"bufio"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// ParseError reports a malformed numeric field. Loading stops at the first one.
type ParseError struct {
	File  string
	Line  int
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid %s value %q: %v", e.File, e.Line, e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// entry is one meaningful "KEY VALUE" line of a configuration file.
type entry struct {
	line  int
	key   string
	value string
}

// readEntries reads filename from fsys and returns its non-comment lines.
// A missing file is reported with an error matching fs.ErrNotExist.
func readEntries(fsys fs.FS, filename string) ([]entry, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		key, value := splitKeyValue(text)
		entries = append(entries, entry{line: lineNo, key: key, value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return entries, nil
}

// splitKeyValue splits a trimmed line at its first run of whitespace.
func splitKeyValue(text string) (string, string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

func parseInt(file string, e entry) (int, error) {
	n, err := strconv.Atoi(e.value)
	if err != nil {
		return 0, &ParseError{File: file, Line: e.line, Key: e.key, Value: e.value, Err: err}
	}
	return n, nil
}

// parseSpells parses SPELL_ID ... END_SPELL blocks. A new SPELL_ID discards
// an unterminated block, and lines outside blocks are ignored. A SPELL_ID
// without a value discards its whole block.
func parseSpells(file string, entries []entry) (map[string]SpellRecord, error) {
	spells := make(map[string]SpellRecord)
	var current SpellRecord
	inSpell := false

	for _, e := range entries {
		switch {
		case e.key == "SPELL_ID":
			current = SpellRecord{ID: e.value}
			inSpell = e.value != ""
		case e.key == "END_SPELL" && inSpell:
			spells[current.ID] = current
			inSpell = false
		case inSpell && e.value != "":
			if err := applySpellField(&current, file, e); err != nil {
				return nil, err
			}
		}
	}
	return spells, nil
}

func applySpellField(s *SpellRecord, file string, e entry) error {
	var target *int
	switch e.key {
	case "NAME":
		s.Name = e.value
	case "SPELL_TYPE":
		s.SpellType = e.value
	case "TARGET_TYPE":
		s.TargetType = e.value
	case "DESCRIPTION":
		s.Description = e.value
	case "MP_COST":
		target = &s.MPCost
	case "BASE_DAMAGE":
		target = &s.BaseDamage
	}
	if target == nil {
		return nil
	}
	n, err := parseInt(file, e)
	if err != nil {
		return err
	}
	*target = n
	return nil
}

// parseTemplate parses a flat single-template file.
func parseTemplate(file string, entries []entry) (CombatantTemplate, error) {
	var t CombatantTemplate
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		if err := applyTemplateField(&t, file, e); err != nil {
			return CombatantTemplate{}, err
		}
	}
	return t, nil
}

func applyTemplateField(t *CombatantTemplate, file string, e entry) error {
	var target *int
	switch e.key {
	case "NAME":
		t.Name = e.value
	case "SPRITE_TEXTURE":
		t.Sprite = e.value
	case "COLOR":
		t.Color = e.value
	case "DESCRIPTION":
		t.Description = e.value
	case "WEAPON_TYPE":
		t.WeaponType = e.value
	case "ARMOR_TYPE":
		t.ArmorType = e.value
	case "ACCESSORY_TYPE":
		t.AccessoryType = e.value
	case "AI_TYPE":
		t.AIType = e.value
	case "SPELL":
		t.Spells = append(t.Spells, e.value)
	case "HP":
		target = &t.HP
	case "ATTACK":
		target = &t.Attack
	case "DEFENSE":
		target = &t.Defense
	case "SPEED":
		target = &t.Speed
	case "MP":
		target = &t.MP
	case "HP_GROWTH":
		target = &t.Growth.HP
	case "ATTACK_GROWTH":
		target = &t.Growth.Attack
	case "DEFENSE_GROWTH":
		target = &t.Growth.Defense
	case "SPEED_GROWTH":
		target = &t.Growth.Speed
	case "MP_GROWTH":
		target = &t.Growth.MP
	case "AI_SPELL_CHANCE":
		target = &t.AISpellChance
	case "EXP_REWARD":
		target = &t.ExpReward
	case "GOLD_REWARD":
		target = &t.GoldReward
	}
	if target == nil {
		return nil
	}
	n, err := parseInt(file, e)
	if err != nil {
		return err
	}
	*target = n
	return nil
}

// enemySet is everything one enemy-collection file defines.
type enemySet struct {
	enemies map[string]CombatantTemplate
	groups  map[string]EncounterGroup
	rates   map[string]int
}

// parseEnemies parses ENEMY_ID ... END_ENEMY blocks plus GROUP_ and
// ENCOUNTER_RATE_ lines found outside any block. Blocks without an id are
// discarded.
func parseEnemies(file string, entries []entry) (enemySet, error) {
	set := enemySet{
		enemies: make(map[string]CombatantTemplate),
		groups:  make(map[string]EncounterGroup),
		rates:   make(map[string]int),
	}
	var current CombatantTemplate
	var currentID string
	inEnemy := false

	for _, e := range entries {
		switch {
		case e.key == "ENEMY_ID":
			current = CombatantTemplate{}
			currentID = e.value
			inEnemy = e.value != ""
		case e.key == "END_ENEMY" && inEnemy:
			set.enemies[currentID] = current
			inEnemy = false
		case inEnemy:
			if e.value == "" {
				continue
			}
			if err := applyTemplateField(&current, file, e); err != nil {
				return enemySet{}, err
			}
		case strings.HasPrefix(e.key, "GROUP_"):
			fields := strings.Fields(e.value)
			if len(fields) == 0 {
				continue
			}
			set.groups[fields[0]] = EncounterGroup{ID: fields[0], EnemyIDs: fields[1:]}
		case strings.HasPrefix(e.key, "ENCOUNTER_RATE_"):
			if e.value == "" {
				continue
			}
			rate, err := parseInt(file, e)
			if err != nil {
				return enemySet{}, err
			}
			set.rates[strings.TrimPrefix(e.key, "ENCOUNTER_RATE_")] = rate
		}
	}
	return set, nil
}
