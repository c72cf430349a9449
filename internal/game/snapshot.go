package game

import (
	"github.com/samdwyer/turnbattle/internal/combat"
	"github.com/samdwyer/turnbattle/internal/entity"
)

// CombatantView is an immutable copy of one combatant for presentation.
type CombatantView struct {
	Name      string
	HP, MaxHP int
	MP, MaxMP int
	Alive     bool
	Defending bool
	Acting    bool   // currently choosing a command
	Color     string // "#RRGGBB" hint, may be empty
	X, Y      float64
}

// Snapshot is everything the presentation layer may read about a battle.
type Snapshot struct {
	ID        string
	State     BattleState
	Round     int
	Concluded bool

	Party   []CombatantView
	Enemies []CombatantView

	Mode        InputMode
	Actor       int      // party index choosing a command, -1 if none
	Menu        []string // action labels
	MenuIndex   int
	Spells      []string // castable spell names while choosing a skill
	SpellIndex  int
	Targets     []string // living enemy names, in roster order
	TargetIndex int

	Pending int // queued commands not yet resolved
	Log     []string
}

// Snapshot returns a copy of the battle's observable state.
func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		ID:          b.id,
		State:       b.State(),
		Round:       b.round,
		Concluded:   b.concluded,
		Party:       views(b.party, b.actor),
		Enemies:     views(b.enemies, -1),
		Mode:        b.mode,
		Actor:       b.actor,
		MenuIndex:   b.menuIndex,
		SpellIndex:  b.spellIndex,
		TargetIndex: b.targetIndex,
		Pending:     b.queue.Len(),
		Log:         b.log.Lines(),
	}
	for _, kind := range combat.MenuActions {
		s.Menu = append(s.Menu, kind.String())
	}
	for _, spell := range b.skills {
		s.Spells = append(s.Spells, spell.Name)
	}
	for _, e := range b.enemies.Alive() {
		s.Targets = append(s.Targets, e.Name)
	}
	return s
}

func views(r entity.Roster, acting int) []CombatantView {
	out := make([]CombatantView, len(r))
	for i, c := range r {
		out[i] = CombatantView{
			Name:      c.Name,
			HP:        c.HP,
			MaxHP:     c.MaxHP,
			MP:        c.MP,
			MaxMP:     c.MaxMP,
			Alive:     c.IsAlive(),
			Defending: c.Defending,
			Acting:    i == acting,
			Color:     c.Color,
			X:         c.X,
			Y:         c.Y,
		}
	}
	return out
}
