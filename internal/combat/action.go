// Package combat provides action commands, the action queue, damage
// resolution and the enemy AI for turn-based battles.
package combat

import "github.com/samdwyer/turnbattle/internal/entity"

// ActionKind is the closed set of things a combatant can do on its turn.
type ActionKind int

const (
	// ActionAttack - physical strike against one opposing target
	ActionAttack ActionKind = iota
	// ActionDefend - brace until the combatant's next turn
	ActionDefend
	// ActionUseItem - item strike against one opposing target
	ActionUseItem
	// ActionUseSkill - strike powered by the actor's first known spell
	ActionUseSkill
	// ActionFlee - leave the battle
	ActionFlee
)

// MenuActions lists the player menu entries in display order.
var MenuActions = []ActionKind{ActionAttack, ActionDefend, ActionUseItem, ActionUseSkill, ActionFlee}

// String returns the menu label of the action.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "Attack"
	case ActionDefend:
		return "Defend"
	case ActionUseItem:
		return "Item"
	case ActionUseSkill:
		return "Skill"
	case ActionFlee:
		return "Flee"
	default:
		return "Unknown"
	}
}

// NeedsTarget reports whether choosing the action opens target selection.
func (k ActionKind) NeedsTarget() bool {
	switch k {
	case ActionAttack, ActionUseItem, ActionUseSkill:
		return true
	default:
		return false
	}
}

// ActionCommand is one queued intent. Damage is filled in when the command
// is resolved, and Executed prevents it from being applied twice.
type ActionCommand struct {
	Actor  *entity.Combatant
	Target *entity.Combatant // nil for Defend and Flee
	Kind   ActionKind

	// Skill and Power describe the spell backing a UseSkill command.
	Skill string
	Power int

	Damage   int
	Executed bool
}
