package game

import "github.com/samdwyer/turnbattle/internal/combat"

// BattleEvents receives notifications from a Battle. Implementations must
// not call back into the Battle from these methods.
type BattleEvents interface {
	OnStateChanged(from, to BattleState)
	OnActionResolved(cmd combat.ActionCommand, res combat.Result)
	OnBattleConcluded(outcome BattleState)
}

// NopEvents ignores every notification.
type NopEvents struct{}

func (NopEvents) OnStateChanged(from, to BattleState)                          {}
func (NopEvents) OnActionResolved(cmd combat.ActionCommand, res combat.Result) {}
func (NopEvents) OnBattleConcluded(outcome BattleState)                        {}
