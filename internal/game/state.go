// Package game provides the battle controller and the terminal host loop.
package game

// BattleState is the current phase of a battle.
type BattleState int

const (
	// StateEntering is the intro delay before the first player turn.
	StateEntering BattleState = iota
	// StatePlayerTurn waits for each living party member to choose a command.
	StatePlayerTurn
	// StateEnemyTurn is the enemy "thinking" delay before the AI queues its commands.
	StateEnemyTurn
	// StateExecuting resolves queued commands one per action delay.
	StateExecuting
	// StateVictory means every enemy is down.
	StateVictory
	// StateDefeat means every party member is down.
	StateDefeat
	// StateFleeing means the party ran away.
	StateFleeing
)

var stateNames = [...]string{
	StateEntering:   "entering",
	StatePlayerTurn: "player_turn",
	StateEnemyTurn:  "enemy_turn",
	StateExecuting:  "executing",
	StateVictory:    "victory",
	StateDefeat:     "defeat",
	StateFleeing:    "fleeing",
}

// String returns the state name. The names double as looplab/fsm state ids.
func (s BattleState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// IsTerminal reports whether the battle is over in this state.
func (s BattleState) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateFleeing
}

func parseState(name string) BattleState {
	for i, n := range stateNames {
		if n == name {
			return BattleState(i)
		}
	}
	return BattleState(-1)
}
