package combat

import (
	"math/rand"

	"github.com/samdwyer/turnbattle/internal/entity"
)

// AIGenerator builds enemy commands: one Attack per living enemy against a
// uniformly random living opponent.
type AIGenerator struct {
	rng *rand.Rand
}

// NewAIGenerator creates a generator drawing targets from rng.
func NewAIGenerator(rng *rand.Rand) *AIGenerator {
	return &AIGenerator{rng: rng}
}

// Generate returns the enemy commands for one round, in roster order.
// Enemies get no command when no opponent is alive.
func (g *AIGenerator) Generate(enemies, opponents entity.Roster) []*ActionCommand {
	var cmds []*ActionCommand
	for _, enemy := range enemies {
		if !enemy.IsAlive() {
			continue
		}
		targets := opponents.Alive()
		if len(targets) == 0 {
			continue
		}
		cmds = append(cmds, &ActionCommand{
			Actor:  enemy,
			Target: targets[g.rng.Intn(len(targets))],
			Kind:   ActionAttack,
		})
	}
	return cmds
}
