package combat

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/turnbattle/internal/entity"
)

func newRosters() (entity.Roster, entity.Roster) {
	enemies := entity.Roster{
		entity.NewCombatant("Goblin", 20, 8, 2, 5, 0, false),
		entity.NewCombatant("Rat", 10, 5, 1, 9, 0, false),
		entity.NewCombatant("Slime", 15, 4, 1, 2, 0, false),
	}
	party := entity.Roster{
		entity.NewCombatant("Hero", 80, 20, 10, 12, 10, true),
		entity.NewCombatant("Mage", 50, 8, 5, 10, 40, true),
	}
	return enemies, party
}

func TestGenerateOnePerLivingEnemy(t *testing.T) {
	enemies, party := newRosters()
	enemies[1].TakeDamage(100)
	party[0].TakeDamage(1000)

	cmds := NewAIGenerator(rand.New(rand.NewSource(1))).Generate(enemies, party)
	if len(cmds) != 2 {
		t.Fatalf("Generate() returned %d commands, want 2", len(cmds))
	}
	if cmds[0].Actor != enemies[0] || cmds[1].Actor != enemies[2] {
		t.Error("commands should follow roster order and skip dead enemies")
	}
	for _, cmd := range cmds {
		if cmd.Kind != ActionAttack {
			t.Errorf("Kind = %v, want Attack", cmd.Kind)
		}
		if cmd.Target != party[1] {
			t.Errorf("target = %s, want the only living opponent", cmd.Target.Name)
		}
		if cmd.Executed || cmd.Damage != 0 {
			t.Error("generated commands must be unresolved")
		}
	}
}

func TestGenerateNoLivingOpponents(t *testing.T) {
	enemies, party := newRosters()
	for _, m := range party {
		m.TakeDamage(1000)
	}
	if cmds := NewAIGenerator(rand.New(rand.NewSource(1))).Generate(enemies, party); len(cmds) != 0 {
		t.Errorf("Generate() = %d commands, want 0", len(cmds))
	}
}

func TestGenerateDeterministicAndUniform(t *testing.T) {
	enemies, party := newRosters()

	targets := func(seed int64) []string {
		g := NewAIGenerator(rand.New(rand.NewSource(seed)))
		var names []string
		for round := 0; round < 20; round++ {
			for _, cmd := range g.Generate(enemies, party) {
				names = append(names, cmd.Target.Name)
			}
		}
		return names
	}

	a, b := targets(2024), targets(2024)
	counts := map[string]int{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pick %d differs under the same seed: %s vs %s", i, a[i], b[i])
		}
		counts[a[i]]++
	}
	if counts["Hero"] == 0 || counts["Mage"] == 0 {
		t.Errorf("60 picks should reach both opponents, got %v", counts)
	}
}
