package combat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/turnbattle/internal/entity"
)

func TestBaseDamage(t *testing.T) {
	tests := []struct {
		attack, defense int
		expected        int
	}{
		{20, 10, 15},
		{10, 5, 8}, // integer halving
		{5, 20, 1}, // floor at 1
		{0, 0, 1},
		{30, 0, 30},
	}

	for _, tt := range tests {
		if got := BaseDamage(tt.attack, tt.defense); got != tt.expected {
			t.Errorf("BaseDamage(%d, %d) = %d, want %d", tt.attack, tt.defense, got, tt.expected)
		}
	}
}

func TestResolveAttackDamageBounds(t *testing.T) {
	tests := []struct {
		name            string
		attack, defense int
	}{
		{"scenario", 20, 10},
		{"weak", 3, 40},
		{"strong", 90, 12},
		{"even", 11, 22},
	}

	for _, tt := range tests {
		base := BaseDamage(tt.attack, tt.defense)
		lo := int(math.Max(1, math.Floor(0.8*float64(base))))
		hi := int(math.Ceil(1.2 * float64(base)))

		for seed := int64(0); seed < 200; seed++ {
			r := NewResolver(rand.New(rand.NewSource(seed)))
			attacker := entity.NewCombatant("A", 10, tt.attack, 0, 0, 0, true)
			defender := entity.NewCombatant("D", 10000, 0, tt.defense, 0, 0, false)

			res := r.ResolveAttack(attacker, defender)
			if res.Damage < lo || res.Damage > hi {
				t.Fatalf("%s seed %d: damage %d outside [%d, %d]", tt.name, seed, res.Damage, lo, hi)
			}
			if res.TargetHP != 10000-res.Damage {
				t.Fatalf("%s: TargetHP = %d, want %d", tt.name, res.TargetHP, 10000-res.Damage)
			}
		}
	}
}

func TestResolveAttackScenarioRange(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		r := NewResolver(rand.New(rand.NewSource(seed)))
		a := entity.NewCombatant("Hero", 100, 20, 0, 0, 0, true)
		d := entity.NewCombatant("Goblin", 100, 0, 10, 0, 0, false)

		if dmg := r.ResolveAttack(a, d).Damage; dmg < 12 || dmg > 18 {
			t.Fatalf("seed %d: damage = %d, want [12, 18]", seed, dmg)
		}
	}
}

func TestResolveAttackKillingBlowKeepsRolledDamage(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		r := NewResolver(rand.New(rand.NewSource(seed)))
		a := entity.NewCombatant("Hero", 100, 20, 0, 0, 0, true)
		d := entity.NewCombatant("Goblin", 3, 0, 10, 0, 0, false)

		res := r.ResolveAttack(a, d)
		if res.Damage < 12 || res.Damage > 18 {
			t.Fatalf("seed %d: damage = %d, want [12, 18]", seed, res.Damage)
		}
		if res.TargetHP != 0 || d.HP != 0 || !res.Died {
			t.Fatalf("seed %d: TargetHP %d HP %d died %v, want clamped kill", seed, res.TargetHP, d.HP, res.Died)
		}
	}
}

func TestResolveAttackDeterministic(t *testing.T) {
	run := func() []int {
		r := NewResolver(rand.New(rand.NewSource(99)))
		a := entity.NewCombatant("A", 100, 25, 0, 0, 0, true)
		d := entity.NewCombatant("D", 1000, 0, 8, 0, 0, false)
		var out []int
		for i := 0; i < 10; i++ {
			out = append(out, r.ResolveAttack(a, d).Damage)
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("hit %d: %d != %d with the same seed", i, first[i], second[i])
		}
	}
}

func TestResolveAttackClampsAndKills(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(1)))
	a := entity.NewCombatant("Ogre", 100, 80, 0, 0, 0, false)
	d := entity.NewCombatant("Hero", 10, 0, 0, 0, 0, true)

	// base 80, rolled damage stays in [64, 96] even though only 10 HP remain
	res := r.ResolveAttack(a, d)
	if res.Damage < 64 || res.Damage > 96 || res.TargetHP != 0 || !res.Died {
		t.Errorf("ResolveAttack() = %+v, want damage in [64, 96], 0 HP, died", res)
	}
	if d.HP < 0 || d.IsAlive() {
		t.Errorf("defender HP = %d alive = %v", d.HP, d.IsAlive())
	}

	again := r.ResolveAttack(a, d)
	if !again.Skipped || again.Damage != 0 || d.HP != 0 {
		t.Errorf("attack on dead target = %+v, HP %d; want skipped no-op", again, d.HP)
	}
}

func TestResolveHPStaysInRange(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(5)))
	a := entity.NewCombatant("A", 100, 14, 0, 0, 0, true)
	d := entity.NewCombatant("D", 57, 0, 6, 0, 0, false)

	for i := 0; i < 30; i++ {
		r.ResolveAttack(a, d)
		if d.HP < 0 || d.HP > d.MaxHP {
			t.Fatalf("HP %d outside [0, %d]", d.HP, d.MaxHP)
		}
		if d.IsAlive() != (d.HP > 0) {
			t.Fatalf("IsAlive() = %v with HP %d", d.IsAlive(), d.HP)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	newPair := func() (*entity.Combatant, *entity.Combatant) {
		return entity.NewCombatant("Hero", 100, 20, 10, 10, 10, true),
			entity.NewCombatant("Slime", 500, 5, 10, 5, 0, false)
	}

	t.Run("attack marks executed", func(t *testing.T) {
		r := NewResolver(rand.New(rand.NewSource(3)))
		hero, slime := newPair()
		cmd := &ActionCommand{Actor: hero, Target: slime, Kind: ActionAttack}

		res := r.Resolve(cmd)
		if res.Skipped || !cmd.Executed || cmd.Damage != res.Damage || res.Damage == 0 {
			t.Fatalf("Resolve() = %+v, cmd = %+v", res, cmd)
		}
		hp := slime.HP
		if again := r.Resolve(cmd); !again.Skipped || slime.HP != hp {
			t.Error("an executed command must not apply twice")
		}
	})

	t.Run("defend sets flag", func(t *testing.T) {
		r := NewResolver(rand.New(rand.NewSource(3)))
		hero, slime := newPair()
		res := r.Resolve(&ActionCommand{Actor: hero, Kind: ActionDefend})
		if res.Skipped || res.Damage != 0 || !hero.Defending || slime.HP != slime.MaxHP {
			t.Errorf("defend: res %+v defending %v", res, hero.Defending)
		}
	})

	t.Run("skill adds power", func(t *testing.T) {
		hero, slime := newPair()
		for seed := int64(0); seed < 50; seed++ {
			r := NewResolver(rand.New(rand.NewSource(seed)))
			slime.HP = slime.MaxHP
			res := r.Resolve(&ActionCommand{Actor: hero, Target: slime, Kind: ActionUseSkill, Skill: "fireball", Power: 25})
			// base = 20+25 - 10/2 = 40
			if res.Damage < 32 || res.Damage > 48 {
				t.Fatalf("seed %d: skill damage = %d, want [32, 48]", seed, res.Damage)
			}
		}
	})

	t.Run("dead actor skipped", func(t *testing.T) {
		r := NewResolver(rand.New(rand.NewSource(3)))
		hero, slime := newPair()
		hero.TakeDamage(hero.HP)
		cmd := &ActionCommand{Actor: hero, Target: slime, Kind: ActionAttack}
		if res := r.Resolve(cmd); !res.Skipped || cmd.Executed || slime.HP != slime.MaxHP {
			t.Errorf("dead actor: res %+v executed %v", res, cmd.Executed)
		}
	})

	t.Run("flee changes nothing", func(t *testing.T) {
		r := NewResolver(rand.New(rand.NewSource(3)))
		hero, _ := newPair()
		cmd := &ActionCommand{Actor: hero, Kind: ActionFlee}
		if res := r.Resolve(cmd); res.Skipped || res.Damage != 0 || !cmd.Executed {
			t.Errorf("flee: res %+v executed %v", res, cmd.Executed)
		}
	})
}
