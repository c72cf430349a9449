package combat

import (
	"math"
	"math/rand"

	"github.com/samdwyer/turnbattle/internal/entity"
)

// Damage variance bounds, applied multiplicatively to the base damage.
const (
	varianceMin   = 0.8
	varianceRange = 0.4
)

// Result contains the outcome of resolving one command.
type Result struct {
	Damage   int  // Rolled damage; HP removal is clamped at 0
	TargetHP int  // Target HP after resolution
	Died     bool // True if this resolution killed the target
	Skipped  bool // Dead actor, dead or missing target, or already executed
}

// Resolver computes and applies damage. All randomness comes from the
// injected source so battles replay under a fixed seed.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver drawing variance from rng.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// BaseDamage returns max(1, attack - defense/2) before variance.
func BaseDamage(attack, defense int) int {
	base := attack - defense/2
	if base < 1 {
		base = 1
	}
	return base
}

// ResolveAttack applies a plain attack from attacker to defender.
func (r *Resolver) ResolveAttack(attacker, defender *entity.Combatant) Result {
	return r.strike(attacker, defender, 0)
}

// Resolve applies cmd once and marks it executed. Defend only raises the
// actor's Defending flag and Flee changes nothing here; the controller
// handles the state change.
func (r *Resolver) Resolve(cmd *ActionCommand) Result {
	if cmd.Executed || cmd.Actor == nil || !cmd.Actor.IsAlive() {
		return Result{Skipped: true}
	}

	var res Result
	switch cmd.Kind {
	case ActionDefend:
		cmd.Actor.Defending = true
	case ActionFlee:
	case ActionAttack, ActionUseItem:
		res = r.strike(cmd.Actor, cmd.Target, 0)
	case ActionUseSkill:
		res = r.strike(cmd.Actor, cmd.Target, cmd.Power)
	default:
		res = Result{Skipped: true}
	}
	if res.Skipped {
		return res
	}

	cmd.Damage = res.Damage
	cmd.Executed = true
	return res
}

// strike rolls damage with power added to the attacker's attack and applies it.
func (r *Resolver) strike(attacker, defender *entity.Combatant, power int) Result {
	if attacker == nil || defender == nil || !attacker.IsAlive() || !defender.IsAlive() {
		return Result{Skipped: true}
	}

	base := BaseDamage(attacker.Attack+power, defender.Defense)
	variance := varianceMin + r.rng.Float64()*varianceRange
	damage := int(math.Floor(float64(base) * variance))
	if damage < 1 {
		damage = 1
	}

	defender.TakeDamage(damage)
	return Result{
		Damage:   damage,
		TargetHP: defender.HP,
		Died:     !defender.IsAlive(),
	}
}
