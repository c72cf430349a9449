package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/turnbattle/internal/combat"
	"github.com/samdwyer/turnbattle/internal/entity"
	"github.com/samdwyer/turnbattle/internal/gamedata"
	"github.com/samdwyer/turnbattle/internal/telemetry"
)

// Phase machine events.
const (
	eventBegin  = "begin"  // intro delay elapsed
	eventCommit = "commit" // last living member chose a command
	eventThink  = "think"  // enemy commands queued
	eventDrain  = "drain"  // queue empty
	eventFlee   = "flee"
	eventWin    = "win"
	eventLose   = "lose"
)

// SpellBook resolves spell ids for UseSkill commands. *gamedata.Store implements it.
// Only offensive spells are offered in battle; heals and ally-targeted
// spells are left out of the spell list.
type SpellBook interface {
	MakeSpell(id string) gamedata.Spell
}

// Options configures a Battle. The zero value is usable.
type Options struct {
	RNG        *rand.Rand // nil seeds from the clock
	Events     BattleEvents
	Spells     SpellBook // nil means skills skip the spell list and add no power
	Timings    Timings   // zero fields use DefaultTimings
	Logger     *zap.Logger
	LogSize    int
	SpeedOrder bool
}

// Battle is the turn-phase controller. It owns both rosters and the action
// queue; nothing else mutates a combatant while a battle runs.
//
// A Battle is driven from a single goroutine through Tick.
type Battle struct {
	id      string
	party   entity.Roster
	enemies entity.Roster

	queue    combat.Queue
	resolver *combat.Resolver
	ai       *combat.AIGenerator
	machine  *fsm.FSM

	events     BattleEvents
	spells     SpellBook
	timings    Timings
	speedOrder bool
	logger     *zap.Logger
	log        *battleLog

	elapsed   time.Duration // time spent in the current state or since the last action
	round     int
	actions   int
	concluded bool

	// Player-turn sub-flow
	mode        InputMode
	actor       int // party index choosing a command, -1 outside PlayerTurn
	menuIndex   int
	spellIndex  int
	skills      []gamedata.Spell // castable spells of the acting member
	targetIndex int
}

// NewBattle creates a battle in StateEntering.
func NewBattle(ctx context.Context, party, enemies entity.Roster, opts Options) *Battle {
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	events := opts.Events
	if events == nil {
		events = NopEvents{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Battle{
		id:         uuid.NewString(),
		party:      party,
		enemies:    enemies,
		resolver:   combat.NewResolver(rng),
		ai:         combat.NewAIGenerator(rng),
		events:     events,
		spells:     opts.Spells,
		timings:    opts.Timings.withDefaults(),
		speedOrder: opts.SpeedOrder,
		log:        newBattleLog(opts.LogSize),
		actor:      -1,
	}
	b.logger = logger.Named("battle").With(zap.String("battle_id", b.id))

	live := []string{
		StateEntering.String(),
		StatePlayerTurn.String(),
		StateEnemyTurn.String(),
		StateExecuting.String(),
	}
	b.machine = fsm.NewFSM(
		StateEntering.String(),
		fsm.Events{
			{Name: eventBegin, Src: []string{StateEntering.String()}, Dst: StatePlayerTurn.String()},
			{Name: eventCommit, Src: []string{StatePlayerTurn.String()}, Dst: StateEnemyTurn.String()},
			{Name: eventThink, Src: []string{StateEnemyTurn.String()}, Dst: StateExecuting.String()},
			{Name: eventDrain, Src: []string{StateExecuting.String()}, Dst: StatePlayerTurn.String()},
			{Name: eventFlee, Src: []string{StateExecuting.String()}, Dst: StateFleeing.String()},
			{Name: eventWin, Src: live, Dst: StateVictory.String()},
			{Name: eventLose, Src: live, Dst: StateDefeat.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				b.enterState(parseState(e.Src), parseState(e.Dst))
			},
		},
	)

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.Int("party_size", len(party)),
		attribute.Int("enemy_count", len(enemies)),
		attribute.Bool("speed_order", b.speedOrder),
	)
	span.End()

	b.log.add("Battle start!")
	b.logger.Info("battle created",
		zap.Int("party_size", len(party)),
		zap.Int("enemy_count", len(enemies)),
	)
	return b
}

// ID returns the unique battle id.
func (b *Battle) ID() string { return b.id }

// State returns the current phase.
func (b *Battle) State() BattleState { return parseState(b.machine.Current()) }

// Concluded reports whether the outcome delay has elapsed and the battle is over.
func (b *Battle) Concluded() bool { return b.concluded }

// Round returns the number of player turns started so far.
func (b *Battle) Round() int { return b.round }

// Tick advances the battle by dt and applies the player commands received
// since the last tick. Commands are only consumed during StatePlayerTurn.
// The end condition is checked on every tick until the battle is over.
func (b *Battle) Tick(ctx context.Context, dt time.Duration, cmds []Command) {
	if b.concluded {
		return
	}
	b.elapsed += dt

	switch b.State() {
	case StateEntering:
		if b.elapsed >= b.timings.Intro {
			b.fire(ctx, eventBegin)
		}
	case StatePlayerTurn:
		for _, cmd := range cmds {
			if b.State() != StatePlayerTurn {
				break
			}
			b.handleCommand(ctx, cmd)
		}
	case StateEnemyTurn:
		if b.elapsed >= b.timings.Think {
			b.enqueueEnemyCommands()
			b.fire(ctx, eventThink)
		}
	case StateExecuting:
		if b.elapsed >= b.timings.Action {
			b.step(ctx)
		}
	case StateVictory, StateDefeat, StateFleeing:
		if b.elapsed >= b.timings.Outcome {
			b.conclude(ctx)
		}
	}

	b.checkEnd(ctx)
}

// fire triggers a phase machine event. A rejected event is a controller bug.
func (b *Battle) fire(ctx context.Context, event string) {
	if err := b.machine.Event(ctx, event); err != nil {
		b.logger.Error("battle transition rejected",
			zap.String("event", event),
			zap.String("state", b.machine.Current()),
			zap.Error(err),
		)
	}
}

// enterState runs after every transition. It must not fire further events.
func (b *Battle) enterState(from, to BattleState) {
	b.elapsed = 0
	b.actor = -1

	switch to {
	case StatePlayerTurn:
		b.round++
		b.beginMemberTurn(b.party.NextAliveAfter(-1))
	case StateVictory:
		b.queue.Clear()
		b.log.add("Victory! All enemies defeated!")
	case StateDefeat:
		b.queue.Clear()
		b.log.add("Your party has been defeated!")
	case StateFleeing:
		b.log.add("The party got away safely.")
	}

	b.logger.Info("state changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("round", b.round),
	)
	b.events.OnStateChanged(from, to)
}

// checkEnd moves to Defeat or Victory when one side is wiped out.
// The party is checked first so a double wipe is a defeat.
func (b *Battle) checkEnd(ctx context.Context) {
	if b.State().IsTerminal() {
		return
	}
	switch {
	case b.party.IsDefeated():
		b.fire(ctx, eventLose)
	case b.enemies.IsDefeated():
		b.fire(ctx, eventWin)
	}
}

// =============================================================================
// Player turn
// =============================================================================

// beginMemberTurn hands the menu to the party member at index.
func (b *Battle) beginMemberTurn(index int) {
	b.actor = index
	b.mode = ModeMenu
	b.menuIndex = 0
	b.spellIndex = 0
	b.skills = nil
	b.targetIndex = 0
	if index >= 0 {
		// Defend lasts until the member's next turn.
		b.party[index].Defending = false
	}
}

func (b *Battle) handleCommand(ctx context.Context, cmd Command) {
	if b.actor < 0 {
		return
	}

	switch b.mode {
	case ModeMenu:
		switch cmd {
		case CommandNavigateUp:
			b.menuIndex = clamp(b.menuIndex-1, 0, len(combat.MenuActions)-1)
		case CommandNavigateDown:
			b.menuIndex = clamp(b.menuIndex+1, 0, len(combat.MenuActions)-1)
		case CommandConfirm:
			b.chooseAction(ctx, combat.MenuActions[b.menuIndex])
		}

	case ModeSpell:
		last := len(b.skills) - 1
		switch cmd {
		case CommandNavigateUp:
			b.spellIndex = clamp(b.spellIndex-1, 0, last)
		case CommandNavigateDown:
			b.spellIndex = clamp(b.spellIndex+1, 0, last)
		case CommandConfirm:
			b.openTargets()
		case CommandBack:
			b.mode = ModeMenu
		}

	case ModeTarget:
		last := b.enemies.AliveCount() - 1
		switch cmd {
		case CommandNavigateUp:
			b.targetIndex = clamp(b.targetIndex-1, 0, last)
		case CommandNavigateDown:
			b.targetIndex = clamp(b.targetIndex+1, 0, last)
		case CommandConfirm:
			target := b.enemies.AliveAt(b.targetIndex)
			if target == nil {
				b.targetIndex = 0
				return
			}
			b.submit(ctx, combat.MenuActions[b.menuIndex], target)
		case CommandBack:
			if combat.MenuActions[b.menuIndex] == combat.ActionUseSkill && len(b.skills) > 0 {
				b.mode = ModeSpell
				return
			}
			b.mode = ModeMenu
		}
	}
}

func (b *Battle) chooseAction(ctx context.Context, kind combat.ActionKind) {
	if !kind.NeedsTarget() {
		b.submit(ctx, kind, nil)
		return
	}
	if b.enemies.AliveCount() == 0 {
		return
	}
	if kind == combat.ActionUseSkill {
		b.skills = b.castable(b.party[b.actor])
		if len(b.skills) > 0 {
			b.mode = ModeSpell
			b.spellIndex = 0
			return
		}
	}
	b.openTargets()
}

func (b *Battle) openTargets() {
	b.mode = ModeTarget
	b.targetIndex = 0
}

// castable returns the offensive spells the member knows, in template order.
func (b *Battle) castable(member *entity.Combatant) []gamedata.Spell {
	if b.spells == nil {
		return nil
	}
	var out []gamedata.Spell
	for _, id := range member.Spells {
		if spell := b.spells.MakeSpell(id); spell.Offensive() {
			out = append(out, spell)
		}
	}
	return out
}

// submit queues the current member's command and passes the turn on. The
// round commits once every living member has chosen.
func (b *Battle) submit(ctx context.Context, kind combat.ActionKind, target *entity.Combatant) {
	actor := b.party[b.actor]
	cmd := &combat.ActionCommand{Actor: actor, Target: target, Kind: kind}
	if kind == combat.ActionUseSkill && b.spellIndex < len(b.skills) {
		spell := b.skills[b.spellIndex]
		cmd.Skill = spell.Name
		cmd.Power = spell.BaseDamage
	}
	b.queue.Push(cmd)

	fields := []zap.Field{zap.String("actor", actor.Name), zap.Stringer("kind", kind)}
	if target != nil {
		fields = append(fields, zap.String("target", target.Name))
	}
	b.logger.Debug("command queued", fields...)

	next := b.party.NextAliveAfter(b.actor)
	if next < 0 {
		b.fire(ctx, eventCommit)
		return
	}
	b.beginMemberTurn(next)
}

// =============================================================================
// Enemy turn and execution
// =============================================================================

func (b *Battle) enqueueEnemyCommands() {
	for _, cmd := range b.ai.Generate(b.enemies, b.party) {
		b.queue.Push(cmd)
	}
	if b.speedOrder {
		b.queue.SortBySpeed()
	}
}

// step resolves the next command that can still act. Commands whose actor
// or target died while queued are dropped without waiting.
func (b *Battle) step(ctx context.Context) {
	b.elapsed = 0
	for !b.queue.Empty() {
		cmd := b.queue.Pop()
		res := b.resolver.Resolve(cmd)
		if res.Skipped {
			fields := []zap.Field{zap.String("actor", cmd.Actor.Name), zap.Stringer("kind", cmd.Kind)}
			if cmd.Target != nil {
				fields = append(fields, zap.String("target", cmd.Target.Name))
			}
			b.logger.Debug("skipped action", fields...)
			continue
		}

		b.record(ctx, cmd, res)
		if cmd.Kind == combat.ActionFlee {
			b.queue.Clear()
			b.fire(ctx, eventFlee)
		}
		return
	}
	b.fire(ctx, eventDrain)
}

func (b *Battle) record(ctx context.Context, cmd *combat.ActionCommand, res combat.Result) {
	_, span := telemetry.Tracer("battle").Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("actor", cmd.Actor.Name),
		attribute.String("action", cmd.Kind.String()),
		attribute.Int("round", b.round),
	)
	if cmd.Target != nil {
		span.SetAttributes(
			attribute.String("target", cmd.Target.Name),
			attribute.Int("damage", res.Damage),
			attribute.Int("target_hp", res.TargetHP),
			attribute.Bool("target_died", res.Died),
		)
	}
	span.End()

	b.actions++
	b.log.add(describe(cmd, res))
	if res.Died {
		b.log.add(cmd.Target.Name + " is defeated!")
	}
	b.logger.Info("action resolved",
		zap.String("actor", cmd.Actor.Name),
		zap.Stringer("kind", cmd.Kind),
		zap.Int("damage", res.Damage),
		zap.Bool("died", res.Died),
	)
	b.events.OnActionResolved(*cmd, res)
}

func describe(cmd *combat.ActionCommand, res combat.Result) string {
	actor := cmd.Actor.Name
	switch cmd.Kind {
	case combat.ActionAttack:
		return fmt.Sprintf("%s attacks %s for %d damage!", actor, cmd.Target.Name, res.Damage)
	case combat.ActionUseItem:
		return fmt.Sprintf("%s hurls an item at %s for %d damage!", actor, cmd.Target.Name, res.Damage)
	case combat.ActionUseSkill:
		skill := cmd.Skill
		if skill == "" {
			skill = "a skill"
		}
		return fmt.Sprintf("%s uses %s on %s for %d damage!", actor, skill, cmd.Target.Name, res.Damage)
	case combat.ActionDefend:
		return actor + " defends."
	case combat.ActionFlee:
		return actor + " flees!"
	default:
		return actor + " hesitates."
	}
}

func (b *Battle) conclude(ctx context.Context) {
	b.concluded = true
	outcome := b.State()

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("outcome", outcome.String()),
		attribute.Int("rounds", b.round),
		attribute.Int("actions", b.actions),
		attribute.Int("party_hp_remaining", b.party.TotalHP()),
	)
	span.End()

	b.logger.Info("battle concluded",
		zap.Stringer("outcome", outcome),
		zap.Int("rounds", b.round),
		zap.Int("actions", b.actions),
	)
	b.events.OnBattleConcluded(outcome)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
