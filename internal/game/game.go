package game

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/turnbattle/data"
	"github.com/samdwyer/turnbattle/internal/entity"
	"github.com/samdwyer/turnbattle/internal/gamedata"
	"github.com/samdwyer/turnbattle/internal/telemetry"
	"github.com/samdwyer/turnbattle/internal/ui"
)

// frameInterval is the host tick rate.
const frameInterval = time.Second / 30

// Game hosts one battle in the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	battle   *Battle
	logger   *zap.Logger
	running  bool
}

// New loads the configured encounter and opens the terminal screen.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	span.SetAttributes(
		attribute.Int64("seed", seed),
		attribute.Int("enemy_level", cfg.EnemyLevel),
		attribute.String("data_dir", cfg.DataDir),
	)
	logger.Info("starting battle", zap.Int64("seed", seed), zap.String("data_dir", cfg.DataDir))

	store := gamedata.NewStore(dataFS(cfg.DataDir), logger)
	battle, err := NewEncounter(ctx, cfg, store, Options{
		RNG:    rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to set up encounter: %w", err)
	}
	layout(battle.party, battle.enemies)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		battle:   battle,
		logger:   logger,
		running:  true,
	}, nil
}

func dataFS(dir string) fs.FS {
	if dir == "" {
		return data.FS()
	}
	return os.DirFS(dir)
}

// layout assigns presentation positions: one row per combatant.
func layout(party, enemies entity.Roster) {
	for i, c := range enemies {
		c.SetPosition(0, float64(i))
	}
	for i, c := range party {
		c.SetPosition(1, float64(i))
	}
}

// Run executes the main loop until the player quits or dismisses the outcome.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	// PollEvent blocks, so it gets its own goroutine. The battle itself is
	// only touched from this one.
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	var pending []Command

	for g.running {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					g.running = false
					continue
				}
				if g.battle.Concluded() {
					g.running = false
					continue
				}
				if cmd, ok := commandForKey(ev); ok {
					pending = append(pending, cmd)
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case now := <-ticker.C:
			g.battle.Tick(ctx, now.Sub(last), pending)
			last = now
			pending = pending[:0]
			g.renderer.Render(viewOf(g.battle.Snapshot()))
		}
	}

	g.logger.Info("game closed", zap.Stringer("state", g.battle.State()))
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// viewOf converts a battle snapshot into the renderer's view model.
func viewOf(s Snapshot) ui.BattleView {
	v := ui.BattleView{
		Title:  fmt.Sprintf("Round %d - %s", s.Round, stateLabel(s.State)),
		Status: fmt.Sprintf("battle %s", shortID(s.ID)),
		Cursor: -1,
		Log:    s.Log,
		Footer: "arrows/ws move  enter/space confirm  esc/b back  q quit",
	}
	v.Enemies = rows(s.Enemies)
	v.Party = rows(s.Party)

	switch {
	case s.Concluded:
		v.Prompt = outcomeLabel(s.State)
		v.Footer = "press any key to exit"
	case s.State == StatePlayerTurn && s.Actor >= 0:
		actor := s.Party[s.Actor].Name
		switch s.Mode {
		case ModeTarget:
			v.Prompt = actor + " - choose a target"
			v.Choices = s.Targets
			v.Cursor = s.TargetIndex
		case ModeSpell:
			v.Prompt = actor + " - choose a spell"
			v.Choices = s.Spells
			v.Cursor = s.SpellIndex
		default:
			v.Prompt = actor + " - choose an action"
			v.Choices = s.Menu
			v.Cursor = s.MenuIndex
		}
	case s.State == StateExecuting:
		v.Prompt = fmt.Sprintf("%d actions pending", s.Pending)
	}
	return v
}

func rows(views []CombatantView) []ui.Row {
	out := make([]ui.Row, len(views))
	for i, c := range views {
		out[i] = ui.Row{
			Name:      c.Name,
			HP:        c.HP,
			MaxHP:     c.MaxHP,
			MP:        c.MP,
			MaxMP:     c.MaxMP,
			Color:     c.Color,
			Alive:     c.Alive,
			Defending: c.Defending,
			Highlight: c.Acting,
			Line:      int(c.Y),
		}
	}
	return out
}

func stateLabel(s BattleState) string {
	switch s {
	case StateEntering:
		return "Enemies approach!"
	case StatePlayerTurn:
		return "Your turn"
	case StateEnemyTurn:
		return "Enemies are thinking..."
	case StateExecuting:
		return "Fight!"
	default:
		return outcomeLabel(s)
	}
}

func outcomeLabel(s BattleState) string {
	switch s {
	case StateVictory:
		return "Victory!"
	case StateDefeat:
		return "Defeat..."
	case StateFleeing:
		return "Escaped!"
	default:
		return strings.ReplaceAll(s.String(), "_", " ")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
