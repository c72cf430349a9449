package game

import "github.com/gdamore/tcell/v2"

// Command is a discrete, edge-triggered player input.
type Command int

const (
	CommandNavigateUp Command = iota
	CommandNavigateDown
	CommandConfirm
	CommandBack
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case CommandNavigateUp:
		return "up"
	case CommandNavigateDown:
		return "down"
	case CommandConfirm:
		return "confirm"
	case CommandBack:
		return "back"
	default:
		return "unknown"
	}
}

// InputMode is the player-turn sub-flow.
type InputMode int

const (
	// ModeMenu - choosing among the action menu entries
	ModeMenu InputMode = iota
	// ModeSpell - choosing among the acting member's spells
	ModeSpell
	// ModeTarget - choosing among living enemies
	ModeTarget
)

// String returns a human-readable mode name.
func (m InputMode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeSpell:
		return "spell"
	case ModeTarget:
		return "target"
	default:
		return "unknown"
	}
}

// commandForKey maps a key press to a battle command.
func commandForKey(ev *tcell.EventKey) (Command, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return CommandNavigateUp, true
	case tcell.KeyDown:
		return CommandNavigateDown, true
	case tcell.KeyEnter:
		return CommandConfirm, true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		return CommandBack, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return CommandNavigateUp, true
		case 's', 'j':
			return CommandNavigateDown, true
		case ' ':
			return CommandConfirm, true
		case 'b':
			return CommandBack, true
		}
	}
	return 0, false
}

// isQuitKey reports whether the key ends the program.
func isQuitKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')
}
