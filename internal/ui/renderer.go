package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const hpBarWidth = 10

// Row is one combatant line.
type Row struct {
	Name      string
	HP, MaxHP int
	MP, MaxMP int
	Color     string // "#RRGGBB" hint
	Alive     bool
	Defending bool
	Highlight bool
	Line      int // vertical slot within the side's column
}

// BattleView is what the renderer draws for one frame.
type BattleView struct {
	Title   string
	Status  string
	Enemies []Row
	Party   []Row
	Prompt  string
	Choices []string
	Cursor  int // -1 hides the cursor
	Log     []string
	Footer  string
}

// Renderer handles drawing the battle to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame.
func (r *Renderer) Render(v BattleView) {
	r.screen.Clear()
	width, height := r.screen.Size()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.DrawText(1, 0, v.Title, title)
	r.screen.DrawText(1, 1, v.Status, tcell.StyleDefault.Foreground(tcell.ColorSilver))

	top := 3
	r.drawSide(2, top, "Enemies", v.Enemies, tcell.ColorRed)
	partyX := width / 2
	if partyX < 40 {
		partyX = 40
	}
	r.drawSide(partyX, top, "Party", v.Party, tcell.ColorAqua)

	rows := len(v.Enemies)
	if len(v.Party) > rows {
		rows = len(v.Party)
	}
	y := top + rows + 2

	if v.Prompt != "" {
		r.screen.DrawText(2, y, v.Prompt, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
		y++
	}
	for i, choice := range v.Choices {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		marker := "  "
		if i == v.Cursor {
			style = style.Reverse(true)
			marker = "> "
		}
		r.screen.DrawText(4, y, marker+choice, style)
		y++
	}

	// Log fills the space above the footer, newest last.
	logTop := y + 1
	logBottom := height - 2
	lines := v.Log
	if room := logBottom - logTop + 1; room < len(lines) {
		if room < 0 {
			room = 0
		}
		lines = lines[len(lines)-room:]
	}
	for i, line := range lines {
		r.screen.DrawText(2, logTop+i, line, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	r.screen.DrawText(1, height-1, v.Footer, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	r.screen.Show()
}

func (r *Renderer) drawSide(x, y int, heading string, rows []Row, fallback tcell.Color) {
	r.screen.DrawText(x, y-1, heading, tcell.StyleDefault.Foreground(fallback).Underline(true))
	for _, row := range rows {
		style := tcell.StyleDefault.Foreground(ColorOr(row.Color, fallback))
		if !row.Alive {
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray).StrikeThrough(true)
		}
		if row.Highlight {
			style = style.Bold(true).Reverse(true)
		}

		line := y + row.Line
		next := r.screen.DrawText(x, line, fmt.Sprintf("%-14s", row.Name), style)
		next = r.screen.DrawText(next+1, line, hpBar(row.HP, row.MaxHP, hpBarWidth), hpStyle(row.HP, row.MaxHP))
		info := fmt.Sprintf(" %3d/%-3d", row.HP, row.MaxHP)
		if row.MaxMP > 0 {
			info += fmt.Sprintf(" MP %d", row.MP)
		}
		if row.Defending {
			info += " [DEF]"
		}
		r.screen.DrawText(next, line, info, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
}

// hpBar renders hp as a fixed-width gauge. Any living combatant shows at
// least one segment.
func hpBar(hp, maxHP, width int) string {
	filled := 0
	if maxHP > 0 && hp > 0 {
		filled = hp * width / maxHP
		if filled == 0 {
			filled = 1
		}
		if filled > width {
			filled = width
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func hpStyle(hp, maxHP int) tcell.Style {
	switch {
	case maxHP <= 0 || hp <= 0:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case hp*4 <= maxHP:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case hp*2 <= maxHP:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
}
