package game

// DefaultLogSize is the number of battle log lines kept when none is configured.
const DefaultLogSize = 8

// battleLog keeps the most recent messages, oldest first.
type battleLog struct {
	size  int
	lines []string
}

func newBattleLog(size int) *battleLog {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &battleLog{size: size}
}

func (l *battleLog) add(msg string) {
	l.lines = append(l.lines, msg)
	if over := len(l.lines) - l.size; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns a copy of the retained messages.
func (l *battleLog) Lines() []string {
	return append([]string(nil), l.lines...)
}
