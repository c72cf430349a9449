package combat

import "sort"

// Queue is an ordered list of pending commands. Commands are pushed at the
// back and popped from the front.
type Queue struct {
	items []*ActionCommand
}

// Push appends a command.
func (q *Queue) Push(cmd *ActionCommand) {
	q.items = append(q.items, cmd)
}

// Pop removes and returns the front command. Callers must check Empty
// first; popping an empty queue is a programming error and panics.
func (q *Queue) Pop() *ActionCommand {
	if len(q.items) == 0 {
		panic("combat: pop from empty action queue")
	}
	cmd := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return cmd
}

// Len returns the number of pending commands.
func (q *Queue) Len() int { return len(q.items) }

// Empty reports whether no commands are pending.
func (q *Queue) Empty() bool { return len(q.items) == 0 }

// Clear discards all pending commands.
func (q *Queue) Clear() { q.items = nil }

// Items returns a copy of the pending commands in execution order.
func (q *Queue) Items() []*ActionCommand {
	return append([]*ActionCommand(nil), q.items...)
}

// SortBySpeed reorders pending commands so faster actors go first.
// Actors with equal speed keep their enqueue order.
func (q *Queue) SortBySpeed() {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].Actor.Speed > q.items[j].Actor.Speed
	})
}
