package combat

import (
	"testing"

	"github.com/samdwyer/turnbattle/internal/entity"
)

func TestActionKindString(t *testing.T) {
	tests := []struct {
		kind        ActionKind
		expected    string
		needsTarget bool
	}{
		{ActionAttack, "Attack", true},
		{ActionDefend, "Defend", false},
		{ActionUseItem, "Item", true},
		{ActionUseSkill, "Skill", true},
		{ActionFlee, "Flee", false},
		{ActionKind(99), "Unknown", false},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ActionKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
		if got := tt.kind.NeedsTarget(); got != tt.needsTarget {
			t.Errorf("%s.NeedsTarget() = %v, want %v", tt.expected, got, tt.needsTarget)
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	var q Queue
	if !q.Empty() || q.Len() != 0 {
		t.Fatal("zero Queue should be empty")
	}

	a := entity.NewCombatant("A", 10, 1, 1, 1, 0, true)
	b := entity.NewCombatant("B", 10, 1, 1, 1, 0, false)
	first := &ActionCommand{Actor: a, Kind: ActionAttack}
	second := &ActionCommand{Actor: b, Kind: ActionDefend}
	q.Push(first)
	q.Push(second)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if got := q.Pop(); got != first {
		t.Error("first Pop() should return the first pushed command")
	}
	if got := q.Pop(); got != second {
		t.Error("second Pop() should return the second pushed command")
	}
	if !q.Empty() {
		t.Error("queue should be empty after popping everything")
	}
}

func TestQueuePopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop() on empty queue should panic")
		}
	}()
	var q Queue
	q.Pop()
}

func TestQueueClearAndItems(t *testing.T) {
	var q Queue
	a := entity.NewCombatant("A", 10, 1, 1, 1, 0, true)
	q.Push(&ActionCommand{Actor: a})
	q.Push(&ActionCommand{Actor: a})

	items := q.Items()
	items[0] = nil
	if q.Pop() == nil {
		t.Error("Items() must return a copy")
	}
	q.Clear()
	if !q.Empty() {
		t.Error("Clear() should empty the queue")
	}
}

func TestQueueSortBySpeed(t *testing.T) {
	slow := entity.NewCombatant("Slow", 10, 1, 1, 3, 0, true)
	fast := entity.NewCombatant("Fast", 10, 1, 1, 20, 0, false)
	tieA := entity.NewCombatant("TieA", 10, 1, 1, 10, 0, true)
	tieB := entity.NewCombatant("TieB", 10, 1, 1, 10, 0, false)

	var q Queue
	for _, c := range []*entity.Combatant{slow, tieA, fast, tieB} {
		q.Push(&ActionCommand{Actor: c})
	}
	q.SortBySpeed()

	want := []string{"Fast", "TieA", "TieB", "Slow"}
	for i, name := range want {
		if got := q.Pop().Actor.Name; got != name {
			t.Errorf("position %d = %s, want %s", i, got, name)
		}
	}
}
