package entity

// Roster is one side of a battle, in display order.
type Roster []*Combatant

// AliveCount returns the number of combatants still alive.
func (r Roster) AliveCount() int {
	count := 0
	for _, c := range r {
		if c.IsAlive() {
			count++
		}
	}
	return count
}

// IsDefeated returns true when no combatant in the roster is alive.
// An empty roster counts as defeated.
func (r Roster) IsDefeated() bool {
	return r.AliveCount() == 0
}

// Alive returns the living combatants in roster order.
func (r Roster) Alive() []*Combatant {
	alive := make([]*Combatant, 0, len(r))
	for _, c := range r {
		if c.IsAlive() {
			alive = append(alive, c)
		}
	}
	return alive
}

// FirstAlive returns the first living combatant, or nil.
func (r Roster) FirstAlive() *Combatant {
	for _, c := range r {
		if c.IsAlive() {
			return c
		}
	}
	return nil
}

// AliveAt returns the nth living combatant (0-indexed), or nil.
func (r Roster) AliveAt(index int) *Combatant {
	current := 0
	for _, c := range r {
		if c.IsAlive() {
			if current == index {
				return c
			}
			current++
		}
	}
	return nil
}

// NextAliveAfter returns the roster index of the first living combatant
// after index, or -1 if there is none.
func (r Roster) NextAliveAfter(index int) int {
	for i := index + 1; i < len(r); i++ {
		if r[i].IsAlive() {
			return i
		}
	}
	return -1
}

// TotalHP returns the sum of current HP across the roster.
func (r Roster) TotalHP() int {
	total := 0
	for _, c := range r {
		total += c.HP
	}
	return total
}
