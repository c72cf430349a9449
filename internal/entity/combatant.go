// Package entity provides the runtime participants of a battle.
package entity

// Combatant is a live battle participant projected from a template.
// HP is always kept within [0, MaxHP] and Alive tracks HP > 0.
type Combatant struct {
	Name string

	// Combat stats
	HP, MaxHP int
	MP, MaxMP int
	Attack    int
	Defense   int
	Speed     int

	PlayerSide bool
	Alive      bool
	Defending  bool     // Set by a resolved Defend, cleared on the combatant's next turn
	Spells     []string // Known spell identifiers
	Sprite     string   // Texture hint for the presentation layer
	Color      string   // Optional "#RRGGBB" display hint

	// X, Y is the battle position. It belongs to the presentation layer;
	// nothing in the battle core reads it.
	X, Y float64
}

// NewCombatant creates a living combatant at full HP and MP.
func NewCombatant(name string, hp, attack, defense, speed, mp int, playerSide bool) *Combatant {
	if hp < 0 {
		hp = 0
	}
	return &Combatant{
		Name:       name,
		HP:         hp,
		MaxHP:      hp,
		MP:         mp,
		MaxMP:      mp,
		Attack:     attack,
		Defense:    defense,
		Speed:      speed,
		PlayerSide: playerSide,
		Alive:      hp > 0,
	}
}

// IsAlive returns true if the combatant can still act or be targeted.
func (c *Combatant) IsAlive() bool { return c.Alive }

// TakeDamage reduces HP and returns the damage actually applied.
// Damage to a dead combatant is ignored.
func (c *Combatant) TakeDamage(amount int) int {
	if !c.Alive || amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.HP {
		actual = c.HP
	}
	c.HP -= actual
	if c.HP == 0 {
		c.Alive = false
	}
	return actual
}

// SetPosition stores the presentation-owned battle position.
func (c *Combatant) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}
