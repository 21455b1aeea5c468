package game

import "github.com/google/uuid"

// HealthBar is the display resource attached to a living monster. Bars are
// pooled separately from monsters.
type HealthBar struct {
	ID      string
	OwnerID string
	Ratio   float64
}

func newHealthBar() *HealthBar {
	return &HealthBar{ID: uuid.New().String()}
}

// Update sets the fill ratio from current and max hp, never below zero.
func (b *HealthBar) Update(hp, maxHP int) {
	if maxHP <= 0 {
		b.Ratio = 0
		return
	}
	b.Ratio = max(0, float64(hp)/float64(maxHP))
}
