package game

// ApplyDamage subtracts amount from a monster's hp. Negative amounts count as
// zero. When hp reaches zero or below the monster dies: one item drops at its
// position, its health bar goes back to the pool, and it despawns. Damaging a
// monster that is not active does nothing and returns false.
func (w *World) ApplyDamage(m *Monster, amount int) bool {
	if !w.Monsters.IsActive(m) {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	m.HP -= amount
	if m.Bar != nil {
		m.Bar.Update(m.HP, m.MaxHP)
	}
	w.emit(Event{Type: EventMonsterHit, ActorID: m.ID, Pos: m.Pos, Value: amount})

	if m.HP <= 0 {
		w.killMonster(m)
	}
	return true
}

func (w *World) killMonster(m *Monster) {
	pos := m.Pos
	it := w.Items.Spawn(pos)
	w.emit(Event{Type: EventItemSpawned, ActorID: it.ID, Pos: pos})

	w.Monsters.Despawn(m)
	w.emit(Event{Type: EventMonsterDied, ActorID: m.ID, Pos: pos})
	w.log.Debug("monster died", "monster", m.ID, "x", pos.X, "y", pos.Y)
}
