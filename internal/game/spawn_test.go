package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/sched"
)

func newTestDirector(region *geom.Rect) (*MonsterDirector, *sched.Scheduler) {
	clock := sched.New()
	d := NewMonsterDirector(testSettings().Monsters, region, clock, rand.New(rand.NewSource(11)), discardLogger(), func(Event) {})
	return d, clock
}

func TestMonsterDirector_NotReady(t *testing.T) {
	d, _ := newTestDirector(nil)

	assert.False(t, d.Ready())
	m, err := d.Spawn()
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrRegionNotReady)
	assert.Equal(t, 0, d.InitialSpawn())

	d.SetHuntingRegion(geom.Rect{X: 0, Y: 0, W: 100, H: 100})

	assert.True(t, d.Ready())
	m, err = d.Spawn()
	require.NoError(t, err)
	assert.True(t, d.IsActive(m))
}

func TestMonsterDirector_SpawnInitializesMonster(t *testing.T) {
	region := geom.Rect{X: -50, Y: 20, W: 300, H: 80}
	d, _ := newTestDirector(&region)

	require.Equal(t, 20, d.InitialSpawn())

	for _, m := range d.Active() {
		assert.True(t, region.Contains(m.Pos))
		assert.GreaterOrEqual(t, m.Speed, 20.0)
		assert.LessOrEqual(t, m.Speed, 40.0)
		assert.Equal(t, 30, m.HP)
		assert.Equal(t, 30, m.MaxHP)
		assert.True(t, m.Alive)
		assert.Equal(t, StatePatrolIdle, m.State)
		assert.Equal(t, 0.0, m.IdleTimer)
		_, hasTarget := m.PatrolTarget()
		assert.False(t, hasTarget)
		assert.Equal(t, region, m.Region())
		require.NotNil(t, m.Bar)
		assert.Equal(t, m.ID, m.Bar.OwnerID)
		assert.Equal(t, 1.0, m.Bar.Ratio)
	}
	assert.Equal(t, 20, d.ActiveBars())
}

func TestMonsterDirector_Cap(t *testing.T) {
	region := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	d, _ := newTestDirector(&region)
	d.InitialSpawn()

	m, err := d.Spawn()

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrCapReached)
	assert.Equal(t, d.Cap(), d.ActiveCount())
}

func TestMonsterDirector_Despawn(t *testing.T) {
	region := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	d, _ := newTestDirector(&region)
	d.InitialSpawn()
	m := d.Active()[4]

	assert.True(t, d.Despawn(m))
	assert.False(t, d.Despawn(m), "second despawn is a no-op")
	assert.False(t, d.Despawn(nil))

	assert.False(t, d.IsActive(m))
	assert.False(t, m.Alive)
	assert.Nil(t, m.Bar)
	assert.Equal(t, 19, d.ActiveCount())
	assert.Equal(t, 19, d.ActiveBars())
	assert.Equal(t, 1, d.PendingRespawns(), "exactly one respawn per despawn")
}

// A monster killed between ticks is replaced on the tick where the simulated
// clock reaches exactly one second later.
func TestWorld_RespawnAfterDelay(t *testing.T) {
	w := newTestWorld(t, testSettings())
	w.Start()

	w.ApplyDamage(w.ActiveMonsters()[0], 100)
	require.Equal(t, 19, w.Monsters.ActiveCount())

	tickN(w, 19)
	assert.Equal(t, 19, w.Monsters.ActiveCount())

	events := tickN(w, 1)
	assert.Equal(t, 20, w.Monsters.ActiveCount())
	assert.Equal(t, 1, CountEvents(events, EventMonsterSpawned))
	assert.Equal(t, 0, w.Monsters.PendingRespawns())
}

func TestWorld_RespawnsAreIndependent(t *testing.T) {
	w := newTestWorld(t, testSettings())
	w.Start()

	w.ApplyDamage(w.ActiveMonsters()[0], 100)
	tickN(w, 10)
	w.ApplyDamage(w.ActiveMonsters()[0], 100)
	assert.Equal(t, 18, w.Monsters.ActiveCount())
	assert.Equal(t, 2, w.Monsters.PendingRespawns())

	tickN(w, 10)
	assert.Equal(t, 19, w.Monsters.ActiveCount())

	tickN(w, 10)
	assert.Equal(t, 20, w.Monsters.ActiveCount())
}

func TestWorld_RespawnDroppedAtCap(t *testing.T) {
	w := newTestWorld(t, testSettings())
	w.Start()

	w.ApplyDamage(w.ActiveMonsters()[0], 100)
	_, err := w.Monsters.Spawn()
	require.NoError(t, err)

	tickN(w, 20)

	assert.Equal(t, 20, w.Monsters.ActiveCount())
	assert.Equal(t, 0, w.Monsters.PendingRespawns())
}

func TestWorld_RespawnReusesPooledMonster(t *testing.T) {
	s := testSettings()
	s.Monsters.MaxMonsters = 1
	w := newTestWorld(t, s)
	w.Start()
	m := w.ActiveMonsters()[0]
	id := m.ID
	m.State = StateChase
	m.IdleTimer = 0.3

	w.ApplyDamage(m, 100)
	assert.Equal(t, 1, w.Monsters.FreeCount())
	tickN(w, 20)

	require.Equal(t, 1, w.Monsters.ActiveCount())
	again := w.ActiveMonsters()[0]
	assert.Same(t, m, again)
	assert.Equal(t, id, again.ID)
	assert.Equal(t, 30, again.HP)
	assert.True(t, again.Alive)
	assert.NotNil(t, again.Bar)
	assert.Equal(t, 0, w.Monsters.FreeCount())
}

func TestMonsterDirector_CloseCancelsRespawns(t *testing.T) {
	region := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	d, clock := newTestDirector(&region)
	d.InitialSpawn()
	d.Despawn(d.Active()[0])
	d.Despawn(d.Active()[0])

	d.Close()
	assert.Equal(t, 0, d.PendingRespawns())

	assert.True(t, d.Despawn(d.Active()[0]))
	assert.Equal(t, 0, d.PendingRespawns(), "despawn after close schedules nothing")

	clock.Advance(2 * time.Second)
	clock.RunDue()
	assert.Equal(t, 17, d.ActiveCount())

	_, err := d.Spawn()
	assert.ErrorIs(t, err, ErrDirectorClosed)
}
