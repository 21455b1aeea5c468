package room

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndFind(t *testing.T) {
	m := NewManager(testSettings(), discardLogger())
	defer m.StopAll()

	s, err := m.CreateSession()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{4}$`), s.Code)
	assert.Same(t, s, m.GetSession(s.Code))
	assert.Nil(t, m.GetSession("NONE"))
	assert.Equal(t, 1, m.SessionCount())

	c := mockClient("client1")
	require.NoError(t, s.AddClient(c))
	assert.Same(t, s, m.FindSessionByClientID("client1"))
	assert.Nil(t, m.FindSessionByClientID("client2"))
}

func TestManager_RemoveSessionStopsIt(t *testing.T) {
	m := NewManager(testSettings(), discardLogger())
	s, err := m.CreateSession()
	require.NoError(t, err)
	s.Start()

	m.RemoveSession(s.Code)
	m.RemoveSession(s.Code)

	assert.Equal(t, 0, m.SessionCount())
	assert.Equal(t, StateEnded, s.State())
}

func TestManager_StopAll(t *testing.T) {
	m := NewManager(testSettings(), discardLogger())
	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := m.CreateSession()
		require.NoError(t, err)
		sessions = append(sessions, s)
	}

	m.StopAll()

	assert.Equal(t, 0, m.SessionCount())
	for _, s := range sessions {
		assert.Equal(t, StateEnded, s.State())
	}
}

func TestManager_FixedSeedIsReproducible(t *testing.T) {
	m := NewManager(testSettings(), discardLogger())
	defer m.StopAll()

	a, err := m.CreateSession()
	require.NoError(t, err)
	b, err := m.CreateSession()
	require.NoError(t, err)

	assert.NotEqual(t, a.Code, b.Code)
	assert.Equal(t, a.Seed, b.Seed)

	for i := 0; i < 40; i++ {
		a.Step()
		b.Step()
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	require.Len(t, sb.Monsters, len(sa.Monsters))
	for i := range sa.Monsters {
		assert.Equal(t, sa.Monsters[i].X, sb.Monsters[i].X)
		assert.Equal(t, sa.Monsters[i].Y, sb.Monsters[i].Y)
		assert.Equal(t, sa.Monsters[i].State, sb.Monsters[i].State)
	}
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(rand.New(rand.NewSource(1)), func(string) bool { return false })
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{4}$`), code)

	again, err := GenerateCode(rand.New(rand.NewSource(1)), func(string) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, code, again, "same rng seed, same code")

	t.Run("skips taken codes", func(t *testing.T) {
		next, err := GenerateCode(rand.New(rand.NewSource(1)), func(c string) bool { return c == code })
		require.NoError(t, err)
		assert.NotEqual(t, code, next)
	})

	t.Run("gives up when everything is taken", func(t *testing.T) {
		_, err := GenerateCode(rand.New(rand.NewSource(1)), func(string) bool { return true })
		assert.ErrorIs(t, err, ErrNoFreeCode)
	})
}
