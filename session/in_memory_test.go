package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/consultmesh/core"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewInMemoryStore()

	k1 := core.SessionKey{App: "consult", User: "u1", ID: "s1"}
	k2 := core.SessionKey{App: "consult", User: "u1", ID: "s2"}

	require.NoError(t, store.AppendEvent(k1, core.NewModelTextEvent("run-1", "riley", "hello")))

	s1, err := store.Get(k1)
	require.NoError(t, err)
	s2, err := store.Get(k2)
	require.NoError(t, err)

	assert.Len(t, s1.GetEvents(), 1)
	assert.Empty(t, s2.GetEvents())
}

func TestInMemoryStoreCreateResets(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	require.NoError(t, store.AppendEvent(key, core.NewModelTextEvent("run-1", "riley", "hello")))

	sess, err := store.Create(key)
	require.NoError(t, err)
	assert.Empty(t, sess.GetEvents())
}

func TestInMemoryStoreGetReturnsClone(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	sess, err := store.Get(key)
	require.NoError(t, err)
	sess.AddEvent(core.NewModelTextEvent("run-1", "riley", "mutated copy"))

	fresh, err := store.Get(key)
	require.NoError(t, err)
	assert.Empty(t, fresh.GetEvents())
}

func TestInMemoryStoreConcurrentAppends(t *testing.T) {
	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := core.SessionKey{App: "consult", User: "u1", ID: string(rune('a' + n%4))}
			_ = store.AppendEvent(key, core.NewModelTextEvent("run", "riley", "x"))
		}(i)
	}
	wg.Wait()

	total := 0
	for _, id := range []string{"a", "b", "c", "d"} {
		sess, err := store.Get(core.SessionKey{App: "consult", User: "u1", ID: id})
		require.NoError(t, err)
		total += len(sess.GetEvents())
	}
	assert.Equal(t, 16, total)
}
