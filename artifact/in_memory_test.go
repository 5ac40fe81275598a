package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/consultmesh/core"
)

var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStoreSaveGet(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	require.NoError(t, store.Save(key, "action-plan", []byte(`{"immediate_actions":[]}`)))

	data, err := store.Get(key, "action-plan")
	require.NoError(t, err)
	assert.Equal(t, `{"immediate_actions":[]}`, string(data))
}

func TestInMemoryStoreGetMissing(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	_, err := store.Get(key, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStoreListOrder(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	require.NoError(t, store.Save(key, "first", []byte("1")))
	require.NoError(t, store.Save(key, "second", []byte("2")))
	require.NoError(t, store.Save(key, "first", []byte("1b"))) // overwrite keeps position

	ids, err := store.List(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids)
}

func TestInMemoryStoreCopiesData(t *testing.T) {
	store := NewInMemoryStore()
	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}

	buf := []byte("original")
	require.NoError(t, store.Save(key, "doc", buf))
	buf[0] = 'X'

	data, err := store.Get(key, "doc")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}
