package tokenmart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenmart "github.com/tokenmart/tokenmart.go"
)

// testRecord is a minimal entity for exercising the sync core.
type testRecord struct {
	ID     string
	Ver    string
	Name   string
	Status int
}

func (r testRecord) Key() string              { return r.ID }
func (r testRecord) ConcurrencyToken() string { return r.Ver }

func keys(records []testRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestStoreReplaceAllClearsDanglingSelection(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}})
	require.NoError(t, s.Select("2"))

	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "3"}})

	_, ok := s.Selected()
	assert.False(t, ok, "selection must be cleared when the id is absent from the new list")
}

func TestStoreReplaceAllKeepsSurvivingSelection(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}})
	require.NoError(t, s.Select("2"))

	s.ReplaceAll([]testRecord{{ID: "2", Name: "fresh"}})

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "fresh", sel.Name)
}

func TestStoreUpsertReplacesInPlace(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}})

	s.Upsert(testRecord{ID: "2", Name: "updated"})

	assert.Equal(t, []string{"1", "2", "3"}, keys(s.All()), "position must be preserved")
	got, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "updated", got.Name)
}

func TestStoreUpsertPrependsNewRecord(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}})

	s.Upsert(testRecord{ID: "9"})

	assert.Equal(t, []string{"9", "1", "2"}, keys(s.All()))
}

func TestStoreUpsertIdempotent(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}})

	r := testRecord{ID: "2", Name: "same"}
	s.Upsert(r)
	once := s.All()
	s.Upsert(r)

	assert.Equal(t, once, s.All(), "upserting the same record twice must equal upserting once")
	assert.Equal(t, 2, s.Len(), "upsert must never duplicate an id")
}

func TestStoreRemoveClearsSelection(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.NoError(t, s.Select("3"))

	s.Remove("3")

	assert.Equal(t, []string{"1", "2"}, keys(s.All()))
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestStoreRemoveKeepsUnrelatedSelection(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.NoError(t, s.Select("1"))

	s.Remove("3")

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}

func TestStoreSelectAbsentID(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1"}})
	require.NoError(t, s.Select("1"))

	err := s.Select("404")

	assert.ErrorIs(t, err, tokenmart.ErrNotInStore)
	sel, ok := s.Selected()
	require.True(t, ok, "failed select must leave the current selection untouched")
	assert.Equal(t, "1", sel.ID)
}

func TestStoreReplaceAllDropsDuplicateIDs(t *testing.T) {
	s := tokenmart.NewStore[testRecord]()
	s.ReplaceAll([]testRecord{{ID: "1", Name: "first"}, {ID: "1", Name: "second"}})

	assert.Equal(t, 1, s.Len())
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
}
