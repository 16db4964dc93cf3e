package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/tokenmart.go/pkg/models"
	"github.com/tokenmart/tokenmart.go/pkg/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "investor-7",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newFileStore(t *testing.T) *session.FileStore {
	t.Helper()
	return session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSessionTolerateNilIdentities(t *testing.T) {
	s := session.New(nil, zerolog.Nop())

	assert.Nil(t, s.Investor())
	assert.Nil(t, s.Company())
	assert.Nil(t, s.Admin())
	assert.Empty(t, s.Token())

	s.Hydrate()
	s.Clear()
}

func TestSessionInvestorPersistsAcrossRestart(t *testing.T) {
	store := newFileStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))

	first := session.New(store, zerolog.Nop())
	first.SetInvestor(models.Investor{ID: 7, PublicKey: "pk-7", UserName: "ada"}, token)

	// A new session over the same store simulates a process restart.
	second := session.New(store, zerolog.Nop())
	second.Hydrate()

	inv := second.Investor()
	require.NotNil(t, inv)
	assert.Equal(t, int64(7), inv.ID)
	assert.Equal(t, "pk-7", inv.PublicKey)
	assert.Equal(t, token, second.Token())
}

func TestSessionExpiredTokenDiscardedOnHydrate(t *testing.T) {
	store := newFileStore(t)
	expired := signedToken(t, time.Now().Add(-time.Hour))

	first := session.New(store, zerolog.Nop())
	first.SetInvestor(models.Investor{ID: 7}, expired)

	second := session.New(store, zerolog.Nop())
	second.Hydrate()

	assert.Nil(t, second.Investor(), "an expired persisted session must force a fresh login")

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data, "the stale slot must be cleared")
}

func TestSessionCompanyAndAdminAreMemoryOnly(t *testing.T) {
	store := newFileStore(t)

	first := session.New(store, zerolog.Nop())
	first.SetCompany(models.Company{ID: 3, Name: "Acme"}, "tok")
	first.SetAdmin(models.AdminUser{ID: 1, UserName: "root"}, "tok")

	second := session.New(store, zerolog.Nop())
	second.Hydrate()

	assert.Nil(t, second.Company())
	assert.Nil(t, second.Admin())
}

func TestSessionClearRemovesPersistedSlot(t *testing.T) {
	store := newFileStore(t)

	s := session.New(store, zerolog.Nop())
	s.SetInvestor(models.Investor{ID: 7}, signedToken(t, time.Now().Add(time.Hour)))
	s.Clear()

	assert.Nil(t, s.Investor())
	assert.Empty(t, s.Token())

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSessionUnreadablePersistedSlotCleared(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Save([]byte("{not json")))

	s := session.New(store, zerolog.Nop())
	s.Hydrate()

	assert.Nil(t, s.Investor())
	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := newFileStore(t)

	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, store.Clear())
}
