package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

func TestKeyEmptyUntilServerAssignsID(t *testing.T) {
	assert.Empty(t, models.Company{}.Key())
	assert.Empty(t, models.Request{Status: models.RequestRegistered}.Key())
	assert.Empty(t, models.Product{Name: "SLA Gold"}.Key())
	assert.Empty(t, models.Investor{PublicKey: "pk"}.Key())
	assert.Empty(t, models.ServiceToken{}.Key())

	assert.Equal(t, "5", models.Company{ID: 5}.Key())
	assert.Equal(t, "9", models.Request{ID: 9}.Key())
	assert.Equal(t, "12", models.Product{ID: 12}.Key())
	assert.Equal(t, "7", models.Investor{ID: 7}.Key())
	assert.Equal(t, "tok-1", models.ServiceToken{ID: "tok-1"}.Key())
}

func TestConcurrencyTokenFormats(t *testing.T) {
	assert.Equal(t, "3", models.Company{ID: 5, RowVersion: 3}.ConcurrencyToken())
	assert.Equal(t, "v2", models.Request{ID: 9, RowVersion: "v2"}.ConcurrencyToken())
	assert.Equal(t, "4", models.ServiceToken{ID: "tok-1", RowVersion: 4}.ConcurrencyToken())
}
