package models

import "strconv"

// Investor is a marketplace participant identified by a public key.
type Investor struct {
	ID         int64  `json:"id"`
	RowVersion int64  `json:"rowVersion"`
	PublicKey  string `json:"publicKey"`
	UserName   string `json:"userName"`
}

// Key returns the investor's id as an opaque string, or "" when the server
// has not assigned one.
func (i Investor) Key() string { return intKey(i.ID) }

// ConcurrencyToken returns the investor's row version.
func (i Investor) ConcurrencyToken() string { return strconv.FormatInt(i.RowVersion, 10) }

// AdminUser is a back-office operator account.
type AdminUser struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	FullName string `json:"userFullName"`
}
