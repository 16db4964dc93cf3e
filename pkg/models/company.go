// Package models defines the marketplace entities exchanged with the
// remote resource API and cached by the client.
//
// Every cached entity implements the sync core's Record contract: a stable
// unique id plus an opaque concurrency token (row version) that must be
// echoed back unmodified on every mutating call. The server changes the
// token on each successful mutation and rejects calls carrying a stale one.
package models

import (
	"strconv"
	"time"
)

// CompanyStatus is a company's lifecycle state.
type CompanyStatus int

const (
	CompanyPending CompanyStatus = 0
	CompanyActive  CompanyStatus = 1
)

func (s CompanyStatus) String() string {
	switch s {
	case CompanyPending:
		return "Pending"
	case CompanyActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// CompanyUser is the login account attached to a company.
type CompanyUser struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	UserName  string `json:"userName"`
}

// Company is a bond-issuing company registered on the marketplace.
type Company struct {
	ID         int64         `json:"id"`
	RowVersion int64         `json:"rowVersion"`
	Name       string        `json:"name"`
	Status     CompanyStatus `json:"status"`
	RegDate    time.Time     `json:"regDate"`
	TaxCode    string        `json:"taxCode"`
	User       *CompanyUser  `json:"user,omitempty"`
}

// Key returns the company's id as an opaque string, or "" when the server
// has not assigned one.
func (c Company) Key() string { return intKey(c.ID) }

// ConcurrencyToken returns the company's row version.
func (c Company) ConcurrencyToken() string { return strconv.FormatInt(c.RowVersion, 10) }

// intKey formats a server-assigned integer id. Zero is the id of a record
// the server never returned (a partial or defaulted body); its key is
// empty so the sync core falls back to a re-fetch instead of caching it.
func intKey(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
