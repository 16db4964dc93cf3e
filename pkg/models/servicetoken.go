package models

import (
	"strconv"
	"time"
)

// ServiceTokenStatus is a token's market state.
type ServiceTokenStatus int

const (
	TokenAvailable ServiceTokenStatus = 0
	TokenSold      ServiceTokenStatus = 1
	TokenFinished  ServiceTokenStatus = 255
)

func (s ServiceTokenStatus) String() string {
	switch s {
	case TokenAvailable:
		return "Available"
	case TokenSold:
		return "Sold"
	case TokenFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// OwnerType distinguishes who currently holds a token.
type OwnerType int

const (
	OwnerCompany  OwnerType = 0
	OwnerInvestor OwnerType = 1
)

// ServiceToken is a tradable bond-like claim on a company's product.
// Its id is an opaque string assigned by the token service.
type ServiceToken struct {
	ID             string             `json:"id"`
	RowVersion     int64              `json:"rowVersion"`
	CompanyID      int64              `json:"companyId"`
	RequestID      int64              `json:"requestId"`
	ProdID         int64              `json:"prodId"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        *time.Time         `json:"endDate,omitempty"`
	Status         ServiceTokenStatus `json:"status"`
	Count          int                `json:"count"`
	ServiceCount   int                `json:"serviceCount"`
	Schedule       SchedulePeriod     `json:"scheduleType"`
	OwnerType      OwnerType          `json:"ownerType"`
	OwnerPublicKey string             `json:"ownerPublicKey"`
}

// Key returns the token's id.
func (t ServiceToken) Key() string { return t.ID }

// ConcurrencyToken returns the token's row version.
func (t ServiceToken) ConcurrencyToken() string { return strconv.FormatInt(t.RowVersion, 10) }

// MarketToken is the list shape the token service returns for market
// views: a ServiceToken joined with its issuing company's name.
type MarketToken struct {
	ServiceToken
	CompanyName string `json:"companyName"`
}
