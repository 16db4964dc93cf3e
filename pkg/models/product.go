package models

import "strconv"

// SchedulePeriod is the service-delivery schedule of a product.
type SchedulePeriod int

const (
	ScheduleNone       SchedulePeriod = 0
	ScheduleMonthly    SchedulePeriod = 1
	ScheduleQuarterly  SchedulePeriod = 2
	ScheduleSemiAnnual SchedulePeriod = 3
	ScheduleAnnual     SchedulePeriod = 4
)

func (s SchedulePeriod) String() string {
	switch s {
	case ScheduleMonthly:
		return "Monthly"
	case ScheduleQuarterly:
		return "Quarterly"
	case ScheduleSemiAnnual:
		return "SemiAnnual"
	case ScheduleAnnual:
		return "Annual"
	default:
		return "None"
	}
}

// Product is a service offering a company backs its token issuances with.
type Product struct {
	ID           int64          `json:"id"`
	RowVersion   int64          `json:"rowVersion"`
	CompanyID    int64          `json:"companyId"`
	Name         string         `json:"name"`
	ServiceCount int            `json:"serviceCount"`
	Price        float64        `json:"price"`
	Term         *int           `json:"term,omitempty"`
	Schedule     SchedulePeriod `json:"scheduleType"`
}

// Key returns the product's id as an opaque string, or "" when the server
// has not assigned one.
func (p Product) Key() string { return intKey(p.ID) }

// ConcurrencyToken returns the product's row version.
func (p Product) ConcurrencyToken() string { return strconv.FormatInt(p.RowVersion, 10) }
