package models

import "time"

// RequestStatus is the lifecycle state of a bond issuance request.
type RequestStatus int

const (
	RequestNone       RequestStatus = 0
	RequestRegistered RequestStatus = 1
	RequestAuthorized RequestStatus = 2
	RequestApproved   RequestStatus = 3
	RequestRejected   RequestStatus = 4
)

func (s RequestStatus) String() string {
	switch s {
	case RequestNone:
		return "None"
	case RequestRegistered:
		return "Registered"
	case RequestAuthorized:
		return "Authorized"
	case RequestApproved:
		return "Approved"
	case RequestRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Request is a company's application to issue service tokens for one of
// its products. Its row version is an opaque string minted by the server.
type Request struct {
	ID            int64         `json:"id"`
	RowVersion    string        `json:"rowVersion"`
	CompanyID     int64         `json:"companyId"`
	ProdID        int64         `json:"prodId"`
	RegDate       time.Time     `json:"regDate"`
	Status        RequestStatus `json:"status"`
	AuthorizeDate *time.Time    `json:"authorizeDate,omitempty"`
	ApproveDate   *time.Time    `json:"approveDate,omitempty"`
}

// Key returns the request's id as an opaque string, or "" when the server
// has not assigned one.
func (r Request) Key() string { return intKey(r.ID) }

// ConcurrencyToken returns the request's row version.
func (r Request) ConcurrencyToken() string { return r.RowVersion }
