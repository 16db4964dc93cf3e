package models

// Credentials is the login payload shared by all roles.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// CompanyCreate registers a new company together with its login account.
type CompanyCreate struct {
	Name     string `json:"name"`
	TaxCode  string `json:"taxCode"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// InvestorCreate registers a new investor.
type InvestorCreate struct {
	PublicKey string `json:"publicKey"`
	UserName  string `json:"userName"`
	Password  string `json:"password"`
}

// RequestCreate opens a new issuance request for a product.
type RequestCreate struct {
	CompanyID         int64 `json:"companyId"`
	ProdID            int64 `json:"prodId"`
	ServiceTokenCount int   `json:"serviceTokenCount"`
}

// LoginResult is returned by the role login endpoints: the identity plus
// the bearer token for subsequent calls.
type LoginResult[T any] struct {
	User  T      `json:"user"`
	Token string `json:"token"`
}
