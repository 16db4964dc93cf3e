package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// CompanyService covers the /Company endpoints.
type CompanyService struct {
	client *Client
}

// Companies returns the company service.
func (c *Client) Companies() *CompanyService {
	return &CompanyService{client: c}
}

// Login authenticates a company account.
func (s *CompanyService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult[models.CompanyUser], error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Company/Login", nil, creds)
	if err != nil {
		return nil, err
	}
	return decodeRequired[models.LoginResult[models.CompanyUser]](data)
}

// Register creates a new company together with its login account.
func (s *CompanyService) Register(ctx context.Context, dto models.CompanyCreate) (*models.Company, error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Company/create", nil, dto)
	if err != nil {
		return nil, err
	}
	return decode[models.Company](data)
}

// GetAll lists companies with skip/take pagination and optional free-text
// search.
func (s *CompanyService) GetAll(ctx context.Context, skip, take int, search string) ([]models.Company, error) {
	data, err := s.client.do(ctx, http.MethodGet, "/Company/GetAll", listQuery(skip, take, search), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Company](data)
}

// GetByID retrieves one company.
func (s *CompanyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	data, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/Company/GetById/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Company](data)
}

// Approve activates a pending company. The response may carry the updated
// record or be empty.
func (s *CompanyService) Approve(ctx context.Context, id, rowVersion int64) (*models.Company, error) {
	q := url.Values{}
	q.Set("companyId", fmt.Sprint(id))
	q.Set("rowVersion", fmt.Sprint(rowVersion))
	data, err := s.client.do(ctx, http.MethodPatch, "/Company/Approve", q, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Company](data)
}

// Update replaces a company's fields.
func (s *CompanyService) Update(ctx context.Context, id, rowVersion int64, company models.Company) (*models.Company, error) {
	q := url.Values{}
	q.Set("companyId", fmt.Sprint(id))
	q.Set("rowVersion", fmt.Sprint(rowVersion))
	data, err := s.client.do(ctx, http.MethodPut, "/Company/update", q, company)
	if err != nil {
		return nil, err
	}
	return decode[models.Company](data)
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, id, rowVersion int64) error {
	q := url.Values{}
	q.Set("companyId", fmt.Sprint(id))
	q.Set("rowVersion", fmt.Sprint(rowVersion))
	_, err := s.client.do(ctx, http.MethodDelete, "/Company/delete", q, nil)
	return err
}
