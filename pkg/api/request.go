package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// RequestService covers the /Request endpoints. All mutating calls carry
// the request's current row version; the transition endpoints return the
// updated record when the backend supplies it and an empty body otherwise.
type RequestService struct {
	client *Client
}

// Requests returns the issuance-request service.
func (c *Client) Requests() *RequestService {
	return &RequestService{client: c}
}

// GetAll lists requests, optionally narrowed to one company and one
// status. companyID -1 and [models.RequestNone] mean unfiltered.
func (s *RequestService) GetAll(ctx context.Context, companyID int64, status models.RequestStatus) ([]models.Request, error) {
	q := url.Values{}
	q.Set("CompanyId", fmt.Sprint(companyID))
	q.Set("status", fmt.Sprint(int(status)))
	data, err := s.client.do(ctx, http.MethodGet, "/Request/GetAll", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Request](data)
}

// GetByID retrieves one request.
func (s *RequestService) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	data, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/Request/GetById/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Request](data)
}

// Create opens a new issuance request. The backend acknowledges with an
// empty body, so callers re-fetch to learn the new record.
func (s *RequestService) Create(ctx context.Context, dto models.RequestCreate) (*models.Request, error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Request/Create", nil, dto)
	if err != nil {
		return nil, err
	}
	return decode[models.Request](data)
}

// Update replaces a request's fields.
func (s *RequestService) Update(ctx context.Context, id int64, rowVersion string, dto models.RequestCreate) (*models.Request, error) {
	data, err := s.client.do(ctx, http.MethodPut, "/Request/Update", versionQuery("requestId", fmt.Sprint(id), rowVersion), dto)
	if err != nil {
		return nil, err
	}
	return decode[models.Request](data)
}

// Delete removes a request.
func (s *RequestService) Delete(ctx context.Context, id int64, rowVersion string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/Request/Delete", versionQuery("requestId", fmt.Sprint(id), rowVersion), nil)
	return err
}

// Authorize moves a registered request to Authorized.
func (s *RequestService) Authorize(ctx context.Context, id int64, rowVersion string) (*models.Request, error) {
	return s.transition(ctx, "/Request/Authorize", id, rowVersion)
}

// Deauthorize reverts an authorized request to Registered.
func (s *RequestService) Deauthorize(ctx context.Context, id int64, rowVersion string) (*models.Request, error) {
	return s.transition(ctx, "/Request/Deauthorize", id, rowVersion)
}

// Approve moves an authorized request to Approved, triggering token
// issuance.
func (s *RequestService) Approve(ctx context.Context, id int64, rowVersion string) (*models.Request, error) {
	return s.transition(ctx, "/Request/Approve", id, rowVersion)
}

func (s *RequestService) transition(ctx context.Context, path string, id int64, rowVersion string) (*models.Request, error) {
	data, err := s.client.do(ctx, http.MethodPost, path, versionQuery("requestId", fmt.Sprint(id), rowVersion), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Request](data)
}

func versionQuery(idParam, id, rowVersion string) url.Values {
	q := url.Values{}
	q.Set(idParam, id)
	q.Set("rowVersion", rowVersion)
	return q
}
