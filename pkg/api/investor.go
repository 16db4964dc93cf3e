package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// InvestorService covers the /Investor endpoints.
type InvestorService struct {
	client *Client
}

// Investors returns the investor service.
func (c *Client) Investors() *InvestorService {
	return &InvestorService{client: c}
}

// Login authenticates an investor.
func (s *InvestorService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult[models.Investor], error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Investor/Login", nil, creds)
	if err != nil {
		return nil, err
	}
	return decodeRequired[models.LoginResult[models.Investor]](data)
}

// Register creates a new investor.
func (s *InvestorService) Register(ctx context.Context, dto models.InvestorCreate) (*models.Investor, error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Investor/create", nil, dto)
	if err != nil {
		return nil, err
	}
	return decode[models.Investor](data)
}

// GetAll lists investors with skip/take pagination and optional search.
func (s *InvestorService) GetAll(ctx context.Context, skip, take int, search string) ([]models.Investor, error) {
	data, err := s.client.do(ctx, http.MethodGet, "/Investor/GetAll", listQuery(skip, take, search), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Investor](data)
}

// Update replaces an investor's fields.
func (s *InvestorService) Update(ctx context.Context, id, rowVersion int64, investor models.Investor) (*models.Investor, error) {
	data, err := s.client.do(ctx, http.MethodPut, "/Investor/update", versionQuery("investorId", fmt.Sprint(id), fmt.Sprint(rowVersion)), investor)
	if err != nil {
		return nil, err
	}
	return decode[models.Investor](data)
}

// Approve activates a pending investor.
func (s *InvestorService) Approve(ctx context.Context, id, rowVersion int64) (*models.Investor, error) {
	data, err := s.client.do(ctx, http.MethodPatch, "/Investor/Approve", versionQuery("investorId", fmt.Sprint(id), fmt.Sprint(rowVersion)), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Investor](data)
}

// Delete removes an investor.
func (s *InvestorService) Delete(ctx context.Context, id, rowVersion int64) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/Investor/delete", versionQuery("investorId", fmt.Sprint(id), fmt.Sprint(rowVersion)), nil)
	return err
}
