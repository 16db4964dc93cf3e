package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// ServiceTokenService covers the token service's /ServiceToken endpoints.
// Every mutation here acknowledges with an empty body, so reconciliation
// is always a re-fetch.
type ServiceTokenService struct {
	client *Client
}

// ServiceTokens returns the service-token service.
func (c *Client) ServiceTokens() *ServiceTokenService {
	return &ServiceTokenService{client: c}
}

// InvestorTokens lists the tokens held by one investor.
func (s *ServiceTokenService) InvestorTokens(ctx context.Context, publicKey string) ([]models.MarketToken, error) {
	q := url.Values{}
	q.Set("investorPublicKey", publicKey)
	data, err := s.client.do(ctx, http.MethodGet, "/ServiceToken/GetInvestorServiceTokens", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.MarketToken](data)
}

// PrimaryMarket lists unsold tokens, optionally narrowed by company and
// request. -1 means unfiltered.
func (s *ServiceTokenService) PrimaryMarket(ctx context.Context, companyID, requestID int64) ([]models.MarketToken, error) {
	data, err := s.client.do(ctx, http.MethodGet, "/ServiceToken/GetPrimaryMarketServiceTokens", marketQuery(companyID, requestID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.MarketToken](data)
}

// SecondaryMarket lists tokens other investors marked for resale.
func (s *ServiceTokenService) SecondaryMarket(ctx context.Context, publicKey string, companyID, requestID int64) ([]models.MarketToken, error) {
	q := marketQuery(companyID, requestID)
	q.Set("investorPublicKey", publicKey)
	data, err := s.client.do(ctx, http.MethodGet, "/ServiceToken/GetSecondaryMarketServiceTokens", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.MarketToken](data)
}

// BuyPrimary purchases a token from the issuing company.
func (s *ServiceTokenService) BuyPrimary(ctx context.Context, id string, rowVersion int64, publicKey string) error {
	q := versionQuery("serviceTokenId", id, fmt.Sprint(rowVersion))
	q.Set("investorPublicKey", publicKey)
	_, err := s.client.do(ctx, http.MethodPost, "/ServiceToken/BuyPrimaryServiceToken", q, nil)
	return err
}

// MarkForResale lists an owned token on the secondary market.
func (s *ServiceTokenService) MarkForResale(ctx context.Context, id string, rowVersion int64) error {
	_, err := s.client.do(ctx, http.MethodPost, "/ServiceToken/MarkServiceTokenForResell", versionQuery("serviceTokenId", id, fmt.Sprint(rowVersion)), nil)
	return err
}

// CancelResale withdraws a token from the secondary market.
func (s *ServiceTokenService) CancelResale(ctx context.Context, id string, rowVersion int64) error {
	_, err := s.client.do(ctx, http.MethodPost, "/ServiceToken/CancelReselling", versionQuery("serviceTokenId", id, fmt.Sprint(rowVersion)), nil)
	return err
}

// BuySecondary purchases a resale token from another investor.
func (s *ServiceTokenService) BuySecondary(ctx context.Context, id string, rowVersion int64, newPublicKey string) error {
	q := versionQuery("serviceTokenId", id, fmt.Sprint(rowVersion))
	q.Set("newInvestorPublicKey", newPublicKey)
	_, err := s.client.do(ctx, http.MethodPost, "/ServiceToken/BuySecondaryServiceToken", q, nil)
	return err
}

func marketQuery(companyID, requestID int64) url.Values {
	q := url.Values{}
	q.Set("companyId", fmt.Sprint(companyID))
	q.Set("requestId", fmt.Sprint(requestID))
	return q
}
