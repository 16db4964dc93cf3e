package api

import (
	"context"
	"net/http"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// AdminService covers the back-office /User endpoints.
type AdminService struct {
	client *Client
}

// Admins returns the admin service.
func (c *Client) Admins() *AdminService {
	return &AdminService{client: c}
}

// Login authenticates a back-office operator.
func (s *AdminService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult[models.AdminUser], error) {
	data, err := s.client.do(ctx, http.MethodPost, "/User/Login", nil, creds)
	if err != nil {
		return nil, err
	}
	return decodeRequired[models.LoginResult[models.AdminUser]](data)
}
