package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// ProductService covers the /Product endpoints. The mutating endpoints
// acknowledge with empty bodies.
type ProductService struct {
	client *Client
}

// Products returns the product service.
func (c *Client) Products() *ProductService {
	return &ProductService{client: c}
}

// GetAll lists products with skip/take pagination and optional free-text
// search. The endpoint has no owning-company filter; screens that need one
// filter client-side.
func (s *ProductService) GetAll(ctx context.Context, skip, take int, search string) ([]models.Product, error) {
	data, err := s.client.do(ctx, http.MethodGet, "/Product/GetAll", listQuery(skip, take, search), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](data)
}

// GetByID retrieves one product.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	data, err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/Product/GetById/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Product](data)
}

// Create registers a new product.
func (s *ProductService) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	data, err := s.client.do(ctx, http.MethodPost, "/Product/Create", nil, product)
	if err != nil {
		return nil, err
	}
	return decode[models.Product](data)
}

// Update replaces a product's fields.
func (s *ProductService) Update(ctx context.Context, id, rowVersion int64, product models.Product) (*models.Product, error) {
	data, err := s.client.do(ctx, http.MethodPut, "/Product/Update", versionQuery("prodId", fmt.Sprint(id), fmt.Sprint(rowVersion)), product)
	if err != nil {
		return nil, err
	}
	return decode[models.Product](data)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id, rowVersion int64) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/Product/Delete", versionQuery("prodId", fmt.Sprint(id), fmt.Sprint(rowVersion)), nil)
	return err
}
