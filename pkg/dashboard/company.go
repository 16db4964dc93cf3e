package dashboard

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	tokenmart "github.com/tokenmart/tokenmart.go"
	"github.com/tokenmart/tokenmart.go/pkg/api"
	"github.com/tokenmart/tokenmart.go/pkg/models"
	"github.com/tokenmart/tokenmart.go/pkg/session"
)

const defaultProductTake = 200

// Company is the issuing company's dashboard: the company's issuance
// requests on one tab and its products on the other.
type Company struct {
	company  models.Company
	notifier tokenmart.Notifier
	gate     *tokenmart.Gate
	log      zerolog.Logger

	requestAPI *api.RequestService
	productAPI *api.ProductService

	requests     *tokenmart.Store[models.Request]
	requestFetch *tokenmart.ListFetcher[models.Request]
	requestMut   *tokenmart.Mutator[models.Request]
	statusFilter models.RequestStatus

	products      *tokenmart.Store[models.Product]
	productFetch  *tokenmart.ListFetcher[models.Product]
	productMut    *tokenmart.Mutator[models.Product]
	productSearch string
	productSkip   int
	productTake   int
}

// NewCompany builds the dashboard for the company currently logged in.
func NewCompany(sess *session.Session, client *api.Client, notifier tokenmart.Notifier, gate *tokenmart.Gate, log zerolog.Logger) (*Company, error) {
	company := sess.Company()
	if company == nil {
		return nil, ErrNotLoggedIn
	}

	d := &Company{
		company:     *company,
		notifier:    notifier,
		gate:        gate,
		log:         log,
		requestAPI:  client.Requests(),
		productAPI:  client.Products(),
		requests:    tokenmart.NewStore[models.Request](),
		products:    tokenmart.NewStore[models.Product](),
		productTake: defaultProductTake,
	}

	d.requestFetch = tokenmart.NewListFetcher(d.requests,
		func(ctx context.Context) ([]models.Request, error) {
			return d.requestAPI.GetAll(ctx, d.company.ID, models.RequestNone)
		},
		tokenmart.WithNotifier[models.Request](notifier),
		tokenmart.WithLogger[models.Request](log),
		tokenmart.WithFailMessage[models.Request]("Failed to load requests."),
	)
	d.requestMut = tokenmart.NewMutator(d.requests,
		func(ctx context.Context) { _ = d.requestFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	d.productFetch = tokenmart.NewListFetcher(d.products,
		func(ctx context.Context) ([]models.Product, error) {
			return d.productAPI.GetAll(ctx, d.productSkip, d.productTake, d.productSearch)
		},
		tokenmart.WithNotifier[models.Product](notifier),
		tokenmart.WithLogger[models.Product](log),
		tokenmart.WithFailMessage[models.Product]("Failed to load products."),
	)
	d.productMut = tokenmart.NewMutator(d.products,
		func(ctx context.Context) { _ = d.productFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	return d, nil
}

// Load performs the initial visible fetch of both tabs.
func (d *Company) Load(ctx context.Context) {
	_ = d.requestFetch.Refresh(ctx, tokenmart.FetchVisible)
	_ = d.productFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// Company returns the identity the dashboard was built for.
func (d *Company) Company() models.Company { return d.company }

// RequestsLoading reports whether the requests tab is fetching.
func (d *Company) RequestsLoading() bool { return d.requestFetch.Loading() }

// ProductsLoading reports whether the products tab is fetching.
func (d *Company) ProductsLoading() bool { return d.productFetch.Loading() }

// SetStatusFilter narrows the visible requests to one lifecycle state.
// [models.RequestNone] clears the filter; the view is re-derived from the
// store without a re-fetch.
func (d *Company) SetStatusFilter(status models.RequestStatus) {
	d.statusFilter = status
}

// VisibleRequests derives the requests tab's rows from the store and the
// current filter.
func (d *Company) VisibleRequests() []models.Request {
	return tokenmart.Filter(d.requests.All(),
		tokenmart.Equal(func(r models.Request) models.RequestStatus { return r.Status }, d.statusFilter, models.RequestNone),
	)
}

// SelectRequest marks a request as the detail selection.
func (d *Company) SelectRequest(id int64) error {
	if err := d.requests.Select(strconv.FormatInt(id, 10)); err != nil {
		return ErrUnknownRecord
	}
	return nil
}

// SelectedRequest returns the detail selection, if any.
func (d *Company) SelectedRequest() (models.Request, bool) {
	return d.requests.Selected()
}

// CreateRequest opens a new issuance request for one of the company's
// products.
func (d *Company) CreateRequest(ctx context.Context, dto models.RequestCreate) error {
	dto.CompanyID = d.company.ID
	return d.requestMut.Apply(ctx, "Failed to create request.", func(ctx context.Context) (*models.Request, error) {
		return d.requestAPI.Create(ctx, dto)
	})
}

// UpdateRequest rewrites a request, carrying the row version currently
// held in the store.
func (d *Company) UpdateRequest(ctx context.Context, id int64, dto models.RequestCreate) error {
	rec, ok := d.requests.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	dto.CompanyID = d.company.ID
	return d.requestMut.Apply(ctx, "Failed to update request.", func(ctx context.Context) (*models.Request, error) {
		return d.requestAPI.Update(ctx, rec.ID, rec.RowVersion, dto)
	})
}

// DeleteRequest removes a request after user confirmation.
func (d *Company) DeleteRequest(ctx context.Context, id int64) error {
	rec, ok := d.requests.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	if !d.gate.Confirm(ctx, tokenmart.ConfirmOptions{
		Title:       "Delete request",
		Message:     "Delete this issuance request? This cannot be undone.",
		ConfirmText: "Delete",
		Kind:        tokenmart.DialogDanger,
	}) {
		return nil
	}
	return d.requestMut.Delete(ctx, rec.Key(), "Failed to delete request.", func(ctx context.Context) error {
		return d.requestAPI.Delete(ctx, rec.ID, rec.RowVersion)
	})
}

// AuthorizeRequest moves a registered request to Authorized.
func (d *Company) AuthorizeRequest(ctx context.Context, id int64) error {
	return d.transitionRequest(ctx, id, "Failed to authorize request.", d.requestAPI.Authorize)
}

// DeauthorizeRequest reverts an authorized request to Registered.
func (d *Company) DeauthorizeRequest(ctx context.Context, id int64) error {
	return d.transitionRequest(ctx, id, "Failed to deauthorize request.", d.requestAPI.Deauthorize)
}

func (d *Company) transitionRequest(ctx context.Context, id int64, failMsg string, call func(context.Context, int64, string) (*models.Request, error)) error {
	rec, ok := d.requests.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	return d.requestMut.Apply(ctx, failMsg, func(ctx context.Context) (*models.Request, error) {
		return call(ctx, rec.ID, rec.RowVersion)
	})
}

// SetProductQuery updates the products tab's server-side query and
// re-fetches. Search is free text; skip/take page through the list.
func (d *Company) SetProductQuery(ctx context.Context, search string, skip, take int) {
	d.productSearch = search
	d.productSkip = skip
	if take > 0 {
		d.productTake = take
	}
	_ = d.productFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// VisibleProducts derives the products tab's rows. The list endpoint has
// no owning-company filter, so ownership is filtered client-side.
func (d *Company) VisibleProducts() []models.Product {
	return tokenmart.Filter(d.products.All(),
		tokenmart.Equal(func(p models.Product) int64 { return p.CompanyID }, d.company.ID, 0),
	)
}

// SelectProduct marks a product as the detail selection.
func (d *Company) SelectProduct(id int64) error {
	if err := d.products.Select(strconv.FormatInt(id, 10)); err != nil {
		return ErrUnknownRecord
	}
	return nil
}

// SelectedProduct returns the detail selection, if any.
func (d *Company) SelectedProduct() (models.Product, bool) {
	return d.products.Selected()
}

// CreateProduct registers a new product for the company.
func (d *Company) CreateProduct(ctx context.Context, product models.Product) error {
	product.CompanyID = d.company.ID
	return d.productMut.Apply(ctx, "Failed to create product.", func(ctx context.Context) (*models.Product, error) {
		return d.productAPI.Create(ctx, product)
	})
}

// UpdateProduct rewrites a product, carrying the stored row version.
func (d *Company) UpdateProduct(ctx context.Context, id int64, product models.Product) error {
	rec, ok := d.products.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	product.CompanyID = d.company.ID
	return d.productMut.Apply(ctx, "Failed to update product.", func(ctx context.Context) (*models.Product, error) {
		return d.productAPI.Update(ctx, rec.ID, rec.RowVersion, product)
	})
}

// DeleteProduct removes a product after user confirmation.
func (d *Company) DeleteProduct(ctx context.Context, id int64) error {
	rec, ok := d.products.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	if !d.gate.Confirm(ctx, tokenmart.ConfirmOptions{
		Title:       "Delete product",
		Message:     "Delete this product? This cannot be undone.",
		ConfirmText: "Delete",
		Kind:        tokenmart.DialogDanger,
	}) {
		return nil
	}
	return d.productMut.Delete(ctx, rec.Key(), "Failed to delete product.", func(ctx context.Context) error {
		return d.productAPI.Delete(ctx, rec.ID, rec.RowVersion)
	})
}
