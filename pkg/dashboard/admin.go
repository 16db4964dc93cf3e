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

const defaultCompanyTake = 50

// Admin is the back-office dashboard: registered companies on one tab and
// issuance requests awaiting approval on the other.
type Admin struct {
	admin    models.AdminUser
	notifier tokenmart.Notifier
	gate     *tokenmart.Gate
	log      zerolog.Logger

	companyAPI *api.CompanyService
	requestAPI *api.RequestService

	companies     *tokenmart.Store[models.Company]
	companyFetch  *tokenmart.ListFetcher[models.Company]
	companyMut    *tokenmart.Mutator[models.Company]
	companySearch string
	companySkip   int
	companyTake   int
	statusFilter  models.CompanyStatus
	hasStatus     bool

	requests     *tokenmart.Store[models.Request]
	requestFetch *tokenmart.ListFetcher[models.Request]
	requestMut   *tokenmart.Mutator[models.Request]
}

// NewAdmin builds the dashboard for the operator currently logged in.
func NewAdmin(sess *session.Session, client *api.Client, notifier tokenmart.Notifier, gate *tokenmart.Gate, log zerolog.Logger) (*Admin, error) {
	admin := sess.Admin()
	if admin == nil {
		return nil, ErrNotLoggedIn
	}

	d := &Admin{
		admin:       *admin,
		notifier:    notifier,
		gate:        gate,
		log:         log,
		companyAPI:  client.Companies(),
		requestAPI:  client.Requests(),
		companies:   tokenmart.NewStore[models.Company](),
		requests:    tokenmart.NewStore[models.Request](),
		companyTake: defaultCompanyTake,
	}

	d.companyFetch = tokenmart.NewListFetcher(d.companies,
		func(ctx context.Context) ([]models.Company, error) {
			return d.companyAPI.GetAll(ctx, d.companySkip, d.companyTake, d.companySearch)
		},
		tokenmart.WithNotifier[models.Company](notifier),
		tokenmart.WithLogger[models.Company](log),
		tokenmart.WithFailMessage[models.Company]("Failed to load companies."),
	)
	d.companyMut = tokenmart.NewMutator(d.companies,
		func(ctx context.Context) { _ = d.companyFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	d.requestFetch = tokenmart.NewListFetcher(d.requests,
		func(ctx context.Context) ([]models.Request, error) {
			return d.requestAPI.GetAll(ctx, -1, models.RequestAuthorized)
		},
		tokenmart.WithNotifier[models.Request](notifier),
		tokenmart.WithLogger[models.Request](log),
		tokenmart.WithFailMessage[models.Request]("Failed to load requests."),
	)
	d.requestMut = tokenmart.NewMutator(d.requests,
		func(ctx context.Context) { _ = d.requestFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	return d, nil
}

// Load performs the initial visible fetch of both tabs.
func (d *Admin) Load(ctx context.Context) {
	_ = d.companyFetch.Refresh(ctx, tokenmart.FetchVisible)
	_ = d.requestFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// CompaniesLoading reports whether the companies tab is fetching.
func (d *Admin) CompaniesLoading() bool { return d.companyFetch.Loading() }

// RequestsLoading reports whether the requests tab is fetching.
func (d *Admin) RequestsLoading() bool { return d.requestFetch.Loading() }

// SetCompanyQuery updates the companies tab's server-side query and
// re-fetches.
func (d *Admin) SetCompanyQuery(ctx context.Context, search string, skip, take int) {
	d.companySearch = search
	d.companySkip = skip
	if take > 0 {
		d.companyTake = take
	}
	_ = d.companyFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// SetCompanyStatusFilter narrows the visible companies to one lifecycle
// state, client-side.
func (d *Admin) SetCompanyStatusFilter(status models.CompanyStatus) {
	d.statusFilter = status
	d.hasStatus = true
}

// ClearCompanyFilters resets all client-side criteria; the view is
// re-derived from the current store contents without a re-fetch.
func (d *Admin) ClearCompanyFilters() {
	d.statusFilter = 0
	d.hasStatus = false
}

// VisibleCompanies derives the companies tab's rows from the store and
// the current filters.
func (d *Admin) VisibleCompanies() []models.Company {
	var byStatus tokenmart.Criterion[models.Company]
	if d.hasStatus {
		byStatus = func(c models.Company) bool { return c.Status == d.statusFilter }
	}
	return tokenmart.Filter(d.companies.All(), byStatus)
}

// SelectCompany marks a company as the detail selection.
func (d *Admin) SelectCompany(id int64) error {
	if err := d.companies.Select(strconv.FormatInt(id, 10)); err != nil {
		return ErrUnknownRecord
	}
	return nil
}

// SelectedCompany returns the detail selection, if any.
func (d *Admin) SelectedCompany() (models.Company, bool) {
	return d.companies.Selected()
}

// ApproveCompany activates a pending company, carrying the row version
// currently held in the store.
func (d *Admin) ApproveCompany(ctx context.Context, id int64) error {
	rec, ok := d.companies.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	return d.companyMut.Apply(ctx, "Failed to approve company.", func(ctx context.Context) (*models.Company, error) {
		return d.companyAPI.Approve(ctx, rec.ID, rec.RowVersion)
	})
}

// DeleteCompany removes a company after user confirmation.
func (d *Admin) DeleteCompany(ctx context.Context, id int64) error {
	rec, ok := d.companies.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	if !d.gate.Confirm(ctx, tokenmart.ConfirmOptions{
		Title:       "Delete company",
		Message:     "Delete " + rec.Name + " and all its data? This cannot be undone.",
		ConfirmText: "Delete",
		Kind:        tokenmart.DialogDanger,
	}) {
		return nil
	}
	return d.companyMut.Delete(ctx, rec.Key(), "Failed to delete company.", func(ctx context.Context) error {
		return d.companyAPI.Delete(ctx, rec.ID, rec.RowVersion)
	})
}

// PendingRequests returns the requests awaiting approval.
func (d *Admin) PendingRequests() []models.Request {
	return d.requests.All()
}

// ApproveRequest approves an authorized request, triggering token
// issuance.
func (d *Admin) ApproveRequest(ctx context.Context, id int64) error {
	rec, ok := d.requests.Get(strconv.FormatInt(id, 10))
	if !ok {
		return ErrUnknownRecord
	}
	return d.requestMut.Apply(ctx, "Failed to approve request.", func(ctx context.Context) (*models.Request, error) {
		return d.requestAPI.Approve(ctx, rec.ID, rec.RowVersion)
	})
}
