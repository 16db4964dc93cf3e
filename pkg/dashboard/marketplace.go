package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	tokenmart "github.com/tokenmart/tokenmart.go"
	"github.com/tokenmart/tokenmart.go/pkg/api"
	"github.com/tokenmart/tokenmart.go/pkg/models"
	"github.com/tokenmart/tokenmart.go/pkg/session"
)

// Marketplace is the investor's screen: the investor's own tokens, the
// primary market and the secondary market. Every mutation on the token
// service acknowledges with an empty body, so reconciliation is always a
// silent re-fetch of the affected tab.
type Marketplace struct {
	investor models.Investor
	notifier tokenmart.Notifier
	log      zerolog.Logger

	tokenAPI   *api.ServiceTokenService
	companyAPI *api.CompanyService

	owned      *tokenmart.Store[models.MarketToken]
	ownedFetch *tokenmart.ListFetcher[models.MarketToken]
	ownedMut   *tokenmart.Mutator[models.MarketToken]

	primary      *tokenmart.Store[models.MarketToken]
	primaryFetch *tokenmart.ListFetcher[models.MarketToken]
	primaryMut   *tokenmart.Mutator[models.MarketToken]

	secondary      *tokenmart.Store[models.MarketToken]
	secondaryFetch *tokenmart.ListFetcher[models.MarketToken]
	secondaryMut   *tokenmart.Mutator[models.MarketToken]

	companies *tokenmart.Store[models.Company]
	compFetch *tokenmart.ListFetcher[models.Company]

	// Server-side market filters; -1 means unfiltered.
	companyFilter int64
	requestFilter int64
}

// NewMarketplace builds the screen for the investor currently logged in.
func NewMarketplace(sess *session.Session, client *api.Client, notifier tokenmart.Notifier, log zerolog.Logger) (*Marketplace, error) {
	investor := sess.Investor()
	if investor == nil {
		return nil, ErrNotLoggedIn
	}

	m := &Marketplace{
		investor:      *investor,
		notifier:      notifier,
		log:           log,
		tokenAPI:      client.ServiceTokens(),
		companyAPI:    client.Companies(),
		owned:         tokenmart.NewStore[models.MarketToken](),
		primary:       tokenmart.NewStore[models.MarketToken](),
		secondary:     tokenmart.NewStore[models.MarketToken](),
		companies:     tokenmart.NewStore[models.Company](),
		companyFilter: -1,
		requestFilter: -1,
	}

	m.ownedFetch = tokenmart.NewListFetcher(m.owned,
		func(ctx context.Context) ([]models.MarketToken, error) {
			return m.tokenAPI.InvestorTokens(ctx, m.investor.PublicKey)
		},
		tokenmart.WithNotifier[models.MarketToken](notifier),
		tokenmart.WithLogger[models.MarketToken](log),
		tokenmart.WithFailMessage[models.MarketToken]("Failed to load your service tokens."),
	)
	m.ownedMut = tokenmart.NewMutator(m.owned,
		func(ctx context.Context) { _ = m.ownedFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	m.primaryFetch = tokenmart.NewListFetcher(m.primary,
		func(ctx context.Context) ([]models.MarketToken, error) {
			return m.tokenAPI.PrimaryMarket(ctx, m.companyFilter, m.requestFilter)
		},
		tokenmart.WithNotifier[models.MarketToken](notifier),
		tokenmart.WithLogger[models.MarketToken](log),
		tokenmart.WithFailMessage[models.MarketToken]("Failed to load the primary market."),
	)
	m.primaryMut = tokenmart.NewMutator(m.primary,
		func(ctx context.Context) { _ = m.primaryFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	m.secondaryFetch = tokenmart.NewListFetcher(m.secondary,
		func(ctx context.Context) ([]models.MarketToken, error) {
			return m.tokenAPI.SecondaryMarket(ctx, m.investor.PublicKey, m.companyFilter, m.requestFilter)
		},
		tokenmart.WithNotifier[models.MarketToken](notifier),
		tokenmart.WithLogger[models.MarketToken](log),
		tokenmart.WithFailMessage[models.MarketToken]("Failed to load the secondary market."),
	)
	m.secondaryMut = tokenmart.NewMutator(m.secondary,
		func(ctx context.Context) { _ = m.secondaryFetch.Refresh(ctx, tokenmart.FetchSilent) },
		notifier, log)

	// The company dropdown is background data; its failures stay quiet.
	m.compFetch = tokenmart.NewListFetcher(m.companies,
		func(ctx context.Context) ([]models.Company, error) {
			return m.companyAPI.GetAll(ctx, 0, 500, "")
		},
		tokenmart.WithLogger[models.Company](log),
	)

	return m, nil
}

// Load fetches the owned-tokens tab and the company dropdown. Market tabs
// load lazily on first switch.
func (m *Marketplace) Load(ctx context.Context) {
	_ = m.compFetch.Refresh(ctx, tokenmart.FetchSilent)
	_ = m.ownedFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// Investor returns the identity the screen was built for.
func (m *Marketplace) Investor() models.Investor { return m.investor }

// Companies returns the dropdown contents.
func (m *Marketplace) Companies() []models.Company { return m.companies.All() }

// OwnedTokens returns the investor's tokens.
func (m *Marketplace) OwnedTokens() []models.MarketToken { return m.owned.All() }

// PrimaryTokens returns the primary-market rows.
func (m *Marketplace) PrimaryTokens() []models.MarketToken { return m.primary.All() }

// SecondaryTokens returns the secondary-market rows.
func (m *Marketplace) SecondaryTokens() []models.MarketToken { return m.secondary.All() }

// Loading reports whether any tab is fetching.
func (m *Marketplace) Loading() bool {
	return m.ownedFetch.Loading() || m.primaryFetch.Loading() || m.secondaryFetch.Loading()
}

// RefreshOwned re-fetches the owned-tokens tab.
func (m *Marketplace) RefreshOwned(ctx context.Context) {
	_ = m.ownedFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// RefreshPrimary re-fetches the primary market.
func (m *Marketplace) RefreshPrimary(ctx context.Context) {
	_ = m.primaryFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// RefreshSecondary re-fetches the secondary market.
func (m *Marketplace) RefreshSecondary(ctx context.Context) {
	_ = m.secondaryFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// SetMarketFilters narrows both market tabs by company and request
// (-1 clears) and re-fetches them.
func (m *Marketplace) SetMarketFilters(ctx context.Context, companyID, requestID int64) {
	m.companyFilter = companyID
	m.requestFilter = requestID
	_ = m.primaryFetch.Refresh(ctx, tokenmart.FetchVisible)
	_ = m.secondaryFetch.Refresh(ctx, tokenmart.FetchVisible)
}

// BuyPrimary purchases a token from the primary market, carrying the row
// version currently held in the store.
func (m *Marketplace) BuyPrimary(ctx context.Context, tokenID string) error {
	rec, ok := m.primary.Get(tokenID)
	if !ok {
		return ErrUnknownRecord
	}
	err := m.primaryMut.Apply(ctx, "Failed to buy service token.", func(ctx context.Context) (*models.MarketToken, error) {
		return nil, m.tokenAPI.BuyPrimary(ctx, rec.ID, rec.RowVersion, m.investor.PublicKey)
	})
	if err == nil {
		_ = m.ownedFetch.Refresh(ctx, tokenmart.FetchSilent)
	}
	return err
}

// MarkForResale lists an owned token on the secondary market.
func (m *Marketplace) MarkForResale(ctx context.Context, tokenID string) error {
	rec, ok := m.owned.Get(tokenID)
	if !ok {
		return ErrUnknownRecord
	}
	return m.ownedMut.Apply(ctx, "Failed to mark token for resale.", func(ctx context.Context) (*models.MarketToken, error) {
		return nil, m.tokenAPI.MarkForResale(ctx, rec.ID, rec.RowVersion)
	})
}

// CancelResale withdraws an owned token from the secondary market.
func (m *Marketplace) CancelResale(ctx context.Context, tokenID string) error {
	rec, ok := m.owned.Get(tokenID)
	if !ok {
		return ErrUnknownRecord
	}
	return m.ownedMut.Apply(ctx, "Failed to cancel reselling.", func(ctx context.Context) (*models.MarketToken, error) {
		return nil, m.tokenAPI.CancelResale(ctx, rec.ID, rec.RowVersion)
	})
}

// BuySecondary purchases a resale token from another investor.
func (m *Marketplace) BuySecondary(ctx context.Context, tokenID string) error {
	rec, ok := m.secondary.Get(tokenID)
	if !ok {
		return ErrUnknownRecord
	}
	err := m.secondaryMut.Apply(ctx, "Failed to buy service token.", func(ctx context.Context) (*models.MarketToken, error) {
		return nil, m.tokenAPI.BuySecondary(ctx, rec.ID, rec.RowVersion, m.investor.PublicKey)
	})
	if err == nil {
		_ = m.ownedFetch.Refresh(ctx, tokenmart.FetchSilent)
	}
	return err
}
