package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenmart/tokenmart.go/pkg/dashboard"
	"github.com/tokenmart/tokenmart.go/pkg/models"
)

func newLoginCommand(a *app) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:       "login {company|investor|admin}",
		Short:     "Authenticate as one of the marketplace roles",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"company", "investor", "admin"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			creds := models.Credentials{UserName: user, Password: pass}

			switch args[0] {
			case "company":
				res, err := a.client.Companies().Login(ctx, creds)
				if err != nil {
					return err
				}
				company, err := a.client.Companies().GetByID(ctx, res.User.CompanyID)
				if err != nil {
					return err
				}
				a.sess.SetCompany(*company, res.Token)
				fmt.Println("Logged in as company", company.Name)
			case "investor":
				res, err := a.client.Investors().Login(ctx, creds)
				if err != nil {
					return err
				}
				a.sess.SetInvestor(res.User, res.Token)
				fmt.Println("Logged in as investor", res.User.UserName)
			case "admin":
				res, err := a.client.Admins().Login(ctx, creds)
				if err != nil {
					return err
				}
				a.sess.SetAdmin(res.User, res.Token)
				fmt.Println("Logged in as admin", res.User.UserName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&pass, "pass", "p", "", "password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out all roles and clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Clear()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newCompaniesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Back-office company administration",
	}

	var search string
	var skip, take int
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewAdmin(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.SetCompanyQuery(cmd.Context(), search, skip, take)
			for _, c := range d.VisibleCompanies() {
				fmt.Printf("%6d  %-10s  %s\n", c.ID, c.Status, c.Name)
			}
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "free-text search")
	list.Flags().IntVar(&skip, "skip", 0, "rows to skip")
	list.Flags().IntVar(&take, "take", 50, "rows to take")

	approve := &cobra.Command{
		Use:   "approve <company-id>",
		Short: "Activate a pending company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewAdmin(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.Load(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return d.ApproveCompany(cmd.Context(), id)
		},
	}

	del := &cobra.Command{
		Use:   "delete <company-id>",
		Short: "Delete a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewAdmin(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.Load(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return d.DeleteCompany(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, approve, del)
	return cmd
}

func newRequestsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Issuance-request operations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the logged-in company's requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewCompany(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.Load(cmd.Context())
			for _, r := range d.VisibleRequests() {
				fmt.Printf("%6d  %-12s  product %d\n", r.ID, r.Status, r.ProdID)
			}
			return nil
		},
	}

	var prodID int64
	var count int
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a new issuance request",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewCompany(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			return d.CreateRequest(cmd.Context(), models.RequestCreate{
				ProdID:            prodID,
				ServiceTokenCount: count,
			})
		},
	}
	create.Flags().Int64Var(&prodID, "product", 0, "product id")
	create.Flags().IntVar(&count, "count", 1, "number of tokens to issue")
	_ = create.MarkFlagRequired("product")

	authorize := companyRequestAction(a, "authorize", "Authorize a registered request",
		func(d *dashboard.Company, cmd *cobra.Command, id int64) error {
			return d.AuthorizeRequest(cmd.Context(), id)
		})
	deauthorize := companyRequestAction(a, "deauthorize", "Revert an authorized request",
		func(d *dashboard.Company, cmd *cobra.Command, id int64) error {
			return d.DeauthorizeRequest(cmd.Context(), id)
		})
	del := companyRequestAction(a, "delete", "Delete a request",
		func(d *dashboard.Company, cmd *cobra.Command, id int64) error {
			return d.DeleteRequest(cmd.Context(), id)
		})

	approve := &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve an authorized request (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewAdmin(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.Load(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return d.ApproveRequest(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, create, authorize, deauthorize, del, approve)
	return cmd
}

func companyRequestAction(a *app, use, short string, run func(*dashboard.Company, *cobra.Command, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <request-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewCompany(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.Load(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(d, cmd, id)
		},
	}
}

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Product operations for the logged-in company",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the company's products",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dashboard.NewCompany(a.sess, a.client, a.center, a.gate, a.log)
			if err != nil {
				return err
			}
			d.SetProductQuery(cmd.Context(), search, 0, 0)
			for _, p := range d.VisibleProducts() {
				fmt.Printf("%6d  %-24s  %8.2f  %s\n", p.ID, p.Name, p.Price, p.Schedule)
			}
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "free-text search")

	cmd.AddCommand(list)
	return cmd
}

func newTokensCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Service-token operations for the logged-in investor",
	}

	var market string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tokens (owned, primary or secondary market)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dashboard.NewMarketplace(a.sess, a.tokens, a.center, a.log)
			if err != nil {
				return err
			}
			var rows []models.MarketToken
			switch market {
			case "primary":
				m.RefreshPrimary(cmd.Context())
				rows = m.PrimaryTokens()
			case "secondary":
				m.RefreshSecondary(cmd.Context())
				rows = m.SecondaryTokens()
			default:
				m.Load(cmd.Context())
				rows = m.OwnedTokens()
			}
			for _, t := range rows {
				fmt.Printf("%-24s  %-10s  %4d  %s\n", t.ID, t.Status, t.Count, t.CompanyName)
			}
			return nil
		},
	}
	list.Flags().StringVar(&market, "market", "owned", "owned, primary or secondary")

	buy := &cobra.Command{
		Use:   "buy <token-id>",
		Short: "Buy a token from the primary or secondary market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dashboard.NewMarketplace(a.sess, a.tokens, a.center, a.log)
			if err != nil {
				return err
			}
			if market == "secondary" {
				m.RefreshSecondary(cmd.Context())
				return m.BuySecondary(cmd.Context(), args[0])
			}
			m.RefreshPrimary(cmd.Context())
			return m.BuyPrimary(cmd.Context(), args[0])
		},
	}
	buy.Flags().StringVar(&market, "market", "primary", "primary or secondary")

	resell := &cobra.Command{
		Use:   "resell <token-id>",
		Short: "Mark an owned token for resale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dashboard.NewMarketplace(a.sess, a.tokens, a.center, a.log)
			if err != nil {
				return err
			}
			m.Load(cmd.Context())
			return m.MarkForResale(cmd.Context(), args[0])
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel-resale <token-id>",
		Short: "Withdraw an owned token from the secondary market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dashboard.NewMarketplace(a.sess, a.tokens, a.center, a.log)
			if err != nil {
				return err
			}
			m.Load(cmd.Context())
			return m.CancelResale(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, buy, resell, cancel)
	return cmd
}

func parseID(s string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
