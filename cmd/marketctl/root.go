package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tokenmart "github.com/tokenmart/tokenmart.go"
	"github.com/tokenmart/tokenmart.go/pkg/api"
	"github.com/tokenmart/tokenmart.go/pkg/session"
)

const (
	envAPIURL      = "TOKENMART_API_URL"
	envTokenAPIURL = "TOKENMART_TOKEN_API_URL"
)

// app carries the wiring shared by all subcommands.
type app struct {
	log      zerolog.Logger
	apiURL   string
	tokenURL string

	sess   *session.Session
	client *api.Client
	tokens *api.Client
	center *tokenmart.Center
	gate   *tokenmart.Gate
}

func newRootCommand(log zerolog.Logger) *cobra.Command {
	a := &app{log: log}

	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Terminal client for the TokenMart marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.flushNotifications()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", os.Getenv(envAPIURL), "base URL of the marketplace API")
	root.PersistentFlags().StringVar(&a.tokenURL, "token-api-url", os.Getenv(envTokenAPIURL), "base URL of the service-token API (defaults to --api-url)")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newCompaniesCommand(a),
		newRequestsCommand(a),
		newProductsCommand(a),
		newTokensCommand(a),
	)
	return root
}

func (a *app) setup() error {
	if a.apiURL == "" {
		return fmt.Errorf("no API URL: pass --api-url or set %s", envAPIURL)
	}
	if a.tokenURL == "" {
		a.tokenURL = a.apiURL
	}

	store, err := session.DefaultFileStore()
	if err != nil {
		return err
	}
	a.sess = session.New(store, a.log)
	a.sess.Hydrate()

	a.center = tokenmart.NewCenter(tokenmart.DefaultCapacity)
	a.gate = tokenmart.NewGate(a.promptConfirm)

	onNotFound := func(method, path string, apiErr *api.Error) {
		// The application-wide not-found banner.
		msg := apiErr.ServerMessage()
		if msg == "" {
			msg = "Not found."
		}
		fmt.Fprintln(os.Stderr, "! "+msg)
	}

	a.client = api.NewClient(a.apiURL,
		api.WithLogger(a.log),
		api.WithNotFoundHandler(onNotFound),
	)
	a.tokens = api.NewClient(a.tokenURL,
		api.WithLogger(a.log),
		api.WithNotFoundHandler(onNotFound),
	)
	if token := a.sess.Token(); token != "" {
		a.client.SetAuthToken(token)
		a.tokens.SetAuthToken(token)
	}
	return nil
}

// promptConfirm renders the confirmation gate as a terminal prompt and
// resolves it from the answer.
func (a *app) promptConfirm(opts tokenmart.ConfirmOptions) {
	fmt.Printf("%s\n%s [%s/%s]: ", opts.Title, opts.Message, opts.ConfirmText, opts.CancelText)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		a.gate.Dismiss()
		return
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	a.gate.Close(answer == "y" || answer == "yes")
}

func (a *app) flushNotifications() {
	for _, n := range a.center.Active() {
		prefix := "•"
		switch n.Severity {
		case tokenmart.SeverityError:
			prefix = "✗"
		case tokenmart.SeveritySuccess:
			prefix = "✓"
		case tokenmart.SeverityWarning:
			prefix = "!"
		}
		fmt.Println(prefix, n.Message)
	}
	a.center.Clear()
}
