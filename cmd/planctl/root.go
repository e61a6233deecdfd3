package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/output"
)

// app is the state shared by all commands once the root has run.
type app struct {
	backendURL string
	mock       bool
	format     string

	api    backend.API
	output output.Format
}

func (a *app) write(w io.Writer, data any) error {
	return output.New(a.output).Write(w, data)
}

// newRootCmd builds the command tree. A non-nil api replaces the backend
// selected by flags and environment.
func newRootCmd(api backend.API) *cobra.Command {
	a := &app{api: api}

	root := &cobra.Command{
		Use:   "planctl",
		Short: "Inspect plans and manage customers of the storefront backend",
		Long: `planctl talks to the same backend as the storefront. It lists the
normalized plan catalog, starts checkout sessions, and manages customers
and their subscriptions.

Defaults come from the environment (BACKEND_URL, USE_MOCK_BACKEND) and
can be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(a.format)
			if err != nil {
				return err
			}
			a.output = format

			if a.api != nil {
				return nil
			}
			cfg, err := config.Load[backend.Config]()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("backend-url") {
				cfg.BaseURL = a.backendURL
			}
			if cmd.Flags().Changed("mock") {
				cfg.UseMock = a.mock
			}
			a.api = backend.NewFromConfig(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.backendURL, "backend-url", "", "backend API base URL (default $BACKEND_URL)")
	root.PersistentFlags().BoolVar(&a.mock, "mock", false, "use the in-memory mock backend")
	root.PersistentFlags().StringVarP(&a.format, "output", "o", string(output.FormatTable), "output format: table, json, yaml")

	root.AddCommand(
		newPlansCmd(a),
		newCheckoutCmd(a),
		newCustomersCmd(a),
		newSubscriptionsCmd(a),
		newSessionsCmd(a),
	)
	return root
}
