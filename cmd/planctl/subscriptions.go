package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/broker"
	"github.com/dmitrymomot/storefront/pkg/output"
)

type sessionRow struct {
	ID            string `table:"Session"`
	Status        string `table:"Status"`
	PaymentStatus string `table:"Payment"`
	Amount        string `table:"Amount"`
	Customer      string `table:"Customer"`
	Email         string `table:"Email"`
}

func newSubscriptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Manage subscriptions",
	}
	cmd.AddCommand(newSubscriptionsCancelCmd(a))
	return cmd
}

func newSubscriptionsCancelCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <subscription-id>",
		Short: "Cancel a subscription at the payment provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Cancel subscription %q? [y/N]: ", id)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Scan()
				if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := broker.New(a.api, nil).CancelSubscription(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %q canceled.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect checkout sessions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a checkout session with its customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := a.api.CheckoutSession(cmd.Context(), args[0])
			if err != nil {
				if backend.IsNotFound(err) {
					return fmt.Errorf("checkout session %q not found", args[0])
				}
				return fmt.Errorf("failed to load checkout session: %w", err)
			}
			if a.output != output.FormatTable {
				return a.write(cmd.OutOrStdout(), details)
			}
			return a.write(cmd.OutOrStdout(), sessionRow{
				ID:            details.Session.ID,
				Status:        details.Session.Status,
				PaymentStatus: details.Session.PaymentStatus,
				Amount:        fmt.Sprintf("%s %s", decimal.New(details.Session.AmountTotal, -2).StringFixed(2), details.Session.Currency),
				Customer:      details.User.Name,
				Email:         details.User.Email,
			})
		},
	})
	return cmd
}
