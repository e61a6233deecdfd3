package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/broker"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var userID, customerID string

	cmd := &cobra.Command{
		Use:   "checkout <price-id>",
		Short: "Start a hosted checkout session for a price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := broker.New(a.api, nil).CreateCheckoutSession(cmd.Context(), args[0], userID, customerID)
			if err != nil {
				return err
			}
			if session.Completed() {
				fmt.Fprintln(cmd.OutOrStdout(), "Checkout completed without a hosted page.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "backend user id to attach the subscription to")
	cmd.Flags().StringVar(&customerID, "customer-id", "", "payment provider customer id")
	return cmd
}
