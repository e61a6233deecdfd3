package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/output"
)

type customerRow struct {
	ID         string    `table:"ID"`
	Name       string    `table:"NAME"`
	Email      string    `table:"EMAIL"`
	CustomerID string    `table:"CUSTOMER ID"`
	CreatedAt  time.Time `table:"CREATED"`
}

func toCustomerRow(c backend.Customer) customerRow {
	return customerRow{ID: c.ID, Name: c.Name, Email: c.Email, CustomerID: c.StripeCustomerID, CreatedAt: c.CreatedAt}
}

type customerDetailRow struct {
	ID             string    `table:"ID"`
	Name           string    `table:"Name"`
	Email          string    `table:"Email"`
	CustomerID     string    `table:"Customer ID"`
	Subscription   string    `table:"Subscription"`
	Status         string    `table:"Status"`
	Plan           string    `table:"Plan"`
	Price          string    `table:"Price"`
	CurrentEndDate time.Time `table:"Period end"`
}

func newCustomersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List, create and inspect customers",
	}
	cmd.AddCommand(newCustomersListCmd(a), newCustomersCreateCmd(a), newCustomersShowCmd(a))
	return cmd
}

func newCustomersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customers, err := a.api.ListCustomers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list customers: %w", err)
			}
			if a.output != output.FormatTable {
				return a.write(cmd.OutOrStdout(), customers)
			}
			rows := make([]customerRow, 0, len(customers))
			for _, c := range customers {
				rows = append(rows, toCustomerRow(c))
			}
			return a.write(cmd.OutOrStdout(), rows)
		},
	}
}

func newCustomersCreateCmd(a *app) *cobra.Command {
	var req backend.CreateCustomerRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customer, err := a.api.CreateCustomer(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
			if a.output != output.FormatTable {
				return a.write(cmd.OutOrStdout(), customer)
			}
			return a.write(cmd.OutOrStdout(), toCustomerRow(customer))
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&req.Email, "email", "", "customer email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCustomersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <customer-id>",
		Short: "Show a customer with the latest subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := a.api.CustomerDetails(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load customer: %w", err)
			}
			if a.output != output.FormatTable {
				return a.write(cmd.OutOrStdout(), details)
			}

			row := customerDetailRow{
				ID:         details.User.ID,
				Name:       details.User.Name,
				Email:      details.User.Email,
				CustomerID: details.User.StripeCustomerID,
			}
			if sub := details.Subscription; sub != nil {
				row.Subscription = sub.StripeSubscriptionID
				row.Status = sub.Status
				row.CurrentEndDate = sub.CurrentPeriodEnd
			}
			if plan := details.Plan; plan != nil {
				row.Plan = plan.Name
				row.Price = fmt.Sprintf("%s %s / %s", decimal.New(plan.Amount, -2).StringFixed(2), plan.Currency, plan.Interval)
			}
			return a.write(cmd.OutOrStdout(), row)
		},
	}
}
