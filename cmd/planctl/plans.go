package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/output"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

type planRow struct {
	ID       string   `table:"ID"`
	Name     string   `table:"NAME"`
	Monthly  string   `table:"MONTHLY"`
	Yearly   string   `table:"YEARLY"`
	Discount string   `table:"DISCOUNT"`
	Features []string `table:"FEATURES"`
}

func newPlansCmd(a *app) *cobra.Command {
	var rulesFile, locale string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the normalized plan catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := pricing.DefaultFeatureRules()
			if rulesFile != "" {
				var err error
				if rules, err = pricing.LoadFeatureRules(rulesFile); err != nil {
					return err
				}
			}

			loader := catalog.NewLoader(a.api, catalog.WithNormalizer(pricing.NewNormalizer(rules)))
			state, err := loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load plans: %w", err)
			}
			if a.output != output.FormatTable {
				return a.write(cmd.OutOrStdout(), state.Plans)
			}

			f, err := pricing.NewFormatter(locale)
			if err != nil {
				return err
			}
			rows := make([]planRow, 0, len(state.Plans))
			for _, p := range state.Plans {
				rows = append(rows, planRow{
					ID:       p.ID,
					Name:     p.Name,
					Monthly:  f.Format(p.MonthlyPrice, p.Currency),
					Yearly:   f.Format(p.YearlyPrice, p.Currency),
					Discount: fmt.Sprintf("%d%%", p.YearlyDiscountPercentage),
					Features: p.Features,
				})
			}
			return a.write(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&rulesFile, "feature-rules", "", "YAML file with feature rules")
	cmd.Flags().StringVar(&locale, "locale", "de-DE", "locale for formatted prices")
	return cmd
}
