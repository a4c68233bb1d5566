package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
)

// catalogCmd prints the catalog grouped by vendor
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog grouped by vendor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	for _, g := range cat.VendorGroups() {
		fmt.Fprintf(w, "%s\n  %s\n", g.Name, g.Description)
		for _, p := range g.Products {
			fmt.Fprintf(w, "  [%s] %s  %s %s  ★%.1f (%d)\n",
				p.ID, p.Name, p.Price.StringFixed(2), config.Currency, p.Rating, p.ReviewCount)
			for _, o := range p.Options {
				req := ""
				if o.Required {
					req = "*"
				}
				choices := ""
				if len(o.Choices) > 0 {
					choices = ": " + strings.Join(o.Choices, " | ")
				}
				fmt.Fprintf(w, "      %s%s (%s)%s\n", o.ID, req, o.Type, choices)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Prompts:")
	for _, p := range cat.Prompts() {
		fmt.Fprintf(w, "  [%s] %s: %s\n", p.ID, p.Title, p.Query)
	}
}
