package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"listing/internal/domain/models"
	"listing/internal/services"
)

func newFacetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facets [field...]",
		Short: "Print the distinct values of fields with their record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.ListingService{Store: st}

			fields := args
			if len(fields) == 0 {
				for _, f := range models.Fields() {
					fields = append(fields, f.String())
				}
			}

			out := cmd.OutOrStdout()
			for _, name := range fields {
				values, err := svc.Facet(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%d)\n", name, len(values))
				for _, v := range values {
					fmt.Fprintf(out, "  %q\t%d\n", v.Value, v.Count)
				}
			}
			return nil
		},
	}
}
