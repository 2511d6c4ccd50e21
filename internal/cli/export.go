package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"listing/internal/query"
	"listing/internal/services"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		req   query.Request
		out   string
		title string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render one derived page as a PDF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.ListingService{Store: st, Limits: opts.limits()}
			res, err := svc.Query(req)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
			}

			pdf, filename, err := services.ExportService{Title: title, FontPath: opts.env.PDFFontPath}.RenderPDF(res.View)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", out, res.Summary())
			return nil
		},
	}

	bindQueryFlags(cmd, &req)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default listing-page-N.pdf)")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}
