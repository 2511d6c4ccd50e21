package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"listing/internal/domain/models"
	"listing/internal/query"
	"listing/internal/services"
)

func bindQueryFlags(cmd *cobra.Command, req *query.Request) {
	f := cmd.Flags()
	f.StringVarP(&req.Search, "search", "q", "", "free-text search over name and salon name")
	f.StringArrayVar(&req.In, "in", nil, "allowed value, field=value (repeatable; values of one field are OR-ed)")
	f.StringArrayVar(&req.Cmp, "cmp", nil, "numeric comparison, e.g. reviews>=10 (repeatable)")
	f.StringArrayVar(&req.Range, "range", nil, "inclusive numeric range, e.g. age=20..30 (repeatable)")
	f.StringVar(&req.Sort, "sort", "", "sort field, prefix with - for descending (default id)")
	f.StringVar(&req.Order, "order", "", "sort direction override: asc or desc")
	f.IntVar(&req.Page, "page", 1, "1-based page number")
	f.IntVar(&req.PageSize, "page-size", 0, "records per page; defaults to DEFAULT_PAGE_SIZE")
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		req    query.Request
		format string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print one filtered, sorted and paged view of the dataset",
		Example: `  listing query --source data.json --in salon_name="Salon A" --cmp "reviews>=10" --sort -reviews
  listing query --source s3://bucket/data.json.gz -q hana --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.ListingService{Store: st, Limits: opts.limits(), ProfileURL: opts.env.ProfileURLTemplate}
			res, err := svc.Query(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
			}
			switch strings.ToLower(format) {
			case "json":
				return writeJSON(out, res)
			case "table", "":
				return writeTable(out, res)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}

	bindQueryFlags(cmd, &req)
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

func writeJSON(w io.Writer, res services.ListingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		query.View
		Summary  string   `json:"summary"`
		Warnings []string `json:"warnings,omitempty"`
	}{res.View, res.Summary(), res.WarningMessages()})
}

var tableFields = []models.Field{
	models.FieldID, models.FieldSalonID, models.FieldName, models.FieldAge,
	models.FieldSalonName, models.FieldStyle, models.FieldScore, models.FieldReviews,
	models.FieldSKR, models.FieldHJ, models.FieldF, models.FieldNN, models.FieldNS,
}

func writeTable(w io.Writer, res services.ListingResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(tableFields))
	for i, f := range tableFields {
		headers[i] = strings.ToUpper(f.String())
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	if len(res.View.Items) == 0 {
		fmt.Fprintln(tw, "(no data found)")
	}
	cells := make([]string, len(tableFields))
	for _, r := range res.View.Items {
		for i, f := range tableFields {
			cells[i] = f.Text(r)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d/%d, %s\n", res.View.Page, res.View.PageCount, res.Summary())
	return err
}
