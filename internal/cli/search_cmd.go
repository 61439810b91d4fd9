package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/searcher"
	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

func newSearchCmd() *cobra.Command {
	var (
		kind         string
		contextLines int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the schema file and print the report",
		Long: `Run one search_schema query against the configured schema file.

The query is a case-insensitive regular expression matched against each
schema line.

Examples:
  gqlsearch search patient
  gqlsearch search 'create.*' --type mutation
  gqlsearch search Appointment --type type --context 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := types.ParseKind(kind)
			if err != nil {
				return fail("%v", err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			srch, err := loadSearcher(cfg)
			if err != nil {
				return err
			}

			report, err := srch.Report(cmd.Context(), searcher.SearchRequest{
				Query:        args[0],
				Kind:         k,
				ContextLines: contextLines,
			})
			if err != nil {
				return fail("Search failed: %v", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report)
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(types.KindAny), fmt.Sprintf("Schema element type %v", types.KindStrings(types.AllKinds)))
	cmd.Flags().IntVar(&contextLines, "context", searcher.DefaultContextLines, "Lines of context around each match")

	return cmd
}
