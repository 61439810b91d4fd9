package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/storage"
)

func newAuditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show calls answered by the proxy",
		Long: `Print the most recent interceptions recorded in the audit database.

The database is selected with --audit-db or GQLSEARCH_AUDIT_DB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.AuditDB == "" {
				return fail("no audit database configured: use --audit-db or GQLSEARCH_AUDIT_DB")
			}

			db, err := storage.NewSQLiteStorage(cfg.AuditDB)
			if err != nil {
				return fail("%v", err)
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			counts, err := db.CountByAction(ctx)
			if err != nil {
				return fail("%v", err)
			}
			rows, err := db.ListInterceptions(ctx, limit)
			if err != nil {
				return fail("%v", err)
			}

			out := cmd.OutOrStdout()
			actions := make([]string, 0, len(counts))
			for action := range counts {
				actions = append(actions, action)
			}
			sort.Strings(actions)
			for _, action := range actions {
				fmt.Fprintf(out, "%s: %d\n", action, counts[action])
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No interceptions recorded")
				return nil
			}
			fmt.Fprintln(out)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSESSION\tID\tACTION\tDETAIL\tDURATION\tOUTCOME")
			for _, in := range rows {
				session := in.SessionID
				if len(session) > 8 {
					session = session[:8]
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					in.CreatedAt.Format("2006-01-02 15:04:05"),
					session,
					in.RequestID,
					in.Action,
					in.Detail,
					in.Duration,
					in.Outcome,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of interceptions to show")

	return cmd
}
