package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		word    string
		outcome string
		since   time.Duration
		stats   bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent lookups",
		Long:  "Lists recent lookups from the history database, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(limit, word, outcome, since, time.Now())
			if err != nil {
				return err
			}

			a, _, err := loadApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			repo, err := a.History()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats {
				counts, err := repo.CountByOutcome(cmd.Context(), f)
				if err != nil {
					return fmt.Errorf("count history: %w", err)
				}
				if asJSON {
					return json.NewEncoder(out).Encode(counts)
				}
				return printCounts(out, counts)
			}

			records, err := repo.List(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if asJSON {
				return json.NewEncoder(out).Encode(toHistoryJSON(records))
			}
			return printRecords(out, records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "maximum number of records")
	cmd.Flags().StringVar(&word, "word", "", "only lookups of this word (case-insensitive)")
	cmd.Flags().StringVar(&outcome, "outcome", "", "only lookups with this outcome (result, error, validation)")
	cmd.Flags().DurationVar(&since, "since", 0, "only lookups newer than this age, e.g. 24h")
	cmd.Flags().BoolVar(&stats, "stats", false, "print counts per outcome instead of records")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(newHistoryPruneCmd())
	return cmd
}

func newHistoryPruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old lookups",
		Long:  "Deletes history records older than --older-than. Meant for an external cron job.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			a, logger, err := loadApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			repo, err := a.History()
			if err != nil {
				return err
			}

			cutoff := time.Now().Add(-olderThan)
			deleted, err := repo.Prune(cmd.Context(), cutoff)
			if err != nil {
				return fmt.Errorf("prune history: %w", err)
			}

			logger.Info("history pruned",
				"deleted", deleted,
				"cutoff", cutoff,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", deleted)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age of the records to delete")
	return cmd
}

func buildFilter(limit int, word, outcome string, since time.Duration, now time.Time) (history.Filter, error) {
	f := history.Filter{Word: word, Limit: limit}

	if outcome != "" {
		o := domain.LookupOutcome(strings.ToUpper(strings.TrimSpace(outcome)))
		if !o.IsValid() {
			return history.Filter{}, fmt.Errorf("unknown outcome %q", outcome)
		}
		f.Outcome = o
	}
	if since < 0 {
		return history.Filter{}, fmt.Errorf("--since must not be negative")
	}
	if since > 0 {
		f.Since = now.Add(-since)
	}
	return f, nil
}

type historyJSON struct {
	ID         string    `json:"id"`
	Word       string    `json:"word"`
	Outcome    string    `json:"outcome"`
	Message    string    `json:"message,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func toHistoryJSON(records []domain.LookupRecord) []historyJSON {
	out := make([]historyJSON, len(records))
	for i, r := range records {
		out[i] = historyJSON{
			ID:         r.ID.String(),
			Word:       r.Word,
			Outcome:    r.Outcome.String(),
			Message:    r.Message,
			DurationMs: r.Duration.Milliseconds(),
			CreatedAt:  r.CreatedAt,
		}
	}
	return out
}

func printRecords(w io.Writer, records []domain.LookupRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tWORD\tOUTCOME\tDURATION\tMESSAGE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.Word,
			r.Outcome,
			r.Duration,
			r.Message,
		)
	}
	return tw.Flush()
}

func printCounts(w io.Writer, counts map[domain.LookupOutcome]int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTCOME\tCOUNT")
	total := 0
	for _, o := range []domain.LookupOutcome{domain.LookupOutcomeResult, domain.LookupOutcomeError, domain.LookupOutcomeValidation} {
		fmt.Fprintf(tw, "%s\t%d\n", o, counts[o])
		total += counts[o]
	}
	fmt.Fprintf(tw, "TOTAL\t%d\n", total)
	return tw.Flush()
}
