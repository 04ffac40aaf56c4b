package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"voice_courier/internal/domain"
	"voice_courier/internal/service"
)

func newSetupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setup <language> [count]",
		Short: "Fetch a fresh batch of sentences for a language",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 0
			if len(args) == 2 {
				n, err := parseNumber("count", args[1])
				if err != nil {
					return err
				}
				count = n
			}

			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				batch, err := a.tracker.Assign(cmd.Context(), account, args[0], count)
				if err != nil {
					return err
				}
				if batch.Exhausted() {
					fmt.Fprintf(cmd.OutOrStdout(), "No new sentences available for %s\n", args[0])
					return nil
				}

				rows := make([][]string, 0, len(batch.Sentences))
				for _, sentence := range batch.Sentences {
					rows = append(rows, []string{strconv.Itoa(sentence.SequenceNumber), sentence.Text})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d of %d requested sentences\n", len(batch.Sentences), batch.Requested)
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Sentence"},
					rows,
					[]columnAlignment{alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newSentencesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sentences",
		Short: "List the active batch with recording status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				items, err := a.recordings.Progress(cmd.Context(), account)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No active sentences; run `contrib setup <language>`")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Sentence", "Status", "Detail"},
					buildProgressRows(items),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newSkipCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "skip <number>",
		Short: "Skip a sentence of the active batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber("number", args[0])
			if err != nil {
				return err
			}
			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				sentence, err := a.recordings.SkipByNumber(cmd.Context(), account, number)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped sentence #%d\n", sentence.SequenceNumber)
				return nil
			})
		},
	}
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize progress on the active batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				stats, err := a.recordings.Stats(cmd.Context(), account)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Account %s, language %s\n", account.AccountID, account.CurrentLanguage)
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"Metric", "Count"},
					buildStatsRows(stats),
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func buildProgressRows(items []service.ProgressItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		status := string(item.Status)
		if item.Sentence.Status == domain.SentenceSkipped {
			status = string(domain.SentenceSkipped)
		}
		rows = append(rows, []string{
			strconv.Itoa(item.Sentence.SequenceNumber),
			item.Sentence.Text,
			status,
			item.Detail,
		})
	}
	return rows
}

func buildStatsRows(stats *domain.RecordingStats) [][]string {
	return [][]string{
		{"Sentences", strconv.Itoa(stats.Sentences)},
		{"Recorded", strconv.Itoa(stats.Recorded)},
		{"Pending", strconv.Itoa(stats.Pending)},
		{"Uploaded", strconv.Itoa(stats.Uploaded)},
		{"Failed", strconv.Itoa(stats.Failed)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
	}
}

func parseNumber(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, &domain.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a positive number", value)}
	}
	return n, nil
}
