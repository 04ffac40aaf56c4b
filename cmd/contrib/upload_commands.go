package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"voice_courier/internal/domain"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "record <number> <blob-ref>",
		Short: "Attach audio to a sentence and upload it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber("number", args[0])
			if err != nil {
				return err
			}
			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				// The recording is stored before anything touches the network.
				sentence, recording, err := a.recordings.SubmitByNumber(cmd.Context(), account, number, args[1])
				if err != nil {
					return err
				}

				uploads, err := a.uploads()
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Sentence #%d saved; upload will be retried\n", sentence.SequenceNumber)
					return err
				}

				summary, err := uploads.UploadRecording(cmd.Context(), account, sentence, recording)
				if summary.Succeeded == 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "Sentence #%d uploaded\n", sentence.SequenceNumber)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Sentence #%d saved; upload will be retried\n", sentence.SequenceNumber)
					writeFailures(cmd.OutOrStdout(), summary.Failures)
				}
				return err
			})
		},
	}
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Upload every pending or failed recording of the active batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccount(cmd.Context(), func(a *app, account *domain.Account) error {
				if account.CurrentLanguage == "" {
					return domain.ErrNoActiveLanguage
				}

				uploads, err := a.uploads()
				if err != nil {
					return err
				}

				summary, err := uploads.SyncPending(cmd.Context(), account, account.CurrentLanguage)
				writeSummary(cmd.OutOrStdout(), summary)
				return err
			})
		},
	}
}

func writeSummary(w io.Writer, summary *domain.UploadSummary) {
	if summary.Attempted == 0 {
		fmt.Fprintln(w, "Nothing to upload")
		return
	}
	fmt.Fprintf(w, "Uploaded %d of %d recordings in %s\n",
		summary.Succeeded, summary.Attempted, summary.Duration.Round(time.Millisecond))
	writeFailures(w, summary.Failures)
}

func writeFailures(w io.Writer, failures []domain.ItemFailure) {
	if len(failures) == 0 {
		return
	}
	rows := make([][]string, 0, len(failures))
	for _, failure := range failures {
		rows = append(rows, []string{strconv.Itoa(failure.SequenceNumber), failure.Detail})
	}
	fmt.Fprint(w, renderTable(
		[]string{"#", "Failure"},
		rows,
		[]columnAlignment{alignRight, alignLeft},
	))
}
