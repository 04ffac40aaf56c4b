package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("connectivity check failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify corpus credentials and blob source reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				credentials := "ok"
				if !a.client.ValidateCredentials(cmd.Context()) {
					credentials = "rejected or unreachable"
				}

				blobs := "ok"
				source, err := a.blobSource()
				if err == nil {
					checkCtx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Corpus.Timeout)
					err = source.Check(checkCtx)
					cancel()
				}
				if err != nil {
					blobs = err.Error()
				}

				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"Service", "Status"},
					[][]string{
						{"corpus", credentials},
						{"blobs (" + a.cfg.Blobs.Source + ")", blobs},
					},
					[]columnAlignment{alignLeft, alignLeft},
				))

				if credentials != "ok" || blobs != "ok" {
					return errCheckFailed
				}
				return nil
			})
		},
	}
}
