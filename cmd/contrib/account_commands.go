package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voice_courier/internal/domain"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email, username, age, gender string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Register the contributor with the corpus service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contributorID, err := ctx.contributorID()
			if err != nil {
				return err
			}
			return ctx.withApp(cmd.Context(), func(a *app) error {
				demographics := domain.Demographics{Age: age, Gender: gender}
				account, err := a.accounts.Register(cmd.Context(), contributorID, email, username, demographics)
				switch {
				case errors.Is(err, domain.ErrAlreadyRegistered):
					fmt.Fprintf(cmd.OutOrStdout(), "Already registered as %s\n", account.AccountID)
					return nil
				case err != nil:
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s\n", account.Email, account.AccountID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the corpus account")
	cmd.Flags().StringVar(&username, "username", "", "Public username of the corpus account")
	cmd.Flags().StringVar(&age, "age", "", "Optional age bracket sent with uploads")
	cmd.Flags().StringVar(&gender, "gender", "", "Optional gender sent with uploads")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the contributor's corpus account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contributorID, err := ctx.contributorID()
			if err != nil {
				return err
			}
			return ctx.withApp(cmd.Context(), func(a *app) error {
				err := a.accounts.Logout(cmd.Context(), contributorID, force)
				if errors.Is(err, domain.ErrPendingUploads) {
					return fmt.Errorf("%w; run `contrib upload` first or pass --force", err)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Log out even when recordings are still waiting for upload")

	return cmd
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages the corpus service accepts scripted audio for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				languages, err := a.client.SupportedLanguages(cmd.Context())
				if err != nil {
					return err
				}
				if len(languages) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No languages available")
					return nil
				}

				rows := make([][]string, 0, len(languages))
				for _, lang := range languages {
					rows = append(rows, []string{lang.Code, lang.Name, yesNo(isConfigured(a.cfg.Languages, lang.Code))})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"Code", "Name", "Enabled"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newAudioStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audio-status <audio-id>",
		Short: "Show the processing state of an uploaded clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				status, err := a.client.GetAudioStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.AudioID, status.Status)
				if status.Detail != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", status.Detail)
				}
				return nil
			})
		},
	}
}

func isConfigured(languages map[string]string, code string) bool {
	_, ok := languages[code]
	return ok
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
