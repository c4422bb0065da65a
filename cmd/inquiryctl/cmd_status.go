package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/inquirydesk/backend/internal/client"
	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/triage"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return lookupError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", sub.ID)
			fmt.Fprintf(out, "Name:     %s\n", sub.Name)
			fmt.Fprintf(out, "Email:    %s\n", deref(sub.Email))
			fmt.Fprintf(out, "Phone:    %s\n", deref(sub.Phone))
			fmt.Fprintf(out, "Received: %s\n", sub.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Status:   %s\n\n", label(sub.Status))
			fmt.Fprintln(out, sub.Message)
			return nil
		},
	}
}

func newSetStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <new|in_progress|completed>",
		Short: "Change the status of a submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			board := triage.NewBoard(opts.client())
			err = board.UpdateStatus(cmd.Context(), args[0], status)
			if triage.ReloadFailed(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "Status of %s set to %s, but the list could not be reloaded.\n", args[0], label(status))
				return nil
			}
			if err != nil {
				if isStatus(err, http.StatusNotFound) {
					return fmt.Errorf("submission %s not found", args[0])
				}
				return errors.New("could not update status")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status of %s set to %s.\n", args[0], label(status))
			printCounts(cmd.OutOrStdout(), board.Counts())
			return nil
		},
	}
}

func lookupError(err error) error {
	if isStatus(err, http.StatusNotFound) {
		return errors.New("submission not found")
	}
	return errors.New("could not load submission")
}

func isStatus(err error, code int) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func deref(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}
