package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inquirydesk/backend/internal/intake"
	"github.com/inquirydesk/backend/internal/model"
)

func newSubmitCmd(opts *globalOptions) *cobra.Command {
	var name, phone, email, message string
	var agreed bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact form submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := intake.NewForm(opts.client())
			form.Name = name
			form.Phone = phone
			form.Email = email
			form.Message = message
			form.Agreed = agreed

			sub, err := form.Submit(cmd.Context())
			if errors.Is(err, model.ErrConsentRequired) {
				return errors.New("consent is required: pass --agree to accept the privacy policy")
			}
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("invalid submission: %s", verr.Reason)
			}
			if err != nil {
				return errors.New("could not send your inquiry, please try again")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Thank you. Your inquiry was received (id %s).\n", sub.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&message, "message", "", "inquiry text (required)")
	cmd.Flags().BoolVar(&agreed, "agree", false, "agree to the collection of personal information")
	return cmd
}

func newPrivacyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "privacy",
		Short: "Print the personal-information notice that --agree accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.client().PrivacyNotice(cmd.Context())
			if err != nil {
				return errors.New("could not load the privacy notice")
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
