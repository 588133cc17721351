package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Govind-619/SlotPay/payments"
	"github.com/spf13/cobra"
)

func signCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Print the X-Razorpay-Signature for a webhook body",
		Long: `Compute the HMAC-SHA256 signature Razorpay would send for a webhook body.
The body is read from the file argument, or stdin when omitted. The secret
defaults to RAZORPAY_WEBHOOK_SECRET.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("RAZORPAY_WEBHOOK_SECRET")
			}
			if secret == "" {
				return errors.New("webhook secret is required (--secret or RAZORPAY_WEBHOOK_SECRET)")
			}

			var body []byte
			var err error
			if len(args) == 1 {
				body, err = os.ReadFile(args[0])
			} else {
				body, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), payments.Sign(body, secret))
			return nil
		},
	}

	cmd.Flags().StringVarP(&secret, "secret", "s", "", "webhook secret")

	return cmd
}
