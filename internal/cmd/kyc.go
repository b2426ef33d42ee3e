package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/vendora/internal/config"
	"github.com/AlexZinkM/vendora/internal/service"
)

var (
	kycReviewer string
	kycReason   string
	kycOut      string
)

var kycCmd = &cobra.Command{
	Use:   "kyc",
	Short: "Review business verification submissions",
}

var kycShowCmd = &cobra.Command{
	Use:   "show <email>",
	Short: "Show the latest submission of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := verificationService(cmd)
		if err != nil {
			return err
		}
		defer done()

		v, err := svc.PendingForEmail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:        %s\n", v.ID)
		fmt.Fprintf(out, "status:    %s\n", v.VerificationStatus)
		fmt.Fprintf(out, "uploaded:  %s\n", v.UploadedDocAt.Format(time.RFC3339))
		fmt.Fprintf(out, "id doc:    %s\n", v.IDDoc)
		fmt.Fprintf(out, "cac doc:   %s\n", v.CACDoc)
		if v.RejectionReason != "" {
			fmt.Fprintf(out, "reason:    %s\n", v.RejectionReason)
		}
		if v.VerifiedAt != nil {
			fmt.Fprintf(out, "reviewed:  %s by %s\n", v.VerifiedAt.Format(time.RFC3339), v.VerifiedBy)
		}
		return nil
	},
}

var kycApproveCmd = &cobra.Command{
	Use:   "approve <email>",
	Short: "Approve the pending submission of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return review(cmd, args[0], true)
	},
}

var kycRejectCmd = &cobra.Command{
	Use:   "reject <email>",
	Short: "Reject the pending submission of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return review(cmd, args[0], false)
	},
}

var kycOpenCmd = &cobra.Command{
	Use:   "open <verification-id> id|cac",
	Short: "Decrypt a submitted document to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := verificationService(cmd)
		if err != nil {
			return err
		}
		defer done()

		if err := config.PromptForDocumentKey(); err != nil {
			return err
		}

		name, mime, payload, err := svc.OpenDocument(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		defer clear(payload)

		if kycOut == "" {
			return fmt.Errorf("--out is required (document %s, %s)", name, mime)
		}
		if err := os.WriteFile(kycOut, payload, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", kycOut, mime, len(payload))
		return nil
	},
}

func init() {
	kycCmd.PersistentFlags().StringVar(&kycReviewer, "reviewer", os.Getenv("USER"), "name recorded as the reviewer")
	kycRejectCmd.Flags().StringVar(&kycReason, "reason", "", "rejection reason sent to the user")
	kycOpenCmd.Flags().StringVarP(&kycOut, "out", "o", "", "file to write the document to")

	kycCmd.AddCommand(kycShowCmd, kycApproveCmd, kycRejectCmd, kycOpenCmd)
	rootCmd.AddCommand(kycCmd)
}

// verificationService opens the configured store directly; the returned func
// releases it.
func verificationService(cmd *cobra.Command) (*service.VerificationService, func(), error) {
	cfg, repo, err := setup(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewVerificationService(repo, config.GetDocumentKeyBytes, newMailer(cfg), nil)
	return svc, repo.Close, nil
}

func review(cmd *cobra.Command, addr string, approve bool) error {
	svc, done, err := verificationService(cmd)
	if err != nil {
		return err
	}
	defer done()

	v, err := svc.PendingForEmail(cmd.Context(), addr)
	if err != nil {
		return err
	}
	v, err = svc.Review(cmd.Context(), v.ID, approve, kycReason, kycReviewer)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "verification %s %s\n", v.ID, v.VerificationStatus)
	return nil
}
