package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/storage"
)

var (
	sendReq      contact.Request
	sendEndpoint string

	listLimit int
	listJSON  bool
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Work with the contact form",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one contact form submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		endpoint := cfg.Contact.Endpoint
		if sendEndpoint != "" {
			endpoint = sendEndpoint
		}
		if endpoint == "" {
			return errors.New("no contact endpoint configured")
		}
		client := contact.NewClient(endpoint, cfg.Contact.Timeout)
		return sendContact(cmd.Context(), client, sendReq, cmd.OutOrStdout())
	},
}

type submitter interface {
	Submit(ctx context.Context, req contact.Request) (*contact.Response, error)
}

func sendContact(ctx context.Context, client submitter, req contact.Request, w io.Writer) error {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := client.Submit(ctx, req); err != nil {
		debuglog.Warnf("contact send: %v", err)
		return errors.New(contact.FailureMessage)
	}
	fmt.Fprintln(w, contact.SuccessMessage)
	return nil
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List stored contact submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		subs, err := store.ListSubmissions(listLimit)
		if err != nil {
			return err
		}
		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(subs)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSubmissions(subs))
		return nil
	},
}

var submissionsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a stored submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.GetSubmission(args[0]); err != nil {
			return fmt.Errorf("submission %s: %w", args[0], err)
		}
		if err := store.DeleteSubmission(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func renderSubmissions(subs []*storage.Submission) string {
	if len(subs) == 0 {
		return "No submissions yet"
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "RECEIVED", "FROM", "EMAIL", "SUBJECT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, s := range subs {
		t.Row(
			s.ID[:min(8, len(s.ID))],
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			strings.TrimSpace(s.FirstName+" "+s.LastName),
			s.Email,
			s.Subject,
		)
	}
	return t.Render()
}

func init() {
	f := contactSendCmd.Flags()
	f.StringVar(&sendReq.FirstName, "first-name", "", "First name")
	f.StringVar(&sendReq.LastName, "last-name", "", "Last name")
	f.StringVar(&sendReq.Email, "email", "", "Email address")
	f.StringVar(&sendReq.Phone, "phone", "", "Phone number (optional)")
	f.StringVar(&sendReq.Subject, "subject", "", "Subject")
	f.StringVar(&sendReq.Message, "message", "", "Message")
	f.StringVar(&sendEndpoint, "endpoint", "", "Contact endpoint (overrides contact.endpoint)")
	contactCmd.AddCommand(contactSendCmd)

	submissionsCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of submissions to list")
	submissionsCmd.Flags().BoolVar(&listJSON, "json", false, "Print as JSON")
	submissionsCmd.AddCommand(submissionsRmCmd)

	rootCmd.AddCommand(contactCmd, submissionsCmd)
}
