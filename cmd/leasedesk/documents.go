package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	ddomain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	dsvc "github.com/corvusHold/leasedesk/internal/delivery/service"
	"github.com/corvusHold/leasedesk/internal/documents"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

type nameOutput struct {
	Name string `json:"name"`
}

func (a *app) nameCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "name TENANT START END",
		Short:   "Print the file name of a lease document",
		Example: `  leasedesk name "Alice Johnson" 2024-01-15 2025-01-15`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := documents.Name(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			out := nameOutput{Name: name}
			return a.print(cmd.OutOrStdout(), out, func(t *table) { t.row("Name", name) })
		},
	}
}

// fields loads merge-field data from path and applies the landlord profile.
// An empty path yields the landlord fields only.
func (a *app) fields(cmd *cobra.Command, path string, now time.Time) (mergefields.Fields, error) {
	var in mergefields.Input
	if path != "" {
		if err := readYAML(path, cmd.InOrStdin(), &in); err != nil {
			return mergefields.Fields{}, err
		}
		if err := validation.Struct(&in); err != nil {
			return mergefields.Fields{}, fmt.Errorf("invalid fields: %w", err)
		}
	}
	f, err := in.WithLandlordDefaults(a.landlord()).Fields()
	if err != nil {
		return mergefields.Fields{}, err
	}
	if f.CurrentDate == nil {
		f.CurrentDate = &now
	}
	return f, nil
}

func (a *app) resolveCmd() *cobra.Command {
	var tmplPath, fieldsPath string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Fill a template with merge fields",
		Long: `Replace every recognized {{TOKEN}} in the template with its value.
Unrecognized tokens are left as written and listed under "unknown".`,
		Example: `  leasedesk resolve --template renewal.txt --fields alice.yaml
  cat renewal.txt | leasedesk resolve --template - --fields alice.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tmplPath == fieldsPath && tmplPath == "-" {
				return errors.New("only one of --template and --fields can read stdin")
			}
			body, err := readText(tmplPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			f, err := a.fields(cmd, fieldsPath, time.Now())
			if err != nil {
				return err
			}
			out := tdomain.Preview{
				Body:    mergefields.Resolve(body, f),
				Blank:   mergefields.Blank(body, f),
				Unknown: mergefields.Unknown(body),
			}
			if a.outputFmt != "table" {
				return a.print(cmd.OutOrStdout(), out, nil)
			}
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprint(w, out.Body); err != nil {
				return err
			}
			if !strings.HasSuffix(out.Body, "\n") {
				fmt.Fprintln(w)
			}
			if len(out.Unknown) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown tokens: %s\n", strings.Join(out.Unknown, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tmplPath, "template", "", "template file (- for stdin)")
	cmd.Flags().StringVar(&fieldsPath, "fields", "", "YAML file with merge-field values (- for stdin)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func (a *app) sendCmd() *cobra.Command {
	var (
		channel    string
		to         ddomain.Recipient
		message    string
		docType    string
		docName    string
		fieldsPath string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a lease document and print the receipt",
		Long: `Build a delivery for one recipient and send it. With the whatsapp or both
channel the receipt carries the wa.me link with the message prefilled.`,
		Example: `  leasedesk send --channel both --name "Alice Johnson" --email alice@example.com --phone "(555) 123-4567" --fields alice.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			f, err := a.fields(cmd, fieldsPath, now)
			if err != nil {
				return err
			}
			if to.Name == "" {
				to.Name = f.TenantName
			}
			if docName == "" && f.LeaseStartDate != nil && f.LeaseEndDate != nil {
				docName, _ = documents.NameFor(to.Name, *f.LeaseStartDate, *f.LeaseEndDate)
			}
			if !cmd.Flags().Changed("channel") {
				channel = a.v.GetString("channel")
			}
			o, err := dsvc.NewOrchestrator(uuid.NewString(), ddomain.OriginManual, ddomain.NewDraft{
				Channel:      ddomain.Channel(channel),
				Recipient:    to,
				Message:      message,
				TemplateType: tdomain.DocumentType(docType),
				DocumentName: docName,
				Fields:       f,
			}, now)
			if err != nil {
				return err
			}
			r, err := o.Send(uuid.NewString(), now)
			if err != nil {
				return err
			}
			a.log.Info().Str("delivery_id", r.DeliveryID).Str("channel", string(r.Channel)).Msg("delivery sent")
			return a.print(cmd.OutOrStdout(), r, func(t *table) { receiptRows(t, r) })
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&channel, "channel", string(ddomain.ChannelEmail), "email, whatsapp or both")
	fs.StringVar(&to.Name, "name", "", "recipient name (defaults to the tenant name in --fields)")
	fs.StringVar(&to.Email, "email", "", "recipient email")
	fs.StringVar(&to.Phone, "phone", "", "recipient phone")
	fs.StringVar(&message, "message", "", "message text (defaults to a greeting built from the fields)")
	fs.StringVar(&docType, "type", string(tdomain.DocumentLease), "document type: lease, renewal or extension")
	fs.StringVar(&docName, "document", "", "document file name (derived from the lease dates when omitted)")
	fs.StringVar(&fieldsPath, "fields", "", "YAML file with merge-field values (- for stdin)")
	return cmd
}

func receiptRows(t *table, r ddomain.Receipt) {
	t.row("Receipt", r.ID)
	t.row("Delivery", r.DeliveryID)
	t.row("Channels", strings.Join(channelNames(r.Channels), ", "))
	t.rowIf("To", r.Recipient.Name)
	t.rowIf("Email", r.Recipient.Email)
	t.rowIf("Phone", r.Recipient.Phone)
	t.rowIf("Document", r.DocumentName)
	t.row("Sent", r.SentAt.Format(time.RFC3339))
	t.rowIf("WhatsApp", r.WhatsAppLink)
	t.blank()
	t.row("Message", r.Message)
}

func channelNames(cs []ddomain.Channel) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
