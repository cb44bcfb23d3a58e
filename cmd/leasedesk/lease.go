package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	ddomain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	dsvc "github.com/corvusHold/leasedesk/internal/delivery/service"
	evsvc "github.com/corvusHold/leasedesk/internal/events/service"
	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	lsvc "github.com/corvusHold/leasedesk/internal/lease/service"
	"github.com/corvusHold/leasedesk/internal/logger"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
)

// leaseFlags describe the current lease, from a file or from flags.
type leaseFlags struct {
	file string
	in   domain.LeaseInput
}

func (f *leaseFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.file, "lease", "", "YAML file with the current lease (- for stdin)")
	fs.StringVar(&f.in.TenantID, "tenant-id", "", "tenant id")
	fs.StringVar(&f.in.TenantName, "tenant", "", "tenant name")
	fs.StringVar(&f.in.PropertyName, "property", "", "property name")
	fs.StringVar(&f.in.UnitNumber, "unit", "", "unit number")
	fs.Float64Var(&f.in.MonthlyRent, "rent", 0, "current monthly rent")
	fs.Float64Var(&f.in.SecurityDeposit, "deposit", 0, "current security deposit")
	fs.StringVar(&f.in.StartDate, "start", "", "current lease start date")
	fs.StringVar(&f.in.EndDate, "end", "", "current lease end date")
}

// record loads the lease file when given; flags set on the command line win.
func (f *leaseFlags) record(cmd *cobra.Command) (domain.LeaseRecord, error) {
	in := f.in
	if f.file != "" {
		var fromFile domain.LeaseInput
		if err := readYAML(f.file, cmd.InOrStdin(), &fromFile); err != nil {
			return domain.LeaseRecord{}, err
		}
		fs := cmd.Flags()
		overlay := func(flag string, dst *string, v string) {
			if !fs.Changed(flag) {
				*dst = v
			}
		}
		overlay("tenant-id", &in.TenantID, fromFile.TenantID)
		overlay("tenant", &in.TenantName, fromFile.TenantName)
		overlay("property", &in.PropertyName, fromFile.PropertyName)
		overlay("unit", &in.UnitNumber, fromFile.UnitNumber)
		overlay("start", &in.StartDate, fromFile.StartDate)
		overlay("end", &in.EndDate, fromFile.EndDate)
		if !fs.Changed("rent") {
			in.MonthlyRent = fromFile.MonthlyRent
		}
		if !fs.Changed("deposit") {
			in.SecurityDeposit = fromFile.SecurityDeposit
		}
	}
	if err := validation.Struct(&in); err != nil {
		return domain.LeaseRecord{}, fmt.Errorf("invalid lease: %w", err)
	}
	return in.Record()
}

type computeOutput struct {
	Result   domain.Result  `json:"result"`
	Delivery *ddomain.Draft `json:"delivery,omitempty"`
}

func (a *app) compute(cmd *cobra.Command, current domain.LeaseRecord, req domain.Request, to ddomain.Recipient) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pub := evsvc.NewLogger(logger.Component(a.log, "events"))
	calc := lsvc.Calculator{DurationToleranceDays: a.v.GetInt("tolerance_days")}
	res, err := lsvc.New(calc, pub, logger.Component(a.log, "lease")).Compute(ctx, current, req)
	if err != nil {
		return err
	}
	drafts := dsvc.New(nil, dsvc.DraftOptions{
		Channel:  ddomain.Channel(a.v.GetString("channel")),
		Landlord: a.landlord(),
	}, pub, logger.Component(a.log, "delivery"))
	d, err := drafts.DraftForResult(ctx, res, to)
	if err != nil {
		return err
	}
	out := computeOutput{Result: res, Delivery: d}
	return a.print(cmd.OutOrStdout(), out, func(t *table) { resultRows(t, out) })
}

func resultRows(t *table, out computeOutput) {
	r := out.Result
	rent, prev := r.Lease.MonthlyRent, r.PreviousRent
	t.row("Kind", r.Kind)
	t.rowIf("Tenant", r.Lease.TenantName)
	t.row("End date", fmt.Sprintf("%s -> %s", mergefields.Date(&r.PreviousEndDate), mergefields.Date(&r.Lease.EndDate)))
	t.row("Monthly rent", fmt.Sprintf("%s -> %s", mergefields.Currency(&prev), mergefields.Currency(&rent)))
	if r.DepositDelta != 0 {
		deposit := r.Lease.SecurityDeposit
		t.row("Security deposit", mergefields.Currency(&deposit))
	}
	t.rowIf("Extension type", string(r.ExtensionType))
	if r.Prorated {
		t.row("Prorated", "yes")
	}
	t.rowIf("Reason", string(r.Reason))
	t.rowIf("Notes", r.Notes)
	for _, w := range r.Warnings {
		t.row("Warning", w.Message)
	}
	if d := out.Delivery; d != nil {
		t.blank()
		t.row("Delivery", fmt.Sprintf("%s (%s, %s)", d.State, d.Channel, d.TemplateType))
		t.rowIf("Document", d.DocumentName)
		t.row("Message", d.Message)
	}
}

type recipientFlags struct{ to ddomain.Recipient }

func (f *recipientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to.Email, "email", "", "tenant email for the delivery")
	cmd.Flags().StringVar(&f.to.Phone, "phone", "", "tenant phone for WhatsApp delivery")
}

func (a *app) renewCmd() *cobra.Command {
	var (
		lf     leaseFlags
		rf     recipientFlags
		preset string
		terms  domain.RenewalTerms
		pct    float64
	)
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Compute a lease renewal",
		Long: `Compute a renewal of the current lease. Use --preset for the quick options
(same-terms, plus-five, custom) or give --months with --percent or --new-rent.
A renewal also prepares the delivery draft of the renewal agreement.`,
		Example: `  leasedesk renew --tenant "Alice Johnson" --rent 1500 --start 2024-01-15 --end 2025-01-15 --preset plus-five
  leasedesk renew --lease lease.yaml --months 18 --percent 3 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := lf.record(cmd)
			if err != nil {
				return err
			}
			var req domain.Request
			if preset != "" {
				req, err = lsvc.Preset(preset, lsvc.PresetOptions{EndDate: terms.EndDate, NewRent: terms.NewRent})
				if err != nil {
					return err
				}
			} else {
				t := terms
				if cmd.Flags().Changed("percent") {
					t.IncreasePercent = &pct
				}
				t.Custom = t.EndDate != ""
				req = domain.Request{Kind: domain.KindRenewal, Renewal: &t}
			}
			rf.to.Name = current.TenantName
			return a.compute(cmd, current, req, rf.to)
		},
	}
	lf.register(cmd)
	rf.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&preset, "preset", "", "quick option: same-terms, plus-five or custom")
	fs.IntVar(&terms.DurationMonths, "months", lsvc.DefaultRenewalMonths, "renewal term in months (6, 12, 18 or 24)")
	fs.Float64Var(&pct, "percent", 0, "rent increase in percent")
	fs.StringVar(&terms.NewRent, "new-rent", "", "explicit new monthly rent")
	fs.StringVar(&terms.EndDate, "end-date", "", "custom renewal end date")
	fs.StringVar(&terms.DepositDelta, "deposit-delta", "", "change to the security deposit")
	fs.StringVar(&terms.Notes, "notes", "", "notes recorded with the renewal")
	return cmd
}

func (a *app) extendCmd() *cobra.Command {
	var (
		lf    leaseFlags
		terms domain.ExtensionTerms
		typ   string
		why   string
	)
	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Compute a short lease extension",
		Long: `Compute an extension of the current lease. The type decides the rent:
grace keeps it, month-to-month adds 10% and short-term is marked prorated.`,
		Example: `  leasedesk extend --lease lease.yaml --type month-to-month --days 30 --end-date 2025-02-14`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := lf.record(cmd)
			if err != nil {
				return err
			}
			t := terms
			t.Type, t.Reason = domain.ExtensionType(typ), domain.Reason(why)
			return a.compute(cmd, current, domain.Request{Kind: domain.KindExtension, Extension: &t}, ddomain.Recipient{})
		},
	}
	lf.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&typ, "type", string(domain.ExtensionGrace), "extension type: grace, month-to-month or short-term")
	fs.IntVar(&terms.DurationDays, "days", 30, "extension length in days (7, 14, 30, 60 or 90)")
	fs.BoolVar(&terms.CustomDuration, "custom-duration", false, "allow a day count outside the fixed choices")
	fs.StringVar(&terms.EndDate, "end-date", "", "extension end date")
	fs.StringVar(&why, "reason", "", "moving-out, waiting-property, late-payment, transition or other")
	fs.StringVar(&terms.Notes, "notes", "", "notes recorded with the extension")
	return cmd
}

type increaseOutput struct {
	Rent     float64 `json:"rent"`
	Percent  float64 `json:"percent"`
	NewRent  float64 `json:"new_rent"`
	Shortcut bool    `json:"shortcut"`
}

func (a *app) increaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "increase RENT PERCENT",
		Short:   "Apply a percentage increase to a rent",
		Example: "  leasedesk increase 1500 5\n  leasedesk increase -- 1500 -2.5",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rent, err := lsvc.ParseRent("rent", args[0])
			if err != nil {
				return err
			}
			pct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return domain.ValidationError{Field: "percent", Message: "must be a number"}
			}
			next, err := lsvc.Increase(rent, pct)
			if err != nil {
				return err
			}
			out := increaseOutput{Rent: rent, Percent: pct, NewRent: next, Shortcut: lsvc.IsShortcut(pct)}
			return a.print(cmd.OutOrStdout(), out, func(t *table) {
				t.row("Rent", mergefields.Currency(&out.Rent))
				t.row("Increase", strconv.FormatFloat(pct, 'f', -1, 64)+"%")
				t.row("New rent", mergefields.Currency(&out.NewRent))
			})
		},
	}
}
