package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/client"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/config"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/logger"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// exportFlags are shared by every export subcommand.
type exportFlags struct {
	search string
	date   string
	format string
	out    string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "calendar date in the display timezone (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "csv", "output format (csv, pdf)")
	cmd.Flags().StringVarP(&f.out, "out", "o", ".", "output directory")
}

// apply narrows state by the shared flags.
func (f *exportFlags) apply(state records.FilterState) (records.FilterState, error) {
	day, err := records.ParseDate(f.date)
	if err != nil {
		return state, err
	}
	state.SearchTerm = strings.TrimSpace(f.search)
	state.Date = day
	return state, nil
}

func (f *exportFlags) renderer(title string, cfg *config.Config) (export.Renderer, error) {
	switch strings.ToLower(f.format) {
	case "", "csv":
		return &export.CSVExporter{CommaReplacement: cfg.Exports.CommaReplacement}, nil
	case "pdf":
		return export.NewPDFExporter(title), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f.format)
}

// runtime is the per-invocation state built from config.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	formatter *records.TimestampFormatter
	client    *client.Client
}

func newRuntime() (*runtime, error) {
	cfg := config.FromViper(viper.GetViper())
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &runtime{
		cfg:       cfg,
		logger:    log,
		formatter: records.NewTimestampFormatter(cfg.Display.Timezone, cfg.Display.FallbackOffset),
		client:    client.New(viper.GetString("API_URL"), client.WithLogger(log)),
	}, nil
}

func (r *runtime) adminDashboard(ctx context.Context) (*client.AdminDashboard, error) {
	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil, fmt.Errorf("admin credentials required: set --username/--password or EDUCTL_ADMIN_USERNAME/EDUCTL_ADMIN_PASSWORD")
	}
	if _, err := r.client.AdminLogin(ctx, username, password); err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	d := client.NewAdminDashboard(r.client, r.formatter)
	if err := d.Refresh(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}
	return d, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.client.Logout(ctx); err != nil {
		r.logger.Warn("logout failed", zap.Error(err))
	}
	_ = r.logger.Sync()
}

func writeFile(cmd *cobra.Command, dir string, file *client.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", file.Rows, path)
	return nil
}

func NewQueriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Work with student enquiries",
	}
	cmd.AddCommand(newQueriesExportCommand())
	return cmd
}

func newQueriesExportCommand() *cobra.Command {
	var flags exportFlags
	var status string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered enquiries",
		Long:  "Fetch the enquiry list, apply search, status and date filters and write a CSV or PDF file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && status != records.All && !models.QueryStatus(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			ctx := cmd.Context()
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			renderer, err := flags.renderer("Student Queries", rt.cfg)
			if err != nil {
				return err
			}

			d, err := rt.adminDashboard(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			state, err := flags.apply(d.Queries.Filter())
			if err != nil {
				return err
			}
			d.Queries.SetFilter(state.WithEquals(records.FieldStatus, status))

			file, err := client.Export(d.Queries, "student-queries", client.QueryColumns(rt.formatter), renderer, time.Now())
			if err != nil {
				return err
			}
			return writeFile(cmd, flags.out, file)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&status, "status", records.All, "status filter (new, contacted, closed, all)")

	return cmd
}

func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Work with consultant reports",
	}
	cmd.AddCommand(newReportsExportCommand())
	return cmd
}

func newReportsExportCommand() *cobra.Command {
	var flags exportFlags
	var consultant, scope string
	var mine bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered consultant reports",
		Long:  "Fetch consultant reports, apply search, consultant, interest scope and date filters and write a CSV or PDF file. With --mine the reports of the signed-in consultant are exported.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scope != "" && scope != records.All && !models.InterestScope(scope).Valid() {
				return fmt.Errorf("unknown interest scope %q", scope)
			}
			ctx := cmd.Context()
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			renderer, err := flags.renderer("Consultant Reports", rt.cfg)
			if err != nil {
				return err
			}

			var store *records.Store[models.ConsultantReport]
			if mine {
				d, err := rt.consultantDashboard(ctx)
				if err != nil {
					return err
				}
				defer d.Close()
				store = d.Reports
			} else {
				d, err := rt.adminDashboard(ctx)
				if err != nil {
					return err
				}
				defer d.Close()
				store = d.Reports
			}

			state, err := flags.apply(store.Filter())
			if err != nil {
				return err
			}
			store.SetFilter(state.WithEquals("consultant_name", consultant).WithEquals("interest_scope", scope))

			file, err := client.Export(store, "consultant-reports", models.ReportColumns(rt.formatter), renderer, time.Now())
			if err != nil {
				return err
			}
			return writeFile(cmd, flags.out, file)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&consultant, "consultant", records.All, "consultant name filter")
	cmd.Flags().StringVar(&scope, "scope", records.All, "interest scope filter")
	cmd.Flags().BoolVar(&mine, "mine", false, "sign in as a consultant and export only their reports")
	cmd.Flags().String("user-id", "", "consultant user id (with --mine)")
	cmd.Flags().String("consultant-password", "", "consultant password (with --mine)")

	viper.BindPFlag("CONSULTANT_USER_ID", cmd.Flags().Lookup("user-id"))
	viper.BindPFlag("CONSULTANT_PASSWORD", cmd.Flags().Lookup("consultant-password"))

	return cmd
}

func (r *runtime) consultantDashboard(ctx context.Context) (*client.ConsultantDashboard, error) {
	userID := viper.GetString("CONSULTANT_USER_ID")
	password := viper.GetString("CONSULTANT_PASSWORD")
	if userID == "" || password == "" {
		return nil, fmt.Errorf("consultant credentials required: set --user-id/--consultant-password")
	}
	if _, err := r.client.ConsultantLogin(ctx, userID, password); err != nil {
		return nil, fmt.Errorf("consultant login: %w", err)
	}
	d := client.NewConsultantDashboard(r.client, r.formatter)
	if err := d.Refresh(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("fetch reports: %w", err)
	}
	return d, nil
}

func NewAdmissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admissions",
		Short: "Work with admissions and payouts",
	}
	cmd.AddCommand(newAdmissionsExportCommand())
	return cmd
}

func newAdmissionsExportCommand() *cobra.Command {
	var flags exportFlags
	var payout, consultantID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered admissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if payout != "" && payout != records.All && !models.PayoutStatus(payout).Valid() {
				return fmt.Errorf("unknown payout status %q", payout)
			}
			ctx := cmd.Context()
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			renderer, err := flags.renderer("Admissions & Payouts", rt.cfg)
			if err != nil {
				return err
			}

			d, err := rt.adminDashboard(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			state, err := flags.apply(d.Admissions.Filter())
			if err != nil {
				return err
			}
			// Admission days are civil dates stored as UTC midnight.
			state.DateField = "admission_date"
			state.Location = time.UTC
			d.Admissions.SetFilter(state.WithEquals("payout_status", payout).WithEquals("consultant_id", consultantID))

			file, err := client.Export(d.Admissions, "admissions", models.AdmissionColumns(rt.formatter), renderer, time.Now())
			if err != nil {
				return err
			}
			return writeFile(cmd, flags.out, file)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&payout, "payout-status", records.All, "payout status filter")
	cmd.Flags().StringVar(&consultantID, "consultant-id", "", "consultant id filter")

	return cmd
}
