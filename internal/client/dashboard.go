package client

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// AdminDashboard mirrors the admin screens: enquiries, consultant reports and
// admissions, each held in its own record store.
type AdminDashboard struct {
	client *Client
	logger *zap.Logger

	Queries    *records.Store[models.QueryView]
	Reports    *records.Store[models.ConsultantReport]
	Admissions *records.Store[models.Admission]
}

// NewAdminDashboard builds empty stores with each dataset's search fields.
// Date filters resolve in the formatter's display zone.
func NewAdminDashboard(c *Client, f *records.TimestampFormatter) *AdminDashboard {
	loc := f.Location()
	return &AdminDashboard{
		client: c,
		logger: c.logger.Named("dashboard"),
		Queries: records.NewStore[models.QueryView](records.FilterState{
			SearchFields: models.QuerySearchFields,
			Location:     loc,
		}),
		Reports: records.NewStore[models.ConsultantReport](records.FilterState{
			SearchFields: models.ReportSearchFields,
			Location:     loc,
		}),
		Admissions: records.NewStore[models.Admission](records.FilterState{
			SearchFields: models.AdmissionSearchFields,
			Location:     loc,
		}),
	}
}

// Refresh refetches every dataset in parallel. A failed fetch leaves its
// store untouched and a response overtaken by a newer refresh is dropped.
func (d *AdminDashboard) Refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return load(gctx, d.logger, "queries", d.Queries, d.client.Queries) })
	g.Go(func() error { return load(gctx, d.logger, "consultant_reports", d.Reports, d.client.ConsultantReports) })
	g.Go(func() error { return load(gctx, d.logger, "admissions", d.Admissions, d.client.Admissions) })
	return g.Wait()
}

// Close stops every store from accepting in-flight responses.
func (d *AdminDashboard) Close() {
	d.Queries.Close()
	d.Reports.Close()
	d.Admissions.Close()
}

// ConsultantDashboard holds the signed-in consultant's own reports.
type ConsultantDashboard struct {
	client *Client
	logger *zap.Logger

	Reports *records.Store[models.ConsultantReport]
}

// NewConsultantDashboard builds the consultant's report store.
func NewConsultantDashboard(c *Client, f *records.TimestampFormatter) *ConsultantDashboard {
	return &ConsultantDashboard{
		client: c,
		logger: c.logger.Named("dashboard"),
		Reports: records.NewStore[models.ConsultantReport](records.FilterState{
			SearchFields: models.ReportSearchFields,
			Location:     f.Location(),
		}),
	}
}

// Refresh refetches the consultant's reports.
func (d *ConsultantDashboard) Refresh(ctx context.Context) error {
	return load(ctx, d.logger, "my_reports", d.Reports, d.client.MyReports)
}

// Close stops the store from accepting in-flight responses.
func (d *ConsultantDashboard) Close() {
	d.Reports.Close()
}

func load[R records.Record](ctx context.Context, logger *zap.Logger, name string, store *records.Store[R], fetch func(context.Context) ([]R, error)) error {
	token := store.Begin()
	rows, err := fetch(ctx)
	if err != nil {
		logger.Warn("fetch failed", zap.String("dataset", name), zap.Error(err))
		return err
	}
	if !store.Commit(token, rows) {
		logger.Debug("stale response discarded", zap.String("dataset", name))
	}
	return nil
}
