package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/export"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Period is a reporting window anchored on the current time
type Period string

const (
	PeriodToday Period = "today"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts today, month or year. Empty means today.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", apperror.NewFieldError("period", "Period must be one of today, month or year")
}

// Range returns the half-open window [from, to) containing now, computed
// in loc
func (p Period) Range(now time.Time, loc *time.Location) (time.Time, time.Time) {
	t := now.In(loc)
	switch p {
	case PeriodYear:
		from := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0)
	case PeriodMonth:
		from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1)
	}
}

// SalesBucket is one point of the sales chart
type SalesBucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// BucketSales groups bill totals by hour for today, by day for a month and
// by month for a year. Every bucket in the window is present.
func BucketSales(p Period, from, to time.Time, loc *time.Location, points []repository.BillPoint) []SalesBucket {
	var step func(time.Time) time.Time
	var layout string
	switch p {
	case PeriodYear:
		step, layout = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }, "2006-01"
	case PeriodMonth:
		step, layout = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }, "2006-01-02"
	default:
		step, layout = func(t time.Time) time.Time { return t.Add(time.Hour) }, "15:00"
	}

	var buckets []SalesBucket
	index := make(map[string]int)
	for t := from.In(loc); t.Before(to); t = step(t) {
		label := t.Format(layout)
		index[label] = len(buckets)
		buckets = append(buckets, SalesBucket{Label: label})
	}

	totals := make([]int64, len(buckets))
	for _, pt := range points {
		i, ok := index[pt.CreatedAt.In(loc).Format(layout)]
		if !ok {
			continue
		}
		totals[i] += pt.TotalAmount
		buckets[i].Count++
	}
	for i := range buckets {
		buckets[i].Total = utils.FromPaise(totals[i])
	}
	return buckets
}

// TopFeedOutput is a best-selling feed
type TopFeedOutput struct {
	FeedID       uuid.UUID `json:"feed_id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	QuantitySold int64     `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// CreditorOutput is a customer who still owes money
type CreditorOutput struct {
	UserID    uuid.UUID `json:"user_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Pending   float64   `json:"pending"`
	BillCount int64     `json:"bill_count"`
}

// FeedCounts counts active feeds for the dashboard
type FeedCounts struct {
	Total    int64 `json:"total"`
	LowStock int64 `json:"low_stock"`
}

// DashboardOutput is the overview of one period
type DashboardOutput struct {
	Period      Period               `json:"period"`
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	TotalSales  float64              `json:"total_sales"`
	BillCount   int64                `json:"bill_count"`
	Collected   float64              `json:"collected"`
	Outstanding float64              `json:"outstanding"`
	Customers   repository.UserStats `json:"customers"`
	Feeds       FeedCounts           `json:"feeds"`
	Sales       []SalesBucket        `json:"sales"`
	TopFeeds    []TopFeedOutput      `json:"top_feeds"`
	Creditors   []CreditorOutput     `json:"creditors"`
}

// ReportService computes read-only aggregates
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	clock      Clock
	loc        *time.Location
	header     entity.InvoiceHeader
	log        *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	clock Clock,
	loc *time.Location,
	header entity.InvoiceHeader,
	log *zap.Logger,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		clock:      clock,
		loc:        loc,
		header:     header,
		log:        log,
	}
}

const (
	dashboardTopFeeds  = 5
	dashboardCreditors = 5
)

// Dashboard gathers the period overview. The independent queries run
// concurrently.
func (s *ReportService) Dashboard(ctx context.Context, p Period) (*DashboardOutput, error) {
	from, to := p.Range(s.clock.Now(), s.loc)
	out := &DashboardOutput{Period: p, From: from, To: to}

	var (
		summary   *repository.SalesSummary
		collected int64
		users     *repository.UserStats
		feeds     *repository.FeedStats
		points    []repository.BillPoint
		top       []repository.TopFeedResult
		creditors []repository.CreditorResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.reportRepo.SalesSummary(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		collected, err = s.reportRepo.CollectedBetween(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.userRepo.Stats(gctx, from)
		return err
	})
	g.Go(func() (err error) {
		feeds, err = s.reportRepo.FeedStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		points, err = s.reportRepo.BillPoints(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.reportRepo.TopFeeds(gctx, from, to, dashboardTopFeeds)
		return err
	})
	g.Go(func() (err error) {
		creditors, err = s.reportRepo.Creditors(gctx, dashboardCreditors)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, persistErr(s.log, "build dashboard", err)
	}

	out.TotalSales = utils.FromPaise(summary.TotalSales)
	out.BillCount = summary.BillCount
	out.Outstanding = utils.FromPaise(summary.Outstanding)
	out.Collected = utils.FromPaise(collected)
	out.Customers = *users
	out.Feeds = FeedCounts{Total: feeds.Total, LowStock: feeds.LowStock}
	out.Sales = BucketSales(p, from, to, s.loc, points)
	out.TopFeeds = topFeedOutputs(top)
	out.Creditors = creditorOutputs(creditors)

	return out, nil
}

// Creditors lists customers by outstanding balance
func (s *ReportService) Creditors(ctx context.Context, limit int) ([]CreditorOutput, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.reportRepo.Creditors(ctx, limit)
	if err != nil {
		return nil, persistErr(s.log, "list creditors", err)
	}
	return creditorOutputs(rows), nil
}

// TopFeeds lists best sellers of the period by quantity
func (s *ReportService) TopFeeds(ctx context.Context, p Period, limit int) ([]TopFeedOutput, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	from, to := p.Range(s.clock.Now(), s.loc)
	rows, err := s.reportRepo.TopFeeds(ctx, from, to, limit)
	if err != nil {
		return nil, persistErr(s.log, "list top feeds", err)
	}
	return topFeedOutputs(rows), nil
}

// SalesReport collects the bill rows of the period for printing
func (s *ReportService) SalesReport(ctx context.Context, p Period) (*export.SalesReport, error) {
	now := s.clock.Now()
	from, to := p.Range(now, s.loc)
	rows, err := s.reportRepo.SalesRows(ctx, from, to)
	if err != nil {
		return nil, persistErr(s.log, "load sales rows", err)
	}

	report := &export.SalesReport{
		Header:    s.header,
		Title:     fmt.Sprintf("Sales Report (%s)", p),
		From:      from,
		To:        to.AddDate(0, 0, -1),
		Generated: now.In(s.loc),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, export.SalesReportRow{
			Date:       r.CreatedAt.In(s.loc).Format("2006-01-02"),
			BillNumber: r.BillNumber,
			Customer:   r.UserName,
			Total:      utils.FromPaise(r.TotalAmount),
			Paid:       utils.FromPaise(r.PaidAmount),
			Pending:    utils.FromPaise(r.PendingAmount),
			Status:     r.Status,
		})
	}
	return report, nil
}

// SalesReportPDF renders the period sales report
func (s *ReportService) SalesReportPDF(ctx context.Context, p Period) ([]byte, error) {
	report, err := s.SalesReport(ctx, p)
	if err != nil {
		return nil, err
	}
	data, err := export.RenderSalesReport(report)
	if err != nil {
		s.log.Error("sales report render failed", zap.Error(err))
		return nil, apperror.NewPersistenceError("render sales report", err)
	}
	return data, nil
}

func topFeedOutputs(rows []repository.TopFeedResult) []TopFeedOutput {
	out := make([]TopFeedOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopFeedOutput{
			FeedID:       r.FeedID,
			Name:         r.FeedName,
			Brand:        r.Brand,
			QuantitySold: r.QuantitySold,
			Revenue:      utils.FromPaise(r.Revenue),
		})
	}
	return out
}

func creditorOutputs(rows []repository.CreditorResult) []CreditorOutput {
	out := make([]CreditorOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, CreditorOutput{
			UserID:    r.UserID,
			Code:      r.UserCode,
			Name:      r.UserName,
			Phone:     r.Phone,
			Pending:   utils.FromPaise(r.PendingTotal),
			BillCount: r.BillCount,
		})
	}
	return out
}
