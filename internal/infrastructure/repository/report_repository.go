package repository

import (
	"context"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummary, error) {
	var summary domainRepo.SalesSummary

	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Select(`
			COALESCE(SUM(total_amount), 0) AS total_sales,
			COUNT(*) AS bill_count,
			COALESCE(SUM(pending_amount), 0) AS outstanding
		`).
		Where("bill_status = ? AND created_at >= ? AND created_at < ?", enum.BillStatusActive, from.UTC(), to.UTC()).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *reportRepository) CollectedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var collected int64

	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN bills b ON b.id = t.bill_id
		WHERE b.bill_status = ?
		AND t.created_at >= ? AND t.created_at < ?
	`, enum.BillStatusActive, from.UTC(), to.UTC()).Scan(&collected).Error

	return collected, err
}

func (r *reportRepository) BillPoints(ctx context.Context, from, to time.Time) ([]domainRepo.BillPoint, error) {
	var points []domainRepo.BillPoint

	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Select("created_at, total_amount").
		Where("bill_status = ? AND created_at >= ? AND created_at < ?", enum.BillStatusActive, from.UTC(), to.UTC()).
		Order("created_at ASC").
		Scan(&points).Error

	return points, err
}

func (r *reportRepository) TopFeeds(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopFeedResult, error) {
	var results []domainRepo.TopFeedResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			f.id AS feed_id,
			f.name AS feed_name,
			f.brand AS brand,
			COALESCE(SUM(bi.quantity), 0) AS quantity_sold,
			COALESCE(SUM(bi.total), 0) AS revenue
		FROM bill_items bi
		JOIN feeds f ON f.id = bi.feed_id
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.bill_status = ?
		AND b.created_at >= ? AND b.created_at < ?
		GROUP BY f.id, f.name, f.brand
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?
	`, enum.BillStatusActive, from.UTC(), to.UTC(), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reportRepository) Creditors(ctx context.Context, limit int) ([]domainRepo.CreditorResult, error) {
	var results []domainRepo.CreditorResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			u.id AS user_id,
			u.code AS user_code,
			u.name AS user_name,
			u.phone AS phone,
			COALESCE(SUM(b.pending_amount), 0) AS pending_total,
			COUNT(b.id) AS bill_count
		FROM bills b
		JOIN users u ON u.id = b.user_id
		WHERE b.bill_status = ? AND b.pending_amount > 0
		GROUP BY u.id, u.code, u.name, u.phone
		ORDER BY pending_total DESC
		LIMIT ?
	`, enum.BillStatusActive, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reportRepository) SalesRows(ctx context.Context, from, to time.Time) ([]domainRepo.SalesRow, error) {
	var rows []domainRepo.SalesRow

	err := conn(ctx, r.db).Raw(`
		SELECT
			b.bill_number AS bill_number,
			b.created_at AS created_at,
			u.name AS user_name,
			b.total_amount AS total_amount,
			b.paid_amount AS paid_amount,
			b.pending_amount AS pending_amount,
			b.status AS status
		FROM bills b
		JOIN users u ON u.id = b.user_id
		WHERE b.bill_status = ?
		AND b.created_at >= ? AND b.created_at < ?
		ORDER BY b.created_at ASC
	`, enum.BillStatusActive, from.UTC(), to.UTC()).Scan(&rows).Error

	return rows, err
}

func (r *reportRepository) FeedStats(ctx context.Context) (*domainRepo.FeedStats, error) {
	var stats domainRepo.FeedStats

	err := conn(ctx, r.db).Model(&entity.Feed{}).
		Select(`
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN low_stock_alert > 0 AND shop_stock + godown_stock <= low_stock_alert THEN 1 ELSE 0 END), 0) AS low_stock
		`).
		Where("status = ?", enum.RecordStatusActive).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
