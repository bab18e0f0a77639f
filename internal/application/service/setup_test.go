package service

import (
	"testing"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	infraRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	clock    *testutil.FixedClock
	bills    *BillService
	payments *PaymentService
	users    *UserService
	feeds    *FeedService
	reports  *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	clock := &testutil.FixedClock{T: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	log := zap.NewNop()

	transactor := infraRepo.NewTransactor(db)
	billRepo := infraRepo.NewBillRepository(db)
	feedRepo := infraRepo.NewFeedRepository(db)
	userRepo := infraRepo.NewUserRepository(db)
	txnRepo := infraRepo.NewTransactionRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)

	header := entity.InvoiceHeader{BusinessName: "Gurudatta Traders"}

	return &testEnv{
		db:    db,
		clock: clock,
		bills: NewBillService(transactor, billRepo, feedRepo, userRepo, txnRepo,
			NewDuplicateDetector(billRepo, clock, 10*time.Second, 5), clock,
			BillOptions{Prefix: "BILL", Header: header, Location: time.UTC}, log),
		payments: NewPaymentService(transactor, billRepo, txnRepo, userRepo, clock, log),
		users:    NewUserService(userRepo, billRepo, txnRepo, log),
		feeds:    NewFeedService(transactor, feedRepo, log),
		reports:  NewReportService(reportRepo, userRepo, clock, time.UTC, header, log),
	}
}

func ptr[T any](v T) *T {
	return &v
}
