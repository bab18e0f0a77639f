package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitStock_Guards(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()
	feed := testutil.CreateFeed(t, db, "Cattle Feed", 85000, 3, 10, 4)

	ok, err := repo.DebitStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Location: enum.StorageLocationGodown, Quantity: 11})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DebitStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Location: enum.StorageLocationGodown, Quantity: 6})
	require.NoError(t, err)
	assert.True(t, ok)

	// legacy mirror is clamped at zero instead of going negative
	got := testutil.ReloadFeed(t, db, feed)
	assert.Equal(t, 4, got.GodownStock)
	assert.Equal(t, 3, got.ShopStock)
	assert.Equal(t, 0, got.Stock)

	// legacy-only draws are refused while a counter still holds stock
	ok, err = repo.DebitStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Quantity: 1, LegacyOnly: true})
	require.NoError(t, err)
	assert.False(t, ok)

	// a credit puts back only the legacy share it is given
	require.NoError(t, repo.CreditStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Location: enum.StorageLocationShop, Quantity: 2, Legacy: 1}))
	got = testutil.ReloadFeed(t, db, feed)
	assert.Equal(t, 5, got.ShopStock)
	assert.Equal(t, 1, got.Stock)
}

func TestUpdateDetails_KeepsConcurrentStockDebits(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()
	feed := testutil.CreateFeed(t, db, "Cattle Feed", 85000, 0, 10, -1)

	stale, err := repo.GetByID(ctx, feed.ID)
	require.NoError(t, err)

	ok, err := repo.DebitStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Location: enum.StorageLocationGodown, Quantity: 3})
	require.NoError(t, err)
	require.True(t, ok)

	stale.Price = 90000
	stale.LowStockAlert = 5
	require.NoError(t, repo.UpdateDetails(ctx, stale))

	got := testutil.ReloadFeed(t, db, feed)
	assert.Equal(t, int64(90000), got.Price)
	assert.Equal(t, 5, got.LowStockAlert)
	assert.Equal(t, 7, got.GodownStock)
	assert.Equal(t, 7, got.Stock)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	feeds := repository.NewFeedRepository(db)
	tx := repository.NewTransactor(db)
	ctx := context.Background()
	feed := testutil.CreateFeed(t, db, "Cattle Feed", 85000, 0, 10, -1)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ok, err := feeds.DebitStock(ctx, domainRepo.StockMovement{FeedID: feed.ID, Location: enum.StorageLocationGodown, Quantity: 4})
		require.NoError(t, err)
		require.True(t, ok)

		// nested calls join the outer transaction
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, testutil.ReloadFeed(t, db, feed).GodownStock)
}

func TestBillRepository_NextSequenceAndPayment(t *testing.T) {
	db := testutil.NewDB(t)
	bills := repository.NewBillRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "ramesh")

	seq, err := bills.NextSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	bill := &entity.Bill{
		BillNumber: "BILL-000001", Sequence: 1, UserID: user.ID,
		TotalAmount: 1000, PendingAmount: 1000,
		Status: enum.PaymentStatusPending, BillStatus: enum.BillStatusActive,
	}
	require.NoError(t, bills.Create(ctx, bill))

	dup := &entity.Bill{BillNumber: "BILL-000001", Sequence: 1, UserID: user.ID}
	err = bills.Create(ctx, dup)
	assert.True(t, repository.IsDuplicateKey(err))

	seq, err = bills.NextSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	ok, err := bills.ApplyPayment(ctx, bill.ID, 1001, enum.PaymentStatusPaid)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = bills.ApplyPayment(ctx, bill.ID, 400, enum.PaymentStatusPartial)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := bills.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), got.PaidAmount)
	assert.Equal(t, int64(600), got.PendingAmount)
	assert.Equal(t, enum.PaymentStatusPartial, got.Status)
}

func TestSearchScope_GroupsOrClauses(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()
	testutil.CreateUser(t, db, "ramesh")
	testutil.CreateUser(t, db, "suresh")

	status := enum.RecordStatusActive
	found, total, err := users.List(ctx, &domainRepo.UserFilterParams{
		Pagination: nil,
		Search:     "esh",
		Status:     &status,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, found)
}
