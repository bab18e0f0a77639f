package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "ramesh")
	feed := testutil.CreateFeed(t, env.db, "Cattle Feed", 85000, 0, 100, -1)

	bill, err := env.bills.CreateBill(ctx, &CreateBillInput{
		UserID: user.ID,
		Items:  []BillItemInput{{FeedID: feed.ID, Quantity: 10, UnitPrice: 850}},
	})
	require.NoError(t, err)

	txn, err := env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: bill.ID, Amount: 3000, Description: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "cash", txn.Description)
	assert.Equal(t, enum.TransactionTypePayment, txn.Type)
	assert.Equal(t, user.ID, txn.UserID)

	updated, err := env.bills.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, updated.Status)
	assert.Equal(t, int64(300000), updated.PaidAmount)
	assert.Equal(t, int64(550000), updated.PendingAmount)
	assert.Equal(t, updated.TotalAmount, updated.PaidAmount+updated.PendingAmount)

	_, err = env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: bill.ID, Amount: 5500.01})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.ReasonAmountExceedsPending, appErr.Reason)
	assert.Equal(t, 400, appErr.Code)

	txns, err := env.payments.ListBillTransactions(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	page, err := env.payments.ListTransactions(ctx, &repository.TransactionFilterParams{UserID: &user.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestRecordPayment_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: uuid.New(), Amount: 0})
	assert.True(t, apperror.HasReason(err, apperror.ReasonValidation))

	_, err = env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: uuid.New(), Amount: -5})
	assert.True(t, apperror.HasReason(err, apperror.ReasonValidation))

	_, err = env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: uuid.New(), Amount: 10})
	assert.True(t, apperror.HasReason(err, apperror.ReasonNotFound))

	_, err = env.payments.ListBillTransactions(ctx, uuid.New())
	assert.True(t, apperror.HasReason(err, apperror.ReasonNotFound))
}
