package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_AssignsCategoryCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Ramesh", Phone: ptr(" 98765 ")})
	require.NoError(t, err)
	assert.Equal(t, "CUS-0001", first.Code)
	assert.Equal(t, enum.UserCategoryCustomer, first.Category)
	assert.Equal(t, enum.RecordStatusInactive, first.Status)
	assert.Equal(t, "98765", *first.Phone)

	second, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Suresh"})
	require.NoError(t, err)
	assert.Equal(t, "CUS-0002", second.Code)

	bmc, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Village BMC", Category: enum.UserCategoryBMC})
	require.NoError(t, err)
	assert.Equal(t, "BMC-0001", bmc.Code)

	_, err = env.users.CreateUser(ctx, &CreateUserInput{Name: " "})
	assert.True(t, apperror.HasReason(err, apperror.ReasonValidation))

	_, err = env.users.CreateUser(ctx, &CreateUserInput{Name: "X", Category: "vendor"})
	assert.True(t, apperror.HasReason(err, apperror.ReasonValidation))
}

func TestCreateUser_SkipsTakenCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Ramesh"})
	require.NoError(t, err)
	second, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Suresh"})
	require.NoError(t, err)

	// a gap at CUS-0001 is never reused
	require.NoError(t, env.users.DeleteUser(ctx, first.ID))

	third, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Mahesh"})
	require.NoError(t, err)
	assert.NotEqual(t, second.Code, third.Code)
	assert.Equal(t, "CUS-0003", third.Code)
}

func TestCreateUser_AfterOldestCodesDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var created []uuid.UUID
	for i := 0; i < 10; i++ {
		u, err := env.users.CreateUser(ctx, &CreateUserInput{Name: fmt.Sprintf("Customer %d", i+1)})
		require.NoError(t, err)
		created = append(created, u.ID)
	}
	for _, id := range created[:5] {
		require.NoError(t, env.users.DeleteUser(ctx, id))
	}

	next, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Ganesh"})
	require.NoError(t, err)
	assert.Equal(t, "CUS-0011", next.Code)

	after, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Dinesh"})
	require.NoError(t, err)
	assert.Equal(t, "CUS-0012", after.Code)

	dab, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Dabhadi One", Category: enum.UserCategoryDabhadi})
	require.NoError(t, err)
	assert.Equal(t, "DAB-0001", dab.Code)
}

func TestDeleteUser_RefusedWithBills(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "ramesh")
	feed := testutil.CreateFeed(t, env.db, "Cattle Feed", 85000, 0, 100, -1)

	_, err := env.bills.CreateBill(ctx, &CreateBillInput{
		UserID: user.ID,
		Items:  []BillItemInput{{FeedID: feed.ID, Quantity: 1, UnitPrice: 850}},
	})
	require.NoError(t, err)

	err = env.users.DeleteUser(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	deactivated, err := env.users.SetStatus(ctx, user.ID, enum.RecordStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, enum.RecordStatusInactive, deactivated.Status)
}

func TestUpdateUser_KeepsCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.CreateUser(ctx, &CreateUserInput{Name: "Ramesh"})
	require.NoError(t, err)

	updated, err := env.users.UpdateUser(ctx, &UpdateUserInput{
		ID:       user.ID,
		Name:     ptr("Ramesh Patil"),
		Village:  ptr("Karad"),
		Category: ptr(enum.UserCategoryDabhadi),
	})
	require.NoError(t, err)
	assert.Equal(t, "CUS-0001", updated.Code)
	assert.Equal(t, "Ramesh Patil", updated.Name)
	assert.Equal(t, enum.UserCategoryDabhadi, updated.Category)

	found, err := env.users.ListUsers(ctx, &repository.UserFilterParams{Search: "karad"})
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)
}

func TestLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "ramesh")
	feed := testutil.CreateFeed(t, env.db, "Cattle Feed", 85000, 0, 100, -1)

	bill, err := env.bills.CreateBill(ctx, &CreateBillInput{
		UserID:     user.ID,
		Items:      []BillItemInput{{FeedID: feed.ID, Quantity: 10, UnitPrice: 850}},
		PaidAmount: ptr(1000.0),
	})
	require.NoError(t, err)
	_, err = env.payments.RecordPayment(ctx, &RecordPaymentInput{BillID: bill.ID, Amount: 500})
	require.NoError(t, err)

	ledger, err := env.users.Ledger(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ledger.Balance.BillCount)
	assert.Equal(t, 8500.0, ledger.Balance.TotalBilled)
	assert.Equal(t, 1500.0, ledger.Balance.TotalPaid)
	assert.Equal(t, 7000.0, ledger.Balance.Outstanding)
	assert.Len(t, ledger.Bills.Items, 1)
	assert.Len(t, ledger.Transactions.Items, 2)
}
