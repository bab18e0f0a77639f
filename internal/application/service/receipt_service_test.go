package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePrinter struct {
	data []byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.data = append([]byte(nil), data...)
	return nil
}

func (p *capturePrinter) Ready(context.Context) bool { return p.err == nil }

func TestPrintBill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "ramesh")
	feed := testutil.CreateFeed(t, env.db, "Cattle Feed", 85000, 0, 100, -1)

	bill, err := env.bills.CreateBill(ctx, &CreateBillInput{
		UserID: user.ID,
		Items:  []BillItemInput{{FeedID: feed.ID, Quantity: 10, UnitPrice: 850}},
	})
	require.NoError(t, err)

	p := &capturePrinter{}
	receipts := NewReceiptService(p, env.bills, "network", 32, zap.NewNop())

	inv, err := receipts.PrintBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "BILL-000001", inv.BillNumber)

	out := string(p.data)
	assert.Contains(t, out, "Gurudatta Traders")
	assert.Contains(t, out, "BILL-000001")
	assert.Contains(t, out, "10 x Cattle Feed (Test)")
	assert.Contains(t, out, "8500.00")
	assert.True(t, strings.HasPrefix(out, "\x1b@"))

	status := receipts.Status(ctx)
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
}

func TestPrintBill_PrinterErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "ramesh")
	feed := testutil.CreateFeed(t, env.db, "Cattle Feed", 85000, 0, 100, -1)
	bill, err := env.bills.CreateBill(ctx, &CreateBillInput{
		UserID: user.ID,
		Items:  []BillItemInput{{FeedID: feed.ID, Quantity: 1, UnitPrice: 850}},
	})
	require.NoError(t, err)

	unconfigured, err := printer.New(printer.Config{Type: "none"})
	require.NoError(t, err)
	_, err = NewReceiptService(unconfigured, env.bills, "none", 32, zap.NewNop()).PrintBill(ctx, bill.ID)
	assert.True(t, apperror.HasReason(err, apperror.ReasonUnavailable))

	offline := &capturePrinter{err: errors.New("connection refused")}
	_, err = NewReceiptService(offline, env.bills, "network", 32, zap.NewNop()).PrintBill(ctx, bill.ID)
	assert.True(t, apperror.HasReason(err, apperror.ReasonUnavailable))
	assert.False(t, NewReceiptService(offline, env.bills, "network", 32, zap.NewNop()).Status(ctx).Connected)
}
