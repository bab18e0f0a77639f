package enum

// TransactionType labels a ledger entry
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
)
