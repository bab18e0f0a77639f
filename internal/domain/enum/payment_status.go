package enum

// PaymentStatus is the settlement state of a bill
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus is the single rule mapping amounts to a status:
// fully paid is paid, nothing paid is pending, anything between is partial.
// A zero-total bill has nothing pending and is paid.
func DerivePaymentStatus(total, paid int64) PaymentStatus {
	switch {
	case paid >= total:
		return PaymentStatusPaid
	case paid <= 0:
		return PaymentStatusPending
	default:
		return PaymentStatusPartial
	}
}
