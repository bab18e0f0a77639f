package enum

// BillStatus tracks whether a bill still counts toward stock and sales
type BillStatus string

const (
	BillStatusActive BillStatus = "active"
	BillStatusVoid   BillStatus = "void"
)

func (s BillStatus) IsValid() bool {
	return s == BillStatusActive || s == BillStatusVoid
}
