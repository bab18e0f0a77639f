package enum

// RecordStatus is the active/inactive flag shared by users and feeds
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

func (s RecordStatus) IsValid() bool {
	return s == RecordStatusActive || s == RecordStatusInactive
}
