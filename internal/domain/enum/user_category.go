package enum

// UserCategory classifies a customer record
type UserCategory string

const (
	UserCategoryCustomer UserCategory = "customer"
	UserCategoryBMC      UserCategory = "bmc"
	UserCategoryDabhadi  UserCategory = "dabhadi"
)

func (c UserCategory) IsValid() bool {
	switch c {
	case UserCategoryCustomer, UserCategoryBMC, UserCategoryDabhadi:
		return true
	}
	return false
}

// CodePrefix returns the prefix used when generating user codes
func (c UserCategory) CodePrefix() string {
	switch c {
	case UserCategoryBMC:
		return "BMC"
	case UserCategoryDabhadi:
		return "DAB"
	default:
		return "CUS"
	}
}
