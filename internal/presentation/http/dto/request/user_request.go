package request

// CreateUserRequest represents a customer creation request
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,max=255"`
	Address  *string `json:"address"`
	Village  *string `json:"village" binding:"omitempty,max=255"`
	Category string  `json:"category" binding:"omitempty,oneof=customer bmc dabhadi"`
}

// UpdateUserRequest represents a customer update request
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,max=255"`
	Address  *string `json:"address"`
	Village  *string `json:"village" binding:"omitempty,max=255"`
	Category *string `json:"category" binding:"omitempty,oneof=customer bmc dabhadi"`
}

// UpdateStatusRequest activates or deactivates a record
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// UserFilterRequest represents customer list filters
type UserFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,oneof=customer bmc dabhadi"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
