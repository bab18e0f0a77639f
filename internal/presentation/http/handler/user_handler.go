package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/request"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
)

// UserHandler handles customer HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing customers
func (h *UserHandler) List(c *gin.Context) {
	var filter request.UserFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	params := &repository.UserFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Category != "" {
		category := enum.UserCategory(filter.Category)
		params.Category = &category
	}
	if filter.Status != "" {
		status := enum.RecordStatus(filter.Status)
		params.Status = &status
	}

	result, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Users retrieved successfully", result)
}

// Create handles creating a customer
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Village:  req.Village,
		Category: enum.UserCategory(req.Category),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// Get handles getting a single customer
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// Update handles updating a customer
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.UpdateUserInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Village: req.Village,
	}
	if req.Category != nil {
		category := enum.UserCategory(*req.Category)
		input.Category = &category
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", user)
}

// UpdateStatus activates or deactivates a customer
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.SetStatus(c.Request.Context(), id, enum.RecordStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User status updated successfully", user)
}

// Delete handles deleting a customer without bills
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Ledger returns the customer's balance with a page of bills and payments
func (h *UserHandler) Ledger(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	var page struct {
		Page    int `form:"page"`
		PerPage int `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}

	ledger, err := h.userService.Ledger(c.Request.Context(), id, pageParams(page.Page, page.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger retrieved successfully", ledger)
}
