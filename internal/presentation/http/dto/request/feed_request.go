package request

// CreateFeedRequest represents a feed creation request
type CreateFeedRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	Brand         string  `json:"brand" binding:"omitempty,max=255"`
	Weight        float64 `json:"weight" binding:"gte=0"`
	Price         float64 `json:"price" binding:"gte=0"`
	ShopStock     int     `json:"shop_stock" binding:"gte=0"`
	GodownStock   int     `json:"godown_stock" binding:"gte=0"`
	LowStockAlert int     `json:"low_stock_alert" binding:"gte=0"`
}

// UpdateFeedRequest represents a feed update request
type UpdateFeedRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Brand         *string  `json:"brand" binding:"omitempty,max=255"`
	Weight        *float64 `json:"weight" binding:"omitempty,gte=0"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	ShopStock     *int     `json:"shop_stock" binding:"omitempty,gte=0"`
	GodownStock   *int     `json:"godown_stock" binding:"omitempty,gte=0"`
	LowStockAlert *int     `json:"low_stock_alert" binding:"omitempty,gte=0"`
	Status        *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// FeedFilterRequest represents feed list filters
type FeedFilterRequest struct {
	Search          string `form:"search"`
	Brand           string `form:"brand"`
	LowStock        bool   `form:"low_stock"`
	IncludeInactive bool   `form:"include_inactive"`
	SortBy          string `form:"sort_by"`
	SortOrder       string `form:"sort_order"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
