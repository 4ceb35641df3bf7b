package models

import "time"

// BaseModel holds the primary key and bookkeeping timestamps shared by
// every table.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaginationQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

type PaginationResult struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewPaginationResult creates a pagination envelope for list responses.
func NewPaginationResult(total int64, page, pageSize int) *PaginationResult {
	return &PaginationResult{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
