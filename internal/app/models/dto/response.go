package dto

import "time"

// APIResponse is the envelope for every successful JSON response
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// IDParam binds a positive numeric `:id` path segment
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
