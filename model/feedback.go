package model

import "time"

type Feedback struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// FeedbackReq is the customer feedback form.
// swagger:model FeedbackReq
type FeedbackReq struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}
