package domain

import "time"

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
)

func (s InquiryStatus) Valid() bool {
	return s == InquiryStatusNew || s == InquiryStatusInProgress || s == InquiryStatusResolved
}

type Inquiry struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	CompanyName string        `json:"company_name,omitempty"`
	Message     string        `json:"message"`
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
