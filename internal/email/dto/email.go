package dto

import emaildomain "jobtracker-backend/internal/email/domain"

type EmailsResponse struct {
	Emails []*emaildomain.EmailSummary `json:"emails"`
}
