package mailing

import (
	"blood-portal/internal/utils"
	"context"
)

// NewMailer picks the transport named by MAIL_DRIVER (smtp by default).
func NewMailer(ctx context.Context) (Mailer, error) {
	switch utils.GetConfig("MAIL_DRIVER") {
	case "ses":
		return NewSESMailer(ctx, utils.GetConfig("SES_REGION"), utils.GetConfig("SES_FROM_EMAIL"))
	default:
		return NewSMTPMailer(LoadMailConfig()), nil
	}
}
