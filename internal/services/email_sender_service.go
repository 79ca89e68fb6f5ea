package services

import "context"

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
	SendOrderConfirmation(ctx context.Context, toEmail, subscriptionName string, total float64) error
}
