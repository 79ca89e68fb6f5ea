package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}

	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) send(ctx context.Context, toEmail, subject, html string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		HTML:    html,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send email: " + buf.String(),
		)
	}

	return nil
}

func (m *ResendMailer) SendVerificationEmail(
	ctx context.Context,
	toEmail string,
	verifyURL string,
) error {
	return m.send(ctx, toEmail, "Verify your email", `
		<p>Welcome!</p>
		<p>Please verify your email by clicking the link below:</p>
		<p><a href="`+verifyURL+`">Verify Email</a></p>
	`)
}

func (m *ResendMailer) SendPasswordResetEmail(
	ctx context.Context,
	toEmail string,
	resetURL string,
) error {
	return m.send(ctx, toEmail, "Reset your password", `
		<p>A password reset was requested for your account.</p>
		<p>Follow the link below to set a new password. The link expires in two hours.</p>
		<p><a href="`+resetURL+`">Reset Password</a></p>
		<p>If you did not request this, you can ignore this email.</p>
	`)
}

func (m *ResendMailer) SendOrderConfirmation(
	ctx context.Context,
	toEmail string,
	subscriptionName string,
	total float64,
) error {
	return m.send(ctx, toEmail, "Your order is confirmed", `
		<p>Thanks for your purchase!</p>
		<p>Plan: `+subscriptionName+`</p>
		<p>Total: `+fmt.Sprintf("%.2f", total)+`</p>
		<p>Your subscription is active. Head to your dashboard to configure your withdrawal bot.</p>
	`)
}
