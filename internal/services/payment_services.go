package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	mt "github.com/Dowody/rw-sub000/external/midtrans"
	"github.com/Dowody/rw-sub000/internal/repository"
)

type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	OrderRepo   *repository.OrderRepository
	UserRepo    *repository.UserRepository
	Snap        *snap.Client
	ServerKey   string
}

func NewPaymentService(
	pr *repository.PaymentRepository,
	or *repository.OrderRepository,
	ur *repository.UserRepository,
	snapClient *snap.Client,
	serverKey string,
) *PaymentService {
	return &PaymentService{
		PaymentRepo: pr,
		OrderRepo:   or,
		UserRepo:    ur,
		Snap:        snapClient,
		ServerKey:   serverKey,
	}
}

// CreateSnapPayment creates a hosted payment page for an order and
// returns its redirect URL.
func (s *PaymentService) CreateSnapPayment(ctx context.Context, orderID, authID int64) (string, error) {
	profile, err := s.UserRepo.GetByAuthID(ctx, authID)
	if err != nil || profile == nil {
		return "", errors.New("profile not found")
	}

	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return "", errors.New("order not found")
	}
	if order.UserID != profile.UserID {
		return "", errors.New("forbidden")
	}

	existing, err := s.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.PaymentStatus == "Pending" {
		return "", errors.New("payment already exists")
	}

	externalRef := fmt.Sprintf("ORDER-%d-%s", orderID, uuid.NewString())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: int64(order.TotalAmount),
		},
	}

	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", snapErr
	}

	payload, _ := json.Marshal(resp)

	if _, err := s.PaymentRepo.CreatePending(
		ctx,
		orderID,
		order.TotalAmount,
		"midtrans",
		externalRef,
		payload,
	); err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}

// HandleNotification processes a Midtrans server-to-server notification:
// verify the signature, then settle or fail the payment. Repeated
// notifications for a settled payment are ignored.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderIDStr, ok := payload["order_id"].(string)
	if !ok {
		return errors.New("missing order_id")
	}

	// extract internal order ID from ORDER-{id}-UUID
	var orderID int64
	if _, err := fmt.Sscanf(orderIDStr, "ORDER-%d-", &orderID); err != nil {
		return errors.New("invalid order reference")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(orderIDStr, statusCode, grossAmount, signature, s.ServerKey) {
		return errors.New("invalid signature")
	}

	existing, err := s.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("payment not found")
	}
	if existing.PaymentStatus == "Paid" {
		// already processed, safely ignore
		return nil
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.markPaid(ctx, orderID, payload)
	case "capture":
		if fraudStatus == "accept" {
			return s.markPaid(ctx, orderID, payload)
		}
	case "expire", "cancel", "deny":
		return s.markFailed(ctx, orderID, payload)
	}

	return nil
}

func (s *PaymentService) markPaid(ctx context.Context, orderID int64, payload map[string]interface{}) error {
	data, _ := json.Marshal(payload)
	providerRef, _ := payload["transaction_id"].(string)

	tx, err := s.PaymentRepo.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.PaymentRepo.MarkPaidTx(ctx, tx, orderID, providerRef, "midtrans", data); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PaymentService) markFailed(ctx context.Context, orderID int64, payload map[string]interface{}) error {
	data, _ := json.Marshal(payload)

	if err := s.OrderRepo.MarkFailed(ctx, orderID); err != nil {
		return err
	}
	return s.PaymentRepo.MarkFailed(ctx, orderID, data)
}
