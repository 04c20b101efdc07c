package order

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// PaymentStatus of a payment record. No gateway exists, so every payment is SUCCESS.
type PaymentStatus string

const PaymentSucceeded PaymentStatus = "SUCCESS"

// Payment is created together with its order and never changes afterwards.
type Payment struct {
	id            kernel.UUID
	amount        kernel.Money
	status        PaymentStatus
	transactionID string
	createdAt     time.Time
}

func newPayment(orderID kernel.UUID, amount kernel.Money, at time.Time) Payment {
	return Payment{
		id:            kernel.NewUUID(),
		amount:        amount,
		status:        PaymentSucceeded,
		transactionID: fmt.Sprintf("TXN_%d_%s", at.UnixMilli(), orderID),
		createdAt:     at,
	}
}

// RestorePayment rebuilds a stored payment.
func RestorePayment(id kernel.UUID, amount kernel.Money, status PaymentStatus, transactionID string, createdAt time.Time) Payment {
	return Payment{
		id:            id,
		amount:        amount,
		status:        status,
		transactionID: transactionID,
		createdAt:     createdAt,
	}
}

func (p Payment) ID() kernel.UUID {
	return p.id
}

func (p Payment) Amount() kernel.Money {
	return p.amount
}

func (p Payment) Status() PaymentStatus {
	return p.status
}

func (p Payment) TransactionID() string {
	return p.transactionID
}

func (p Payment) CreatedAt() time.Time {
	return p.createdAt
}
