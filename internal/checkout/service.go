package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/models"
)

// ErrCheckoutFailed marks a capture that did not complete. The user's tier
// is never changed on this path.
var ErrCheckoutFailed = errors.New("checkout failed")

// Service drives the capture-and-activate flow after the buyer returns from
// PayPal approval.
type Service struct {
	client *Client
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(client *Client, log *logrus.Logger) *Service {
	return &Service{client: client, log: log, now: time.Now}
}

// Activate captures the approved order and, only on a COMPLETED capture,
// upgrades the user to premium with the transaction details recorded. Any
// other outcome returns ErrCheckoutFailed and leaves the user untouched.
func (s *Service) Activate(ctx context.Context, user *models.User, orderID, planID string) (*Capture, error) {
	if _, err := PlanByID(planID); err != nil {
		return nil, err
	}

	capture, err := s.client.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if !capture.Success {
		s.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   capture.Status,
		}).Warn("Capture did not complete")
		return capture, fmt.Errorf("%w: capture status %s", ErrCheckoutFailed, capture.Status)
	}

	user.Activate(planID, capture.TransactionID, s.now())
	s.log.WithFields(logrus.Fields{
		"email":          user.Email,
		"plan_id":        planID,
		"transaction_id": capture.TransactionID,
	}).Info("Premium activated")
	return capture, nil
}
