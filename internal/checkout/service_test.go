package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/models"
)

func newTestService(t *testing.T, captureBody string, captureStatus int) *Service {
	t.Helper()
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(captureStatus, captureBody), nil
	})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(client, log)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestActivateOnCompletedCapture(t *testing.T) {
	svc := newTestService(t, `{"id": "TXN-1", "status": "COMPLETED"}`, http.StatusCreated)
	user := &models.User{Name: "Ana", Email: "ana@example.com", Tier: models.TierFree}

	capture, err := svc.Activate(context.Background(), user, "ORDER-1", "trial")
	if err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if !capture.Success {
		t.Fatal("capture not successful")
	}
	if user.Tier != models.TierPremium {
		t.Fatalf("tier = %q, want premium", user.Tier)
	}
	if user.PlanID != "trial" || user.TransactionID != "TXN-1" {
		t.Errorf("recorded plan/txn = %q/%q", user.PlanID, user.TransactionID)
	}
	if user.ActivationDate == nil || !user.ActivationDate.Equal(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("activation date = %v", user.ActivationDate)
	}
}

func TestActivateLeavesTierOnFailedCapture(t *testing.T) {
	svc := newTestService(t, `{"id": "TXN-1", "status": "DECLINED"}`, http.StatusOK)
	user := &models.User{Name: "Ana", Email: "ana@example.com", Tier: models.TierFree}

	_, err := svc.Activate(context.Background(), user, "ORDER-1", "trial")
	if !errors.Is(err, ErrCheckoutFailed) {
		t.Fatalf("error = %v, want ErrCheckoutFailed", err)
	}
	if user.Tier != models.TierFree {
		t.Fatalf("tier = %q, failed capture must not upgrade", user.Tier)
	}
	if user.TransactionID != "" || user.PlanID != "" || user.ActivationDate != nil {
		t.Errorf("failed capture recorded activation details: %+v", user)
	}
}

func TestActivateUnknownPlan(t *testing.T) {
	svc := newTestService(t, `{"id": "TXN-1", "status": "COMPLETED"}`, http.StatusOK)
	user := &models.User{Tier: models.TierFree}

	_, err := svc.Activate(context.Background(), user, "ORDER-1", "lifetime")
	if !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("error = %v, want ErrUnknownPlan", err)
	}
	if user.Tier != models.TierFree {
		t.Fatal("unknown plan changed the tier")
	}
}
