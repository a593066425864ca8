package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"opsdash/internal/caching"
	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"
	"opsdash/internal/repositories"
	"opsdash/internal/stats"
	"opsdash/internal/transform"

	"github.com/google/uuid"
)

type PaymentService interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.PaymentView, int, error)
	GetByID(ctx context.Context, id string) (*models.PaymentView, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentView, error)
	Create(ctx context.Context, in *models.CreatePaymentInput) (*models.PaymentView, error)
	Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (*models.PaymentView, error)
	Delete(ctx context.Context, id string) (*models.PaymentView, error)
}

type paymentService struct {
	paymentRepo   repositories.PaymentRepository
	counters      counterSync
	transactionID func() string
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, aggregator stats.Aggregator, cacheService caching.CacheService) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		counters:      counterSync{aggregator: aggregator, cache: cacheService},
		transactionID: NewTransactionID,
	}
}

// NewTransactionID returns TXN<unix-ms>-<12 hex chars>. The random part
// comes from a v4 UUID, so ids minted in the same millisecond still differ;
// the store's unique constraint is the final guard.
func NewTransactionID() string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("TXN%d-%s", time.Now().UnixMilli(), random[:12])
}

func (s *paymentService) List(ctx context.Context, opts query.ListOptions) ([]models.PaymentView, int, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, 0, err
	}
	recs, total, err := s.paymentRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return transform.Payments(recs), total, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*models.PaymentView, error) {
	rec, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Payment(rec)
	return &view, nil
}

func (s *paymentService) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentView, error) {
	if err := common.ValidateRequiredString(transactionID, "transactionId"); err != nil {
		return nil, err
	}
	rec, err := s.paymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	view := transform.Payment(rec)
	return &view, nil
}

func (s *paymentService) Create(ctx context.Context, in *models.CreatePaymentInput) (*models.PaymentView, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if err := common.ValidateRequiredString(in.CustomerName, "customerName"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.PaymentMethod, "paymentMethod"); err != nil {
		return nil, err
	}
	if in.Amount == nil {
		return nil, common.NewValidationError("amount", "amount is required")
	}
	if *in.Amount < 0 || math.IsNaN(*in.Amount) || math.IsInf(*in.Amount, 0) {
		return nil, common.NewValidationError("amount", "must be a non-negative number")
	}
	amount := math.Round(*in.Amount*100) / 100
	in.Amount = &amount

	if in.Status == "" {
		in.Status = models.PaymentPending
	}
	if err := common.ValidateOneOf(in.Status, "status", models.PaymentStatuses...); err != nil {
		return nil, err
	}
	if in.Status != models.PaymentFailed {
		in.FailureReason = nil
	}
	if in.Date != nil && *in.Date != "" {
		if err := common.ValidateDateFormat(*in.Date, "date"); err != nil {
			return nil, err
		}
	}

	in.TransactionID = trimmedOrNil(in.TransactionID)
	if in.TransactionID == nil {
		txn := s.transactionID()
		in.TransactionID = &txn
	}
	in.UserID = trimmedOrNil(in.UserID)
	in.AppointmentID = trimmedOrNil(in.AppointmentID)
	in.Date = trimmedOrNil(in.Date)
	in.Timestamp = trimmedOrNil(in.Timestamp)

	rec, err := s.paymentRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.counters.refresh(ctx, in.UserID)

	view := transform.Payment(rec)
	return &view, nil
}

// Update changes status, refund status or failure reason. A failure reason
// is only accepted together with the failed status.
func (s *paymentService) Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (*models.PaymentView, error) {
	if in.Status != nil {
		if err := common.ValidateOneOf(*in.Status, "status", models.PaymentStatuses...); err != nil {
			return nil, err
		}
	}
	if in.FailureReason != nil && (in.Status == nil || *in.Status != models.PaymentFailed) {
		return nil, common.NewValidationError("failureReason", "only allowed when status is failed")
	}

	rec, err := s.paymentRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	view := transform.Payment(rec)
	if in.Status != nil {
		// failure tallies and dashboard totals depend on status
		s.counters.refresh(ctx, view.UserID)
	}
	return &view, nil
}

func (s *paymentService) Delete(ctx context.Context, id string) (*models.PaymentView, error) {
	rec, err := s.paymentRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Payment(rec)
	s.counters.refresh(ctx, view.UserID)
	return &view, nil
}
