package investments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"investment-app/internal/domain/membership"
	"investment-app/internal/infra/lock"
	"investment-app/internal/infra/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns the read-validate-write cycle for a user's investments.
type Service struct {
	db     *gorm.DB
	engine *membership.Engine
	locker lock.Locker
	log    *zap.Logger
}

func NewService(db *gorm.DB, engine *membership.Engine, locker lock.Locker, log *zap.Logger) *Service {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, engine: engine, locker: locker, log: log}
}

func (s *Service) Engine() *membership.Engine { return s.engine }

type CreateInput struct {
	Name   string
	Amount float64
	Rate   float64
	Term   int // months
}

// TotalInvested sums every recorded investment amount of a user.
func (s *Service) TotalInvested(ctx context.Context, userID string) (float64, error) {
	return totalInvested(s.db.WithContext(ctx), userID)
}

func totalInvested(db *gorm.DB, userID string) (float64, error) {
	var total float64
	err := db.Model(&Investment{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum investments: %w", err)
	}
	return total, nil
}

// Status resolves the user's membership from their current total.
func (s *Service) Status(ctx context.Context, userID string) (membership.Status, error) {
	total, err := s.TotalInvested(ctx, userID)
	if err != nil {
		return membership.Status{}, err
	}
	return s.engine.Resolve(total), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Investment, error) {
	list := []Investment{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return list, nil
}

// Create validates and records an investment. Concurrent calls for the same user are
// serialized, so each one is validated against the total left by the previous one.
// A refused request returns a *membership.RejectionError and writes nothing.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Investment, error) {
	release, err := s.locker.Lock(ctx, "investments:"+userID)
	if err != nil {
		return nil, fmt.Errorf("lock user investments: %w", err)
	}
	defer release()

	var created *Investment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Error; err != nil {
				return fmt.Errorf("advisory lock: %w", err)
			}
		}

		total, err := totalInvested(tx, userID)
		if err != nil {
			return err
		}
		status := s.engine.Resolve(total)

		plan, err := s.engine.Validate(status, membership.InvestmentRequest{
			Amount:     in.Amount,
			Rate:       in.Rate,
			TermMonths: in.Term,
		})
		if err != nil {
			return err
		}

		inv := Investment{
			UserID:          userID,
			Name:            strings.TrimSpace(in.Name),
			Amount:          in.Amount,
			Rate:            plan.Rate,
			Term:            in.Term,
			TermDays:        plan.TermDays,
			PlanID:          plan.ID,
			MembershipLevel: string(status.Level),
			Status:          StatusActive,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("insert investment: %w", err)
		}
		created = &inv
		return nil
	})

	var rej *membership.RejectionError
	switch {
	case errors.As(err, &rej):
		metrics.InvestmentRejected(string(rej.Reason))
		s.log.Info("investment rejected",
			zap.String("user_id", userID),
			zap.String("reason", string(rej.Reason)),
			zap.Float64("amount", in.Amount))
		return nil, err
	case err != nil:
		s.log.Error("investment failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	metrics.InvestmentCreated(created.MembershipLevel)
	s.log.Info("investment created",
		zap.String("user_id", userID),
		zap.String("investment_id", created.ID),
		zap.String("plan_id", created.PlanID),
		zap.Float64("amount", created.Amount))
	return created, nil
}
