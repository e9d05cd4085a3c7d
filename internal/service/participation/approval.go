package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
)

type ApprovalServiceImpl struct {
	runInTx      database.TxRunner
	logger       *slog.Logger
	approvalRepo participation.ApprovalRepository
	recordRepo   participation.RecordRepository

	now func() time.Time
}

func NewApprovalService(
	runInTx database.TxRunner,
	logger *slog.Logger,
	approvalRepo participation.ApprovalRepository,
	recordRepo participation.RecordRepository,
) participation.ApprovalService {
	return &ApprovalServiceImpl{
		runInTx:      runInTx,
		logger:       logger,
		approvalRepo: approvalRepo,
		recordRepo:   recordRepo,
		now:          time.Now,
	}
}

// getClaimsFromContext pulls the caller's identity off the JWT.
func getClaimsFromContext(ctx context.Context) (userID string, accessLevel employee.AccessLevel, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	level, _ := claims["access_level"].(string)

	return userID, employee.AccessLevel(level), nil
}

func (s *ApprovalServiceImpl) Approve(ctx context.Context, sectorID, quarter string) (participation.ApprovalResponse, error) {
	payoutDate, err := trimester.PayoutDate(quarter)
	if err != nil {
		return participation.ApprovalResponse{}, err
	}
	if s.now().After(payoutDate) {
		return participation.ApprovalResponse{}, participation.ErrQuarterPaidOut
	}

	userID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return participation.ApprovalResponse{}, err
	}

	var result *participation.SectorApproval

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		records, err := s.recordRepo.ListBySectorAndQuarter(txCtx, sectorID, quarter)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return participation.ErrNoRecordsToApprove
		}

		approval, err := s.approvalRepo.GetBySectorAndQuarter(txCtx, sectorID, quarter)
		if err != nil && !errors.Is(err, participation.ErrApprovalNotFound) {
			return err
		}
		if approval == nil {
			approval = &participation.SectorApproval{
				ID:       uuid.NewString(),
				SectorID: sectorID,
				Quarter:  quarter,
				Status:   participation.StatusPending,
			}
		}
		if approval.Status == participation.StatusApproved || approval.Status == participation.StatusPaid {
			return participation.ErrAlreadyApproved
		}

		now := s.now()
		approval.Status = participation.StatusApproved
		approval.ApprovedBy = &userID
		approval.ApprovedAt = &now

		if err := s.approvalRepo.Upsert(txCtx, approval); err != nil {
			return err
		}

		locked, err := s.recordRepo.SetEditable(txCtx, sectorID, quarter, false)
		if err != nil {
			return err
		}
		s.logger.Info("sector approved", "sector_id", sectorID, "quarter", quarter, "locked_records", locked)

		result = approval
		return nil
	})
	if err != nil {
		return participation.ApprovalResponse{}, err
	}

	return participation.ToApprovalResponse(result), nil
}

func (s *ApprovalServiceImpl) Revoke(ctx context.Context, sectorID, quarter string) (participation.ApprovalResponse, error) {
	_, accessLevel, err := getClaimsFromContext(ctx)
	if err != nil {
		return participation.ApprovalResponse{}, err
	}
	if accessLevel != employee.AccessSuperAdmin {
		return participation.ApprovalResponse{}, participation.ErrSuperAdminRequired
	}

	payoutDate, err := trimester.PayoutDate(quarter)
	if err != nil {
		return participation.ApprovalResponse{}, err
	}
	if s.now().After(payoutDate) {
		return participation.ApprovalResponse{}, participation.ErrQuarterPaidOut
	}

	var result *participation.SectorApproval

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		approval, err := s.approvalRepo.GetBySectorAndQuarter(txCtx, sectorID, quarter)
		if err != nil {
			return err
		}
		if approval.Status != participation.StatusApproved {
			return participation.ErrNotApproved
		}

		approval.Status = participation.StatusPending
		approval.ApprovedBy = nil
		approval.ApprovedAt = nil

		if err := s.approvalRepo.Upsert(txCtx, approval); err != nil {
			return err
		}

		unlocked, err := s.recordRepo.SetEditable(txCtx, sectorID, quarter, true)
		if err != nil {
			return err
		}
		s.logger.Info("sector approval revoked", "sector_id", sectorID, "quarter", quarter, "unlocked_records", unlocked)

		result = approval
		return nil
	})
	if err != nil {
		return participation.ApprovalResponse{}, err
	}

	return participation.ToApprovalResponse(result), nil
}

func (s *ApprovalServiceImpl) ListByQuarter(ctx context.Context, quarter string) ([]participation.ApprovalResponse, error) {
	approvals, err := s.approvalRepo.ListByQuarter(ctx, quarter)
	if err != nil {
		return nil, err
	}
	responses := make([]participation.ApprovalResponse, 0, len(approvals))
	for i := range approvals {
		responses = append(responses, participation.ToApprovalResponse(&approvals[i]))
	}
	return responses, nil
}
