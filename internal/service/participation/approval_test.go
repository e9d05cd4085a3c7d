package participation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
)

func approvalService(now time.Time) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return now },
	}
}

func contextWithClaims(t *testing.T, userID string, level employee.AccessLevel) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":      userID,
		"access_level": string(level),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestApproveAfterPayoutDate(t *testing.T) {
	// 2025-Q1 pays out Apr 15 2025.
	s := approvalService(date(2025, 4, 16))

	_, err := s.Approve(context.Background(), "sector-1", "2025-Q1")

	assert.ErrorIs(t, err, participation.ErrQuarterPaidOut)
}

func TestApproveInvalidQuarter(t *testing.T) {
	s := approvalService(date(2025, 1, 1))

	_, err := s.Approve(context.Background(), "sector-1", "2025-T1")

	assert.Error(t, err)
}

func TestApproveWithoutClaims(t *testing.T) {
	s := approvalService(date(2025, 2, 1))

	_, err := s.Approve(context.Background(), "sector-1", "2025-Q1")

	assert.Error(t, err)
}

func TestRevokeRequiresSuperAdmin(t *testing.T) {
	s := approvalService(date(2025, 2, 1))
	ctx := contextWithClaims(t, "user-1", employee.AccessManager)

	_, err := s.Revoke(ctx, "sector-1", "2025-Q1")

	assert.ErrorIs(t, err, participation.ErrSuperAdminRequired)
}

func TestRevokeAfterPayoutDate(t *testing.T) {
	s := approvalService(date(2025, 4, 16))
	ctx := contextWithClaims(t, "user-1", employee.AccessSuperAdmin)

	_, err := s.Revoke(ctx, "sector-1", "2025-Q1")

	assert.ErrorIs(t, err, participation.ErrQuarterPaidOut)
}
