package rule

import "context"

type RuleRepository interface {
	Create(ctx context.Context, r *PenaltyRule) error
	GetByID(ctx context.Context, id string) (*PenaltyRule, error)
	List(ctx context.Context) ([]PenaltyRule, error)
	Update(ctx context.Context, r *PenaltyRule) error
	Delete(ctx context.Context, id string) error
}
