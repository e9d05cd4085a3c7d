package rule

import "context"

type RuleService interface {
	Create(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	GetByID(ctx context.Context, id string) (RuleResponse, error)
	List(ctx context.Context) ([]RuleResponse, error)
	Update(ctx context.Context, req UpdateRuleRequest) (RuleResponse, error)
	Delete(ctx context.Context, id string) error
}
