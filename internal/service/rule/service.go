package rule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
)

type RuleServiceImpl struct {
	ruleRepo rule.RuleRepository
}

func NewRuleService(ruleRepo rule.RuleRepository) rule.RuleService {
	return &RuleServiceImpl{ruleRepo: ruleRepo}
}

func (s *RuleServiceImpl) Create(ctx context.Context, req rule.CreateRuleRequest) (rule.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return rule.RuleResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)

	// Two rules for the same indicator starting on the same day would
	// make resolution ambiguous.
	existing, err := s.ruleRepo.List(ctx)
	if err != nil {
		return rule.RuleResponse{}, err
	}
	for i := range existing {
		if strings.EqualFold(existing[i].Indicator, req.Indicator) && existing[i].StartDate.Equal(start) {
			return rule.RuleResponse{}, rule.ErrRuleWindowOverlap
		}
	}

	r := &rule.PenaltyRule{
		ID:                 uuid.NewString(),
		Indicator:          req.Indicator,
		Period:             req.Period,
		Tolerance:          req.Tolerance,
		Representativeness: req.Representativeness,
		SubsequentValue:    req.SubsequentValue,
		StartDate:          start,
	}
	if req.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		r.EndDate = &end
	}

	if err := s.ruleRepo.Create(ctx, r); err != nil {
		return rule.RuleResponse{}, err
	}

	return rule.ToResponse(r), nil
}

func (s *RuleServiceImpl) GetByID(ctx context.Context, id string) (rule.RuleResponse, error) {
	r, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return rule.RuleResponse{}, err
	}
	return rule.ToResponse(r), nil
}

func (s *RuleServiceImpl) List(ctx context.Context) ([]rule.RuleResponse, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]rule.RuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, rule.ToResponse(&rules[i]))
	}
	return responses, nil
}

func (s *RuleServiceImpl) Update(ctx context.Context, req rule.UpdateRuleRequest) (rule.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return rule.RuleResponse{}, err
	}

	r, err := s.ruleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return rule.RuleResponse{}, err
	}

	if req.Tolerance != nil {
		r.Tolerance = *req.Tolerance
	}
	if req.Representativeness != nil {
		r.Representativeness = *req.Representativeness
	}
	if req.SubsequentValue != nil {
		r.SubsequentValue = *req.SubsequentValue
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			r.EndDate = nil
		} else {
			end, _ := time.Parse("2006-01-02", *req.EndDate)
			r.EndDate = &end
		}
	}

	if err := s.ruleRepo.Update(ctx, r); err != nil {
		return rule.RuleResponse{}, err
	}

	return rule.ToResponse(r), nil
}

func (s *RuleServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.ruleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.ruleRepo.Delete(ctx, id)
}
