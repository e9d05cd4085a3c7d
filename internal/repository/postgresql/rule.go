package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
)

type ruleRepository struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) rule.RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, pr *rule.PenaltyRule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalty_rules (
			id, indicator, period, tolerance, representativeness, subsequent_value,
			start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		pr.ID, pr.Indicator, pr.Period, pr.Tolerance, pr.Representativeness, pr.SubsequentValue,
		pr.StartDate, pr.EndDate,
	).Scan(&pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create penalty rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (*rule.PenaltyRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, indicator, period, tolerance, representativeness, subsequent_value,
			   start_date, end_date, created_at, updated_at
		FROM penalty_rules
		WHERE id = $1
	`

	var pr rule.PenaltyRule
	err := q.QueryRow(ctx, query, id).Scan(
		&pr.ID, &pr.Indicator, &pr.Period, &pr.Tolerance, &pr.Representativeness, &pr.SubsequentValue,
		&pr.StartDate, &pr.EndDate, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, rule.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get penalty rule: %w", err)
	}

	return &pr, nil
}

func (r *ruleRepository) List(ctx context.Context) ([]rule.PenaltyRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, indicator, period, tolerance, representativeness, subsequent_value,
			   start_date, end_date, created_at, updated_at
		FROM penalty_rules
		ORDER BY indicator, start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalty rules: %w", err)
	}
	defer rows.Close()

	var rules []rule.PenaltyRule
	for rows.Next() {
		var pr rule.PenaltyRule
		err := rows.Scan(
			&pr.ID, &pr.Indicator, &pr.Period, &pr.Tolerance, &pr.Representativeness, &pr.SubsequentValue,
			&pr.StartDate, &pr.EndDate, &pr.CreatedAt, &pr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan penalty rule: %w", err)
		}
		rules = append(rules, pr)
	}

	return rules, rows.Err()
}

func (r *ruleRepository) Update(ctx context.Context, pr *rule.PenaltyRule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE penalty_rules
		SET tolerance = $2, representativeness = $3, subsequent_value = $4,
			end_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		pr.ID, pr.Tolerance, pr.Representativeness, pr.SubsequentValue, pr.EndDate,
	).Scan(&pr.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rule.ErrRuleNotFound
		}
		return fmt.Errorf("failed to update penalty rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM penalty_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete penalty rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rule.ErrRuleNotFound
	}

	return nil
}
