package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, source, last_updated, next_update`

func (r *PGRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	query := `
SELECT ` + insightColumns + `
FROM industry_insights
WHERE industry = $1
LIMIT 1`
	var insight IndustryInsight
	var salaries, topSkills, trends, recommended []byte
	err := r.DB.QueryRowContext(ctx, query, industry).Scan(
		&insight.ID,
		&insight.Industry,
		&salaries,
		&insight.GrowthRate,
		&insight.DemandLevel,
		&topSkills,
		&insight.MarketOutlook,
		&trends,
		&recommended,
		&insight.Source,
		&insight.LastUpdated,
		&insight.NextUpdate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return IndustryInsight{}, ErrNotFound
		}
		return IndustryInsight{}, err
	}
	if err := decodeJSON(salaries, &insight.SalaryRanges); err != nil {
		return IndustryInsight{}, fmt.Errorf("decode salary_ranges: %w", err)
	}
	if err := decodeJSON(topSkills, &insight.TopSkills); err != nil {
		return IndustryInsight{}, fmt.Errorf("decode top_skills: %w", err)
	}
	if err := decodeJSON(trends, &insight.KeyTrends); err != nil {
		return IndustryInsight{}, fmt.Errorf("decode key_trends: %w", err)
	}
	if err := decodeJSON(recommended, &insight.RecommendedSkills); err != nil {
		return IndustryInsight{}, fmt.Errorf("decode recommended_skills: %w", err)
	}
	return insight, nil
}

func (r *PGRepo) CreateIfAbsent(ctx context.Context, insight IndustryInsight) (IndustryInsight, error) {
	salaries, err := json.Marshal(insight.SalaryRanges)
	if err != nil {
		return IndustryInsight{}, err
	}
	topSkills, err := json.Marshal(insight.TopSkills)
	if err != nil {
		return IndustryInsight{}, err
	}
	trends, err := json.Marshal(insight.KeyTrends)
	if err != nil {
		return IndustryInsight{}, err
	}
	recommended, err := json.Marshal(insight.RecommendedSkills)
	if err != nil {
		return IndustryInsight{}, err
	}

	const query = `
INSERT INTO industry_insights (id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, source, last_updated, next_update)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (industry) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query,
		insight.ID,
		insight.Industry,
		salaries,
		insight.GrowthRate,
		insight.DemandLevel,
		topSkills,
		insight.MarketOutlook,
		trends,
		recommended,
		insight.Source,
		insight.LastUpdated,
		insight.NextUpdate,
	); err != nil {
		return IndustryInsight{}, fmt.Errorf("insert industry insight: %w", err)
	}
	return r.GetByIndustry(ctx, insight.Industry)
}

func decodeJSON(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
