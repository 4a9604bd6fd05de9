// Package wellness is the read-only data layer behind the assistant's
// capabilities: health metrics, goals, meal plans, recipes, and nutrition
// summaries.
package wellness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wellspring-ai/wellspring/internal/logging"
	"github.com/wellspring-ai/wellspring/internal/store"
)

// Service answers capability queries from the SQLite data layer.
type Service struct {
	db  *store.DB
	log *logging.Logger
}

// NewService creates a wellness data service.
func NewService(db *store.DB, log *logging.Logger) *Service {
	return &Service{db: db, log: log.Component("wellness")}
}

// Metric is one recorded health measurement.
type Metric struct {
	Type       string  `json:"metric_type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordedAt string  `json:"recorded_at"`
}

// Goal is one wellness goal.
type Goal struct {
	Type     string  `json:"goal_type"`
	Target   float64 `json:"target"`
	Unit     string  `json:"unit"`
	Deadline string  `json:"deadline,omitempty"`
	Status   string  `json:"status"`
}

// Meal is one planned meal.
type Meal struct {
	Slot     string  `json:"slot"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Recipe is one recipe search hit.
type Recipe struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	Tags        string  `json:"tags,omitempty"`
}

// periodCutoff maps a time_period argument to a lower bound on recorded_at.
// An empty string means no bound (the period covers everything).
func periodCutoff(period string, now time.Time) string {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1).Format(time.DateTime)
	case "week":
		return now.AddDate(0, 0, -7).Format(time.DateTime)
	case "month":
		return now.AddDate(0, -1, 0).Format(time.DateTime)
	default:
		return ""
	}
}

// Metrics returns measurements of one type for a user. Period "current"
// returns only the latest reading; other periods return the bounded series,
// most recent first.
func (s *Service) Metrics(ctx context.Context, userID, metricType, period string) ([]Metric, error) {
	query := `SELECT metric_type, value, unit, recorded_at FROM health_metrics
		WHERE user_id = ? AND metric_type = ?`
	args := []any{userID, metricType}

	if cutoff := periodCutoff(period, time.Now()); cutoff != "" {
		query += ` AND recorded_at >= ?`
		args = append(args, cutoff)
	}
	query += ` ORDER BY recorded_at DESC`
	if period == "" || period == "current" {
		query += ` LIMIT 1`
	}

	rows, err := s.db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying metrics: %w", err)
	}
	defer rows.Close()

	var out []Metric
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.Type, &m.Value, &m.Unit, &m.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning metric: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Goals returns a user's active goals.
func (s *Service) Goals(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := s.db.SQL().QueryContext(ctx,
		`SELECT goal_type, target, unit, deadline, status FROM goals
		 WHERE user_id = ? AND status = 'active' ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.Type, &g.Target, &g.Unit, &g.Deadline, &g.Status); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// MealPlan returns the meals planned for a user on a calendar date
// (YYYY-MM-DD).
func (s *Service) MealPlan(ctx context.Context, userID, date string) ([]Meal, error) {
	rows, err := s.db.SQL().QueryContext(ctx,
		`SELECT slot, name, calories, protein_g, carbs_g, fat_g FROM meals
		 WHERE user_id = ? AND plan_date = ? ORDER BY id`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("querying meal plan: %w", err)
	}
	defer rows.Close()

	var out []Meal
	for rows.Next() {
		var m Meal
		if err := rows.Scan(&m.Slot, &m.Name, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG); err != nil {
			return nil, fmt.Errorf("scanning meal: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SearchRecipes runs a full-text search over the recipe catalog.
func (s *Service) SearchRecipes(ctx context.Context, query string, limit int) ([]Recipe, error) {
	if limit < 1 || limit > 25 {
		limit = 5
	}
	fts := ftsQuery(query)
	if fts == "" {
		return nil, nil
	}

	rows, err := s.db.SQL().QueryContext(ctx,
		`SELECT r.name, r.description, r.calories, r.protein_g, r.tags
		 FROM recipes_fts f JOIN recipes r ON r.id = f.rowid
		 WHERE recipes_fts MATCH ? ORDER BY rank LIMIT ?`, fts, limit)
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.Name, &r.Description, &r.Calories, &r.ProteinG, &r.Tags); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ftsQuery quotes each term so user input can't inject FTS5 operators.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}

// NutritionSummary aggregates the planned macros for a user on one date.
func (s *Service) NutritionSummary(ctx context.Context, userID, date string) (map[string]any, error) {
	var calories int
	var protein, carbs, fat float64
	var mealCount int
	err := s.db.SQL().QueryRowContext(ctx,
		`SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein_g), 0),
			COALESCE(SUM(carbs_g), 0), COALESCE(SUM(fat_g), 0), COUNT(*)
		 FROM meals WHERE user_id = ? AND plan_date = ?`, userID, date,
	).Scan(&calories, &protein, &carbs, &fat, &mealCount)
	if err != nil {
		return nil, fmt.Errorf("summarizing nutrition: %w", err)
	}

	return map[string]any{
		"date":       date,
		"meal_count": mealCount,
		"calories":   calories,
		"protein_g":  protein,
		"carbs_g":    carbs,
		"fat_g":      fat,
	}, nil
}

// ChartSeries returns chart-ready points for one metric over the last N
// days, oldest first.
func (s *Service) ChartSeries(ctx context.Context, userID, metricType string, days int) (map[string]any, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.DateTime)

	rows, err := s.db.SQL().QueryContext(ctx,
		`SELECT recorded_at, value FROM health_metrics
		 WHERE user_id = ? AND metric_type = ? AND recorded_at >= ?
		 ORDER BY recorded_at ASC`, userID, metricType, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying chart series: %w", err)
	}
	defer rows.Close()

	labels := []string{}
	values := []float64{}
	for rows.Next() {
		var at string
		var v float64
		if err := rows.Scan(&at, &v); err != nil {
			return nil, fmt.Errorf("scanning chart point: %w", err)
		}
		labels = append(labels, at)
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return map[string]any{
		"metric_type": metricType,
		"days":        days,
		"labels":      labels,
		"values":      values,
	}, nil
}
