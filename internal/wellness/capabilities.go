package wellness

import (
	"context"

	"github.com/wellspring-ai/wellspring/internal/capability"
	"github.com/wellspring-ai/wellspring/internal/domain"
)

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, fallback int) int {
	// JSON numbers decode as float64.
	if f, ok := args[key].(float64); ok {
		return int(f)
	}
	return fallback
}

// RegisterCapabilities exposes the wellness data layer through the
// capability registry. All capabilities are read-only.
func (s *Service) RegisterCapabilities(reg *capability.Registry) {
	reg.Register(domain.FunctionDeclaration{
		Name:        "get_health_metrics",
		Description: "Fetch the user's recorded health metrics, such as weight, steps, sleep or heart rate.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"metric_type": map[string]any{
					"type":        "string",
					"description": "Which metric to fetch, e.g. weight, steps, sleep_hours, resting_hr.",
				},
				"time_period": map[string]any{
					"type":        "string",
					"enum":        []string{"current", "day", "week", "month"},
					"description": "current returns only the latest reading.",
				},
			},
			"required": []string{"metric_type"},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		metrics, err := s.Metrics(ctx, inv.UserID, stringArg(args, "metric_type"), stringArg(args, "time_period"))
		if err != nil {
			return nil, err
		}
		return map[string]any{"metrics": metrics}, nil
	})

	reg.Register(domain.FunctionDeclaration{
		Name:        "get_goals",
		Description: "Fetch the user's active wellness goals.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		goals, err := s.Goals(ctx, inv.UserID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"goals": goals}, nil
	})

	reg.Register(domain.FunctionDeclaration{
		Name:        "get_meal_plan",
		Description: "Fetch the user's planned meals for a calendar date.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{
					"type":        "string",
					"description": "Calendar date in YYYY-MM-DD form.",
				},
			},
			"required": []string{"date"},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		meals, err := s.MealPlan(ctx, inv.UserID, stringArg(args, "date"))
		if err != nil {
			return nil, err
		}
		return map[string]any{"date": stringArg(args, "date"), "meals": meals}, nil
	})

	reg.Register(domain.FunctionDeclaration{
		Name:        "search_recipes",
		Description: "Full-text search over the recipe catalog.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
				"limit": map[string]any{"type": "integer", "description": "Max results, default 5."},
			},
			"required": []string{"query"},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		recipes, err := s.SearchRecipes(ctx, stringArg(args, "query"), intArg(args, "limit", 5))
		if err != nil {
			return nil, err
		}
		return map[string]any{"recipes": recipes}, nil
	})

	reg.Register(domain.FunctionDeclaration{
		Name:        "get_nutrition_summary",
		Description: "Aggregate calories and macros planned for a calendar date.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{"type": "string", "description": "Calendar date in YYYY-MM-DD form."},
			},
			"required": []string{"date"},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		return s.NutritionSummary(ctx, inv.UserID, stringArg(args, "date"))
	})

	reg.Register(domain.FunctionDeclaration{
		Name:        "generate_chart",
		Description: "Build chart-ready series data for one health metric over recent days.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"metric_type": map[string]any{"type": "string"},
				"days":        map[string]any{"type": "integer", "description": "Window size, default 30."},
			},
			"required": []string{"metric_type"},
		},
	}, func(ctx context.Context, args map[string]any, inv capability.Invocation) (any, error) {
		return s.ChartSeries(ctx, inv.UserID, stringArg(args, "metric_type"), intArg(args, "days", 30))
	})
}
