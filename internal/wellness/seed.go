package wellness

import "context"

// RecordMetric inserts one measurement. Used by the host's ingestion path
// and by tests; the assistant itself never writes.
func (s *Service) RecordMetric(ctx context.Context, userID, metricType string, value float64, unit, recordedAt string) error {
	_, err := s.db.SQL().ExecContext(ctx,
		`INSERT INTO health_metrics (user_id, metric_type, value, unit, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`, userID, metricType, value, unit, recordedAt)
	return err
}

// AddGoal inserts one active goal.
func (s *Service) AddGoal(ctx context.Context, userID, goalType string, target float64, unit, deadline string) error {
	_, err := s.db.SQL().ExecContext(ctx,
		`INSERT INTO goals (user_id, goal_type, target, unit, deadline)
		 VALUES (?, ?, ?, ?, ?)`, userID, goalType, target, unit, deadline)
	return err
}

// AddMeal inserts one planned meal.
func (s *Service) AddMeal(ctx context.Context, userID, date, slot, name string, calories int, protein, carbs, fat float64) error {
	_, err := s.db.SQL().ExecContext(ctx,
		`INSERT INTO meals (user_id, plan_date, slot, name, calories, protein_g, carbs_g, fat_g)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, userID, date, slot, name, calories, protein, carbs, fat)
	return err
}

// AddRecipe inserts one recipe into the shared catalog.
func (s *Service) AddRecipe(ctx context.Context, name, description string, calories int, protein float64, tags string) error {
	_, err := s.db.SQL().ExecContext(ctx,
		`INSERT INTO recipes (name, description, calories, protein_g, tags)
		 VALUES (?, ?, ?, ?, ?)`, name, description, calories, protein, tags)
	return err
}
