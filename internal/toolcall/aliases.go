package toolcall

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// nowFunc is swapped out in tests to pin the calendar date.
var nowFunc = time.Now

// aliasRule maps a historical function name to its canonical capability and
// an optional pure argument transform.
type aliasRule struct {
	canonical string
	transform func(args map[string]any) map[string]any
}

// aliasTable is keyed by lowercased, prefix-stripped names. Data-driven so
// new aliases are additions, not logic changes.
//
// Date defaulting uses the server's wall clock, not the end user's timezone.
// Known accuracy gap for users far from the server; kept as-is.
var aliasTable = map[string]aliasRule{
	"get_weight":         {canonical: "get_health_metrics", transform: currentWeightArgs},
	"get_current_weight": {canonical: "get_health_metrics", transform: currentWeightArgs},
	"get_todays_meal_plan": {
		canonical: "get_meal_plan",
		transform: defaultDateToday,
	},
	"get_todays_meals": {
		canonical: "get_meal_plan",
		transform: defaultDateToday,
	},
}

func currentWeightArgs(args map[string]any) map[string]any {
	args["metric_type"] = "weight"
	if _, ok := args["time_period"]; !ok {
		args["time_period"] = "current"
	}
	return args
}

func defaultDateToday(args map[string]any) map[string]any {
	if _, ok := args["date"]; !ok {
		args["date"] = nowFunc().Format("2006-01-02")
	}
	return args
}

// resolveAlias canonicalizes a name extracted from in-band markup and applies
// its argument transform. Unmapped names pass through with their original
// arguments, keeping only the casing/prefix canonicalization.
func resolveAlias(name string, argsJSON json.RawMessage) Request {
	canonical := strings.ToLower(strings.TrimPrefix(name, "functions."))

	rule, ok := aliasTable[canonical]
	if !ok {
		return Request{
			ID:            "call_" + uuid.NewString(),
			Name:          canonical,
			ArgumentsJSON: string(argsJSON),
		}
	}

	var args map[string]any
	if err := json.Unmarshal(argsJSON, &args); err != nil || args == nil {
		args = map[string]any{}
	}
	args = rule.transform(args)

	out, err := json.Marshal(args)
	if err != nil {
		out = []byte("{}")
	}

	return Request{
		ID:            "call_" + uuid.NewString(),
		Name:          rule.canonical,
		ArgumentsJSON: string(out),
	}
}
