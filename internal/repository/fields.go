package repository

import "time"

// Firestore hands numeric fields back as int64 and nested values as
// []interface{} / map[string]interface{}; the in-memory store returns
// whatever Go value was written. These helpers absorb both shapes.

func fieldString(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func fieldTime(data map[string]any, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func fieldInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func fieldIntSlice(data map[string]any, key string) []int {
	switch raw := data[key].(type) {
	case []int:
		return raw
	case []any:
		out := make([]int, 0, len(raw))
		for _, item := range raw {
			if n, ok := fieldInt(item); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}

func fieldStringSlice(data map[string]any, key string) []string {
	switch raw := data[key].(type) {
	case []string:
		return raw
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func fieldIntMap(data map[string]any, key string) map[string]int {
	switch raw := data[key].(type) {
	case map[string]int:
		return raw
	case map[string]any:
		out := make(map[string]int, len(raw))
		for k, item := range raw {
			if n, ok := fieldInt(item); ok {
				out[k] = n
			}
		}
		return out
	}
	return nil
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
