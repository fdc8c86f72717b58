package tools

import (
	"fmt"
	"strconv"
)

// Tool parameters arrive as decoded JSON, so numbers are float64 and lists
// are []interface{}; these helpers centralize the coercion.

func stringParam(params map[string]interface{}, key string) string {
	value, _ := params[key].(string)
	return value
}

func boolParam(params map[string]interface{}, key string) bool {
	value, _ := params[key].(bool)
	return value
}

func intParam(params map[string]interface{}, key string) int {
	switch value := params[key].(type) {
	case float64:
		return int(value)
	case string:
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return 0
}

func stringListParam(params map[string]interface{}, key string) ([]string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		value, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", key)
		}
		if value != "" {
			list = append(list, value)
		}
	}
	return list, nil
}
