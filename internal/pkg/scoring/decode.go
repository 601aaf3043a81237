package scoring

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DecodeResponses converts decoded JSON values into Responses. Only the
// identifiers referenced by config are converted; everything else is dropped
// regardless of type. A referenced identifier holding a non-numeric value is a
// computation error.
func DecodeResponses(config *Config, raw map[string]interface{}) (Responses, error) {
	if err := checkConfig(config); err != nil {
		return nil, err
	}

	referenced := config.QuestionIDs()
	responses := make(Responses, len(raw))

	// sorted so the reported identifier is deterministic
	ids := make([]string, 0, len(raw))
	for id := range raw {
		if _, ok := referenced[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		value, ok := toFloat(raw[id])
		if !ok {
			return nil, computationError(config.Name, fmt.Sprintf("response %q is not numeric (%T)", id, raw[id]))
		}
		responses[id] = value
	}
	return responses, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
