package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs:
// missing quotes around keys, single quotes, unclosed brackets, trailing
// commas, comments, markdown code fences.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// DecodeLenient unmarshals LLM output into target, trying strict JSON
// first, then repaired JSON, then Hjson (which tolerates unquoted keys
// and comments). Returns an error only when every strategy fails.
func DecodeLenient(raw string, target interface{}) error {
	if err := json.Unmarshal([]byte(raw), target); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(raw), &loose); err != nil {
		return fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	jsonBytes, err := json.Marshal(loose)
	if err != nil {
		return fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("JSON_DECODE_ERROR: %v", err)
	}
	return nil
}
