package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses and validates an analytics payload. Any shape problem is
// reported as a MalformedResponse FetchError.
func Decode(body []byte) (*Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformedErr(fmt.Errorf("decode body: %w", err))
	}

	for _, key := range []string{"domain_frequency", "category_breakdown"} {
		field, ok := raw[key]
		if !ok {
			return nil, malformedErr(fmt.Errorf("missing %q", key))
		}
		if !isArray(field) {
			return nil, malformedErr(fmt.Errorf("%q is not a list", key))
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(raw["domain_frequency"], &snap.DomainFrequency); err != nil {
		return nil, malformedErr(fmt.Errorf("decode domain_frequency: %w", err))
	}
	if err := json.Unmarshal(raw["category_breakdown"], &snap.CategoryBreakdown); err != nil {
		return nil, malformedErr(fmt.Errorf("decode category_breakdown: %w", err))
	}

	if err := validate.Struct(&snap); err != nil {
		return nil, malformedErr(fmt.Errorf("validate snapshot: %w", err))
	}

	return &snap, nil
}

func isArray(field json.RawMessage) bool {
	trimmed := bytes.TrimSpace(field)
	return len(trimmed) > 0 && trimmed[0] == '['
}
