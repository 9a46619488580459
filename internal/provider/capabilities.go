package provider

import (
	"fmt"
)

// ValidateCapabilities checks if provider capabilities are valid and consistent
func ValidateCapabilities(caps ProviderCapabilities) error {
	if caps.Language == "" {
		return fmt.Errorf("provider must declare a content language")
	}

	return nil
}

// Defaults returns the default value of every field that declares one.
func (s ConfigSchema) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Default != nil {
			defaults[f.Name] = f.Default
		}
	}
	return defaults
}

// Validate checks config against the schema. Unknown keys, values of the
// wrong type, out of range numbers and missing required fields are rejected.
func (s ConfigSchema) Validate(config map[string]interface{}) error {
	fields := make(map[string]ConfigField, len(s.Fields))
	for _, f := range s.Fields {
		fields[f.Name] = f
		if _, ok := config[f.Name]; f.Required && !ok {
			return fmt.Errorf("missing required field %q", f.Name)
		}
	}

	for key, value := range config {
		f, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown field %q", key)
		}
		switch f.Type {
		case ConfigFieldTypeBool:
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("field %q must be a bool, got %T", key, value)
			}
		case ConfigFieldTypeString:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("field %q must be a string, got %T", key, value)
			}
		case ConfigFieldTypeInt:
			n, ok := AsInt(value)
			if !ok {
				return fmt.Errorf("field %q must be an integer, got %T", key, value)
			}
			if v := f.Validation; v != nil && (n < v.MinValue || n > v.MaxValue) {
				return fmt.Errorf("field %q must be between %d and %d, got %d", key, v.MinValue, v.MaxValue, n)
			}
		}
	}

	return nil
}

// AsInt converts the numeric forms a config value can take after JSON
// decoding or direct construction.
func AsInt(value interface{}) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
