package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration that accepts "90s" style strings in
// YAML, which yaml.v2 does not do for the underlying type.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := unmarshal(&ns); err != nil {
		return fmt.Errorf("duration must be a string like \"90s\" or integer nanoseconds")
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
