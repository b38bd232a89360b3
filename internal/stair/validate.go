package stair

import (
	"errors"
	"fmt"
	"strings"
)

// UK Building Regulations Part K limits for private dwellings.
const (
	minRise  = 150.0
	maxRise  = 220.0
	minGoing = 220.0
	maxGoing = 300.0
	// Maximum pitch is 42 degrees; a tenth of a degree of margin absorbs
	// rounding in user-entered dimensions.
	maxPitch = 42.1
	minTwoRG = 550.0
	maxTwoRG = 700.0
)

// CheckPartK validates a rise/going pair against UK Building Regulations
// Part K for private dwellings. It returns one message per violated rule;
// an empty slice means the flight is compliant.
func CheckPartK(rise, going float64) []string {
	var issues []string

	c := Config{Rise: rise, Going: going}
	pitch := c.Pitch()
	trg := 2*rise + going

	if rise < minRise || rise > maxRise {
		issues = append(issues, fmt.Sprintf(
			"riser height %.1fmm is outside compliant range [%.0f, %.0f]", rise, minRise, maxRise))
	}
	if going < minGoing || going > maxGoing {
		issues = append(issues, fmt.Sprintf(
			"stair going %.1fmm is outside compliant range [%.0f, %.0f]", going, minGoing, maxGoing))
	}
	if pitch > maxPitch {
		issues = append(issues, fmt.Sprintf("pitch %.1f° exceeds maximum 42°", pitch))
	}
	if trg < minTwoRG || trg > maxTwoRG {
		issues = append(issues, fmt.Sprintf(
			"2R + G calculation (%.1f) is outside compliant range [%.0f, %.0f]", trg, minTwoRG, maxTwoRG))
	}
	return issues
}

// ConfigError reports a configuration rejected by validation.
type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	return strings.Join(e.Issues, "; ")
}

// IsConfigError reports whether err stems from rejected configuration
// input, as opposed to an internal failure.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Validate checks the whole configuration: Part K compliance plus basic
// geometric sanity.
func (c Config) Validate() error {
	var issues []string

	if c.Width <= 0 {
		issues = append(issues, "width must be positive")
	}
	if c.BottomSteps < 0 || c.WinderSteps < 0 || c.TopSteps < 0 {
		issues = append(issues, "step counts must not be negative")
	}
	if c.BottomSteps+c.WinderSteps+c.TopSteps == 0 {
		issues = append(issues, "staircase must have at least one step")
	}
	if c.InnerR < 0 {
		issues = append(issues, "inner radius must not be negative")
	}
	issues = append(issues, CheckPartK(c.Rise, c.Going)...)

	if len(issues) == 0 {
		return nil
	}
	return &ConfigError{Issues: issues}
}
