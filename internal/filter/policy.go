package filter

import "fmt"

// Policy decides how time-unbounded edges behave while temporal filtering is active.
type Policy string

const (
	// PolicyHidden never shows unbounded edges. This is the default.
	PolicyHidden Policy = "hidden"
	// PolicyVisible always shows unbounded edges.
	PolicyVisible Policy = "visible"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyHidden:
		return PolicyHidden, nil
	case PolicyVisible:
		return PolicyVisible, nil
	}
	return "", fmt.Errorf("unknown unbounded policy: %s (want hidden or visible)", s)
}
