package wizard

import "fmt"

// Answers maps Step.Key() to the value the user gave for that step.
type Answers map[string]any

// Clone returns a shallow copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Has reports whether step has been answered.
func (a Answers) Has(step Step) bool {
	_, ok := a[step.Key()]
	return ok
}

// String returns the string answer of step.
func (a Answers) String(step Step) (string, error) {
	v, ok := a[step.Key()]
	if !ok {
		return "", fmt.Errorf("missing answer for %s", step.Title())
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("answer for %s is %T, want string", step.Title(), v)
	}
	return s, nil
}

// Bool returns the boolean answer of step.
func (a Answers) Bool(step Step) (bool, error) {
	v, ok := a[step.Key()]
	if !ok {
		return false, fmt.Errorf("missing answer for %s", step.Title())
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("answer for %s is %T, want bool", step.Title(), v)
	}
	return b, nil
}

func (a Answers) stringOr(step Step, fallback string) string {
	if s, ok := a[step.Key()].(string); ok {
		return s
	}
	return fallback
}

func (a Answers) boolOr(step Step, fallback bool) bool {
	if b, ok := a[step.Key()].(bool); ok {
		return b
	}
	return fallback
}
