package wizard

import "strings"

// Step represents one question of the wizard
type Step int

const (
	StepRouteName Step = iota
	StepHTTPMethod
	StepTemplate
	StepUseTypeScript
	StepBaseDirectory
)

// Steps is the fixed order the wizard walks through.
var Steps = []Step{
	StepRouteName,
	StepHTTPMethod,
	StepTemplate,
	StepUseTypeScript,
	StepBaseDirectory,
}

var stepTitles = map[Step]string{
	StepRouteName:     "Route Name",
	StepHTTPMethod:    "HTTP Method",
	StepTemplate:      "Template",
	StepUseTypeScript: "Use TypeScript",
	StepBaseDirectory: "Base Directory",
}

// Title is the display name of the step.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return "Unknown"
}

// Key is the answer key: the title lower-cased with spaces removed.
func (s Step) Key() string {
	return strings.ReplaceAll(strings.ToLower(s.Title()), " ", "")
}

func (s Step) String() string {
	return s.Title()
}

// allowsBack reports whether the step offers the go back choice.
func (s Step) allowsBack() bool {
	return s == StepHTTPMethod || s == StepTemplate
}
