// Package template holds the fixed set of route handler templates.
//
// Each template is a static text file embedded in the binary. Rendering only
// interpolates the HTTP method, the route name and the TypeScript switch; there
// is no registration mechanism and no user supplied template.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	// ErrUnknownTemplate is returned when a key does not name a built-in template.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrUnknownMethod is returned when the method is not one of Methods.
	ErrUnknownMethod = errors.New("unknown HTTP method")
)

// Methods lists the HTTP verbs a route handler can be generated for. The
// values double as the exported handler names, so they must stay upper-case.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// Definition describes one built-in template.
type Definition struct {
	Key         string
	Name        string
	Description string
}

// Data is what a template body sees.
type Data struct {
	Method     string
	RouteName  string
	TypeScript bool
}

// Order matters: it is the order shown in the picker.
var definitions = []Definition{
	{
		Key:         "basic",
		Name:        "Basic",
		Description: "Simple JSON response",
	},
	{
		Key:         "withParams",
		Name:        "With Params",
		Description: "Reads dynamic params and query string",
	},
	{
		Key:         "withErrorHandling",
		Name:        "With Error Handling",
		Description: "try/catch with a generic 500 response",
	},
	{
		Key:         "withValidation",
		Name:        "With Validation",
		Description: "zod body validation, 400 on invalid input",
	},
}

var templateCache sync.Map

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["jsString"] = jsString
	return funcs
}

// All returns the built-in templates in display order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Keys returns the template keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(definitions))
	for _, d := range definitions {
		keys = append(keys, d.Key)
	}
	return keys
}

// Lookup finds a template by key.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// IsMethod reports whether method is one of Methods.
func IsMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Label is the picker text for the template.
func (d Definition) Label() string {
	return fmt.Sprintf("%s - %s", d.Name, d.Description)
}

// Render produces the handler source for the given method and route.
func (d Definition) Render(method, routeName string, typeScript bool) (string, error) {
	if !IsMethod(method) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMethod, method, strings.Join(Methods, ", "))
	}

	tmpl, err := loadTemplate(d.Key)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := Data{Method: method, RouteName: routeName, TypeScript: typeScript}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", d.Key, err)
	}
	return buf.String(), nil
}

// Render looks up key and renders it.
func Render(key, method, routeName string, typeScript bool) (string, error) {
	d, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTemplate, key, strings.Join(Keys(), ", "))
	}
	return d.Render(method, routeName, typeScript)
}

func loadTemplate(key string) (*template.Template, error) {
	if value, ok := templateCache.Load(key); ok {
		return value.(*template.Template), nil
	}
	name := key + ".tmpl"
	tmpl, err := template.New(name).Funcs(funcMap()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	templateCache.Store(key, tmpl)
	return tmpl, nil
}
