package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/routegen/cmd/routegen/internal/config"
)

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
	memFs  afero.Fs
}

func newTestApp(input string) *testApp {
	var out, errOut bytes.Buffer
	fs := afero.NewMemMapFs()

	a := newApp(strings.NewReader(input), &out, &errOut)
	a.fs = fs
	a.getwd = func() (string, error) { return "/work", nil }

	return &testApp{app: a, out: &out, errOut: &errOut, memFs: fs}
}

func (ta *testApp) exec(args ...string) int {
	return ta.run(context.Background(), args)
}

func (ta *testApp) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(ta.memFs, filepath.FromSlash(path))
	require.NoError(t, err)
	return string(data)
}

func (ta *testApp) exists(path string) bool {
	ok, _ := afero.Exists(ta.memFs, filepath.FromSlash(path))
	return ok
}

func TestWizard_GeneratesRoute(t *testing.T) {
	ta := newTestApp("users/[id]\n\n\nn\n/tmp/x\n")

	code := ta.exec()
	require.Equal(t, 0, code, ta.out.String())

	content := ta.read(t, "/tmp/x/app/api/users/[id]/route.js")
	assert.Contains(t, content, "Hello from users/[id]!")
	assert.Contains(t, content, "export async function GET(request)")

	out := ta.out.String()
	assert.Contains(t, out, "Step 1/5 · Route Name")
	assert.Contains(t, out, "Step 5/5 · Base Directory")
	assert.Contains(t, out, "Created "+filepath.FromSlash("/tmp/x/app/api/users/[id]/route.js"))
	assert.Contains(t, out, "Route generation complete!")
}

func TestWizard_DefaultBaseDirIsWorkDir(t *testing.T) {
	ta := newTestApp("health\n\n\ny\n\n")

	require.Equal(t, 0, ta.exec())
	assert.True(t, ta.exists("/work/app/api/health/route.ts"))
}

func TestWizard_GoBackKeepsRouteName(t *testing.T) {
	// route, POST, go back from template, PUT, basic, no TypeScript, default dir
	ta := newTestApp("users\n2\n5\n3\n1\n\n\n")

	require.Equal(t, 0, ta.exec(), ta.out.String())

	content := ta.read(t, "/work/app/api/users/route.js")
	assert.Contains(t, content, "export async function PUT(request)")
	assert.Contains(t, content, "Hello from users!")
	assert.Contains(t, ta.out.String(), "> 2) POST (default)")
}

func TestWizard_CancelWritesNothing(t *testing.T) {
	inputs := []string{
		"",
		"users\n",
		"users\n1\n",
		"users\n1\n1\n",
		"users\n1\n1\nn\n",
	}

	for _, input := range inputs {
		ta := newTestApp(input)

		assert.Equal(t, 0, ta.exec())
		assert.Contains(t, ta.out.String(), "Operation cancelled.")
		assert.False(t, ta.exists("/work/app"))
		assert.NotContains(t, ta.out.String(), "complete")
	}
}

func TestWizard_RejectsBlankRouteName(t *testing.T) {
	ta := newTestApp("   \nusers\n\n\n\n\n")

	require.Equal(t, 0, ta.exec())
	assert.Contains(t, ta.out.String(), "route name is required")
	assert.True(t, ta.exists("/work/app/api/users/route.js"))
}

func TestWizard_EmissionFailureExitsNonZero(t *testing.T) {
	ta := newTestApp("users\n\n\n\n\n")
	ta.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	assert.Equal(t, 1, ta.exec())
	assert.Contains(t, ta.out.String(), `Failed to generate route "users"`)
	assert.Contains(t, ta.out.String(), "Route generation failed.")
	assert.NotContains(t, ta.out.String(), "complete")
	assert.Contains(t, ta.errOut.String(), "route generation failed")
	assert.Contains(t, ta.errOut.String(), "route=users")
}

func TestWizard_UsesConfigDefaults(t *testing.T) {
	ta := newTestApp("orders\n\n\n\n\n")
	cfg := "defaults:\n  method: POST\n  template: withValidation\n  typescript: true\n"
	require.NoError(t, afero.WriteFile(ta.memFs, "/work/"+config.FileName, []byte(cfg), 0o644))

	require.Equal(t, 0, ta.exec())

	content := ta.read(t, "/work/app/api/orders/route.ts")
	assert.Contains(t, content, "export async function POST(request: NextRequest)")
	assert.Contains(t, content, "{ status: 400 }")
}

func TestInvalidConfigExitsOne(t *testing.T) {
	ta := newTestApp("")
	require.NoError(t, afero.WriteFile(ta.memFs, "/work/"+config.FileName, []byte("defaults:\n  method: TRACE\n"), 0o644))

	assert.Equal(t, 1, ta.exec())
	assert.Contains(t, ta.errOut.String(), "Error:")
	assert.Contains(t, ta.errOut.String(), "defaults.method")
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		path     string
		contains string
	}{
		{
			name:     "defaults",
			args:     []string{"generate", "--route", "users"},
			path:     "/work/app/api/users/route.js",
			contains: "export async function GET(request)",
		},
		{
			name:     "typescript params",
			args:     []string{"generate", "-r", "users/[id]", "-t", "withParams", "--typescript"},
			path:     "/work/app/api/users/[id]/route.ts",
			contains: "{ params }: RouteContext",
		},
		{
			name:     "lower-case method and dir",
			args:     []string{"generate", "--route", "items", "--method", "delete", "--dir", "/srv/web"},
			path:     "/srv/web/app/api/items/route.js",
			contains: "export async function DELETE(request)",
		},
		{
			name:     "error handling",
			args:     []string{"generate", "--route", "jobs", "--template", "withErrorHandling", "-m", "PATCH"},
			path:     "/work/app/api/jobs/route.js",
			contains: "{ status: 500 }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp("")
			require.Equal(t, 0, ta.exec(tt.args...), ta.errOut.String())
			assert.Contains(t, ta.read(t, tt.path), tt.contains)
		})
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing route", args: []string{"generate"}},
		{name: "blank route", args: []string{"generate", "--route", "  "}},
		{name: "unknown template", args: []string{"generate", "--route", "users", "--template", "graphql"}},
		{name: "unknown method", args: []string{"generate", "--route", "users", "--method", "TRACE"}},
		{name: "stray argument", args: []string{"generate", "--route", "users", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp("")
			assert.Equal(t, 1, ta.exec(tt.args...))
			assert.False(t, ta.exists("/work/app"))
		})
	}
}

func TestGenerate_DryRun(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("generate", "--route", "health", "--dry-run"))
	assert.False(t, ta.exists("/work/app/api/health/route.js"))
	assert.Contains(t, ta.out.String(), "Hello from health!")
	assert.Contains(t, ta.out.String(), "nothing written")
}

func TestGenerate_OverwriteIsIdempotent(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("generate", "--route", "users"))
	first := ta.read(t, "/work/app/api/users/route.js")
	require.Equal(t, 0, ta.exec("generate", "--route", "users"))
	second := ta.read(t, "/work/app/api/users/route.js")

	assert.Equal(t, first, second)
}

func TestGenerate_Verbose(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("--verbose", "generate", "--route", "users"))
	assert.Contains(t, ta.errOut.String(), "level=DEBUG")
	assert.Contains(t, ta.errOut.String(), "route generated")
}

func TestTemplatesCommand(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("templates"))
	for _, key := range []string{"basic", "withParams", "withErrorHandling", "withValidation"} {
		assert.Contains(t, ta.out.String(), key)
	}
}

func TestInitCommand(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("init"))
	assert.True(t, ta.exists("/work/"+config.FileName))
	assert.Contains(t, ta.read(t, "/work/"+config.FileName), "api_dir: app/api")

	assert.Equal(t, 1, ta.exec("init"))
	assert.Contains(t, ta.errOut.String(), "already exists")

	assert.Equal(t, 0, ta.exec("init", "--force"))
}

func TestVersionFlag(t *testing.T) {
	ta := newTestApp("")

	require.Equal(t, 0, ta.exec("--version"))
	assert.Contains(t, ta.out.String(), version)
}

func TestIsExitError(t *testing.T) {
	code, ok := IsExitError(NewExitError(3))
	assert.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = IsExitError(assert.AnError)
	assert.False(t, ok)
}
