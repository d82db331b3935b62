package locator

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/udt-flat/internal/matcher"
	"github.com/seitarof/udt-flat/internal/parser"
	"github.com/seitarof/udt-flat/internal/source"
)

func udt(name, body string) string {
	return "TYPE \"" + name + "\"\nSTRUCT\n" + body + "\nEND_STRUCT;\nEND_TYPE\n"
}

func newLocator(t *testing.T, files map[string]string) (Locator, parser.Parser) {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	src, err := source.New(fs, 0)
	require.NoError(t, err)
	p := parser.New(src)
	return New(fs, p, matcher.NewFileMatcher()), p
}

func TestLocate_Transitive(t *testing.T) {
	l, p := newLocator(t, map[string]string{
		"/plc/Line.udt":        udt("Line", "m : \"Motor\";\nv : Array[0..1] of \"Valve\";"),
		"/plc/types/Motor.udt": udt("Motor", `d : "Drive";`),
		"/plc/types/Valve.udt": udt("Valve", "open : Bool;"),
		"/plc/types/drive.udt": udt("Drive", "speed : Real;"),
		"/plc/types/Drive.scl": "not a udt",
		"/other/Unrelated.udt": udt("Unrelated", "x : Int;"),
	})

	deps, err := l.Locate("/plc/Line.udt", []string{"/plc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Motor": "/plc/types/Motor.udt",
		"Valve": "/plc/types/Valve.udt",
		"Drive": "/plc/types/drive.udt",
	}, deps)

	doc, err := p.Parse("/plc/Line.udt", deps)
	require.NoError(t, err)
	assert.Equal(t, "Line", doc.Name)
	assert.Equal(t, "m.d.speed", doc.Elements[2].Name)
}

func TestLocate_UnresolvedNameLeftEmpty(t *testing.T) {
	l, p := newLocator(t, map[string]string{
		"/plc/Line.udt": udt("Line", `m : "Motor";`),
	})

	deps, err := l.Locate("/plc/Line.udt", []string{"/plc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Motor": ""}, deps)

	_, err = p.Parse("/plc/Line.udt", deps)
	assert.True(t, errors.Is(err, parser.ErrMissingDependency))
}

func TestLocate_CycleTerminates(t *testing.T) {
	l, _ := newLocator(t, map[string]string{
		"/plc/A.udt": udt("A", `b : "B";`),
		"/plc/B.udt": udt("B", `a : "A";`),
	})

	deps, err := l.Locate("/plc/A.udt", []string{"/plc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "/plc/A.udt", "B": "/plc/B.udt"}, deps)
}

func TestLocate_Errors(t *testing.T) {
	l, _ := newLocator(t, map[string]string{"/plc/A.udt": udt("A", "x : Int;")})

	_, err := l.Locate("/plc/Missing.udt", []string{"/plc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrReadFile))

	_, err = l.Locate("/plc/A.udt", []string{"/nowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walk /nowhere")
}
