package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/statefile"
)

func TestRunScript(t *testing.T) {
	t.Parallel()
	d, out, path := newTestDriver(t)

	script := `
# start a two player game with a fixed seed
new 2 42

draw 0
stay 1
state
`
	require.NoError(t, d.RunScript(strings.NewReader(script)))

	assert.Contains(t, out.String(), "Executing: new 2 42")
	assert.Contains(t, out.String(), "Player 0 drew a card")
	assert.Contains(t, out.String(), "Player 1 stayed")

	g, err := statefile.Load(path)
	require.NoError(t, err)
	assert.Len(t, g.Players[0].Hand.Cards, 3)
}

func TestRunScriptDefaults(t *testing.T) {
	t.Parallel()
	d, _, path := newTestDriver(t)

	require.NoError(t, d.RunScript(strings.NewReader("new\n")))

	g, err := statefile.Load(path)
	require.NoError(t, err)
	assert.Len(t, g.Players, 2)
	assert.Equal(t, uint64(42), g.Seed)
}

func TestRunScriptLineNumberedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{
			name:    "unknown command",
			script:  "new 2\nflip 0\n",
			wantErr: `line 2: unknown command "flip"`,
		},
		{
			name:    "missing player argument",
			script:  "new 2\n\ndraw\n",
			wantErr: "line 3: missing player argument",
		},
		{
			name:    "invalid player id",
			script:  "new 2\nstay x\n",
			wantErr: `line 2: invalid player ID "x"`,
		},
		{
			name:    "invalid player count",
			script:  "new many\n",
			wantErr: `line 1: invalid player count "many"`,
		},
		{
			name:    "engine failure surfaces",
			script:  "new 2\ndraw 1\n",
			wantErr: "line 2: draw failed: not your turn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _ := newTestDriver(t)
			err := d.RunScript(strings.NewReader(tt.script))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunScriptSkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()
	d, out, _ := newTestDriver(t)

	script := "# comment only\n\n   \nnew 2\n"
	require.NoError(t, d.RunScript(strings.NewReader(script)))
	assert.NotContains(t, out.String(), "Executing: #")
}
