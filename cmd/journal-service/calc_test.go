package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCalc(args ...string) (string, error) {
	cmd := &cobra.Command{Use: "calc", RunE: runCalc}
	registerCalcFlags(cmd)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "spot",
			args: []string{"--entry", "100", "--exit", "110", "--principal", "1000"},
			want: "PnL: 100.00\nROI: 10.00%\n",
		},
		{
			name: "futures short",
			args: []string{"--kind", "futures", "--direction", "short", "--entry", "100", "--exit", "90", "--principal", "50", "--leverage", "10"},
			want: "PnL: 50.00\nROI: 100.00%\n",
		},
		{
			name: "missing exit",
			args: []string{"--entry", "100", "--principal", "1000"},
			want: "pending: inputs are incomplete or invalid\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCalc(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalc_UnknownKind(t *testing.T) {
	_, err := executeCalc("--kind", "options", "--entry", "1", "--exit", "1", "--principal", "1")
	assert.ErrorContains(t, err, "unknown kind")
}
