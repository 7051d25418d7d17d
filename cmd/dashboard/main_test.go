package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/shared/testutil"
)

func writeFixture(t *testing.T) (configFile, input string) {
	t.Helper()
	dir := t.TempDir()
	csv := testutil.DeliveryHeader +
		"1,1.0,1,Dhoni,6,6\n" +
		"1,1.0,2,Dhoni,0,w\n" +
		"2,1.0,1,Pant,4,4\n"
	return testutil.WriteConfig(t, dir, ""), testutil.WriteFile(t, dir, "ipl.csv", csv)
}

func TestRun(t *testing.T) {
	configFile, input := writeFixture(t)

	tests := []struct {
		name     string
		args     []string
		stdin    string
		code     int
		contains []string
	}{
		{
			name:     "match from flag",
			args:     []string{"-config", configFile, "-input", input, "-match", "3"},
			stdin:    "1\n1\n5\n",
			code:     apperrors.ExitOK,
			contains: []string{"Match 3 Dashboard", "Inning 1: 6 runs, 1 wickets across 20 overs", "Exiting..."},
		},
		{
			name:     "match prompted",
			args:     []string{"-config", configFile, "-input", input},
			stdin:    "x\n4\n5\n",
			code:     apperrors.ExitOK,
			contains: []string{"Enter match number: ", "Invalid match number.", "Match 4 Dashboard"},
		},
		{
			name:  "no input at match prompt",
			args:  []string{"-config", configFile, "-input", input},
			stdin: "",
			code:  apperrors.ExitOK,
		},
		{
			name:  "missing input file",
			args:  []string{"-config", configFile, "-input", input + ".missing", "-match", "1"},
			stdin: "5\n",
			code:  apperrors.ExitFailure,
		},
		{
			name: "bad flag",
			args: []string{"-nope"},
			code: apperrors.ExitConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			assert.Equal(t, tt.code, code, "stderr: %s", stderr.String())
			for _, want := range tt.contains {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}
