package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DeliveryHeader is the header row of a ball-by-ball input file
const DeliveryHeader = "inningno,over,ballnumber,batter,score,outcome\n"

// TwoInningsCSV is a small two-innings match. Inning 1 scores 11 for 1 over
// two overs, inning 2 scores 8 without loss in the first over.
const TwoInningsCSV = DeliveryHeader +
	"1,1.0,1,Rohit,4,4\n" +
	"1,1.0,2,Rohit,0,w\n" +
	"1,1.0,3,Gill,1,1\n" +
	"1,2.0,1,Gill,6,6\n" +
	"1,2.0,2,Kohli,0,0\n" +
	"2,1.0,1,Warner,6,6\n" +
	"2,1.0,2,Warner,2,2\n"

// WriteFile writes content to name under dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteConfig writes a config.yaml rooted at dir that logs only to file and
// disables telemetry export. extra is appended verbatim.
func WriteConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	yaml := fmt.Sprintf("paths:\n  base_dir: %q\nlogging:\n  level: debug\n  output: file\ntelemetry:\n  enabled: false\n%s", dir, extra)
	return WriteFile(t, dir, "config.yaml", yaml)
}
