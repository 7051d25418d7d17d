package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

const sampleCSV = `match_id,inningno,over,ballnumber,batter,bowler,score,outcome
1,1,1.0,1,A,X,4,4
1,1,1.0,2,A,X,0,w
1,1,1.0,3,B,X,1,1
1,2,1.0,1,C,Y,6,6
`

func TestDeliveryParser_ParseCSV(t *testing.T) {
	p := NewDeliveryParser(nil)

	deliveries, err := p.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, deliveries, 4)

	first := deliveries[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 0, first.MatchNo, "match is stamped at ingestion, not parse")
	assert.Equal(t, 1, first.Inning)
	assert.Equal(t, 1, first.Over)
	assert.Equal(t, 1, first.Ball)
	assert.Equal(t, "A", first.Batter)
	assert.Equal(t, 4, first.Score)
	assert.Equal(t, domain.RunsOutcome(4), first.Outcome)

	assert.True(t, deliveries[1].IsWicket())
	assert.Equal(t, 4, deliveries[3].Seq)
	assert.Equal(t, 2, deliveries[3].Inning)
}

func TestDeliveryParser_ParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errContains string
	}{
		{
			name:        "empty file",
			input:       "",
			errContains: "input file is empty",
		},
		{
			name:        "missing column",
			input:       "inningno,over,ballnumber,batter,score\n1,1,1,A,4\n",
			errContains: "missing required columns: outcome",
		},
		{
			name:        "non numeric score",
			input:       "inningno,over,ballnumber,batter,score,outcome\n1,1,1,A,four,4\n",
			errContains: "line 2",
		},
		{
			name:        "bad outcome",
			input:       "inningno,over,ballnumber,batter,score,outcome\n1,1,1,A,0,nb\n",
			errContains: "outcome",
		},
		{
			name:        "ragged row",
			input:       "inningno,over,ballnumber,batter,score,outcome\n1,1,1,A\n",
			errContains: "failed to read row",
		},
		{
			name: "duplicate delivery key",
			input: "inningno,over,ballnumber,batter,score,outcome\n" +
				"1,3,1,A,0,0\n" +
				"1,3.0,1,B,1,1\n",
			errContains: "duplicate delivery 1/3.1",
		},
		{
			name:        "third inning",
			input:       "inningno,over,ballnumber,batter,score,outcome\n3,1,1,A,0,0\n",
			errContains: "inningno must be one of",
		},
	}

	p := NewDeliveryParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing), "got %v", err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestDeliveryParser_HeaderNormalization(t *testing.T) {
	input := "\ufeffInningNo, Over ,BallNumber,Batter,Score,Outcome\n1,2.0,3,  Kohli  ,2,2\n"

	deliveries, err := NewDeliveryParser(nil).ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, 2, deliveries[0].Over)
	assert.Equal(t, "Kohli", deliveries[0].Batter)
}

func TestDeliveryParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	p := NewDeliveryParser(nil)

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(dir, "ipl.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

		deliveries, err := p.ParseFile(path)
		require.NoError(t, err)
		assert.Len(t, deliveries, 4)
	})

	t.Run("missing csv", func(t *testing.T) {
		_, err := p.ParseFile(filepath.Join(dir, "absent.csv"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(dir, "ipl.xlsx")
		writeWorkbook(t, path, [][]interface{}{
			{"inningno", "over", "ballnumber", "batter", "score", "outcome", "comment"},
			{1, 1.0, 1, "A", 4, 4, "cover drive"},
			{},
			{1, 1.0, 2, "A", 0, "w"},
			{2, 5, 1, "C", 6, 6},
		})

		deliveries, err := p.ParseFile(path)
		require.NoError(t, err)
		require.Len(t, deliveries, 3)
		assert.True(t, deliveries[1].IsWicket())
		assert.Equal(t, 2, deliveries[1].Seq)
		assert.Equal(t, 5, deliveries[2].Over)
	})

	t.Run("missing xlsx", func(t *testing.T) {
		_, err := p.ParseFile(filepath.Join(dir, "absent.xlsx"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "ipl.txt")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

		_, err := p.ParseFile(path)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseHelpers(t *testing.T) {
	n, err := parseInt("4.0")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = parseInt("4.5")
	assert.Error(t, err)

	over, err := parseOrdinal("12.9")
	require.NoError(t, err)
	assert.Equal(t, 12, over)

	_, err = parseOrdinal("")
	assert.Error(t, err)
}
