package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/validation"
	"cricketcli/pkg/contracts/domain"
)

// Source column names. Extra columns in a file are ignored.
const (
	ColInning  = "inningno"
	ColOver    = "over"
	ColBall    = "ballnumber"
	ColBatter  = "batter"
	ColScore   = "score"
	ColOutcome = "outcome"
)

// RequiredColumns lists the header names every delivery file must carry
var RequiredColumns = []string{ColOver, ColBall, ColBatter, ColScore, ColOutcome, ColInning}

// DeliveryParser reads ball-by-ball files into deliveries.
// Parsed rows carry Seq in file order and MatchNo 0; the match is stamped at ingestion.
type DeliveryParser struct {
	validator *validation.DeliveryValidator
	files     *validation.FileValidator
	logger    *slog.Logger
}

// NewDeliveryParser creates a parser that validates every row it reads
func NewDeliveryParser(logger *slog.Logger) *DeliveryParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeliveryParser{
		validator: validation.NewDeliveryValidator(logger),
		files:     validation.NewFileValidator(logger),
		logger:    logger.With(slog.String("component", "delivery_parser")),
	}
}

// ParseFile reads a CSV or XLSX delivery file, chosen by extension.
// Other extensions are a parsing error.
func (p *DeliveryParser) ParseFile(path string) ([]domain.Delivery, error) {
	format, err := p.files.ValidateDeliveryFile(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case validation.FormatXLSX:
		return p.ParseXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path))
			}
			return nil, apperrors.NewParsingError("failed to open input file", err).WithContext("path", path)
		}
		defer f.Close()

		deliveries, err := p.ParseCSV(f)
		if err != nil {
			return nil, err
		}
		p.logger.Info("Parsed delivery file",
			slog.String("path", path),
			slog.Int("deliveries", len(deliveries)))
		return deliveries, nil
	}
}

// ParseCSV reads comma separated deliveries with a header row
func (p *DeliveryParser) ParseCSV(r io.Reader) ([]domain.Delivery, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewParsingError("input file is empty", nil)
		}
		return nil, apperrors.NewParsingError("failed to read header", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var deliveries []domain.Delivery
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read row", err).WithContext("line", line)
		}

		d, err := columns.delivery(record, len(deliveries)+1)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("line %d", line), err).WithContext("line", line)
		}
		deliveries = append(deliveries, d)
	}

	return p.finish(deliveries)
}

// ParseXLSX reads deliveries from the first sheet of a workbook
func (p *DeliveryParser) ParseXLSX(path string) ([]domain.Delivery, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path))
		}
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("input file is empty", nil).WithContext("path", path)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var deliveries []domain.Delivery
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		// GetRows drops trailing empty cells
		for len(row) < columns.width {
			row = append(row, "")
		}

		line := i + 2
		d, err := columns.delivery(row, len(deliveries)+1)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d", line), err).WithContext("line", line)
		}
		deliveries = append(deliveries, d)
	}

	p.logger.Info("Parsed delivery workbook",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("deliveries", len(deliveries)))

	return p.finish(deliveries)
}

// finish runs table level validation on parsed rows
func (p *DeliveryParser) finish(deliveries []domain.Delivery) ([]domain.Delivery, error) {
	if err := p.validator.ValidateAll(deliveries); err != nil {
		return nil, apperrors.NewParsingError("invalid delivery data", err)
	}
	return deliveries, nil
}

// columnMap holds the index of each required column in a header row
type columnMap struct {
	index map[string]int
	width int
}

func mapColumns(header []string) (*columnMap, error) {
	cm := &columnMap{index: make(map[string]int, len(header)), width: len(header)}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cm.index[name]; !dup {
			cm.index[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := cm.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("header", header)
	}
	return cm, nil
}

// delivery converts one record into a Delivery with the given sequence number
func (cm *columnMap) delivery(record []string, seq int) (domain.Delivery, error) {
	cell := func(col string) string {
		i := cm.index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	d := domain.Delivery{Seq: seq, Batter: cell(ColBatter)}
	var err error

	if d.Inning, err = parseInt(cell(ColInning)); err != nil {
		return d, fmt.Errorf("%s: %w", ColInning, err)
	}
	// Overs arrive as "3" or "3.0"; the ordinal is the integer part
	if d.Over, err = parseOrdinal(cell(ColOver)); err != nil {
		return d, fmt.Errorf("%s: %w", ColOver, err)
	}
	if d.Ball, err = parseInt(cell(ColBall)); err != nil {
		return d, fmt.Errorf("%s: %w", ColBall, err)
	}
	if d.Score, err = parseInt(cell(ColScore)); err != nil {
		return d, fmt.Errorf("%s: %w", ColScore, err)
	}
	if d.Outcome, err = domain.ParseOutcome(cell(ColOutcome)); err != nil {
		return d, fmt.Errorf("%s: %w", ColOutcome, err)
	}

	return d, nil
}

// parseInt accepts integers and integral floats such as "4.0"
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}

// parseOrdinal truncates a numeric value toward zero
func parseOrdinal(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
