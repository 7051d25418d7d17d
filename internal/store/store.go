package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"cricketcli/internal/config"
	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// Columns lists the stored columns in table order.
var Columns = []string{"seq", "match_no", "inningno", "over", "ballnumber", "batter", "score", "outcome"}

// Store persists the delivery table and answers the grouped queries the summary needs.
type Store struct {
	db      *sql.DB
	dialect dialect
	table   string
	logger  *slog.Logger
}

// Dump is a raw read-back of stored rows for diagnostics.
type Dump struct {
	Columns []string
	Rows    [][]string
}

// Open connects to the configured store. databaseFile is the SQLite file used
// when no DSN is configured.
func Open(ctx context.Context, cfg config.StoreConfig, databaseFile string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table := cfg.Table
	if table == "" {
		table = config.DefaultTableName
	}
	if err := validateTableName(table); err != nil {
		return nil, apperrors.NewConfigError("invalid store table", err)
	}

	db, d, err := connect(ctx, cfg, databaseFile)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open store", err).
			WithContext("driver", cfg.Driver)
	}

	s := &Store{
		db:      db,
		dialect: d,
		table:   table,
		logger:  logger.With(slog.String("component", "store")),
	}
	s.logger.InfoContext(ctx, "Store opened",
		slog.String("driver", d.name),
		slog.String("table", table))
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver returns the name of the active driver.
func (s *Store) Driver() string {
	return s.dialect.name
}

// ReplaceMatchData stamps every delivery with matchNo, drops and recreates the
// table, and inserts all rows inside one transaction. Nothing is kept from the
// previous contents.
func (s *Store) ReplaceMatchData(ctx context.Context, matchNo int, deliveries []domain.Delivery) (err error) {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	table := quoteIdent(s.table)
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return apperrors.NewStorageError("failed to drop table", err).WithContext("table", s.table)
	}
	if _, err = tx.ExecContext(ctx, s.createTableSQL()); err != nil {
		return apperrors.NewStorageError("failed to create table", err).WithContext("table", s.table)
	}

	stmt, err := tx.PrepareContext(ctx, s.dialect.rebind(fmt.Sprintf(
		`INSERT INTO %s (seq, match_no, inningno, "over", ballnumber, batter, score, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table)))
	if err != nil {
		return apperrors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for i := range deliveries {
		deliveries[i].MatchNo = matchNo
		d := deliveries[i]
		if _, err = stmt.ExecContext(ctx, d.Seq, d.MatchNo, d.Inning, d.Over, d.Ball, d.Batter, d.Score, d.Outcome.String()); err != nil {
			return apperrors.NewStorageError("failed to insert delivery", err).
				WithContext("row", d.Seq).
				WithContext("key", d.Key().String())
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit", err)
	}

	s.logger.InfoContext(ctx, "Match data replaced",
		slog.Int("match_no", matchNo),
		slog.Int("rows", len(deliveries)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (s *Store) createTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE %s (
		seq INTEGER NOT NULL,
		match_no INTEGER NOT NULL,
		inningno INTEGER NOT NULL,
		"over" INTEGER NOT NULL,
		ballnumber INTEGER NOT NULL,
		batter TEXT NOT NULL,
		score INTEGER NOT NULL,
		outcome TEXT NOT NULL
	)`, quoteIdent(s.table))
}

// Deliveries reads back every stored delivery of a match in source order.
func (s *Store) Deliveries(ctx context.Context, matchNo int) ([]domain.Delivery, error) {
	query := s.dialect.rebind(fmt.Sprintf(
		`SELECT seq, match_no, inningno, "over", ballnumber, batter, score, outcome
		 FROM %s WHERE match_no = ? ORDER BY seq`, quoteIdent(s.table)))

	rows, err := s.db.QueryContext(ctx, query, matchNo)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query deliveries", err)
	}
	defer rows.Close()

	var deliveries []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		var outcome string
		if err := rows.Scan(&d.Seq, &d.MatchNo, &d.Inning, &d.Over, &d.Ball, &d.Batter, &d.Score, &outcome); err != nil {
			return nil, apperrors.NewStorageError("failed to scan delivery", err)
		}
		if d.Outcome, err = domain.ParseOutcome(outcome); err != nil {
			return nil, apperrors.NewStorageError("stored outcome is invalid", err).WithContext("row", d.Seq)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to read deliveries", err)
	}
	return deliveries, nil
}

// InningTotals returns SUM(score) and the number of wicket deliveries of an inning.
func (s *Store) InningTotals(ctx context.Context, matchNo, inning int) (domain.InningTotals, error) {
	query := s.dialect.rebind(fmt.Sprintf(
		`SELECT COALESCE(SUM(score), 0),
		        COUNT(CASE WHEN outcome = ? THEN 1 END)
		 FROM %s WHERE match_no = ? AND inningno = ?`, quoteIdent(s.table)))

	totals := domain.InningTotals{Inning: inning}
	if err := s.db.QueryRowContext(ctx, query, domain.WicketMarker, matchNo, inning).
		Scan(&totals.Runs, &totals.Wickets); err != nil {
		return domain.InningTotals{}, apperrors.NewStorageError("failed to query inning totals", err).
			WithContext("inning", inning)
	}
	return totals, nil
}

// BattingStats groups non-wicket deliveries of an inning by batter, in order
// of each batter's first appearance.
func (s *Store) BattingStats(ctx context.Context, matchNo, inning int) ([]domain.BattingLine, error) {
	query := s.dialect.rebind(fmt.Sprintf(
		`SELECT batter,
		        SUM(score),
		        COUNT(*),
		        SUM(CASE WHEN score = 4 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN score = 6 THEN 1 ELSE 0 END)
		 FROM %s
		 WHERE match_no = ? AND inningno = ? AND outcome <> ?
		 GROUP BY batter
		 ORDER BY MIN(seq)`, quoteIdent(s.table)))

	rows, err := s.db.QueryContext(ctx, query, matchNo, inning, domain.WicketMarker)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query batting stats", err).
			WithContext("inning", inning)
	}
	defer rows.Close()

	lines := []domain.BattingLine{}
	for rows.Next() {
		var line domain.BattingLine
		if err := rows.Scan(&line.Batter, &line.Runs, &line.Balls, &line.Fours, &line.Sixes); err != nil {
			return nil, apperrors.NewStorageError("failed to scan batting line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to read batting stats", err)
	}
	return lines, nil
}

// DumpRows reads every stored row of a match as text, for the diagnostic dump.
func (s *Store) DumpRows(ctx context.Context, matchNo int) (*Dump, error) {
	deliveries, err := s.Deliveries(ctx, matchNo)
	if err != nil {
		return nil, err
	}

	dump := &Dump{
		Columns: Columns,
		Rows:    make([][]string, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		dump.Rows = append(dump.Rows, []string{
			strconv.Itoa(d.Seq),
			strconv.Itoa(d.MatchNo),
			strconv.Itoa(d.Inning),
			strconv.Itoa(d.Over),
			strconv.Itoa(d.Ball),
			d.Batter,
			strconv.Itoa(d.Score),
			d.Outcome.String(),
		})
	}
	return dump, nil
}
