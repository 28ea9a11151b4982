package history

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"btr/internal/domain"
)

// Recorder appends completed runs to a MySQL table so results can be
// tracked across invocations. Recording is best-effort: a failure here is
// reported to the caller as a plain error and must never change the run
// outcome.
type Recorder struct {
	dsn string
}

// NewRecorder creates a run history recorder for the given DSN.
func NewRecorder(dsn string) *Recorder {
	return &Recorder{dsn: dsn}
}

// Record inserts one row per run plus one row per executed phase.
func (r *Recorder) Record(outcome domain.RunOutcome, suite, scope string) error {
	db, err := sql.Open("mysql", r.dsn)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect to history database: %w", err)
	}

	if err := r.ensureSchema(db); err != nil {
		return err
	}

	res, err := db.Exec(
		`INSERT INTO test_runs (exit_code, duration_seconds, test_suite, python_scope) VALUES (?, ?, ?, ?)`,
		outcome.ExitCode, outcome.Duration.Seconds(), suite, scope,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, p := range outcome.Phases {
		_, err := db.Exec(
			`INSERT INTO test_run_phases (run_id, phase, exit_code, duration_seconds) VALUES (?, ?, ?, ?)`,
			runID, string(p.Phase), p.ExitCode, p.Duration.Seconds(),
		)
		if err != nil {
			return fmt.Errorf("insert phase %s: %w", p.Phase, err)
		}
	}
	return nil
}

func (r *Recorder) ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS test_runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			exit_code INT NOT NULL,
			duration_seconds DOUBLE NOT NULL,
			test_suite VARCHAR(16) NOT NULL,
			python_scope VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS test_run_phases (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id BIGINT NOT NULL,
			phase VARCHAR(16) NOT NULL,
			exit_code INT NOT NULL,
			duration_seconds DOUBLE NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}
	}
	return nil
}
