package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/repositories/dataset/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const migrationTable = "schema_migrations"

var (
	// ErrDatasetNotFound is returned when a dataset is not found
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrDatasetNameTaken is returned when a dataset name is already used
	ErrDatasetNameTaken = errors.New("dataset name already exists")
)

// Store persists datasets in SQLite
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite dataset store and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateDataset inserts a dataset and its contents in one transaction
func (s *Store) CreateDataset(ctx context.Context, input *CreateDatasetInput) error {
	if input == nil || input.Dataset == nil {
		return errors.New("input and dataset cannot be nil")
	}
	ds := input.Dataset
	if strings.TrimSpace(ds.ID) == "" || strings.TrimSpace(ds.Name) == "" {
		return errors.New("dataset ID and name are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, created_at) VALUES (?, ?, ?)`,
		ds.ID, ds.Name, ds.CreatedAt.UTC().UnixMilli(),
	); err != nil {
		if isUniqueViolation(err) {
			return ErrDatasetNameTaken
		}
		return fmt.Errorf("insert dataset: %w", err)
	}

	for i, q := range ds.Questions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, dataset_id, position, text) VALUES (?, ?, ?, ?)`,
			q.ID, ds.ID, i, q.Text,
		); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	for i, p := range ds.People {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO people (dataset_id, position, name) VALUES (?, ?, ?)`,
			ds.ID, i, p.Name,
		)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		personID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		for _, a := range p.Answers {
			if strings.TrimSpace(a.Text) == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO answers (person_id, question_id, text) VALUES (?, ?, ?)`,
				personID, a.QuestionID, a.Text,
			); err != nil {
				return fmt.Errorf("insert answer: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset: %w", err)
	}
	return nil
}

// GetDataset retrieves a dataset with questions and people in import order
func (s *Store) GetDataset(ctx context.Context, input *GetDatasetInput) (*models.Dataset, error) {
	if input == nil || input.DatasetID == "" {
		return nil, errors.New("input and dataset ID cannot be empty")
	}

	ds := &models.Dataset{ID: input.DatasetID}
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT name, created_at FROM datasets WHERE id = ?`, input.DatasetID,
	).Scan(&ds.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDatasetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	ds.CreatedAt = time.UnixMilli(createdAt).UTC()

	qRows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, text FROM questions WHERE dataset_id = ? ORDER BY position`, input.DatasetID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer qRows.Close()
	for qRows.Next() {
		var q models.Question
		if err := qRows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		ds.Questions = append(ds.Questions, q)
	}
	if err := qRows.Err(); err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	// the pool holds a single connection
	_ = qRows.Close()

	pRows, err := s.sqlDB.QueryContext(ctx,
		`SELECT p.id, p.name, a.question_id, a.text
		   FROM people p
		   LEFT JOIN answers a ON a.person_id = p.id
		  WHERE p.dataset_id = ?
		  ORDER BY p.position`, input.DatasetID)
	if err != nil {
		return nil, fmt.Errorf("get people: %w", err)
	}
	defer pRows.Close()

	index := make(map[int64]int)
	for pRows.Next() {
		var (
			personID   int64
			name       string
			questionID sql.NullString
			text       sql.NullString
		)
		if err := pRows.Scan(&personID, &name, &questionID, &text); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		i, ok := index[personID]
		if !ok {
			i = len(ds.People)
			index[personID] = i
			ds.People = append(ds.People, models.Person{Name: name})
		}
		if questionID.Valid {
			ds.People[i].Answers = append(ds.People[i].Answers, models.Answer{
				QuestionID: questionID.String,
				Text:       text.String,
			})
		}
	}
	if err := pRows.Err(); err != nil {
		return nil, fmt.Errorf("get people: %w", err)
	}

	order := make(map[string]int, len(ds.Questions))
	for i, q := range ds.Questions {
		order[q.ID] = i
	}
	for i := range ds.People {
		answers := ds.People[i].Answers
		sort.Slice(answers, func(a, b int) bool {
			return order[answers[a].QuestionID] < order[answers[b].QuestionID]
		})
	}

	return ds, nil
}

// ListDatasets retrieves dataset summaries, newest first
func (s *Store) ListDatasets(ctx context.Context, _ *ListDatasetsInput) ([]*models.DatasetSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT d.id, d.name, d.created_at,
		        (SELECT COUNT(*) FROM questions q WHERE q.dataset_id = d.id),
		        (SELECT COUNT(*) FROM people p WHERE p.dataset_id = d.id)
		   FROM datasets d
		  ORDER BY d.created_at DESC, d.name`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	out := []*models.DatasetSummary{}
	for rows.Next() {
		var (
			summary   models.DatasetSummary
			createdAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &createdAt, &summary.QuestionCount, &summary.PeopleCount); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		summary.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// applyMigrations executes each embedded migration at most once
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := sqlDB.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upMigration returns the section between the Up and Down markers
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	start := strings.Index(content, up)
	if start == -1 {
		return content
	}
	content = content[start+len(up):]
	if end := strings.Index(content, down); end != -1 {
		content = content[:end]
	}
	return content
}
