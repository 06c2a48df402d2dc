package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"resumelab/internal/errors"
	"resumelab/internal/types"
)

// SQLiteStore persists resume records in a SQLite database file using
// the pure-Go driver, so no cgo toolchain is required.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError(
			errors.ErrCodeInvalidConfig,
			"failed to open sqlite database",
			err,
		).WithContext("path", path)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.NewStorageError(errors.ErrCodeInvalidConfig, "failed to initialize schema", err).
				WithContext("close_error", closeErr.Error())
		}
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS resumes (
		id          TEXT PRIMARY KEY,
		name        TEXT,
		text        TEXT NOT NULL,
		target_role TEXT,
		target_area TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`)
	if err != nil {
		return errors.NewStorageError(
			errors.ErrCodeInvalidConfig,
			"failed to initialize resume schema",
			err,
		)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, record types.ResumeRecord) (types.ResumeRecord, error) {
	now := time.Now().UTC()

	if record.ID == "" {
		record.ID = newID()
		record.CreatedAt = now
		record.UpdatedAt = now

		_, err := s.db.ExecContext(ctx,
			`INSERT INTO resumes (id, name, text, target_role, target_area, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.Name, record.Text, record.TargetRole, record.TargetArea,
			record.CreatedAt.Format(time.RFC3339Nano), record.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return types.ResumeRecord{}, errors.NewStorageError(
				errors.ErrCodeStorageFailed,
				"failed to insert resume",
				err,
			).WithContext("id", record.ID)
		}
		return record, nil
	}

	existing, err := s.Get(ctx, record.ID)
	if err != nil {
		return types.ResumeRecord{}, err
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`UPDATE resumes SET name = ?, text = ?, target_role = ?, target_area = ?, updated_at = ?
		 WHERE id = ?`,
		record.Name, record.Text, record.TargetRole, record.TargetArea,
		record.UpdatedAt.Format(time.RFC3339Nano), record.ID,
	)
	if err != nil {
		return types.ResumeRecord{}, errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to update resume",
			err,
		).WithContext("id", record.ID)
	}
	return record, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (types.ResumeRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, text, target_role, target_area, created_at, updated_at
		 FROM resumes WHERE id = ?`, id)

	record, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return types.ResumeRecord{}, notFound(id)
	}
	if err != nil {
		return types.ResumeRecord{}, errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to read resume",
			err,
		).WithContext("id", id)
	}
	return record, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]types.ResumeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, text, target_role, target_area, created_at, updated_at
		 FROM resumes ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to list resumes",
			err,
		)
	}
	defer rows.Close()

	var records []types.ResumeRecord
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, errors.NewStorageError(
				errors.ErrCodeStorageFailed,
				"failed to scan resume row",
				err,
			)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to iterate resumes",
			err,
		)
	}
	return records, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to delete resume",
			err,
		).WithContext("id", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError(
			errors.ErrCodeStorageFailed,
			"failed to confirm resume deletion",
			err,
		).WithContext("id", id)
	}
	if affected == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecord(scan func(dest ...any) error) (types.ResumeRecord, error) {
	var record types.ResumeRecord
	var createdAt, updatedAt string

	if err := scan(&record.ID, &record.Name, &record.Text, &record.TargetRole,
		&record.TargetArea, &createdAt, &updatedAt); err != nil {
		return types.ResumeRecord{}, err
	}

	var err error
	if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return types.ResumeRecord{}, err
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return types.ResumeRecord{}, err
	}
	return record, nil
}
