// Package store persists resume records. Two implementations are
// provided: an in-process memory store for tests and ephemeral runs,
// and a SQLite-backed store for durable single-node deployments.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"resumelab/internal/errors"
	"resumelab/internal/types"
)

// Store is the resume persistence contract. Save assigns the record's
// ID and timestamps when the ID is empty, and updates the existing
// record otherwise.
type Store interface {
	Save(ctx context.Context, record types.ResumeRecord) (types.ResumeRecord, error)
	Get(ctx context.Context, id string) (types.ResumeRecord, error)
	List(ctx context.Context) ([]types.ResumeRecord, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand read failure is not survivable in any useful way
		panic(fmt.Sprintf("store: cannot generate id: %v", err))
	}
	return hex.EncodeToString(buf)
}

func notFound(id string) error {
	return errors.NewStorageError(
		errors.ErrCodeRecordNotFound,
		fmt.Sprintf("resume not found: %s", id),
		nil,
	)
}
