package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"resumelab/internal/errors"
	"resumelab/internal/types"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "resumes.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := sqliteStore.Close(); err != nil {
			t.Errorf("failed to close sqlite store: %v", err)
		}
	})

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved, err := s.Save(ctx, types.ResumeRecord{
				Name:       "jane.pdf",
				Text:       "Led a team of five engineers.",
				TargetRole: "software engineer",
			})
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if saved.ID == "" {
				t.Fatal("Save did not assign an id")
			}
			if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
				t.Error("Save did not assign timestamps")
			}

			got, err := s.Get(ctx, saved.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Text != saved.Text || got.TargetRole != saved.TargetRole || got.Name != saved.Name {
				t.Errorf("Get returned %+v, want %+v", got, saved)
			}
		})
	}
}

func TestStoreUpdatePreservesCreatedAt(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved, err := s.Save(ctx, types.ResumeRecord{Text: "original"})
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			time.Sleep(10 * time.Millisecond)
			saved.Text = "updated"
			updated, err := s.Save(ctx, saved)
			if err != nil {
				t.Fatalf("update Save failed: %v", err)
			}

			if !updated.CreatedAt.Equal(saved.CreatedAt) {
				t.Errorf("CreatedAt changed on update: %v -> %v", saved.CreatedAt, updated.CreatedAt)
			}
			if !updated.UpdatedAt.After(saved.UpdatedAt) {
				t.Errorf("UpdatedAt did not advance: %v -> %v", saved.UpdatedAt, updated.UpdatedAt)
			}

			got, err := s.Get(ctx, saved.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Text != "updated" {
				t.Errorf("Get returned text %q, want %q", got.Text, "updated")
			}
		})
	}
}

func TestStoreUpdateUnknownID(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Save(context.Background(), types.ResumeRecord{ID: "nope", Text: "x"})
			if !isNotFound(err) {
				t.Errorf("got %v, want RECORD_NOT_FOUND", err)
			}
		})
	}
}

func TestStoreListOrdering(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := s.Save(ctx, types.ResumeRecord{Text: "first"})
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			time.Sleep(10 * time.Millisecond)
			second, err := s.Save(ctx, types.ResumeRecord{Text: "second"})
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			records, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("got %d records, want 2", len(records))
			}
			if records[0].ID != second.ID || records[1].ID != first.ID {
				t.Errorf("records not in most-recently-updated order: %s, %s", records[0].ID, records[1].ID)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved, err := s.Save(ctx, types.ResumeRecord{Text: "to delete"})
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if err := s.Delete(ctx, saved.ID); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := s.Get(ctx, saved.ID); !isNotFound(err) {
				t.Errorf("Get after Delete = %v, want RECORD_NOT_FOUND", err)
			}
			if err := s.Delete(ctx, saved.ID); !isNotFound(err) {
				t.Errorf("second Delete = %v, want RECORD_NOT_FOUND", err)
			}
		})
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(context.Background(), "missing"); !isNotFound(err) {
				t.Errorf("got %v, want RECORD_NOT_FOUND", err)
			}
		})
	}
}

func isNotFound(err error) bool {
	var appErr *errors.AppError
	return errors.As(err, &appErr) && appErr.Code == errors.ErrCodeRecordNotFound
}
