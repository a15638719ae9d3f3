package store

import (
	"bytes"
	"database/sql"
	"errors"
	"testing"
)

func newTestStore(t *testing.T) ReductionStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_CreateAndGetReduction(t *testing.T) {
	s := newTestStore(t)

	reduction := &Reduction{
		Image:          []byte{0x89, 'P', 'N', 'G'},
		OriginalWidth:  100,
		OriginalHeight: 200,
		ReducedWidth:   50,
		ReducedHeight:  100,
	}

	id, err := s.CreateReduction(reduction)
	if err != nil {
		t.Fatalf("CreateReduction error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}
	if reduction.ID != id {
		t.Errorf("expected reduction.ID to be set to %q, got %q", id, reduction.ID)
	}
	if reduction.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := s.GetReduction(id)
	if err != nil {
		t.Fatalf("GetReduction error: %v", err)
	}
	if !bytes.Equal(got.Image, reduction.Image) {
		t.Error("stored image bytes do not match")
	}
	if got.OriginalWidth != 100 || got.OriginalHeight != 200 {
		t.Errorf("expected original 100x200, got %dx%d", got.OriginalWidth, got.OriginalHeight)
	}
	if got.ReducedWidth != 50 || got.ReducedHeight != 100 {
		t.Errorf("expected reduced 50x100, got %dx%d", got.ReducedWidth, got.ReducedHeight)
	}
}

func TestSQLite_GetReductionImage(t *testing.T) {
	s := newTestStore(t)

	image := []byte{0x01, 0x02, 0x03}
	id, err := s.CreateReduction(&Reduction{Image: image, OriginalWidth: 4, OriginalHeight: 4, ReducedWidth: 2, ReducedHeight: 2})
	if err != nil {
		t.Fatalf("CreateReduction error: %v", err)
	}

	got, err := s.GetReductionImage(id)
	if err != nil {
		t.Fatalf("GetReductionImage error: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Error("image bytes do not match")
	}
}

func TestSQLite_GetReduction_Missing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetReduction("missing-id")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestSQLite_ListReductions_MetadataOnly(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateReduction(&Reduction{Image: []byte{0x01}, OriginalWidth: 10, OriginalHeight: 10, ReducedWidth: 5, ReducedHeight: 5}); err != nil {
		t.Fatalf("CreateReduction #1 error: %v", err)
	}
	if _, err := s.CreateReduction(&Reduction{Image: []byte{0x02}, OriginalWidth: 20, OriginalHeight: 20, ReducedWidth: 10, ReducedHeight: 10}); err != nil {
		t.Fatalf("CreateReduction #2 error: %v", err)
	}

	reductions, err := s.ListReductions()
	if err != nil {
		t.Fatalf("ListReductions error: %v", err)
	}
	if len(reductions) != 2 {
		t.Fatalf("expected 2 reductions, got %d", len(reductions))
	}
	for i, r := range reductions {
		if r.ID == "" {
			t.Errorf("reduction[%d].ID is empty", i)
		}
		if r.Image != nil {
			t.Errorf("reduction[%d].Image is not nil; expected metadata only", i)
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("reduction[%d].CreatedAt is zero", i)
		}
	}
}

func TestSQLite_DeleteReduction(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateReduction(&Reduction{Image: []byte{0x01}, OriginalWidth: 4, OriginalHeight: 4, ReducedWidth: 2, ReducedHeight: 2})
	if err != nil {
		t.Fatalf("CreateReduction error: %v", err)
	}

	if err := s.DeleteReduction(id); err != nil {
		t.Fatalf("DeleteReduction error: %v", err)
	}

	if _, err := s.GetReduction(id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestNewStore_UnsupportedDriver(t *testing.T) {
	_, err := NewStore("postgres", "conn")
	if err == nil {
		t.Error("expected error for unsupported store driver")
	}
}

func TestNewStore_SQLite(t *testing.T) {
	s, err := NewStore("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	// Schema must exist right away
	if _, err := s.ListReductions(); err != nil {
		t.Errorf("ListReductions on fresh store error: %v", err)
	}
}
