package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Read before write
	if _, err := s.Read(ctx, "board/board.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	exists, err := s.Exists(ctx, "board/board.yaml")
	if err != nil || exists {
		t.Errorf("Expected not to exist, got exists=%v err=%v", exists, err)
	}

	// Write creates intermediate directories
	if err := s.Write(ctx, "board/board.yaml", []byte("next_id: 3\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	data, err := s.Read(ctx, "board/board.yaml")
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(data) != "next_id: 3\n" {
		t.Errorf("Unexpected data: %q", data)
	}

	// Overwrite
	if err := s.Write(ctx, "board/board.yaml", []byte("next_id: 4\n")); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}
	data, _ = s.Read(ctx, "board/board.yaml")
	if string(data) != "next_id: 4\n" {
		t.Errorf("Unexpected data after overwrite: %q", data)
	}

	// Delete
	if err := s.Delete(ctx, "board/board.yaml"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if err := s.Delete(ctx, "board/board.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLocalStorage_Resolve(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	want := filepath.Join(dir, "board", "board.yaml")
	if got := s.Resolve("board/board.yaml"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}
