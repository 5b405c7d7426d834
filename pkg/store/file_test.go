package store

import (
	"context"
	"errors"
	"testing"
	"time"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	content := `{"z": 1.50, "a": [true]}`
	doc, err := NewDocument("config", content)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != content {
		t.Errorf("Content = %q, want verbatim %q", got.Content, content)
	}
	if got.Name != "config" || got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Errorf("Get() = %+v", got)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := "3f2b8c1e-6a4d-4e2f-9b1a-0c5d7e8f9a0b"

	_, err := s.Get(ctx, id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if !apperr.Is(err, apperr.ErrCodeDocumentNotFound) {
		t.Errorf("Get() error code = %s", apperr.GetCode(err))
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"", "../secrets", "abc"} {
		if _, err := s.Get(ctx, id); !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
			t.Errorf("Get(%q) error = %v, want INVALID_DOCUMENT", id, err)
		}
	}
	if err := s.Save(ctx, &Document{ID: "../x", Name: "n"}); !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("Save with bad id error = %v", err)
	}
}

func TestFileStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := NewDocument("first", `[]`)
	second, _ := NewDocument("second", `{"k": "v"}`)
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %d documents, want 2", len(list))
	}
	if list[0].Name != "second" || list[0].Size != len(`{"k": "v"}`) {
		t.Errorf("List()[0] = %+v, want the newest document first", list[0])
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("List() after Delete = %+v", list)
	}
}

func TestSaveAssignsID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := &Document{Name: "untitled", Content: "null"}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := apperr.ValidateDocumentID(doc.ID); err != nil {
		t.Errorf("assigned id %q is invalid: %v", doc.ID, err)
	}
}

func TestNewDocumentValidatesName(t *testing.T) {
	if _, err := NewDocument("", "{}"); !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("NewDocument(\"\") error = %v", err)
	}
}
