package userfields

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumnRendersUnits(t *testing.T) {
	target := &selectTarget{}
	column, err := NewColumn("reviewers", target)
	if err != nil {
		t.Fatalf("new column: %v", err)
	}
	if target.html != 1 {
		t.Fatalf("expected html mode, got %d", target.html)
	}
	if column.Wrapped() {
		t.Fatalf("columns are not wrapped by default")
	}

	items := column.Items(Descriptors(ann, bo), nil)
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}
	html := string(column.Render(Descriptors(ann, bo), nil))
	if !strings.HasPrefix(html, `<div class="flex flex-wrap gap-y-1 gap-x-2">`) {
		t.Fatalf("unexpected container %s", html)
	}
	if !strings.Contains(html, string(items[0])+string(items[1])) {
		t.Fatalf("expected items in order in %s", html)
	}
}

func TestColumnResolvesEncodedAgainstRow(t *testing.T) {
	column, err := NewColumn("reviewers", &selectTarget{})
	if err != nil {
		t.Fatalf("new column: %v", err)
	}
	items := column.Items(Encoded(`{"id":3}`), []Descriptor{ann, cy})
	if len(items) != 1 || !strings.Contains(string(items[0]), ">Cy</span>") {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestWrappedListsStackVertically(t *testing.T) {
	column, err := NewColumn("reviewers", &selectTarget{}, WithWrapped(true))
	if err != nil {
		t.Fatalf("new column: %v", err)
	}
	entry, err := NewEntry("reviewers", &selectTarget{}, WithWrapped(true))
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}

	if diff := cmp.Diff(map[string]string{"class": "flex flex-wrap gap-y-1 gap-x-2 flex-col"}, column.ExtraAttributes()); diff != "" {
		t.Fatalf("column attributes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"class": "flex flex-wrap gap-2 flex-col"}, entry.ExtraAttributes()); diff != "" {
		t.Fatalf("entry attributes mismatch (-want +got):\n%s", diff)
	}
	if !entry.Wrapped() || !strings.Contains(string(entry.Render(Single(cy))), `class="flex flex-wrap gap-2 flex-col"`) {
		t.Fatalf("expected wrapped entry markup")
	}
}

func TestEntry(t *testing.T) {
	entry, err := NewEntry("reviewers", &selectTarget{})
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"class": "flex flex-wrap gap-2"}, entry.ExtraAttributes()); diff != "" {
		t.Fatalf("entry attributes mismatch (-want +got):\n%s", diff)
	}
	if got := entry.Items(None()); len(got) != 0 {
		t.Fatalf("expected no items for none, got %v", got)
	}
	if got := string(entry.Render(None())); got != `<div class="flex flex-wrap gap-2"></div>` {
		t.Fatalf("unexpected empty entry markup %s", got)
	}
}

func TestListsRequireHTMLHook(t *testing.T) {
	if _, err := NewColumn("reviewers", &legacyTarget{}); !errors.Is(err, ErrIncompatibleHost) {
		t.Fatalf("expected ErrIncompatibleHost for column, got %v", err)
	}
	if _, err := NewEntry("reviewers", bareTarget{}); !errors.Is(err, ErrIncompatibleHost) {
		t.Fatalf("expected ErrIncompatibleHost for entry, got %v", err)
	}
}
