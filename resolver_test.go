package userfields

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestResolveNoneIsEmpty(t *testing.T) {
	got := Resolve(None(), nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	var zero RawState
	if zero.Kind() != StateNone {
		t.Fatalf("expected zero RawState to be None, got %s", zero.Kind())
	}
}

func TestResolveSingle(t *testing.T) {
	got := Resolve(Single(ann), nil)
	if diff := cmp.Diff([]Descriptor{ann}, got); diff != "" {
		t.Fatalf("resolve single mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveUnsetSingleReportsIssue(t *testing.T) {
	descriptors, issues := NewResolver().ResolveWithIssues(Single(nil), nil)
	if len(descriptors) != 0 {
		t.Fatalf("expected no descriptors, got %v", descriptors)
	}
	if len(issues) != 1 || !errors.Is(issues[0], ErrUnresolvableState) {
		t.Fatalf("expected ErrUnresolvableState, got %v", issues)
	}
}

func TestResolveCollectionKeepsOrderAndSkipsUnset(t *testing.T) {
	raw := Collection(bo, nil, Descriptor{}, ann, bo)
	descriptors, issues := NewResolver().ResolveWithIssues(raw, nil)

	if diff := cmp.Diff([]Descriptor{bo, ann, bo}, descriptors); diff != "" {
		t.Fatalf("collection mismatch (-want +got):\n%s", diff)
	}
	if len(issues) != 2 {
		t.Fatalf("expected two issues, got %v", issues)
	}
	for _, issue := range issues {
		if !errors.Is(issue, ErrUnresolvableState) {
			t.Fatalf("unexpected issue %v", issue)
		}
	}
}

func TestResolveEncodedRoundTrip(t *testing.T) {
	known := []Descriptor{ann, bo, cy}

	got := Resolve(Encoded(mustEncode(t, bo.ID)), known)
	if diff := cmp.Diff([]Descriptor{bo}, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	missing, issues := NewResolver().ResolveWithIssues(Encoded(mustEncode(t, "99")), known)
	if len(missing) != 0 {
		t.Fatalf("expected no descriptors for unknown id, got %v", missing)
	}
	if len(issues) != 1 || !errors.Is(issues[0], ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", issues)
	}
}

func TestResolveEncodedAcceptsNumericAndAliasedIDs(t *testing.T) {
	known := []Descriptor{ann, bo}
	for _, payload := range []string{`{"id":2}`, `{"id":"2"}`, `{"user_id":2}`, `{"id":2.0}`} {
		got := Resolve(Encoded(payload), known)
		if diff := cmp.Diff([]Descriptor{bo}, got); diff != "" {
			t.Fatalf("payload %s mismatch (-want +got):\n%s", payload, diff)
		}
	}
}

func TestResolveEncodedMalformed(t *testing.T) {
	known := []Descriptor{ann}
	for _, payload := range []string{"", "not json", `[1]`, `{"name":"Ann"}`, `{"id":null}`} {
		got, issues := NewResolver().ResolveWithIssues(Encoded(payload), known)
		if len(got) != 0 {
			t.Fatalf("payload %q: expected no descriptors, got %v", payload, got)
		}
		if len(issues) != 1 || !errors.Is(issues[0], ErrUnresolvableState) {
			t.Fatalf("payload %q: expected ErrUnresolvableState, got %v", payload, issues)
		}
	}
}

func TestResolveEncodedRejectsTrailingData(t *testing.T) {
	known := []Descriptor{ann, bo}
	for _, payload := range []string{`{"id":1}garbage`, `{"id":1}{"id":2}`, `{"id":1}]`} {
		got, issues := NewResolver().ResolveWithIssues(Encoded(payload), known)
		if len(got) != 0 {
			t.Fatalf("payload %q: expected no descriptors, got %v", payload, got)
		}
		if len(issues) != 1 || !errors.Is(issues[0], ErrUnresolvableState) {
			t.Fatalf("payload %q: expected ErrUnresolvableState, got %v", payload, issues)
		}
	}
	if got := Resolve(Encoded(" {\"id\":1}\n"), known); len(got) != 1 || got[0].ID != ann.ID {
		t.Fatalf("surrounding whitespace must still resolve, got %v", got)
	}
}

func TestEncodeIdentifier(t *testing.T) {
	known := []Descriptor{{ID: "a\x01b", Name: "Ctl"}, {ID: `q"uote`, Name: "Quote"}}
	for _, d := range known {
		payload, err := EncodeIdentifier(d.ID)
		if err != nil {
			t.Fatalf("encode %q: %v", d.ID, err)
		}
		if !json.Valid([]byte(payload)) {
			t.Fatalf("encode %q: invalid json %s", d.ID, payload)
		}
		got := Resolve(Encoded(payload), known)
		if len(got) != 1 || got[0].Name != d.Name {
			t.Fatalf("encode %q: expected %s, got %v", d.ID, d.Name, got)
		}
	}
	if _, err := EncodeIdentifier(""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	known := []Descriptor{ann, bo, cy}
	states := []RawState{
		None(),
		Single(cy),
		Descriptors(ann, bo),
		Encoded(`{"id":3}`),
	}
	for _, raw := range states {
		first := Compose(Resolve(raw, known), SourceHost{}.AvatarURL)
		second := Compose(Resolve(raw, known), SourceHost{}.AvatarURL)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s state not idempotent (-first +second):\n%s", raw.Kind(), diff)
		}
		again := Resolve(Descriptors(Resolve(raw, known)...), known)
		if diff := cmp.Diff(Resolve(raw, known), again); diff != "" {
			t.Fatalf("%s state changed when re-resolved:\n%s", raw.Kind(), diff)
		}
	}
}

func TestResolverWithNamer(t *testing.T) {
	resolver := NewResolver(WithNamer(NamerFunc(func(d Descriptor) string {
		return d.Name + " (" + d.ID.String() + ")"
	})))
	got := resolver.Resolve(Descriptors(ann, bo), nil)
	want := []string{"Ann (1)", "Bo (2)"}
	for i, d := range got {
		if d.Name != want[i] {
			t.Fatalf("expected %q, got %q", want[i], d.Name)
		}
	}
	if ann.Name != "Ann" {
		t.Fatalf("namer must not mutate the source descriptor")
	}
}

func TestStateWrap(t *testing.T) {
	wrapped := Single(cy).Wrap()
	if wrapped.Kind() != StateCollection || len(wrapped.Records()) != 1 {
		t.Fatalf("expected one element collection, got %s with %d records", wrapped.Kind(), len(wrapped.Records()))
	}
	if Encoded("x").Wrap().Payload() != "x" {
		t.Fatalf("wrap must leave encoded state untouched")
	}
}

func TestMapRecordDescriptor(t *testing.T) {
	record := MapRecord{"user_id": json.Number("7"), "first_name": "Dee", "last_name": "Lee", "avatar_url": "d.png"}
	d, ok := record.Descriptor()
	if !ok {
		t.Fatalf("expected record to resolve")
	}
	if d.ID != "7" || d.Name != "Dee Lee" {
		t.Fatalf("unexpected descriptor %+v", d)
	}
	if url, ok := (SourceHost{}).AvatarURL(d); !ok || url != "d.png" {
		t.Fatalf("expected avatar from record attributes, got %q %v", url, ok)
	}
	if _, ok := (MapRecord{}).Descriptor(); ok {
		t.Fatalf("expected empty record to be unset")
	}
}

func TestMapRecordDescriptorIgnoresUnencodableAttributes(t *testing.T) {
	records := []struct {
		record MapRecord
		id     ID
		name   string
	}{
		{MapRecord{"id": 1, "name": "Ann", "score": math.NaN()}, "1", "Ann"},
		{MapRecord{"id": 2, "name": "Bo", "on_click": func() {}}, "2", "Bo"},
		{MapRecord{"user_id": 3, "first_name": "Cy", "updates": make(chan int)}, "3", "Cy"},
	}
	for _, tc := range records {
		got := Resolve(Single(tc.record), nil)
		if len(got) != 1 || got[0].ID != tc.id || got[0].Name != tc.name {
			t.Fatalf("record %v: expected %s %s, got %v", tc.id, tc.id, tc.name, got)
		}
	}
}

func TestNewID(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		in   any
		want ID
	}{
		{nil, ""},
		{" 42 ", "42"},
		{42, "42"},
		{uint8(7), "7"},
		{float64(3), "3"},
		{1.5, "1.5"},
		{json.Number("12"), "12"},
		{id, ID(id.String())},
		{uuid.Nil, ""},
		{struct{}{}, ""},
	}
	for _, tc := range cases {
		if got := NewID(tc.in); got != tc.want {
			t.Fatalf("NewID(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if ID(id.String()).UUID() != id {
		t.Fatalf("expected UUID round trip")
	}
	if ID("42").UUID() != uuid.Nil {
		t.Fatalf("expected nil uuid for non uuid id")
	}
}
