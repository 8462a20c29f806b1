package query

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"crudexample/internal/domain"
)

type rec struct {
	Name  string
	Born  *time.Time
	Level int
	Tag   string
	RefID string
}

var levels = []string{"low", "mid", "high"}

func testRegistry() *Registry[rec] {
	return NewRegistry[rec]("Name").
		Register("Name", TextField(func(r rec) string { return r.Name })).
		Register("Born", DateField(func(r rec) *time.Time { return r.Born })).
		Register("Level", EnumField(
			func(r rec) string { return levels[r.Level] },
			func(r rec) int { return r.Level },
		)).
		Register("RefID", IdentifierField(func(r rec) string { return r.RefID }))
}

func day(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func names(rs []rec) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func sample() []rec {
	return []rec{
		{Name: "Smith", Born: day("1990-04-02"), Level: 2, RefID: "AB-1"},
		{Name: "Mary", Born: day("2020-01-15"), Level: 0, RefID: "ab-2"},
		{Name: "Rahman", Born: nil, Level: 1, RefID: "AB-2"},
	}
}

func TestResolveUnknownField(t *testing.T) {
	_, err := testRegistry().Resolve("Nope")
	if !domain.IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	reg := testRegistry()
	if got, changed := reg.Normalize("Born"); got != "Born" || changed {
		t.Fatalf("known token changed: %q %v", got, changed)
	}
	if got, changed := reg.Normalize("born"); got != "Name" || !changed {
		t.Fatalf("unknown token not defaulted: %q %v", got, changed)
	}
	if diff := cmp.Diff([]string{"Name", "Born", "Level", "RefID"}, reg.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterTextCaseInsensitive(t *testing.T) {
	got := Filter(sample(), testRegistry(), "Name", "ma")
	if diff := cmp.Diff([]string{"Mary", "Rahman"}, names(got)); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterDatePartial(t *testing.T) {
	got := Filter(sample(), testRegistry(), "Born", "2020")
	if diff := cmp.Diff([]string{"Mary"}, names(got)); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
	got = Filter(sample(), testRegistry(), "Born", "-04-")
	if diff := cmp.Diff([]string{"Smith"}, names(got)); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterEnumAndIdentifierExact(t *testing.T) {
	reg := testRegistry()
	if got := Filter(sample(), reg, "Level", "mi"); len(got) != 0 {
		t.Fatalf("enum filter must not use substring, got %v", names(got))
	}
	got := Filter(sample(), reg, "Level", "MID")
	if diff := cmp.Diff([]string{"Rahman"}, names(got)); diff != "" {
		t.Fatalf("enum filter mismatch (-want +got):\n%s", diff)
	}
	got = Filter(sample(), reg, "RefID", "ab-2")
	if diff := cmp.Diff([]string{"Mary", "Rahman"}, names(got)); diff != "" {
		t.Fatalf("identifier filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterIdentityLaws(t *testing.T) {
	reg := testRegistry()
	in := sample()
	for _, tc := range []struct {
		name, field, search string
	}{
		{"empty search", "Name", ""},
		{"blank search", "Name", "   "},
		{"unknown field", "Salary", "ma"},
		{"unset field", "", "ma"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(in, reg, tc.field, tc.search)
			if diff := cmp.Diff(names(in), names(got)); diff != "" {
				t.Fatalf("expected identity (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIdempotentAndNonMutating(t *testing.T) {
	reg := testRegistry()
	in := sample()
	before := names(in)
	once := Filter(in, reg, "Name", "a")
	twice := Filter(once, reg, "Name", "a")
	if diff := cmp.Diff(names(once), names(twice)); diff != "" {
		t.Fatalf("filter not idempotent (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(before, names(in)); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSortByText(t *testing.T) {
	reg := testRegistry()
	got := Sort(sample(), reg, "Name", domain.Descending)
	if diff := cmp.Diff([]string{"Smith", "Rahman", "Mary"}, names(got)); diff != "" {
		t.Fatalf("desc mismatch (-want +got):\n%s", diff)
	}
	got = Sort(sample(), reg, "Name", domain.Ascending)
	if diff := cmp.Diff([]string{"Mary", "Rahman", "Smith"}, names(got)); diff != "" {
		t.Fatalf("asc mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDateAbsentFirst(t *testing.T) {
	got := Sort(sample(), testRegistry(), "Born", domain.Ascending)
	if diff := cmp.Diff([]string{"Rahman", "Smith", "Mary"}, names(got)); diff != "" {
		t.Fatalf("date sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByEnumOrdinal(t *testing.T) {
	got := Sort(sample(), testRegistry(), "Level", domain.Ascending)
	if diff := cmp.Diff([]string{"Mary", "Rahman", "Smith"}, names(got)); diff != "" {
		t.Fatalf("enum sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortUnknownFieldIsIdentity(t *testing.T) {
	in := sample()
	got := Sort(in, testRegistry(), "Salary", domain.Descending)
	if diff := cmp.Diff(names(in), names(got)); diff != "" {
		t.Fatalf("expected identity (-want +got):\n%s", diff)
	}
}

func TestSortReverseWithoutTies(t *testing.T) {
	reg := testRegistry()
	for _, field := range []string{"Name", "Born", "Level"} {
		asc := names(Sort(sample(), reg, field, domain.Ascending))
		desc := names(Sort(sample(), reg, field, domain.Descending))
		slices.Reverse(asc)
		if diff := cmp.Diff(asc, desc); diff != "" {
			t.Fatalf("%s: reversed asc != desc (-asc +desc):\n%s", field, diff)
		}
	}
}

func TestSortStableOnTies(t *testing.T) {
	in := []rec{
		{Name: "first", Tag: "x", Level: 1},
		{Name: "second", Tag: "y", Level: 0},
		{Name: "third", Tag: "z", Level: 1},
		{Name: "fourth", Tag: "w", Level: 0},
	}
	reg := testRegistry()
	asc := names(Sort(in, reg, "Level", domain.Ascending))
	if diff := cmp.Diff([]string{"second", "fourth", "first", "third"}, asc); diff != "" {
		t.Fatalf("asc ties reordered (-want +got):\n%s", diff)
	}
	desc := names(Sort(in, reg, "Level", domain.Descending))
	if diff := cmp.Diff([]string{"first", "third", "second", "fourth"}, desc); diff != "" {
		t.Fatalf("desc ties reordered (-want +got):\n%s", diff)
	}
	if in[0].Name != "first" || in[1].Name != "second" {
		t.Fatalf("input mutated: %v", names(in))
	}
}
