package query

import (
	"fmt"
	"math"
	"testing"
	"time"
)

type record struct {
	ID    int
	Name  string
	Notes string
	At    time.Time
	Due   *time.Time
}

var recordSchema = Schema[record]{
	Search: []func(record) string{
		func(r record) string { return r.Name },
		func(r record) string { return r.Notes },
	},
	Sort: map[string]Compare[record]{
		"id":         By(func(r record) int { return r.ID }),
		"name":       ByFold(func(r record) string { return r.Name }),
		"created_at": ByTime(func(r record) time.Time { return r.At }),
		"due":        ByOptionalTime(func(r record) *time.Time { return r.Due }),
	},
}

func makeRecords(n int) []record {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, record{
			ID:    i,
			Name:  fmt.Sprintf("item-%02d", i),
			Notes: "",
			At:    base.Add(time.Duration(n-i) * time.Hour),
		})
	}
	return out
}

func TestRunPaginatesTwentyThreeRecords(t *testing.T) {
	records := makeRecords(23)
	want := []int{10, 10, 3}
	for i, size := range want {
		page := Run(records, nil, recordSchema, Params{Page: i + 1, PageSize: 10})
		if len(page.Items) != size {
			t.Fatalf("page %d: expected %d items, got %d", i+1, size, len(page.Items))
		}
		if page.TotalCount != 23 {
			t.Fatalf("page %d: expected total 23, got %d", i+1, page.TotalCount)
		}
		if page.TotalPages != 3 {
			t.Fatalf("page %d: expected 3 pages, got %d", i+1, page.TotalPages)
		}
	}
}

func TestRunPagesPartitionResultSet(t *testing.T) {
	records := makeRecords(47)
	seen := make(map[int]bool)
	total := 0
	params := Params{SortBy: "name", SortDesc: true, PageSize: 7}
	first := Run(records, nil, recordSchema, params)
	for p := 1; p <= first.TotalPages; p++ {
		params.Page = p
		page := Run(records, nil, recordSchema, params)
		for _, r := range page.Items {
			if seen[r.ID] {
				t.Fatalf("record %d returned twice", r.ID)
			}
			seen[r.ID] = true
		}
		total += len(page.Items)
	}
	if int64(total) != first.TotalCount || total != 47 {
		t.Fatalf("expected 47 records across pages, got %d (total_count %d)", total, first.TotalCount)
	}
}

func TestRunClampsPageSize(t *testing.T) {
	records := makeRecords(250)
	page := Run(records, nil, recordSchema, Params{Page: 1, PageSize: 500})
	if len(page.Items) != MaxPageSize {
		t.Fatalf("expected %d items, got %d", MaxPageSize, len(page.Items))
	}
	if page.PageSize != MaxPageSize {
		t.Fatalf("expected page size %d, got %d", MaxPageSize, page.PageSize)
	}
}

func TestRunDefaultsPaging(t *testing.T) {
	page := Run(makeRecords(15), nil, recordSchema, Params{Page: -3, PageSize: 0})
	if page.PageNumber != 1 || page.PageSize != DefaultPageSize {
		t.Fatalf("unexpected paging defaults: page=%d size=%d", page.PageNumber, page.PageSize)
	}
	if len(page.Items) != DefaultPageSize {
		t.Fatalf("expected %d items, got %d", DefaultPageSize, len(page.Items))
	}
}

func TestRunPastLastPageIsEmpty(t *testing.T) {
	page := Run(makeRecords(5), nil, recordSchema, Params{Page: 4, PageSize: 2})
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.Items == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if page.TotalCount != 5 {
		t.Fatalf("expected total 5, got %d", page.TotalCount)
	}
}

func TestRunSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	records := []record{
		{ID: 1, Name: "Canned Beans", Notes: ""},
		{ID: 2, Name: "Rice", Notes: "bulk BEANS bag"},
		{ID: 3, Name: "Pasta", Notes: "dry"},
	}
	page := Run(records, nil, recordSchema, Params{Search: "  beans "})
	if page.TotalCount != 2 {
		t.Fatalf("expected 2 matches, got %d", page.TotalCount)
	}
	if page.Items[0].ID != 1 || page.Items[1].ID != 2 {
		t.Fatalf("unexpected match order: %+v", page.Items)
	}
}

func TestRunFilterRunsBeforeSearchAndCount(t *testing.T) {
	records := makeRecords(30)
	even := func(r record) bool { return r.ID%2 == 0 }
	page := Run(records, even, recordSchema, Params{Search: "item-1", PageSize: 100})
	// even ids with "item-1" prefix: 10,12,14,16,18
	if page.TotalCount != 5 {
		t.Fatalf("expected 5 matches, got %d", page.TotalCount)
	}
	for _, r := range page.Items {
		if r.ID%2 != 0 {
			t.Fatalf("filter not applied: got id %d", r.ID)
		}
	}
}

func TestRunSortsAllMatchesBeforePaging(t *testing.T) {
	records := makeRecords(25)
	page := Run(records, nil, recordSchema, Params{SortBy: "ID", SortDesc: true, Page: 1, PageSize: 5})
	if page.Items[0].ID != 25 {
		t.Fatalf("expected highest id first, got %d", page.Items[0].ID)
	}
	page = Run(records, nil, recordSchema, Params{SortBy: "createdAt", Page: 1, PageSize: 5})
	if page.Items[0].ID != 25 {
		t.Fatalf("expected newest-created-last ordering to start at id 25, got %d", page.Items[0].ID)
	}
}

func TestRunUnknownSortFieldKeepsOrder(t *testing.T) {
	records := []record{{ID: 3}, {ID: 1}, {ID: 2}}
	page := Run(records, nil, recordSchema, Params{SortBy: "doesNotExist", SortDesc: true})
	for i, id := range []int{3, 1, 2} {
		if page.Items[i].ID != id {
			t.Fatalf("expected input order preserved, got %+v", page.Items)
		}
	}
}

func TestRunSortIsStable(t *testing.T) {
	records := []record{{ID: 1, Name: "b"}, {ID: 2, Name: "a"}, {ID: 3, Name: "B"}, {ID: 4, Name: "A"}}
	page := Run(records, nil, recordSchema, Params{SortBy: "name"})
	want := []int{2, 4, 1, 3}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, page.Items[i].ID)
		}
	}
}

func TestByOptionalTimeOrdersMissingFirst(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	records := []record{{ID: 1, Due: &later}, {ID: 2}, {ID: 3, Due: &now}}
	page := Run(records, nil, recordSchema, Params{SortBy: "due"})
	want := []int{2, 3, 1}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, page.Items[i].ID)
		}
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	records := []record{{ID: 2}, {ID: 1}}
	Run(records, nil, recordSchema, Params{SortBy: "id"})
	if records[0].ID != 2 {
		t.Fatal("input slice was reordered")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestParamsOffset(t *testing.T) {
	if got := (Params{Page: 3, PageSize: 20}).Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
	if got := (Params{Page: 2, PageSize: 1000}).Offset(); got != MaxPageSize {
		t.Fatalf("expected clamped offset %d, got %d", MaxPageSize, got)
	}
}

func TestRunHugePageNumberIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 10, math.MaxInt/10 + 1} {
		got := Run(makeRecords(3), nil, recordSchema, Params{Page: page, PageSize: 10})
		if len(got.Items) != 0 {
			t.Fatalf("page %d: expected empty page, got %d items", page, len(got.Items))
		}
		if got.TotalCount != 3 || got.PageNumber != page {
			t.Fatalf("page %d: unexpected page metadata %+v", page, got)
		}
	}
	if got := (Params{Page: math.MaxInt, PageSize: MaxPageSize}).Offset(); got != math.MaxInt {
		t.Fatalf("expected saturated offset, got %d", got)
	}
}
