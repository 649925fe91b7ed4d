package timewin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveSingleMonth(t *testing.T) {
	w, err := Resolve(2024, 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Month{{Year: 2024, Month: 6}}
	if diff := cmp.Diff(want, w.Months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMonthBoundary(t *testing.T) {
	// Week 31 of 2025 runs Jul 28 - Aug 3.
	w, err := Resolve(2025, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Month{{Year: 2025, Month: 7}, {Year: 2025, Month: 8}}
	if diff := cmp.Diff(want, w.Months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveYearBoundaryForward(t *testing.T) {
	// Week 53 of 2024 runs Dec 30 2024 - Jan 5 2025 and must span both
	// calendar years.
	w, err := Resolve(2024, 53)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Month{{Year: 2024, Month: 12}, {Year: 2025, Month: 1}}
	if diff := cmp.Diff(want, w.Months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveYearBoundaryBackward(t *testing.T) {
	// Week 1 of 2026 starts Mon Dec 29 2025.
	w, err := Resolve(2026, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Month{{Year: 2025, Month: 12}, {Year: 2026, Month: 1}}
	if diff := cmp.Diff(want, w.Months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTrueWeek53(t *testing.T) {
	// 2020 is a 53-week ISO year; week 53 runs Dec 28 2020 - Jan 3 2021.
	w, err := Resolve(2020, 53)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Month{{Year: 2020, Month: 12}, {Year: 2021, Month: 1}}
	if diff := cmp.Diff(want, w.Months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNonEmptyAndDeduplicated(t *testing.T) {
	for year := 2019; year <= 2027; year++ {
		for week := 1; week <= 53; week++ {
			w, err := Resolve(year, week)
			if err != nil {
				t.Fatalf("Resolve(%d, %d): %v", year, week, err)
			}
			if len(w.Months) == 0 {
				t.Fatalf("Resolve(%d, %d): empty months", year, week)
			}
			seen := map[Month]bool{}
			for _, m := range w.Months {
				if seen[m] {
					t.Fatalf("Resolve(%d, %d): duplicate month %+v", year, week, m)
				}
				seen[m] = true
			}
		}
	}
}

func TestResolveInvalidWeek(t *testing.T) {
	for _, week := range []int{0, -1, 54, 100} {
		_, err := Resolve(2024, week)
		if !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("Resolve(2024, %d): expected ErrInvalidWindow, got %v", week, err)
		}
	}
}
