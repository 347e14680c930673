package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustHabit(t *testing.T, store *sqlite.Store, userID int64, title string) models.Habit {
	t.Helper()
	h, err := store.CreateHabit(models.Habit{UserID: userID, Title: title, Frequency: constants.FrequencyDaily})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func record(t *testing.T, store *sqlite.Store, habitID int64, day string, status bool) {
	t.Helper()
	if err := store.UpsertHabitLog(habitID, day, status); err != nil {
		t.Fatal(err)
	}
}

func TestCalendar(t *testing.T) {
	store := setupTestStore(t)
	ana, _ := store.CreateUser("ana", "hash")
	bruno, _ := store.CreateUser("bruno", "hash")

	read := mustHabit(t, store, ana.ID, "read")
	run := mustHabit(t, store, ana.ID, "run")
	other := mustHabit(t, store, bruno.ID, "other")

	record(t, store, read.ID, "2024-01-01", true)
	record(t, store, run.ID, "2024-01-01", true)
	record(t, store, read.ID, "2024-01-02", true)
	record(t, store, run.ID, "2024-01-02", false)
	record(t, store, run.ID, "2024-02-10", true)
	record(t, store, other.ID, "2024-01-01", true)
	record(t, store, other.ID, "2024-01-05", true)

	agg := NewAggregator(store)
	got := agg.Calendar(ana.ID)
	want := map[string]int{"2024-01-01": 2, "2024-01-02": 1, "2024-02-10": 1}

	if len(got) != len(want) {
		t.Fatalf("Calendar() = %v, want %v", got, want)
	}
	for day, n := range want {
		if got[day] != n {
			t.Errorf("Calendar()[%s] = %d, want %d", day, got[day], n)
		}
	}

	month := agg.Month(ana.ID, 2024, time.January)
	if len(month) != 2 || month["2024-01-01"] != 2 || month["2024-01-02"] != 1 {
		t.Errorf("Month(2024-01) = %v", month)
	}

	if n := agg.Day(ana.ID, "2024-01-01"); n != 2 {
		t.Errorf("Day(2024-01-01) = %d, want 2", n)
	}
	if n := agg.Day(bruno.ID, "2024-01-02"); n != 0 {
		t.Errorf("Day for bruno = %d, want 0", n)
	}
}

func TestCalendarEmptyOnFailure(t *testing.T) {
	store := setupTestStore(t)
	ana, _ := store.CreateUser("ana", "hash")
	store.DB().Close()

	agg := NewAggregator(store)
	if got := agg.Calendar(ana.ID); got == nil || len(got) != 0 {
		t.Errorf("Calendar() on closed store = %v, want empty map", got)
	}
	if got := agg.Month(ana.ID, 2024, time.January); got == nil || len(got) != 0 {
		t.Errorf("Month() on closed store = %v, want empty map", got)
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in, today string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{"2024-02", "2024-05-10", 2024, time.February, false},
		{"", "2024-05-10", 2024, time.May, false},
		{"2024-13", "2024-05-10", 0, 0, true},
		{"feb", "2024-05-10", 0, 0, true},
	}

	for _, tt := range tests {
		y, m, err := ParseMonth(tt.in, tt.today)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%q) error = %v", tt.in, err)
			continue
		}
		if y != tt.wantYear || m != tt.wantMonth {
			t.Errorf("ParseMonth(%q) = %d-%v", tt.in, y, m)
		}
	}
}
