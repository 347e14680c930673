package habits

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage/sqlite"
	"github.com/julianstephens/conquista/internal/utils"
)

// today for every test in this package
const testToday = "2024-01-03"

func setupTestService(t *testing.T) (*Service, *sqlite.Store, models.User) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	user, err := store.CreateUser("ana", "hash")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	clock := utils.FixedClock(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))
	return NewService(store, clock), store, user
}

func mustCreate(t *testing.T, svc *Service, userID int64, fields models.HabitFields) models.Habit {
	t.Helper()
	res := svc.CreateHabit(userID, fields)
	if !res.Success {
		t.Fatalf("CreateHabit(%q) failed: %s", fields.Title, res.Message)
	}
	habits := svc.ListActiveHabits(userID, "9999-12-31")
	for _, h := range habits {
		if h.Title == strings.TrimSpace(fields.Title) {
			return h
		}
	}
	t.Fatalf("created habit %q not listed", fields.Title)
	return models.Habit{}
}

func TestCreateHabitDefaults(t *testing.T) {
	svc, _, user := setupTestService(t)

	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "  Read  "})

	if h.Title != "Read" {
		t.Errorf("Title = %q, want trimmed", h.Title)
	}
	if h.Icon != constants.DefaultHabitIcon {
		t.Errorf("Icon = %q", h.Icon)
	}
	if h.Color != constants.DefaultHabitColor {
		t.Errorf("Color = %q", h.Color)
	}
	if h.Frequency != constants.FrequencyDaily {
		t.Errorf("Frequency = %q", h.Frequency)
	}
	if h.Category != constants.DefaultHabitCategory {
		t.Errorf("Category = %q", h.Category)
	}
	if h.StartDate == nil || *h.StartDate != testToday {
		t.Errorf("StartDate = %v, want %s", h.StartDate, testToday)
	}
	if h.Completed {
		t.Error("new habit should not be completed")
	}
}

func TestCreateHabitValidation(t *testing.T) {
	svc, _, user := setupTestService(t)

	tests := []struct {
		name    string
		fields  models.HabitFields
		wantMsg string
	}{
		{"missing title", models.HabitFields{Title: "   "}, "title is required"},
		{"bad frequency", models.HabitFields{Title: "Run", Frequency: "Hourly"}, "invalid frequency"},
		{"bad start date", models.HabitFields{Title: "Run", StartDate: "03/01/2024"}, "invalid start date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.CreateHabit(user.ID, tt.fields)
			if res.Success {
				t.Fatal("expected failure")
			}
			if !strings.Contains(res.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateHabitStoreFailureCarriesMessage(t *testing.T) {
	svc, _, _ := setupTestService(t)

	// no such user: the foreign key rejects the insert
	res := svc.CreateHabit(999, models.HabitFields{Title: "Orphan"})
	if res.Success {
		t.Fatal("expected failure for unknown user")
	}
	if !strings.Contains(res.Message, "storage failure") {
		t.Errorf("Message = %q, want the store error text", res.Message)
	}
}

func TestCreateHabitFrequencyCaseInsensitive(t *testing.T) {
	svc, _, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Stretch", Frequency: "weekly"})
	if h.Frequency != constants.FrequencyWeekly {
		t.Errorf("Frequency = %q, want Weekly", h.Frequency)
	}
}

func TestListActiveHabitsMonotonic(t *testing.T) {
	svc, _, user := setupTestService(t)

	for _, start := range []string{"2024-01-01", "2024-01-05", "2024-01-10", "2024-02-01"} {
		mustCreate(t, svc, user.ID, models.HabitFields{Title: "from " + start, StartDate: start})
	}

	days := []string{"2023-12-31", "2024-01-01", "2024-01-05", "2024-01-09", "2024-01-10", "2024-03-01"}
	for i := 0; i+1 < len(days); i++ {
		earlier := svc.ListActiveHabits(user.ID, days[i])
		later := svc.ListActiveHabits(user.ID, days[i+1])

		laterIDs := make(map[int64]bool)
		for _, h := range later {
			laterIDs[h.ID] = true
		}
		for _, h := range earlier {
			if !laterIDs[h.ID] {
				t.Errorf("habit %d active on %s but not on %s", h.ID, days[i], days[i+1])
			}
			if h.StartDate != nil && *h.StartDate > days[i] {
				t.Errorf("habit %d listed on %s before its start %s", h.ID, days[i], *h.StartDate)
			}
		}
	}

	if got := len(svc.ListActiveHabits(user.ID, "2024-01-09")); got != 2 {
		t.Errorf("active on 2024-01-09 = %d, want 2", got)
	}
}

func TestListActiveHabitsDefaultsToToday(t *testing.T) {
	svc, _, user := setupTestService(t)
	mustCreate(t, svc, user.ID, models.HabitFields{Title: "Now"})
	mustCreate(t, svc, user.ID, models.HabitFields{Title: "Later", StartDate: "2024-01-04"})

	got := svc.ListActiveHabits(user.ID, "")
	if len(got) != 1 || got[0].Title != "Now" {
		t.Errorf("ListActiveHabits(today) = %+v", got)
	}
}

func TestToggleCompletionInvolution(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Meditate"})

	for _, start := range []bool{false, true} {
		res := svc.ToggleCompletion(h.ID, start, "2024-01-02")
		if !res.Success {
			t.Fatalf("first toggle failed: %s", res.Message)
		}
		res = svc.ToggleCompletion(h.ID, !start, "2024-01-02")
		if !res.Success {
			t.Fatalf("second toggle failed: %s", res.Message)
		}

		log, err := store.GetHabitLog(h.ID, "2024-01-02")
		if err != nil {
			t.Fatalf("GetHabitLog failed: %v", err)
		}
		if log.Status != start {
			t.Errorf("after two toggles from %v, status = %v", start, log.Status)
		}
	}
}

func TestToggleCompletionSingleLogRow(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Walk"})

	status := false
	for i := 0; i < 7; i++ {
		if res := svc.ToggleCompletion(h.ID, status, testToday); !res.Success {
			t.Fatalf("toggle %d failed: %s", i, res.Message)
		}
		status = !status
	}

	count, err := store.CountHabitLogs(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("log rows = %d, want 1", count)
	}
}

func TestToggleCompletionWriteThroughOnlyToday(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Journal", StartDate: "2024-01-01"})

	if res := svc.ToggleCompletion(h.ID, false, "2024-01-02"); !res.Success {
		t.Fatal(res.Message)
	}
	got, _ := store.GetHabit(h.ID)
	if got.Completed {
		t.Error("historical toggle must not touch the completed flag")
	}

	forDate := svc.ListHabitsForDate(user.ID, "2024-01-02")
	if len(forDate) != 1 || !forDate[0].Completed {
		t.Errorf("ListHabitsForDate(2024-01-02) = %+v, want completed from log", forDate)
	}

	if res := svc.ToggleCompletion(h.ID, false, ""); !res.Success {
		t.Fatal(res.Message)
	}
	got, _ = store.GetHabit(h.ID)
	if !got.Completed {
		t.Error("toggle for today should set the completed flag")
	}
}

func TestToggleCompletionErrors(t *testing.T) {
	svc, _, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Swim"})

	if res := svc.ToggleCompletion(h.ID, false, "2024-02-30"); res.Success {
		t.Error("expected failure for invalid date")
	}
	res := svc.ToggleCompletion(h.ID+100, false, testToday)
	if res.Success || !strings.Contains(res.Message, "not found") {
		t.Errorf("unknown habit: %+v", res)
	}
}

func TestToggleReadsCurrentStatus(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Floss"})

	for _, want := range []bool{true, false, true} {
		if res := svc.Toggle(h.ID, ""); !res.Success {
			t.Fatal(res.Message)
		}
		log, err := store.GetHabitLog(h.ID, testToday)
		if err != nil {
			t.Fatal(err)
		}
		if log.Status != want {
			t.Errorf("status = %v, want %v", log.Status, want)
		}
	}
}

func TestToggleWithoutLogUsesTodaysFlag(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Stretch"})
	if err := store.SetHabitCompleted(h.ID, true); err != nil {
		t.Fatal(err)
	}

	if res := svc.Toggle(h.ID, ""); !res.Success || !strings.Contains(res.Message, "not done") {
		t.Fatalf("Toggle = %+v, want marked not done", res)
	}
	got, err := store.GetHabit(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Completed {
		t.Error("completed flag should be cleared")
	}

	// the flag only describes today; past days without a log start undone
	if res := svc.Toggle(h.ID, "2024-01-01"); !res.Success || strings.Contains(res.Message, "not done") {
		t.Errorf("Toggle(past) = %+v, want marked done", res)
	}
}

func TestListWithInvalidDateIsEmpty(t *testing.T) {
	svc, _, user := setupTestService(t)
	mustCreate(t, svc, user.ID, models.HabitFields{Title: "Read", StartDate: "2024-01-01"})

	for _, date := range []string{"2024-13-99", "yesterday", "2024-1-5"} {
		if got := svc.ListActiveHabits(user.ID, date); len(got) != 0 {
			t.Errorf("ListActiveHabits(%q) = %+v, want empty", date, got)
		}
		if got := svc.ListHabitsForDate(user.ID, date); len(got) != 0 {
			t.Errorf("ListHabitsForDate(%q) = %+v, want empty", date, got)
		}
	}
}

func TestDeleteHabitRemovesLogs(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Practice", StartDate: "2023-12-01"})

	for _, d := range []string{"2023-12-28", "2023-12-29", "2023-12-30", "2023-12-31", "2024-01-01"} {
		if res := svc.ToggleCompletion(h.ID, false, d); !res.Success {
			t.Fatal(res.Message)
		}
	}
	if n, _ := store.CountHabitLogs(h.ID); n != 5 {
		t.Fatalf("setup: log rows = %d, want 5", n)
	}

	if res := svc.DeleteHabit(h.ID); !res.Success {
		t.Fatalf("DeleteHabit failed: %s", res.Message)
	}
	n, err := store.CountHabitLogs(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("log rows after delete = %d, want 0", n)
	}

	if res := svc.DeleteHabit(h.ID); res.Success || !strings.Contains(res.Message, "not found") {
		t.Errorf("second delete = %+v, want not found", res)
	}
}

func TestReconcile(t *testing.T) {
	svc, store, user := setupTestService(t)
	h := mustCreate(t, svc, user.ID, models.HabitFields{Title: "Sleep early"})

	// flag set yesterday, no log for today
	if err := store.SetHabitCompleted(h.ID, true); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertHabitLog(h.ID, "2024-01-02", true); err != nil {
		t.Fatal(err)
	}

	if changed := svc.Reconcile(); changed != 1 {
		t.Errorf("Reconcile() = %d, want 1", changed)
	}
	got, _ := store.GetHabit(h.ID)
	if got.Completed {
		t.Error("stale completed flag should be reset")
	}
	if changed := svc.Reconcile(); changed != 0 {
		t.Errorf("second Reconcile() = %d, want 0", changed)
	}
}

func TestListOnClosedStoreIsEmpty(t *testing.T) {
	svc, store, user := setupTestService(t)
	mustCreate(t, svc, user.ID, models.HabitFields{Title: "Any"})
	store.DB().Close()

	if got := svc.ListActiveHabits(user.ID, testToday); got == nil || len(got) != 0 {
		t.Errorf("ListActiveHabits on closed store = %v, want empty slice", got)
	}
	if got := svc.ListHabitsForDate(user.ID, testToday); got == nil || len(got) != 0 {
		t.Errorf("ListHabitsForDate on closed store = %v, want empty slice", got)
	}
}
