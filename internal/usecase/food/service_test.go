package food

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"calorietracker/internal/common/pagination"
	"calorietracker/internal/domain/entity"
)

// fixedClock returns a constant time so tests are not sensitive to when they
// run.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// stubRepo is an in-memory FoodRepository for service tests.
type stubRepo struct {
	entries map[int64]*entity.FoodEntry
	nextID  int64

	createErr error
	queryErr  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{entries: map[int64]*entity.FoodEntry{}, nextID: 1}
}

func (s *stubRepo) put(e *entity.FoodEntry) *entity.FoodEntry {
	if e.ID == 0 {
		e.ID = s.nextID
		s.nextID++
	} else if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	s.entries[e.ID] = e
	return e
}

func (s *stubRepo) ListByDate(_ context.Context, day time.Time) ([]*entity.FoodEntry, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	day = entity.DateOf(day)
	var out []*entity.FoodEntry
	for _, e := range s.entries {
		if !e.IsDeleted && e.DateAdded.Equal(day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubRepo) SumCalories(_ context.Context, day time.Time) (int64, error) {
	if s.queryErr != nil {
		return 0, s.queryErr
	}
	day = entity.DateOf(day)
	var total int64
	for _, e := range s.entries {
		if !e.IsDeleted && e.DateAdded.Equal(day) {
			total += int64(e.Calories)
		}
	}
	return total, nil
}

func (s *stubRepo) ListActivePaginated(_ context.Context, offset, limit int) ([]*entity.FoodEntry, error) {
	var active []*entity.FoodEntry
	for id := int64(1); id < s.nextID; id++ {
		if e, ok := s.entries[id]; ok && !e.IsDeleted {
			active = append(active, e)
		}
	}
	if offset >= len(active) {
		return nil, nil
	}
	active = active[offset:]
	if limit < len(active) {
		active = active[:limit]
	}
	return active, nil
}

func (s *stubRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, e := range s.entries {
		if !e.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) Create(_ context.Context, e *entity.FoodEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.put(e)
	return nil
}

func (s *stubRepo) FindActiveByID(_ context.Context, id int64) (*entity.FoodEntry, error) {
	e, ok := s.entries[id]
	if !ok || e.IsDeleted {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *stubRepo) Update(_ context.Context, e *entity.FoodEntry) error {
	old, ok := s.entries[e.ID]
	if !ok || old.IsDeleted {
		return errors.New("no rows affected")
	}
	cp := *e
	s.entries[e.ID] = &cp
	return nil
}

func (s *stubRepo) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	e, ok := s.entries[id]
	if !ok || e.IsDeleted {
		return errors.New("no rows affected")
	}
	e.IsDeleted = true
	e.UpdatedAt = deletedAt
	return nil
}

var testNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func newTestService(repo *stubRepo) *Service {
	return &Service{Repo: repo, Clock: fixedClock{t: testNow}}
}

func TestService_Add(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	res, err := svc.Add(context.Background(), "  Apple  ", " 95 ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !res.OK() {
		t.Fatalf("Add() errors = %v, want none", res.Errors)
	}
	if want := `Added "Apple" (95 kcal) successfully!`; res.Flash != want {
		t.Errorf("Flash = %q, want %q", res.Flash, want)
	}

	e := repo.entries[res.Entry.ID]
	if e == nil {
		t.Fatal("entry not persisted")
	}
	if e.Name != "Apple" || e.Calories != 95 {
		t.Errorf("persisted entry = %q/%d, want Apple/95", e.Name, e.Calories)
	}
	if got, want := e.DateAdded, entity.DateOf(testNow); !got.Equal(want) {
		t.Errorf("DateAdded = %v, want %v", got, want)
	}
	if e.IsDeleted {
		t.Error("new entry should be active")
	}
}

func TestService_Add_QuotedName(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	res, err := svc.Add(context.Background(), `PB "n" J`, "350")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := `Added "PB "n" J" (350 kcal) successfully!`; res.Flash != want {
		t.Errorf("Flash = %q, want %q", res.Flash, want)
	}
}

func TestService_Add_InvalidInput(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	res, err := svc.Add(context.Background(), "", "-5")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if res.OK() {
		t.Fatal("Add() succeeded, want validation errors")
	}
	wantErrs := []string{entity.MsgNameRequired, entity.MsgCaloriesNegative}
	if diff := cmp.Diff(wantErrs, res.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if res.EchoCalories != "-5" {
		t.Errorf("EchoCalories = %q, want %q", res.EchoCalories, "-5")
	}
	if len(repo.entries) != 0 {
		t.Errorf("repo has %d entries after invalid add, want 0", len(repo.entries))
	}
}

func TestService_Add_CaloriesNotInt_EchoesEmpty(t *testing.T) {
	svc := newTestService(newStubRepo())

	res, err := svc.Add(context.Background(), "Bread", "abc")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	wantErrs := []string{entity.MsgCaloriesNotInt}
	if diff := cmp.Diff(wantErrs, res.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if res.EchoCalories != "" {
		t.Errorf("EchoCalories = %q, want empty", res.EchoCalories)
	}
	if res.EchoName != "Bread" {
		t.Errorf("EchoName = %q, want %q", res.EchoName, "Bread")
	}
}

func TestService_Add_RepoError(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = errors.New("db down")
	svc := newTestService(repo)

	if _, err := svc.Add(context.Background(), "Apple", "95"); err == nil {
		t.Fatal("Add() error = nil, want error")
	}
}

func TestService_Get(t *testing.T) {
	repo := newStubRepo()
	active := repo.put(&entity.FoodEntry{Name: "Apple", Calories: 95, DateAdded: entity.DateOf(testNow)})
	deleted := repo.put(&entity.FoodEntry{Name: "Gone", Calories: 10, DateAdded: entity.DateOf(testNow), IsDeleted: true})
	svc := newTestService(repo)

	got, err := svc.Get(context.Background(), active.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Apple" {
		t.Errorf("Get() name = %q, want Apple", got.Name)
	}

	if _, err := svc.Get(context.Background(), deleted.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrEntryNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 9999); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrEntryNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, ErrInvalidEntryID) {
		t.Errorf("Get(0) error = %v, want ErrInvalidEntryID", err)
	}
	if _, err := svc.Get(context.Background(), -3); !errors.Is(err, ErrInvalidEntryID) {
		t.Errorf("Get(-3) error = %v, want ErrInvalidEntryID", err)
	}
}

func TestService_Edit(t *testing.T) {
	repo := newStubRepo()
	created := testNow.Add(-48 * time.Hour)
	e := repo.put(&entity.FoodEntry{
		Name:      "Aple",
		Calories:  90,
		DateAdded: entity.DateOf(created),
		CreatedAt: created,
		UpdatedAt: created,
	})
	svc := newTestService(repo)

	res, err := svc.Edit(context.Background(), e.ID, "Apple", "95")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if !res.OK() {
		t.Fatalf("Edit() errors = %v, want none", res.Errors)
	}
	if want := `Updated "Aple" to "Apple" (95 kcal)!`; res.Flash != want {
		t.Errorf("Flash = %q, want %q", res.Flash, want)
	}

	got := repo.entries[e.ID]
	if got.Name != "Apple" || got.Calories != 95 {
		t.Errorf("entry after edit = %q/%d, want Apple/95", got.Name, got.Calories)
	}
	if !got.DateAdded.Equal(entity.DateOf(created)) {
		t.Errorf("DateAdded changed to %v", got.DateAdded)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed to %v", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, testNow)
	}
}

func TestService_Edit_InvalidInput_NoMutation(t *testing.T) {
	repo := newStubRepo()
	e := repo.put(&entity.FoodEntry{Name: "Apple", Calories: 95, DateAdded: entity.DateOf(testNow)})
	svc := newTestService(repo)

	res, err := svc.Edit(context.Background(), e.ID, "", "1000000")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	wantErrs := []string{entity.MsgNameRequired, entity.MsgCaloriesTooLarge}
	if diff := cmp.Diff(wantErrs, res.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if res.Entry == nil || res.Entry.Name != "Apple" {
		t.Error("validation failure should carry the loaded entry for re-display")
	}

	got := repo.entries[e.ID]
	if got.Name != "Apple" || got.Calories != 95 {
		t.Errorf("entry mutated on invalid edit: %q/%d", got.Name, got.Calories)
	}
}

func TestService_Edit_NotFound(t *testing.T) {
	svc := newTestService(newStubRepo())

	if _, err := svc.Edit(context.Background(), 42, "Apple", "95"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Edit() error = %v, want ErrEntryNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newStubRepo()
	e := repo.put(&entity.FoodEntry{Name: "Apple", Calories: 95, DateAdded: entity.DateOf(testNow)})
	svc := newTestService(repo)

	res, err := svc.Delete(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if want := `Deleted "Apple" successfully!`; res.Flash != want {
		t.Errorf("Flash = %q, want %q", res.Flash, want)
	}
	if !repo.entries[e.ID].IsDeleted {
		t.Error("entry still active after delete")
	}

	// second delete of the same ID: the row is no longer active
	if _, err := svc.Delete(context.Background(), e.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("second Delete() error = %v, want ErrEntryNotFound", err)
	}
}

func TestService_Home(t *testing.T) {
	repo := newStubRepo()
	today := entity.DateOf(testNow)
	repo.put(&entity.FoodEntry{Name: "Apple", Calories: 95, DateAdded: today})
	repo.put(&entity.FoodEntry{Name: "Bread", Calories: 200, DateAdded: today})
	repo.put(&entity.FoodEntry{Name: "Old", Calories: 500, DateAdded: today.AddDate(0, 0, -3)})
	repo.put(&entity.FoodEntry{Name: "Ancient", Calories: 900, DateAdded: today.AddDate(0, 0, -9)})
	repo.put(&entity.FoodEntry{Name: "Ghost", Calories: 50, DateAdded: today, IsDeleted: true})
	svc := newTestService(repo)

	view, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	if !view.Today.Equal(today) {
		t.Errorf("Today = %v, want %v", view.Today, today)
	}
	if view.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", view.ItemCount)
	}
	if view.TotalCalories != 295 {
		t.Errorf("TotalCalories = %d, want 295", view.TotalCalories)
	}

	if len(view.Weekly) != WindowDays {
		t.Fatalf("len(Weekly) = %d, want %d", len(view.Weekly), WindowDays)
	}
	if !view.Weekly[0].Date.Equal(today.AddDate(0, 0, -7)) {
		t.Errorf("Weekly[0].Date = %v, want 7 days ago", view.Weekly[0].Date)
	}
	if !view.Weekly[WindowDays-1].Date.Equal(today) {
		t.Errorf("Weekly[last].Date = %v, want today", view.Weekly[WindowDays-1].Date)
	}
	if got := view.Weekly[WindowDays-1].Calories; got != 295 {
		t.Errorf("Weekly[last].Calories = %d, want 295", got)
	}
	if got := view.Weekly[4].Calories; got != 500 {
		t.Errorf("Weekly[4].Calories = %d, want 500 (3 days ago)", got)
	}
	// entries outside the window never show up
	for i, d := range view.Weekly {
		if d.Calories == 900 {
			t.Errorf("Weekly[%d] includes out-of-window entry", i)
		}
	}
}

func TestService_Home_RepoError(t *testing.T) {
	repo := newStubRepo()
	repo.queryErr = errors.New("db down")
	svc := newTestService(repo)

	if _, err := svc.Home(context.Background()); err == nil {
		t.Fatal("Home() error = nil, want error")
	}
}

func TestService_WeeklySummary(t *testing.T) {
	repo := newStubRepo()
	today := entity.DateOf(testNow)
	repo.put(&entity.FoodEntry{Name: "Apple", Calories: 95, DateAdded: today})
	repo.put(&entity.FoodEntry{Name: "Soup", Calories: 150, DateAdded: today.AddDate(0, 0, -7)})
	svc := newTestService(repo)

	weekly, err := svc.WeeklySummary(context.Background())
	if err != nil {
		t.Fatalf("WeeklySummary() error = %v", err)
	}
	if len(weekly) != WindowDays {
		t.Fatalf("len = %d, want %d", len(weekly), WindowDays)
	}
	if weekly[0].Calories != 150 {
		t.Errorf("oldest day calories = %d, want 150", weekly[0].Calories)
	}
	if weekly[WindowDays-1].Calories != 95 {
		t.Errorf("today calories = %d, want 95", weekly[WindowDays-1].Calories)
	}
}

func TestService_ListPaginated(t *testing.T) {
	repo := newStubRepo()
	for i := 0; i < 5; i++ {
		repo.put(&entity.FoodEntry{Name: "Entry", Calories: 100, DateAdded: entity.DateOf(testNow)})
	}
	repo.put(&entity.FoodEntry{Name: "Gone", Calories: 1, DateAdded: entity.DateOf(testNow), IsDeleted: true})
	svc := newTestService(repo)

	entries, meta, err := svc.ListPaginated(context.Background(), pagination.Params{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("ListPaginated() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
	want := pagination.Metadata{Total: 5, Page: 2, Limit: 2, TotalPages: 3}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}
