package food

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"calorietracker/internal/common/pagination"
	"calorietracker/internal/domain/entity"
	"calorietracker/internal/observability/metrics"
	"calorietracker/internal/repository"
)

// WindowDays is the size of the rolling summary window: today plus the seven
// preceding days.
const WindowDays = 8

// Clock supplies the current time. Injected in tests; defaults to the system
// clock.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using time.Now.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// Service provides food entry management use cases.
// It handles validation and aggregation and delegates persistence to the
// repository. Each operation is a stateless, synchronous unit of work.
type Service struct {
	Repo  repository.FoodRepository
	Clock Clock
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// DailyTotal is one day of the rolling summary. The summary is keyed by date;
// weekday labels are produced only at the presentation boundary so windows
// longer than seven days cannot silently collapse.
type DailyTotal struct {
	Date     time.Time
	Calories int64
}

// HomeView is the view model for the home page.
type HomeView struct {
	Today         time.Time
	Entries       []*entity.FoodEntry
	TotalCalories int64
	ItemCount     int
	Weekly        []DailyTotal // oldest first, WindowDays long, last is today
}

// SubmitResult is the response envelope returned by the mutating operations.
// An empty Errors slice means success; Flash then carries the one-shot
// notification text. On validation failure Errors holds every applicable
// message and the Echo fields carry the submitted values for re-display.
type SubmitResult struct {
	Errors       []string
	Flash        string
	EchoName     string
	EchoCalories string
	Entry        *entity.FoodEntry
}

// OK reports whether the operation succeeded.
func (r *SubmitResult) OK() bool { return len(r.Errors) == 0 }

// Home builds the home view model: today's entries and total plus the rolling
// daily summary. The per-day sums are fetched concurrently; today's total is
// taken from the window rather than queried twice.
func (s *Service) Home(ctx context.Context) (*HomeView, error) {
	today := entity.DateOf(s.now())

	view := &HomeView{
		Today:  today,
		Weekly: make([]DailyTotal, WindowDays),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := s.Repo.ListByDate(gctx, today)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		view.Entries = entries
		return nil
	})

	for i := 0; i < WindowDays; i++ {
		day := today.AddDate(0, 0, i-(WindowDays-1))
		slot := i
		g.Go(func() error {
			total, err := s.Repo.SumCalories(gctx, day)
			if err != nil {
				return fmt.Errorf("sum calories for %s: %w", day.Format(time.DateOnly), err)
			}
			view.Weekly[slot] = DailyTotal{Date: day, Calories: total}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.ItemCount = len(view.Entries)
	view.TotalCalories = view.Weekly[WindowDays-1].Calories
	return view, nil
}

// WeeklySummary returns the rolling daily totals, oldest first.
func (s *Service) WeeklySummary(ctx context.Context) ([]DailyTotal, error) {
	today := entity.DateOf(s.now())
	weekly := make([]DailyTotal, WindowDays)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < WindowDays; i++ {
		day := today.AddDate(0, 0, i-(WindowDays-1))
		slot := i
		g.Go(func() error {
			total, err := s.Repo.SumCalories(gctx, day)
			if err != nil {
				return fmt.Errorf("sum calories for %s: %w", day.Format(time.DateOnly), err)
			}
			weekly[slot] = DailyTotal{Date: day, Calories: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return weekly, nil
}

// Get retrieves a single active entry by its ID.
// Returns ErrInvalidEntryID if the ID is not positive and ErrEntryNotFound if
// the entry does not exist or is soft-deleted.
func (s *Service) Get(ctx context.Context, id int64) (*entity.FoodEntry, error) {
	if id <= 0 {
		return nil, ErrInvalidEntryID
	}

	e, err := s.Repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// ListPaginated retrieves active entries across all dates with pagination
// metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) ([]*entity.FoodEntry, pagination.Metadata, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.CountActive(ctx)
	if err != nil {
		return nil, pagination.Metadata{}, fmt.Errorf("count entries: %w", err)
	}

	entries, err := s.Repo.ListActivePaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, pagination.Metadata{}, fmt.Errorf("list entries paginated: %w", err)
	}

	meta := pagination.Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.CalculateTotalPages(total, params.Limit),
	}
	return entries, meta, nil
}

// Add validates the submitted values and creates a new entry dated today.
// Validation failures are returned in the result envelope, not as an error;
// the error return is reserved for storage failures.
func (s *Service) Add(ctx context.Context, rawName, rawCalories string) (*SubmitResult, error) {
	in, errs := entity.ValidateFoodInput(rawName, rawCalories)
	if len(errs) > 0 {
		return &SubmitResult{
			Errors:       errs,
			EchoName:     rawName,
			EchoCalories: entity.EchoCalories(rawCalories),
		}, nil
	}

	now := s.now()
	e := &entity.FoodEntry{
		Name:      in.Name,
		Calories:  in.Calories,
		DateAdded: entity.DateOf(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	metrics.RecordEntryCreated()
	return &SubmitResult{
		Flash: fmt.Sprintf(`Added "%s" (%d kcal) successfully!`, e.Name, e.Calories),
		Entry: e,
	}, nil
}

// Edit loads an active entry, validates the submitted values, and overwrites
// name and calories. ID, date and creation timestamp are preserved.
// Returns ErrEntryNotFound when the ID does not resolve to an active entry;
// that failure is distinct from validation errors, which come back in the
// envelope together with the loaded entry for re-display.
func (s *Service) Edit(ctx context.Context, id int64, rawName, rawCalories string) (*SubmitResult, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in, errs := entity.ValidateFoodInput(rawName, rawCalories)
	if len(errs) > 0 {
		return &SubmitResult{
			Errors:       errs,
			EchoName:     rawName,
			EchoCalories: entity.EchoCalories(rawCalories),
			Entry:        e,
		}, nil
	}

	oldName := e.Name
	e.Name = in.Name
	e.Calories = in.Calories
	e.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	metrics.RecordEntryUpdated()
	return &SubmitResult{
		Flash: fmt.Sprintf(`Updated "%s" to "%s" (%d kcal)!`, oldName, e.Name, e.Calories),
		Entry: e,
	}, nil
}

// Delete soft-deletes an active entry. The second delete of the same ID
// returns ErrEntryNotFound because the row is no longer active.
func (s *Service) Delete(ctx context.Context, id int64) (*SubmitResult, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SoftDelete(ctx, id, s.now()); err != nil {
		return nil, fmt.Errorf("soft delete entry: %w", err)
	}

	metrics.RecordEntryDeleted()
	return &SubmitResult{
		Flash: fmt.Sprintf(`Deleted "%s" successfully!`, e.Name),
		Entry: e,
	}, nil
}
