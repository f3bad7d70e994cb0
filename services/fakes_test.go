package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thitiph0n/second-brain-sub000/models"
	"github.com/thitiph0n/second-brain-sub000/repository"
)

// In-memory repository fakes implementing the same contracts the gorm
// repositories do, including the atomic-adjustment and compare-and-swap
// semantics the services rely on.

type fakeLedgerRepo struct {
	mu   sync.Mutex
	rows map[uint]map[string]*models.DailySummary

	failNext int // inject failures into the next N mutations
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: map[uint]map[string]*models.DailySummary{}}
}

func (f *fakeLedgerRepo) userRows(userID uint) map[string]*models.DailySummary {
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]*models.DailySummary{}
	}
	return f.rows[userID]
}

func (f *fakeLedgerRepo) failing() bool {
	if f.failNext > 0 {
		f.failNext--
		return true
	}
	return false
}

func (f *fakeLedgerRepo) Get(_ context.Context, userID uint, date time.Time) (*models.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.userRows(userID)[models.DayOf(date).Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeLedgerRepo) CreateOrIncrement(_ context.Context, userID uint, date time.Time, delta models.NutritionDelta, targetCalories float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errors.New("storage unavailable")
	}
	key := models.DayOf(date).Format("2006-01-02")
	rows := f.userRows(userID)
	if row, ok := rows[key]; ok {
		row.TotalCalories += delta.Calories
		row.TotalProteinG += delta.ProteinG
		row.TotalCarbsG += delta.CarbsG
		row.TotalFatG += delta.FatG
		row.MealCount++
		return nil
	}
	rows[key] = &models.DailySummary{
		UserID:         userID,
		Date:           models.DayOf(date),
		TotalCalories:  delta.Calories,
		TotalProteinG:  delta.ProteinG,
		TotalCarbsG:    delta.CarbsG,
		TotalFatG:      delta.FatG,
		MealCount:      1,
		TargetCalories: targetCalories,
	}
	return nil
}

func (f *fakeLedgerRepo) Increment(_ context.Context, userID uint, date time.Time, delta models.NutritionDelta, countDelta int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return 0, errors.New("storage unavailable")
	}
	row, ok := f.userRows(userID)[models.DayOf(date).Format("2006-01-02")]
	if !ok {
		return 0, nil
	}
	row.TotalCalories += delta.Calories
	row.TotalProteinG += delta.ProteinG
	row.TotalCarbsG += delta.CarbsG
	row.TotalFatG += delta.FatG
	row.MealCount += countDelta
	return 1, nil
}

func (f *fakeLedgerRepo) DeleteIfEmpty(_ context.Context, userID uint, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := models.DayOf(date).Format("2006-01-02")
	if row, ok := f.userRows(userID)[key]; ok && row.MealCount <= 0 {
		delete(f.userRows(userID), key)
	}
	return nil
}

func (f *fakeLedgerRepo) Replace(_ context.Context, s *models.DailySummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.userRows(s.UserID)[models.DayOf(s.Date).Format("2006-01-02")] = &cp
	return nil
}

func (f *fakeLedgerRepo) Delete(_ context.Context, userID uint, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.userRows(userID), models.DayOf(date).Format("2006-01-02"))
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uint]*models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*models.UserProfile{}}
}

func (f *fakeProfileRepo) Get(_ context.Context, userID uint) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

type fakeStreakRepo struct {
	mu      sync.Mutex
	streaks map[uint]*models.Streak

	conflictNext int // make the next N Updates lose the CAS race
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{streaks: map[uint]*models.Streak{}}
}

func (f *fakeStreakRepo) Get(_ context.Context, userID uint) (*models.Streak, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.streaks[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	if s.LastLoggedDate != nil {
		d := *s.LastLoggedDate
		cp.LastLoggedDate = &d
	}
	return &cp, nil
}

func (f *fakeStreakRepo) Create(_ context.Context, s *models.Streak) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.streaks[s.UserID]; ok {
		return errors.New("duplicate streak row")
	}
	cp := *s
	f.streaks[s.UserID] = &cp
	return nil
}

func (f *fakeStreakRepo) Update(_ context.Context, s *models.Streak) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictNext > 0 {
		f.conflictNext--
		return repository.ErrVersionConflict
	}
	stored, ok := f.streaks[s.UserID]
	if !ok || stored.Version != s.Version {
		return repository.ErrVersionConflict
	}
	cp := *s
	cp.Version++
	f.streaks[s.UserID] = &cp
	s.Version++
	return nil
}

type fakeMealRepo struct {
	mu     sync.Mutex
	nextID uint
	meals  map[uint]*models.Meal
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{nextID: 1, meals: map[uint]*models.Meal{}}
}

func (f *fakeMealRepo) Insert(_ context.Context, meal *models.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meals {
		if m.ClientToken == meal.ClientToken {
			return errors.New("duplicate client token")
		}
	}
	meal.ID = f.nextID
	f.nextID++
	cp := *meal
	f.meals[meal.ID] = &cp
	return nil
}

func (f *fakeMealRepo) GetByID(_ context.Context, userID, mealID uint) (*models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meals[mealID]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMealRepo) Update(_ context.Context, meal *models.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *meal
	f.meals[meal.ID] = &cp
	return nil
}

func (f *fakeMealRepo) Delete(_ context.Context, userID, mealID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meals[mealID]
	if !ok || m.UserID != userID {
		return false, nil
	}
	delete(f.meals, mealID)
	return true, nil
}

func (f *fakeMealRepo) ListByDay(_ context.Context, userID uint, day time.Time) ([]models.Meal, error) {
	start := models.DayOf(day)
	return f.ListByDateRange(context.Background(), userID, start, start.Add(24*time.Hour))
}

func (f *fakeMealRepo) ListByDateRange(_ context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Meal
	for _, m := range f.meals {
		if m.UserID == userID && !m.LoggedAt.Before(from) && m.LoggedAt.Before(to) {
			out = append(out, *m)
		}
	}
	return out, nil
}
