package services

import (
	"context"
	"errors"
	"time"

	"github.com/thitiph0n/second-brain-sub000/models"
	"github.com/thitiph0n/second-brain-sub000/repository"
)

// casAttempts bounds the optimistic-lock retry loop on streak writes.
const casAttempts = 3

// StreakRepository is the storage contract for streak rows. Update must be a
// compare-and-swap on the row's version, returning
// repository.ErrVersionConflict on a lost race.
type StreakRepository interface {
	Get(ctx context.Context, userID uint) (*models.Streak, error)
	Create(ctx context.Context, s *models.Streak) error
	Update(ctx context.Context, s *models.Streak) error
}

// StreakService runs the consecutive-day state machine. It is driven once per
// distinct (user, day) that receives a meal; additional meals the same day are
// no-ops.
type StreakService struct {
	streaks StreakRepository
}

func NewStreakService(streaks StreakRepository) *StreakService {
	return &StreakService{streaks: streaks}
}

// advance applies one day-logged event to a streak and reports whether
// anything changed.
//
//	gap == 0  same day again: nothing to do
//	gap == 1  the streak continues
//	gap  > 1  the streak broke; fold it into longest and start over at 1
//	gap  < 0  a backdated log: streak history is never rewritten
func advance(s *models.Streak, day time.Time) bool {
	day = models.DayOf(day)

	if s.LastLoggedDate == nil {
		s.CurrentStreak = 1
		s.TotalLoggedDays++
		s.LastLoggedDate = &day
		if s.LongestStreak < s.CurrentStreak {
			s.LongestStreak = s.CurrentStreak
		}
		return true
	}

	gap := int(day.Sub(models.DayOf(*s.LastLoggedDate)).Hours() / 24)
	switch {
	case gap == 0:
		return false
	case gap < 0:
		return false
	case gap == 1:
		s.CurrentStreak++
	default: // gap > 1
		if s.CurrentStreak > s.LongestStreak {
			s.LongestStreak = s.CurrentStreak
		}
		s.CurrentStreak = 1
	}

	s.TotalLoggedDays++
	s.LastLoggedDate = &day
	if s.LongestStreak < s.CurrentStreak {
		s.LongestStreak = s.CurrentStreak
	}
	return true
}

// OnDayLogged records that the user logged at least one meal on day, creating
// the streak lazily on first use. Lost CAS races are retried a bounded number
// of times.
func (svc *StreakService) OnDayLogged(ctx context.Context, userID uint, day time.Time) error {
	var err error
	for attempt := 0; attempt < casAttempts; attempt++ {
		var streak *models.Streak
		streak, err = svc.streaks.Get(ctx, userID)
		if err != nil {
			return err
		}

		if streak == nil {
			d := models.DayOf(day)
			fresh := &models.Streak{
				UserID:          userID,
				CurrentStreak:   1,
				LongestStreak:   1,
				LastLoggedDate:  &d,
				FreezeCredits:   models.InitialFreezeCredits,
				TotalLoggedDays: 1,
			}
			err = svc.streaks.Create(ctx, fresh)
			if err == nil {
				return nil
			}
			// A concurrent first log may have created the row; re-read.
			continue
		}

		if !advance(streak, day) {
			return nil
		}
		err = svc.streaks.Update(ctx, streak)
		if err == nil || !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
	}
	return err
}

// GetStreak returns the user's streak, or ErrNotFound before the first log.
func (svc *StreakService) GetStreak(ctx context.Context, userID uint) (*models.Streak, error) {
	streak, err := svc.streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if streak == nil {
		return nil, ErrNotFound
	}
	return streak, nil
}

// UseFreezeCredit spends one credit. It deliberately does not touch
// CurrentStreak or LastLoggedDate: a freeze is the user's excuse for a missed
// day, not a bridge — the next real log still measures its gap against the
// last actual log.
func (svc *StreakService) UseFreezeCredit(ctx context.Context, userID uint) (*models.Streak, error) {
	var err error
	for attempt := 0; attempt < casAttempts; attempt++ {
		var streak *models.Streak
		streak, err = svc.streaks.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if streak == nil {
			return nil, ErrNotFound
		}
		if streak.FreezeCredits <= 0 {
			return nil, ErrInsufficientCredits
		}

		streak.FreezeCredits--
		err = svc.streaks.Update(ctx, streak)
		if err == nil {
			return streak, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, err
}

// ResetCurrentStreak zeroes the running streak and clears the last-logged
// marker. LongestStreak survives a reset.
func (svc *StreakService) ResetCurrentStreak(ctx context.Context, userID uint) (*models.Streak, error) {
	var err error
	for attempt := 0; attempt < casAttempts; attempt++ {
		var streak *models.Streak
		streak, err = svc.streaks.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if streak == nil {
			return nil, ErrNotFound
		}

		streak.CurrentStreak = 0
		streak.LastLoggedDate = nil
		err = svc.streaks.Update(ctx, streak)
		if err == nil {
			return streak, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, err
}
