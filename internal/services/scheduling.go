package services

import (
	"context"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/no"
	"github.com/rickar/cal/v2/us"
	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/pkg/logger"
	"gorm.io/gorm"
)

// SchedulingService maintains the forward planning-month window so the
// roster frontend always has months to plan into. It shares the periodic
// runner with the retention sweeper and runs on a daily cycle.
type SchedulingService struct {
	db          *gorm.DB
	monthsAhead int
	calendar    *cal.BusinessCalendar
}

func NewSchedulingService(db *gorm.DB, cfg *config.SchedulingConfig) *SchedulingService {
	monthsAhead := cfg.MonthsAhead
	if monthsAhead <= 0 {
		monthsAhead = 3
	}
	return &SchedulingService{
		db:          db,
		monthsAhead: monthsAhead,
		calendar:    businessCalendar(cfg.Country),
	}
}

func businessCalendar(country string) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	switch country {
	case "US":
		c.AddHoliday(us.Holidays...)
	case "GB":
		c.AddHoliday(gb.Holidays...)
	case "DE":
		c.AddHoliday(de.Holidays...)
	case "FR":
		c.AddHoliday(fr.Holidays...)
	default:
		c.AddHoliday(no.Holidays...)
	}
	return c
}

// Start launches the daily window-maintenance loop.
func (s *SchedulingService) Start(ctx context.Context) {
	go runPeriodic(ctx, "planning-window", taskStartDelay, 24*time.Hour, s.EnsureMonths)
}

// EnsureMonths creates any missing planning-month rows from the current
// month forward. Existing rows, locked or not, are left alone.
func (s *SchedulingService) EnsureMonths(ctx context.Context) error {
	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < s.monthsAhead; i++ {
		target := first.AddDate(0, i, 0)

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.PlanningMonth{}).
			Where("date = ?", target).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		month := models.PlanningMonth{
			Date:        target,
			WorkingDays: s.workingDays(target),
		}
		if err := s.db.WithContext(ctx).Create(&month).Error; err != nil {
			return err
		}
		logger.Info().
			Str("month", target.Format("2006-01")).
			Int("working_days", month.WorkingDays).
			Msg("seeded planning month")
	}

	return nil
}

func (s *SchedulingService) workingDays(firstOfMonth time.Time) int {
	next := firstOfMonth.AddDate(0, 1, 0)
	days := 0
	for d := firstOfMonth; d.Before(next); d = d.AddDate(0, 0, 1) {
		if s.calendar.IsWorkday(d) {
			days++
		}
	}
	return days
}
