// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/naka-gawa/grass-reporter/internal/domain"
	"github.com/naka-gawa/grass-reporter/internal/gateway"
	"github.com/naka-gawa/grass-reporter/internal/notifier"
)

// Mode selects what a single invocation does.
type Mode string

const (
	// ModeCheck notifies only when today has no contributions. Meant for late evening.
	ModeCheck Mode = "check"
	// ModeDailyStreak posts the streak as of yesterday. Meant for just after midnight.
	ModeDailyStreak Mode = "daily-streak"
)

// ParseMode maps a command-line token to a Mode. Anything other than
// "daily-streak", including the empty string, selects ModeCheck.
func ParseMode(token string) Mode {
	if Mode(token) == ModeDailyStreak {
		return ModeDailyStreak
	}
	return ModeCheck
}

// streakTraceDays is how many walk steps are traced at debug level.
const streakTraceDays = 5

// Options toggles the reporter's features.
type Options struct {
	EnableGrassCheck  bool
	EnableDailyStreak bool
	// Clock returns the current instant. Nil means time.Now.
	Clock func() time.Time
}

// Reporter is the use case for reporting contribution activity.
// It orchestrates fetching the calendar and sending notifications.
type Reporter struct {
	fetcher  gateway.Fetcher
	notifier notifier.Notifier
	login    string
	opts     Options
	now      func() time.Time
	logger   *slog.Logger
}

// NewReporter creates a new Reporter instance for login.
func NewReporter(fetcher gateway.Fetcher, n notifier.Notifier, login string, opts Options, logger *slog.Logger) *Reporter {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Reporter{
		fetcher:  fetcher,
		notifier: n,
		login:    login,
		opts:     opts,
		now:      now,
		logger:   logger,
	}
}

// Run executes mode.
func (r *Reporter) Run(ctx context.Context, mode Mode) error {
	if mode == ModeDailyStreak {
		return r.PostDailyStreak(ctx)
	}
	return r.CheckToday(ctx)
}

// contributionsOn returns the contribution count of day. A day missing from
// the calendar counts as zero; only a failed fetch is an error.
func (r *Reporter) contributionsOn(ctx context.Context, day time.Time) (int, error) {
	calendar, err := r.fetcher.FetchCalendar(ctx, r.login)
	if err != nil {
		return 0, err
	}
	return calendar.CountOn(day), nil
}

// streakEndingOn returns the number of consecutive days with contributions,
// walking backward from yesterday.
func (r *Reporter) streakEndingOn(ctx context.Context, yesterday time.Time) (int, error) {
	calendar, err := r.fetcher.FetchCalendar(ctx, r.login)
	if err != nil {
		return 0, err
	}

	r.logger.Debug("Counting streak", "from", domain.DateKey(yesterday))
	steps := 0
	streak := calendar.WalkStreak(yesterday, func(day time.Time, count int) {
		if count <= 0 {
			r.logger.Debug("Streak ended", "date", domain.DateKey(day), "count", count)
			return
		}
		if steps < streakTraceDays {
			r.logger.Debug("Streak step", "date", domain.DateKey(day), "count", count)
		}
		steps++
	})

	s := calendar.Summarize()
	r.logger.Info("Calendar summary",
		"days", s.Days,
		"active_days", s.ActiveDays,
		"total", s.Total,
		"mean_per_day", fmt.Sprintf("%.2f", s.MeanPerDay),
		"busiest_day", s.BusiestDay,
		"busiest_day_count", s.BusiestDays,
		"streak", streak,
	)
	return streak, nil
}

// CheckToday notifies with a mention when today has no contributions yet.
func (r *Reporter) CheckToday(ctx context.Context) error {
	if !r.opts.EnableGrassCheck {
		r.logger.Info("Grass check is disabled, skipping")
		return nil
	}

	today := domain.Today(r.now())
	r.logger.Info("Starting grass check", "user", r.login, "date", domain.DateKey(today))
	count, err := r.contributionsOn(ctx, today)
	if err != nil {
		r.logger.Error("Failed to fetch today's contributions", "error", err)
		return fmt.Errorf("failed to fetch today's contributions: %w", err)
	}
	r.logger.Info("Fetched today's contributions", "count", count)

	if count > 0 {
		r.logger.Info("Contributions found today, no notification sent")
		return nil
	}

	message := fmt.Sprintf("🌱 %sの草が生えていません！今日もコミットしましょう！", domain.DisplayDate(today))
	if err := r.notifier.Notify(ctx, message, true); err != nil {
		r.logger.Error("Failed to send notification", "error", err)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	r.logger.Info("Notification sent")
	return nil
}

// PostDailyStreak posts yesterday's streak length without a mention.
func (r *Reporter) PostDailyStreak(ctx context.Context) error {
	if !r.opts.EnableDailyStreak {
		r.logger.Info("Daily streak posting is disabled, skipping")
		return nil
	}

	// Today is excluded because at midnight it cannot have any activity yet.
	yesterday := domain.Yesterday(r.now())
	r.logger.Info("Starting daily streak post", "user", r.login, "date", domain.DateKey(yesterday))
	streak, err := r.streakEndingOn(ctx, yesterday)
	if err != nil {
		r.logger.Error("Failed to fetch contribution streak", "error", err)
		return fmt.Errorf("failed to fetch contribution streak: %w", err)
	}
	r.logger.Info("Computed contribution streak", "days", streak)

	message := fmt.Sprintf("📊 %sまでの連続コントリビュート: **%d** 日", domain.DisplayDate(yesterday), streak)
	if err := r.notifier.Notify(ctx, message, false); err != nil {
		r.logger.Error("Failed to post streak", "error", err)
		return fmt.Errorf("failed to post streak: %w", err)
	}
	r.logger.Info("Streak posted")
	return nil
}
