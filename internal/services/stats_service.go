package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

type StatsServiceInterface interface {
	AccountStats(ctx context.Context, identity *Identity, query request_models.StatsRangeQuery) (*response_models.AccountStatsResponse, error)
}

type StatsService struct {
	accountRepo   repositories.AccountRepository
	dailyStatRepo repositories.DailyStatRepository
	prices        PriceServiceInterface
	log           *zap.Logger
}

func NewStatsService(
	accountRepo repositories.AccountRepository,
	dailyStatRepo repositories.DailyStatRepository,
	prices PriceServiceInterface,
	log *zap.Logger,
) StatsServiceInterface {
	return &StatsService{
		accountRepo:   accountRepo,
		dailyStatRepo: dailyStatRepo,
		prices:        prices,
		log:           log.Named("stats"),
	}
}

// AccountStats sums the caller's stats per day across all of their accounts
// within the optional inclusive [start_date, end_date] range.
func (s *StatsService) AccountStats(ctx context.Context, identity *Identity, query request_models.StatsRangeQuery) (*response_models.AccountStatsResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	start, err := utils.ParseOptionalDay(query.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseOptionalDay(query.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", utils.ErrInvalidInput)
	}

	accounts, err := s.accountRepo.ListByUserId(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	stats, err := s.dailyStatRepo.ListByUserInRange(ctx, identity.ID, dayTime(start), dayTime(end))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	totals := AggregateDaily(stats)
	if query.WithPrice {
		s.attachPrices(ctx, totals)
	}

	return &response_models.AccountStatsResponse{
		AccountsCount: len(accounts),
		DaysCount:     len(totals),
		Data:          totals,
	}, nil
}

// AggregateDaily folds stats into one total per calendar day, ascending.
func AggregateDaily(stats []db_models.DailyStat) []response_models.DailyTotal {
	byDay := make(map[utils.Day]*response_models.DailyTotal)
	for _, st := range stats {
		day := utils.DayOf(st.Date)
		t, ok := byDay[day]
		if !ok {
			t = &response_models.DailyTotal{Date: day}
			byDay[day] = t
		}
		t.Earned += st.Earned
		t.Pending += st.Pending
	}

	out := make([]response_models.DailyTotal, 0, len(byDay))
	for _, t := range byDay {
		t.Total = t.Earned + t.Pending
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// attachPrices fills the USD columns. A day without a known price keeps them
// empty; lookup failures degrade the same way.
func (s *StatsService) attachPrices(ctx context.Context, totals []response_models.DailyTotal) {
	for i := range totals {
		price, err := s.prices.PriceAt(ctx, totals[i].Date)
		if err != nil || price == nil {
			continue
		}
		p := *price
		value := totals[i].Total * p
		totals[i].PriceUSDT = &p
		totals[i].TotalUSDT = &value
	}
}

func dayTime(d *utils.Day) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
