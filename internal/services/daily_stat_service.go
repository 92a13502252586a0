package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

type DailyStatServiceInterface interface {
	CreateDailyStat(ctx context.Context, identity *Identity, request request_models.DailyStatRequest) (*response_models.DailyStatResponse, error)
	UpsertDailyStat(ctx context.Context, identity *Identity, request request_models.DailyStatRequest) (*response_models.DailyStatResponse, error)
	UpdateDailyStat(ctx context.Context, identity *Identity, statID uuid.UUID, request request_models.UpdateDailyStatRequest) (*response_models.DailyStatResponse, error)
	DeleteDailyStat(ctx context.Context, identity *Identity, statID uuid.UUID) error
	ListDailyStats(ctx context.Context, identity *Identity, accountID *uuid.UUID) ([]response_models.DailyStatResponse, error)
}

type DailyStatService struct {
	dailyStatRepo repositories.DailyStatRepository
	guard         OwnershipGuard
	log           *zap.Logger
	now           func() time.Time
}

func NewDailyStatService(dailyStatRepo repositories.DailyStatRepository, guard OwnershipGuard, log *zap.Logger) DailyStatServiceInterface {
	return &DailyStatService{
		dailyStatRepo: dailyStatRepo,
		guard:         guard,
		log:           log.Named("daily-stats"),
		now:           time.Now,
	}
}

type dailyStatInput struct {
	accountID uuid.UUID
	day       utils.Day
	earned    float64
	pending   float64
}

func parseDailyStatRequest(request request_models.DailyStatRequest) (*dailyStatInput, error) {
	accountID, err := uuid.Parse(request.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account_id", utils.ErrInvalidInput)
	}
	day, err := utils.ParseDay(request.Date)
	if err != nil {
		return nil, err
	}
	if request.Earned == nil || request.Pending == nil {
		return nil, fmt.Errorf("%w: earned and pending are required", utils.ErrInvalidInput)
	}
	if err := checkAmount("earned", *request.Earned); err != nil {
		return nil, err
	}
	if err := checkAmount("pending", *request.Pending); err != nil {
		return nil, err
	}
	return &dailyStatInput{
		accountID: accountID,
		day:       day,
		earned:    *request.Earned,
		pending:   *request.Pending,
	}, nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", utils.ErrInvalidInput, field)
	}
	return nil
}

// CreateDailyStat refuses a second row for the same account and day.
func (d *DailyStatService) CreateDailyStat(ctx context.Context, identity *Identity, request request_models.DailyStatRequest) (*response_models.DailyStatResponse, error) {
	in, err := parseDailyStatRequest(request)
	if err != nil {
		return nil, err
	}
	account, err := d.guard.Account(ctx, identity, in.accountID, AccessWrite)
	if err != nil {
		return nil, err
	}

	existing, err := d.dailyStatRepo.FindByAccountAndDate(ctx, account.ID, in.day.Time(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrDailyStatExists
	}

	stat := &db_models.DailyStat{
		AccountID: account.ID,
		UserID:    account.UserID,
		Date:      in.day.Time(),
		Earned:    in.earned,
		Pending:   in.pending,
	}
	if err := d.dailyStatRepo.Create(ctx, stat); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, utils.ErrDailyStatExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return toDailyStatResponse(stat, account), nil
}

// UpsertDailyStat writes the figures for (account, day) whether or not a row
// exists yet. Replaying the same request leaves one row with the same values.
func (d *DailyStatService) UpsertDailyStat(ctx context.Context, identity *Identity, request request_models.DailyStatRequest) (*response_models.DailyStatResponse, error) {
	in, err := parseDailyStatRequest(request)
	if err != nil {
		return nil, err
	}
	account, err := d.guard.Account(ctx, identity, in.accountID, AccessWrite)
	if err != nil {
		return nil, err
	}

	stored, err := d.dailyStatRepo.Upsert(ctx, &db_models.DailyStat{
		AccountID: account.ID,
		UserID:    account.UserID,
		Date:      in.day.Time(),
		Earned:    in.earned,
		Pending:   in.pending,
	}, d.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return toDailyStatResponse(stored, account), nil
}

func (d *DailyStatService) UpdateDailyStat(ctx context.Context, identity *Identity, statID uuid.UUID, request request_models.UpdateDailyStatRequest) (*response_models.DailyStatResponse, error) {
	stat, account, err := d.guard.DailyStat(ctx, identity, statID, AccessWrite)
	if err != nil {
		return nil, err
	}

	if request.AccountID != nil {
		targetID, err := uuid.Parse(*request.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid account_id", utils.ErrInvalidInput)
		}
		if targetID != account.ID {
			// Moving a stat needs write access to the destination as well.
			account, err = d.guard.Account(ctx, identity, targetID, AccessWrite)
			if err != nil {
				return nil, err
			}
			stat.AccountID = account.ID
			stat.UserID = account.UserID
		}
	}
	if request.Date != nil {
		day, err := utils.ParseDay(*request.Date)
		if err != nil {
			return nil, err
		}
		stat.Date = day.Time()
	}
	if request.Earned != nil {
		if err := checkAmount("earned", *request.Earned); err != nil {
			return nil, err
		}
		stat.Earned = *request.Earned
	}
	if request.Pending != nil {
		if err := checkAmount("pending", *request.Pending); err != nil {
			return nil, err
		}
		stat.Pending = *request.Pending
	}

	clash, err := d.dailyStatRepo.FindByAccountAndDate(ctx, stat.AccountID, stat.Date, &stat.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if clash != nil {
		return nil, utils.ErrDailyStatExists
	}

	now := d.now().UTC()
	stat.UpdatedAt = &now
	if err := d.dailyStatRepo.Update(ctx, stat); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, utils.ErrDailyStatExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return toDailyStatResponse(stat, account), nil
}

func (d *DailyStatService) DeleteDailyStat(ctx context.Context, identity *Identity, statID uuid.UUID) error {
	stat, _, err := d.guard.DailyStat(ctx, identity, statID, AccessWrite)
	if err != nil {
		return err
	}
	if err := d.dailyStatRepo.Delete(ctx, stat.ID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// ListDailyStats returns the caller's stats, newest day first, optionally for
// a single account.
func (d *DailyStatService) ListDailyStats(ctx context.Context, identity *Identity, accountID *uuid.UUID) ([]response_models.DailyStatResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	ownerID := identity.ID
	if accountID != nil {
		account, err := d.guard.Account(ctx, identity, *accountID, AccessRead)
		if err != nil {
			return nil, err
		}
		ownerID = account.UserID
	}

	rows, err := d.dailyStatRepo.ListWithAccount(ctx, ownerID, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.DailyStatResponse, 0, len(rows))
	for i := range rows {
		resp := toDailyStatResponse(&rows[i].DailyStat, nil)
		resp.AccountName = rows[i].AccountName
		resp.LtcAddress = rows[i].LtcAddress
		out = append(out, *resp)
	}
	return out, nil
}

func toDailyStatResponse(stat *db_models.DailyStat, account *db_models.Account) *response_models.DailyStatResponse {
	resp := &response_models.DailyStatResponse{
		ID:        stat.ID,
		AccountID: stat.AccountID,
		Date:      utils.DayOf(stat.Date),
		Earned:    stat.Earned,
		Pending:   stat.Pending,
		CreatedAt: stat.CreatedAt,
		UpdatedAt: stat.UpdatedAt,
	}
	if account != nil {
		resp.AccountName = account.Name
		resp.LtcAddress = account.LtcAddress
	}
	return resp
}
