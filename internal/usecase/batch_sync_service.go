package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
)

const defaultBatchWorkers = 4

// UserSyncReport is one user's row in a batch run.
type UserSyncReport struct {
	UserID     string        `json:"userId"`
	Result     SyncAllResult `json:"result"`
	Skipped    []string      `json:"skipped,omitempty"`
	DurationMs int64         `json:"durationMs"`
}

// BatchSyncReport summarises a scheduled sync of every stored user.
type BatchSyncReport struct {
	Users        []UserSyncReport `json:"users"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
}

// BatchSyncService syncs every user that has stored credentials. Users are
// processed on a bounded worker pool; each user gets a fresh ProviderManager.
type BatchSyncService struct {
	credentials credential.Repository
	newManager  func() *ProviderManager
	workers     int
	clock       clockwork.Clock
	logger      *logging.Logger
}

func NewBatchSyncService(
	credentials credential.Repository,
	newManager func() *ProviderManager,
	workers int,
	clock clockwork.Clock,
	logger *logging.Logger,
) *BatchSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultBatchWorkers
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &BatchSyncService{
		credentials: credentials,
		newManager:  newManager,
		workers:     workers,
		clock:       clock,
		logger:      logger,
	}
}

func (s *BatchSyncService) SyncAll(ctx context.Context) (BatchSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchSyncService.SyncAll")
	defer span.End()

	userIDs, err := s.credentials.ListUserIDs(ctx)
	if err != nil {
		return BatchSyncReport{}, fmt.Errorf("list users with credentials: %w", err)
	}
	report := BatchSyncReport{Users: make([]UserSyncReport, 0, len(userIDs))}
	if len(userIDs) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return BatchSyncReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		workers   sync.WaitGroup
		succeeded atomic.Int32
		failed    atomic.Int32
	)
	for _, userID := range userIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.syncUser(ctx, userID)
			if row.Result.Success {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}

			mu.Lock()
			report.Users = append(report.Users, row)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return BatchSyncReport{}, fmt.Errorf("submit user sync to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(report.Users, func(i, j int) bool {
		return report.Users[i].UserID < report.Users[j].UserID
	})
	report.SuccessCount = int(succeeded.Load())
	report.FailedCount = int(failed.Load())

	s.logger.InfoContext(ctx, "batch sync finished",
		"users", len(report.Users),
		"success_count", report.SuccessCount,
		"failed_count", report.FailedCount,
	)
	return report, nil
}

func (s *BatchSyncService) syncUser(ctx context.Context, userID string) UserSyncReport {
	started := s.clock.Now()

	creds, err := s.credentials.ListByUser(ctx, userID)
	if err != nil {
		return UserSyncReport{
			UserID: userID,
			Result: SyncAllResult{Errors: []string{fmt.Sprintf("load credentials: %v", err)}},
		}
	}

	return s.run(ctx, userID, creds, started)
}

// SyncUser syncs one user with their stored credentials.
func (s *BatchSyncService) SyncUser(ctx context.Context, userID string) (UserSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchSyncService.SyncUser")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return UserSyncReport{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.syncUser(ctx, userID), nil
}

// SyncUserWithCredentials syncs one user with caller-supplied credentials.
// Nothing is stored.
func (s *BatchSyncService) SyncUserWithCredentials(ctx context.Context, userID string, inline map[provider.ID]Credentials) (UserSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchSyncService.SyncUserWithCredentials")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return UserSyncReport{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(inline) == 0 {
		return UserSyncReport{}, fmt.Errorf("%w: at least one provider credential is required", ErrInvalidInput)
	}

	creds := make([]credential.Credential, 0, len(inline))
	for p, c := range inline {
		creds = append(creds, credential.Credential{
			UserID:      userID,
			Provider:    p,
			AccessToken: c.AccessToken,
			Cookie:      c.Cookie,
		})
	}
	sort.Slice(creds, func(i, j int) bool { return creds[i].Provider < creds[j].Provider })

	return s.run(ctx, userID, creds, s.clock.Now()), nil
}

func (s *BatchSyncService) run(ctx context.Context, userID string, creds []credential.Credential, started time.Time) UserSyncReport {
	row := UserSyncReport{UserID: userID}

	manager := s.newManager()
	for _, cred := range creds {
		if cred.Expired(started) {
			row.Skipped = append(row.Skipped, fmt.Sprintf("%s: access token expired", cred.Provider))
			continue
		}
		if _, err := manager.InitializeProvider(cred.Provider, Credentials{
			AccessToken: cred.AccessToken,
			Cookie:      cred.Cookie,
		}); err != nil {
			row.Skipped = append(row.Skipped, fmt.Sprintf("%s: %v", cred.Provider, err))
		}
	}

	if len(manager.Providers()) == 0 {
		row.Result = SyncAllResult{
			Results: map[provider.ID][]SyncResult{},
			Errors:  append([]string{"no usable provider credentials"}, row.Skipped...),
		}
		row.DurationMs = s.clock.Since(started).Milliseconds()
		return row
	}

	row.Result = manager.SyncAllUserLeagues(ctx, userID)
	row.DurationMs = s.clock.Since(started).Milliseconds()
	return row
}

// ScheduledRunTimeout bounds one cron-triggered batch run.
const ScheduledRunTimeout = 30 * time.Minute
