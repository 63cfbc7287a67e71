package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/idempotency"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/mail"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/sms"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

type fakeConfig struct {
	values map[string]string
}

func (f *fakeConfig) Close() error                { return nil }
func (f *fakeConfig) GetBool(key string) bool     { return f.values[key] == "true" }
func (f *fakeConfig) GetString(key string) string { return f.values[key] }

func (f *fakeConfig) GetInt(key string) int     { return int(f.GetInt64(key)) }
func (f *fakeConfig) GetInt32(key string) int32 { return int32(f.GetInt64(key)) }

func (f *fakeConfig) GetInt64(key string) int64 {
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	return n
}

func (f *fakeConfig) GetFloat64(key string) float64 {
	n, _ := strconv.ParseFloat(f.values[key], 64)
	return n
}

func (f *fakeConfig) GetArray(key string) []string {
	if f.values[key] == "" {
		return nil
	}
	return strings.Split(f.values[key], ",")
}

func (f *fakeConfig) GetSecond(key string) time.Duration {
	return time.Duration(f.GetInt64(key)) * time.Second
}

func (f *fakeConfig) GetMinute(key string) time.Duration {
	return time.Duration(f.GetInt64(key)) * time.Minute
}

type fakeIdempotency struct{}

func (fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}
func (fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }
func (fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error    { return nil }
func (fakeIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

type fakeRepo struct {
	mu sync.Mutex

	replacedUser   int64
	replacedTarget entity.TargetRef
	replacedJobs   []entity.DeliveryJob
	replaceErr     error

	cancelledPending int64

	dueJobs  []entity.DueJob
	claimErr error

	finalizedStatus map[int64]entity.JobStatus
	finalizedDetail map[int64]string

	cancelledClaimed []int64
	inserted         []entity.DeliveryJob
	logs             []entity.LogEntry

	listJobs []entity.DeliveryJob
	listLogs []entity.LogEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		finalizedStatus: map[int64]entity.JobStatus{},
		finalizedDetail: map[int64]string{},
	}
}

func (f *fakeRepo) ReplacePendingJobs(_ context.Context, userID int64, target entity.TargetRef, jobs []entity.DeliveryJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedUser = userID
	f.replacedTarget = target
	f.replacedJobs = jobs
	return nil
}

func (f *fakeRepo) CancelPendingJobs(context.Context, int64, entity.TargetRef) (int64, error) {
	return f.cancelledPending, nil
}

func (f *fakeRepo) ClaimDueJobs(context.Context, time.Time, int32, time.Time) ([]entity.DueJob, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.dueJobs, nil
}

func (f *fakeRepo) FinalizeJob(_ context.Context, jobID int64, status entity.JobStatus, errorDetail string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizedStatus[jobID] = status
	f.finalizedDetail[jobID] = errorDetail
	return nil
}

func (f *fakeRepo) CancelClaimedJob(_ context.Context, jobID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelledClaimed = append(f.cancelledClaimed, jobID)
	return nil
}

func (f *fakeRepo) InsertJob(_ context.Context, job entity.DeliveryJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, job)
	return nil
}

func (f *fakeRepo) AppendLogEntries(_ context.Context, entries []entity.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, entries...)
	return nil
}

func (f *fakeRepo) ListJobs(context.Context, int64, entity.TargetRef, []entity.JobStatus, int32, int32) ([]entity.DeliveryJob, error) {
	return f.listJobs, nil
}

func (f *fakeRepo) ListLogEntries(context.Context, int64, int32, int32) ([]entity.LogEntry, error) {
	return f.listLogs, nil
}

type fakeMail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

type fakePush struct {
	mu   sync.Mutex
	sent []push.Notification
	err  error
}

func (f *fakePush) Send(_ context.Context, n push.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []sms.Message
	err  error
}

func (f *fakeSMS) Send(_ context.Context, msg sms.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, destination string, _ messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, destination)
	return messaging.PublishResult{Topic: destination}, nil
}

type testDeps struct {
	repo      *fakeRepo
	mail      *fakeMail
	push      *fakePush
	sms       *fakeSMS
	publisher *fakePublisher
	clock     *fakeClock
	cfg       *fakeConfig
}

func newTestUsecase(t *testing.T) (*Usecase, *testDeps) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	deps := &testDeps{
		repo:      newFakeRepo(),
		mail:      &fakeMail{},
		push:      &fakePush{},
		sms:       &fakeSMS{},
		publisher: &fakePublisher{},
		clock:     &fakeClock{now: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)},
		cfg:       &fakeConfig{values: map[string]string{}},
	}

	uc := NewNotify(Dependency{
		RepoDB:      deps.repo,
		Config:      deps.cfg,
		UID:         &fakeUID{},
		Clock:       deps.clock,
		Validator:   v10,
		Idempotency: fakeIdempotency{},
		RepoMail:    deps.mail,
		RepoPush:    deps.push,
		RepoSMS:     deps.sms,
		Publisher:   deps.publisher,
		Instrument:  instrument.NewNoop(),
	})

	return uc, deps
}

func ptrInt64(v int64) *int64 { return &v }
