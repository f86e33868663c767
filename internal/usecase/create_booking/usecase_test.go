package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
	"github.com/m04kA/RoomBookingService/pkg/ptr"
)

type fakeBookingStore struct {
	mu     sync.Mutex
	nextID int64
	store  []*domain.Booking

	createErr error
	activeErr error
	listErr   error
}

func (f *fakeBookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.store = append(f.store, &created)

	out := created
	return &out, nil
}

func (f *fakeBookingStore) GetActiveByUser(_ context.Context, userID int64, now time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.activeErr != nil {
		return nil, f.activeErr
	}

	result := make([]*domain.Booking, 0)
	for _, b := range f.store {
		if b.UserID == userID && b.IsActiveAt(now) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingStore) ListOverlapping(_ context.Context, roomID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	result := make([]*domain.Booking, 0)
	for _, b := range f.store {
		if b.RoomID != roomID || b.Status != domain.StatusConfirmed {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Interval().Overlaps(interval) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingStore) seed(booking *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	booking.ID = f.nextID
	f.store = append(f.store, booking)
}

type fakeMaintenanceStore struct {
	blocks  []*domain.MaintenanceBlock
	listErr error
}

func (f *fakeMaintenanceStore) ListOverlapping(_ context.Context, roomID int64, interval domain.Interval) ([]*domain.MaintenanceBlock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	result := make([]*domain.MaintenanceBlock, 0)
	for _, b := range f.blocks {
		if b.RoomID == roomID && b.Interval().Overlaps(interval) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakePolicyStore struct {
	cfg    *domain.PolicyConfig
	getErr error
}

func (f *fakePolicyStore) Get(_ context.Context) (*domain.PolicyConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cfg == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	copied := *f.cfg
	return &copied, nil
}

type fakeRoomService struct {
	rooms map[int64]*roomClient.Room
	err   error
}

func (f *fakeRoomService) GetRoom(_ context.Context, roomID int64) (*roomClient.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, roomClient.ErrRoomNotFound
	}
	return room, nil
}

// serialTxManager выполняет замыкания строго по одному,
// имитируя сериализуемые транзакции
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeMetrics struct {
	created  atomic.Int64
	conflict atomic.Int64
}

func (m *fakeMetrics) IncBookingCreated()  { m.created.Add(1) }
func (m *fakeMetrics) IncBookingConflict() { m.conflict.Add(1) }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var testNow = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

func tomorrowAt(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingStore
	blocks   *fakeMaintenanceStore
	policy   *fakePolicyStore
	metrics  *fakeMetrics
}

func newFixture() *fixture {
	bookings := &fakeBookingStore{}
	blocks := &fakeMaintenanceStore{}
	policy := &fakePolicyStore{cfg: testPolicy()}
	rooms := &fakeRoomService{rooms: map[int64]*roomClient.Room{
		1: {ID: 1, Name: "Переговорка", Capacity: 8, Status: roomClient.RoomStatusActive},
	}}
	metrics := &fakeMetrics{}

	uc := NewUseCase(
		bookings,
		blocks,
		policy,
		rooms,
		&serialTxManager{},
		fixedTime{now: testNow},
		metrics,
		nopLogger{},
	)

	return &fixture{
		uc:       uc,
		bookings: bookings,
		blocks:   blocks,
		policy:   policy,
		metrics:  metrics,
	}
}

func (f *fixture) request(start, end time.Time) *Request {
	return &Request{
		UserID:    42,
		RoomID:    1,
		StartTime: start,
		EndTime:   end,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, int64(1), resp.RoomID)
	assert.Equal(t, "Переговорка", resp.RoomName)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, tomorrowAt(10, 0), resp.StartTime)
	assert.Equal(t, tomorrowAt(11, 0), resp.EndTime)

	assert.Equal(t, int64(1), f.metrics.created.Load())
	assert.Equal(t, int64(0), f.metrics.conflict.Load())
}

func TestUseCase_Execute_ValidationRejects(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "неположительный userID",
			req:  &Request{UserID: 0, RoomID: 1, StartTime: tomorrowAt(10, 0), EndTime: tomorrowAt(11, 0)},
		},
		{
			name: "неположительный roomID",
			req:  &Request{UserID: 42, RoomID: -1, StartTime: tomorrowAt(10, 0), EndTime: tomorrowAt(11, 0)},
		},
		{
			name: "пустое время начала",
			req:  &Request{UserID: 42, RoomID: 1, EndTime: tomorrowAt(11, 0)},
		},
		{
			name: "секунды во времени начала",
			req:  &Request{UserID: 42, RoomID: 1, StartTime: tomorrowAt(10, 0).Add(30 * time.Second), EndTime: tomorrowAt(11, 0)},
		},
		{
			name: "слишком длинные заметки",
			req: &Request{
				UserID:    42,
				RoomID:    1,
				StartTime: tomorrowAt(10, 0),
				EndTime:   tomorrowAt(11, 0),
				Notes:     ptr.Ptr(strings.Repeat("б", domain.MaxNotesLength+1)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Empty(t, f.bookings.store)
}

func TestUseCase_Execute_RoomChecks(t *testing.T) {
	t.Run("комната не найдена", func(t *testing.T) {
		f := newFixture()

		req := f.request(tomorrowAt(10, 0), tomorrowAt(11, 0))
		req.RoomID = 99

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("комната на обслуживании", func(t *testing.T) {
		f := newFixture()
		f.uc.roomClient = &fakeRoomService{rooms: map[int64]*roomClient.Room{
			1: {ID: 1, Name: "Переговорка", Status: roomClient.RoomStatusMaintenance},
		}}

		_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("комната в архиве", func(t *testing.T) {
		f := newFixture()
		f.uc.roomClient = &fakeRoomService{rooms: map[int64]*roomClient.Room{
			1: {ID: 1, Name: "Переговорка", Status: roomClient.RoomStatusArchived},
		}}

		_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	f := newFixture()

	// Чужое подтвержденное бронирование 10:30-11:30
	f.bookings.seed(&domain.Booking{
		UserID:    7,
		RoomID:    1,
		StartTime: tomorrowAt(10, 30),
		EndTime:   tomorrowAt(11, 30),
		Status:    domain.StatusConfirmed,
	})

	// Пересечение — конфликт
	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Equal(t, int64(1), f.metrics.conflict.Load())
	assert.Equal(t, int64(0), f.metrics.created.Load())

	// Стык впритык не пересекается
	resp, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(11, 30), tomorrowAt(12, 30)))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestUseCase_Execute_CancelledBookingDoesNotConflict(t *testing.T) {
	f := newFixture()

	f.bookings.seed(&domain.Booking{
		UserID:    7,
		RoomID:    1,
		StartTime: tomorrowAt(10, 0),
		EndTime:   tomorrowAt(11, 0),
		Status:    domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.NoError(t, err)
}

func TestUseCase_Execute_MaintenanceBlockConflict(t *testing.T) {
	f := newFixture()
	f.blocks.blocks = []*domain.MaintenanceBlock{
		{
			ID:        1,
			RoomID:    1,
			StartTime: tomorrowAt(10, 30),
			EndTime:   tomorrowAt(12, 0),
		},
	}

	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	assert.ErrorIs(t, err, ErrBookingConflict)

	// Блок в другой комнате не мешает
	f.blocks.blocks[0].RoomID = 2
	_, err = f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.NoError(t, err)
}

func TestUseCase_Execute_DefaultPolicyWhenUnset(t *testing.T) {
	f := newFixture()
	f.policy.cfg = nil

	resp, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestUseCase_Execute_PolicyViolationShortCircuits(t *testing.T) {
	f := newFixture()

	// 06:00 — раньше открытия
	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(6, 0), tomorrowAt(7, 0)))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	// 10:00-10:10 — короче минимальной длительности
	_, err = f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(10, 10)))
	assert.ErrorIs(t, err, ErrDurationTooShort)

	assert.Empty(t, f.bookings.store)
	assert.Equal(t, int64(0), f.metrics.conflict.Load())
}

func TestUseCase_Execute_ActiveQuota(t *testing.T) {
	f := newFixture()
	f.policy.cfg.MaxActiveBookings = 3

	for i := 0; i < 3; i++ {
		f.bookings.seed(&domain.Booking{
			UserID:    42,
			RoomID:    1,
			StartTime: tomorrowAt(12+i, 0),
			EndTime:   tomorrowAt(12+i, 30),
			Status:    domain.StatusConfirmed,
		})
	}

	// Четвертое бронирование не проходит по квоте
	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	assert.ErrorIs(t, err, ErrMaxActiveBookingsExceeded)

	// После отмены одного из трех запрос проходит
	f.bookings.store[0].Status = domain.StatusCancelled

	_, err = f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.NoError(t, err)
}

func TestUseCase_Execute_StorageErrorIsNotConflict(t *testing.T) {
	f := newFixture()
	f.bookings.listErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request(tomorrowAt(10, 0), tomorrowAt(11, 0)))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrBookingConflict)
	assert.Equal(t, int64(0), f.metrics.conflict.Load())
}

func TestUseCase_Execute_ConcurrentOverlapExactlyOneWins(t *testing.T) {
	f := newFixture()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	intervals := []struct{ start, end time.Time }{
		{tomorrowAt(10, 0), tomorrowAt(11, 0)},
		{tomorrowAt(10, 30), tomorrowAt(11, 30)},
	}

	for i := range intervals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &Request{
				UserID:    int64(100 + i),
				RoomID:    1,
				StartTime: intervals[i].start,
				EndTime:   intervals[i].end,
			}
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}

	wg.Wait()

	succeeded := 0
	conflicted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrBookingConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, f.bookings.store, 1)
	assert.Equal(t, int64(1), f.metrics.created.Load())
	assert.Equal(t, int64(1), f.metrics.conflict.Load())
}
