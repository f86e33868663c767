package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/booking"
	userClient "github.com/m04kA/RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/RoomBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelErr    error
	cancelCalls  int
	cancelledBy  int64
	cancelledNow time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByRoomWithFilter(_ context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.RoomID != filter.RoomID {
			continue
		}
		if !filter.IncludeInactive && b.Status != domain.StatusConfirmed {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookingRepo) CancelConfirmed(_ context.Context, id int64, cancelledBy int64, now time.Time) error {
	f.cancelCalls++
	f.cancelledBy = cancelledBy
	f.cancelledNow = now
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != domain.StatusConfirmed || !b.EndTime.After(now) {
		return bookingRepo.ErrNotCancellable
	}
	b.Status = domain.StatusCancelled
	b.CancelledBy = &cancelledBy
	b.CancelledAt = &now
	return nil
}

type fakeUserClient struct {
	users map[int64]*userClient.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userClient.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return u, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeMetrics struct {
	cancelled int
}

func (f *fakeMetrics) IncBookingCancelled() { f.cancelled++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo, users *fakeUserClient, now time.Time) (*Service, *fakeMetrics) {
	m := &fakeMetrics{}
	return NewService(repo, users, fixedTime{now: now}, m, nopLogger{}), m
}

func confirmedBooking(id, userID, roomID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
		RoomName:  "Переговорка",
	}
}

func TestService_GetByID_Access(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: confirmedBooking(1, 100, 7, now.Add(time.Hour), now.Add(2*time.Hour)),
	}}
	users := &fakeUserClient{users: map[int64]*userClient.User{
		100: {ID: 100, Role: userClient.RoleUser},
		200: {ID: 200, Role: userClient.RoleUser},
		999: {ID: 999, Role: userClient.RoleAdmin},
	}}
	svc, _ := newTestService(repo, users, now)

	t.Run("owner sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 200)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 999)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetUserBookings_DerivedStatusFilter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		// Завершившееся, но всё ещё confirmed в базе
		1: confirmedBooking(1, 100, 7, now.Add(-3*time.Hour), now.Add(-2*time.Hour)),
		// Будущее
		2: confirmedBooking(2, 100, 7, now.Add(time.Hour), now.Add(2*time.Hour)),
	}}
	users := &fakeUserClient{users: map[int64]*userClient.User{
		100: {ID: 100, Role: userClient.RoleUser},
	}}
	svc, _ := newTestService(repo, users, now)

	t.Run("expired filter catches finished bookings without db status change", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      100,
			RequesterID: 100,
			Status:      ptr.Ptr("expired"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(1), resp.Bookings[0].ID)
		assert.Equal(t, string(domain.StatusExpired), resp.Bookings[0].Status)
	})

	t.Run("confirmed filter excludes expired", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      100,
			RequesterID: 100,
			Status:      ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      100,
			RequesterID: 100,
			Status:      ptr.Ptr("pending"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetRoomBookings_AdminOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: confirmedBooking(1, 100, 7, now.Add(time.Hour), now.Add(2*time.Hour)),
	}}
	users := &fakeUserClient{users: map[int64]*userClient.User{
		100: {ID: 100, Role: userClient.RoleUser},
		999: {ID: 999, Role: userClient.RoleAdmin},
	}}
	svc, _ := newTestService(repo, users, now)

	_, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
		RoomID:      7,
		RequesterID: 100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
		RoomID:      7,
		RequesterID: 999,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestService_Cancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	newRepo := func() *fakeBookingRepo {
		return &fakeBookingRepo{bookings: map[int64]*domain.Booking{
			1: confirmedBooking(1, 100, 7, now.Add(time.Hour), now.Add(2*time.Hour)),
			2: confirmedBooking(2, 100, 7, now.Add(-3*time.Hour), now.Add(-2*time.Hour)),
		}}
	}
	users := &fakeUserClient{users: map[int64]*userClient.User{
		100: {ID: 100, Role: userClient.RoleUser},
		200: {ID: 200, Role: userClient.RoleUser},
		999: {ID: 999, Role: userClient.RoleAdmin},
	}}

	t.Run("owner cancels own booking", func(t *testing.T) {
		repo := newRepo()
		svc, m := newTestService(repo, users, now)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 100})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.cancelCalls)
		assert.Equal(t, int64(100), repo.cancelledBy)
		assert.Equal(t, now, repo.cancelledNow)
		assert.Equal(t, 1, m.cancelled)

		// Ответ отражает состояние после отмены
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, int64(100), *resp.CancelledBy)
		require.NotNil(t, resp.CancelledAt)
		assert.Equal(t, now.Format(time.RFC3339), *resp.CancelledAt)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := newRepo()
		svc, _ := newTestService(repo, users, now)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 200})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.cancelCalls)
	})

	t.Run("admin cancels someone else's booking", func(t *testing.T) {
		repo := newRepo()
		svc, _ := newTestService(repo, users, now)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 999})
		require.NoError(t, err)
		assert.Equal(t, int64(999), repo.cancelledBy)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, int64(999), *resp.CancelledBy)
	})

	t.Run("double cancel is rejected and cancelled_at is preserved", func(t *testing.T) {
		repo := newRepo()
		svc, m := newTestService(repo, users, now)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 100})
		require.NoError(t, err)
		firstCancelledAt := *repo.bookings[1].CancelledAt

		_, err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 100})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		// Повторная попытка не дошла до UPDATE и не тронула отметку времени
		assert.Equal(t, 1, repo.cancelCalls)
		assert.Equal(t, firstCancelledAt, *repo.bookings[1].CancelledAt)
		assert.Equal(t, 1, m.cancelled)
	})

	t.Run("expired booking cannot be cancelled", func(t *testing.T) {
		repo := newRepo()
		svc, _ := newTestService(repo, users, now)

		_, err := svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{RequesterID: 100})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Zero(t, repo.cancelCalls)
	})

	t.Run("concurrent cancel loses gracefully", func(t *testing.T) {
		repo := newRepo()
		repo.cancelErr = bookingRepo.ErrNotCancellable
		svc, m := newTestService(repo, users, now)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: 100})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Zero(t, m.cancelled)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo := newRepo()
		svc, _ := newTestService(repo, users, now)

		_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{RequesterID: 100})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
