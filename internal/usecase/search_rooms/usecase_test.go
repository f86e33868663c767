package search_rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
	"github.com/m04kA/RoomBookingService/pkg/ptr"
)

type fakeBookingReader struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookingReader) GetConfirmedByRoomsBetween(_ context.Context, roomIDs []int64, from, to time.Time) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	ids := make(map[int64]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		ids[id] = struct{}{}
	}

	window := domain.NewInterval(from, to)
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if _, ok := ids[b.RoomID]; !ok {
			continue
		}
		if b.Status != domain.StatusConfirmed {
			continue
		}
		if b.Interval().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeMaintenanceReader struct {
	blocks []*domain.MaintenanceBlock
	err    error
}

func (f *fakeMaintenanceReader) ListByRoomsBetween(_ context.Context, roomIDs []int64, from, to time.Time) ([]*domain.MaintenanceBlock, error) {
	if f.err != nil {
		return nil, f.err
	}

	ids := make(map[int64]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		ids[id] = struct{}{}
	}

	window := domain.NewInterval(from, to)
	result := make([]*domain.MaintenanceBlock, 0)
	for _, b := range f.blocks {
		if _, ok := ids[b.RoomID]; !ok {
			continue
		}
		if b.Interval().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakePolicyReader struct {
	cfg *domain.PolicyConfig
}

func (f *fakePolicyReader) Get(_ context.Context) (*domain.PolicyConfig, error) {
	if f.cfg == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	copied := *f.cfg
	return &copied, nil
}

type fakeCatalog struct {
	rooms []*roomClient.Room
	err   error
}

func (f *fakeCatalog) ListRooms(_ context.Context, _ roomClient.RoomsFilter) ([]*roomClient.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

type fakeSearchMetrics struct {
	searches int
}

func (m *fakeSearchMetrics) IncRoomSearch() { m.searches++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var searchDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return searchDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func activeRoom(id int64, name string, capacity int, capabilities ...string) *roomClient.Room {
	return &roomClient.Room{
		ID:           id,
		Name:         name,
		Capacity:     capacity,
		Capabilities: capabilities,
		Status:       roomClient.RoomStatusActive,
	}
}

func confirmed(roomID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:    7,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingReader
	blocks   *fakeMaintenanceReader
	policy   *fakePolicyReader
	catalog  *fakeCatalog
	metrics  *fakeSearchMetrics
}

func newFixture(rooms ...*roomClient.Room) *fixture {
	bookings := &fakeBookingReader{}
	blocks := &fakeMaintenanceReader{}
	policy := &fakePolicyReader{cfg: &domain.PolicyConfig{
		OpenHour:                8,
		CloseHour:               22,
		TimeSlotIntervalMinutes: 30,
		MinDurationMinutes:      30,
		MaxDurationMinutes:      240,
		MaxActiveBookings:       5,
		MinNoticeMinutes:        60,
		MaxDaysAhead:            30,
	}}
	catalog := &fakeCatalog{rooms: rooms}
	metrics := &fakeSearchMetrics{}

	uc := NewUseCase(bookings, blocks, policy, catalog, metrics, nopLogger{})

	return &fixture{
		uc:       uc,
		bookings: bookings,
		blocks:   blocks,
		policy:   policy,
		catalog:  catalog,
		metrics:  metrics,
	}
}

func TestUseCase_Execute_ClassifiesRooms(t *testing.T) {
	f := newFixture(
		activeRoom(1, "Альфа", 4),
		activeRoom(2, "Бета", 6),
		activeRoom(3, "Гамма", 8),
		&roomClient.Room{ID: 4, Name: "Дельта", Capacity: 10, Status: roomClient.RoomStatusMaintenance},
	)

	f.bookings.bookings = []*domain.Booking{
		confirmed(2, at(10, 0), at(10, 30)),
		confirmed(3, at(10, 0), at(12, 0)),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(12, 0)})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 4)
	assert.Equal(t, 30, resp.SlotMinutes)

	assert.Equal(t, string(domain.AvailabilityAvailable), resp.Rooms[0].Status)
	assert.Equal(t, string(domain.AvailabilityPartial), resp.Rooms[1].Status)
	assert.Equal(t, string(domain.AvailabilityUnavailable), resp.Rooms[2].Status)
	assert.Equal(t, string(domain.AvailabilityMaintenance), resp.Rooms[3].Status)

	assert.Equal(t, 1, f.metrics.searches)
}

func TestUseCase_Execute_MaintenanceBlocksOccupySlots(t *testing.T) {
	f := newFixture(
		activeRoom(1, "Альфа", 4),
		activeRoom(2, "Бета", 6),
	)

	f.blocks.blocks = []*domain.MaintenanceBlock{
		{ID: 1, RoomID: 1, StartTime: at(10, 0), EndTime: at(12, 0)},
		{ID: 2, RoomID: 2, StartTime: at(11, 0), EndTime: at(11, 30)},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(12, 0)})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 2)
	assert.Equal(t, string(domain.AvailabilityUnavailable), resp.Rooms[0].Status)
	assert.Equal(t, string(domain.AvailabilityPartial), resp.Rooms[1].Status)
}

func TestUseCase_Execute_FiltersCandidates(t *testing.T) {
	archived := &roomClient.Room{ID: 3, Name: "Архивная", Capacity: 12, Status: roomClient.RoomStatusArchived}

	// Каталог возвращает все комнаты: фильтры применяются локально
	f := newFixture(
		activeRoom(1, "Малая", 4, "tv"),
		activeRoom(2, "Большая", 12, "tv", "whiteboard"),
		archived,
	)

	resp, err := f.uc.Execute(context.Background(), &Request{
		From:                 at(10, 0),
		To:                   at(11, 0),
		MinCapacity:          ptr.Ptr(6),
		RequiredCapabilities: []string{"tv", "whiteboard"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, int64(2), resp.Rooms[0].RoomID)
}

func TestUseCase_Execute_SortOrders(t *testing.T) {
	rooms := []*roomClient.Room{
		activeRoom(3, "Гамма", 4),
		activeRoom(1, "Бета", 10),
		activeRoom(2, "Альфа", 4),
	}

	ids := func(resp *Response) []int64 {
		out := make([]int64, 0, len(resp.Rooms))
		for _, r := range resp.Rooms {
			out = append(out, r.RoomID)
		}
		return out
	}

	t.Run("по умолчанию — по id", func(t *testing.T) {
		f := newFixture(rooms...)
		resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0)})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids(resp))
	})

	t.Run("по имени", func(t *testing.T) {
		f := newFixture(rooms...)
		resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0), Sort: ptr.Ptr(SortByName)})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1, 3}, ids(resp))
	})

	t.Run("по вместимости с разрешением ничьей по id", func(t *testing.T) {
		f := newFixture(rooms...)
		resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0), Sort: ptr.Ptr(SortByCapacity)})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3, 1}, ids(resp))
	})
}

func TestUseCase_Execute_TrailingSlotClipped(t *testing.T) {
	f := newFixture(activeRoom(1, "Альфа", 4))

	// Окно 10:00-10:45 при шаге 30 дает слоты 10:00-10:30 и 10:30-10:45;
	// бронирование задевает только укороченный хвост
	f.bookings.bookings = []*domain.Booking{
		confirmed(1, at(10, 30), at(11, 0)),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(10, 45)})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, string(domain.AvailabilityPartial), resp.Rooms[0].Status)
}

func TestUseCase_Execute_AddingBookingDegradesAvailability(t *testing.T) {
	f := newFixture(activeRoom(1, "Альфа", 4))
	req := &Request{From: at(10, 0), To: at(11, 0)}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.AvailabilityAvailable), resp.Rooms[0].Status)

	f.bookings.bookings = append(f.bookings.bookings, confirmed(1, at(10, 0), at(10, 30)))
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.AvailabilityPartial), resp.Rooms[0].Status)

	f.bookings.bookings = append(f.bookings.bookings, confirmed(1, at(10, 30), at(11, 0)))
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.AvailabilityUnavailable), resp.Rooms[0].Status)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture(activeRoom(1, "Альфа", 4))

	tests := []struct {
		name string
		req  *Request
	}{
		{"пустое начало окна", &Request{To: at(11, 0)}},
		{"пустой конец окна", &Request{From: at(10, 0)}},
		{"нулевое окно", &Request{From: at(10, 0), To: at(10, 0)}},
		{"конец раньше начала", &Request{From: at(11, 0), To: at(10, 0)}},
		{"неположительная вместимость", &Request{From: at(10, 0), To: at(11, 0), MinCapacity: ptr.Ptr(0)}},
		{"неизвестная сортировка", &Request{From: at(10, 0), To: at(11, 0), Sort: ptr.Ptr("price")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, f.bookings.calls)
}

func TestUseCase_Execute_DefaultPolicyWhenUnset(t *testing.T) {
	f := newFixture(activeRoom(1, "Альфа", 4))
	f.policy.cfg = nil

	resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0)})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTimeSlotIntervalMinutes, resp.SlotMinutes)
}

func TestUseCase_Execute_EmptyCatalog(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0)})
	require.NoError(t, err)

	assert.Empty(t, resp.Rooms)
	assert.Equal(t, 0, f.bookings.calls)
}

func TestUseCase_Execute_StorageError(t *testing.T) {
	f := newFixture(activeRoom(1, "Альфа", 4))
	f.bookings.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), &Request{From: at(10, 0), To: at(11, 0)})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestPartitionWindow(t *testing.T) {
	t.Run("окно делится нацело", func(t *testing.T) {
		slots := partitionWindow(domain.NewInterval(at(10, 0), at(12, 0)), 30)
		require.Len(t, slots, 4)
		assert.Equal(t, at(10, 0), slots[0].Start)
		assert.Equal(t, at(10, 30), slots[0].End)
		assert.Equal(t, at(11, 30), slots[3].Start)
		assert.Equal(t, at(12, 0), slots[3].End)
	})

	t.Run("хвост укорачивается", func(t *testing.T) {
		slots := partitionWindow(domain.NewInterval(at(10, 0), at(10, 45)), 30)
		require.Len(t, slots, 2)
		assert.Equal(t, at(10, 45), slots[1].End)
	})

	t.Run("окно короче слота", func(t *testing.T) {
		slots := partitionWindow(domain.NewInterval(at(10, 0), at(10, 10)), 30)
		require.Len(t, slots, 1)
		assert.Equal(t, at(10, 0), slots[0].Start)
		assert.Equal(t, at(10, 10), slots[0].End)
	})
}
