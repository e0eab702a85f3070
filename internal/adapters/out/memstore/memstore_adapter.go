package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// MemStoreAdapter - хранилище правил, смен и записей в памяти процесса.
// Используется при запуске без базы и в тестах; реализует те же порты,
// что и postgres-адаптер, включая критическую секцию по (врач, дата).
type MemStoreAdapter struct {
	mu       sync.RWMutex
	rules    map[string]domain.AvailabilityRule // ключ: doctorID_dayOfWeek
	shifts   map[uuid.UUID]domain.Shift
	bookings map[string][]domain.Booking // ключ: doctorID_date

	lockMu   sync.Mutex
	dayLocks map[string]*sync.Mutex

	logger out.LoggerPort
}

func NewMemStoreAdapter(logger out.LoggerPort) *MemStoreAdapter {
	return &MemStoreAdapter{
		rules:    make(map[string]domain.AvailabilityRule),
		shifts:   make(map[uuid.UUID]domain.Shift),
		bookings: make(map[string][]domain.Booking),
		dayLocks: make(map[string]*sync.Mutex),
		logger:   logger.WithModule("MemStoreAdapter"),
	}
}

func ruleKey(doctorID uuid.UUID, dayOfWeek int) string {
	return fmt.Sprintf("%s_%d", doctorID, dayOfWeek)
}

func dayKey(doctorID uuid.UUID, date json_types.Date) string {
	return fmt.Sprintf("%s_%s", doctorID, date)
}

// RuleStorePort

func (m *MemStoreAdapter) GetDoctorRules(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rules []domain.AvailabilityRule
	for _, rule := range m.rules {
		if rule.DoctorID == doctorID {
			rules = append(rules, rule)
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].DayOfWeek < rules[j].DayOfWeek
	})

	return rules, nil
}

func (m *MemStoreAdapter) GetDoctorDayRule(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*domain.AvailabilityRule, error) {
	if !domain.IsValidStorageDay(dayOfWeek) {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rule, exists := m.rules[ruleKey(doctorID, dayOfWeek)]
	if !exists {
		return nil, nil
	}

	return &rule, nil
}

func (m *MemStoreAdapter) ReplaceDoctorRules(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rule := range rules {
		rule.DoctorID = doctorID
		m.rules[ruleKey(doctorID, rule.DayOfWeek)] = rule
	}

	return nil
}

// ShiftStorePort

func (m *MemStoreAdapter) GetShift(ctx context.Context, shiftID uuid.UUID) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shift, exists := m.shifts[shiftID]
	if !exists {
		return nil, nil
	}

	return &shift, nil
}

func (m *MemStoreAdapter) ListDoctorShifts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var shifts []domain.Shift
	for _, shift := range m.shifts {
		if shift.DoctorID == doctorID && shift.Date.Equal(date) {
			shifts = append(shifts, shift)
		}
	}

	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].StartTime < shifts[j].StartTime
	})

	return shifts, nil
}

func (m *MemStoreAdapter) SaveShift(ctx context.Context, shift domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shifts[shift.ID] = shift
	return nil
}

func (m *MemStoreAdapter) DeleteShift(ctx context.Context, shiftID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.shifts, shiftID)
	return nil
}

func (m *MemStoreAdapter) WithDoctorDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date, fn func(ctx context.Context) error) error {
	m.lockMu.Lock()
	lock, exists := m.dayLocks[dayKey(doctorID, date)]
	if !exists {
		lock = &sync.Mutex{}
		m.dayLocks[dayKey(doctorID, date)] = lock
	}
	m.lockMu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	return fn(ctx)
}

// BookingPort

func (m *MemStoreAdapter) ListDoctorBookings(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.bookings[dayKey(doctorID, date)]
	bookings := make([]domain.Booking, len(stored))
	copy(bookings, stored)

	return bookings, nil
}

// AddBooking подкладывает запись в снимок. В проде записями владеет
// внешняя подсистема, сюда они попадают только при локальном запуске и в тестах.
func (m *MemStoreAdapter) AddBooking(ctx context.Context, booking domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dayKey(booking.DoctorID, booking.Date)
	m.bookings[key] = append(m.bookings[key], booking)
}
