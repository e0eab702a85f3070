package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields) {}
func (nopLogger) Info(event string, fields out.LogFields)  {}
func (nopLogger) Warn(event string, fields out.LogFields)  {}
func (nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func TestReplaceDoctorRulesUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemStoreAdapter(nopLogger{})
	doctorID := uuid.New()

	first := domain.AvailabilityRule{DayOfWeek: 1, StartTime: 540, EndTime: 1020, IsAvailable: true}
	if err := store.ReplaceDoctorRules(ctx, doctorID, []domain.AvailabilityRule{first}); err != nil {
		t.Fatalf("ReplaceDoctorRules: %v", err)
	}

	// Повторная запись того же дня заменяет правило, а не добавляет второе
	second := first
	second.StartTime = 600
	if err := store.ReplaceDoctorRules(ctx, doctorID, []domain.AvailabilityRule{second}); err != nil {
		t.Fatalf("ReplaceDoctorRules: %v", err)
	}

	rules, err := store.GetDoctorRules(ctx, doctorID)
	if err != nil {
		t.Fatalf("GetDoctorRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule after upsert, got %d", len(rules))
	}
	if rules[0].StartTime != 600 {
		t.Fatalf("expected updated start time 600, got %d", rules[0].StartTime)
	}
}

func TestGetDoctorDayRuleMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemStoreAdapter(nopLogger{})

	rule, err := store.GetDoctorDayRule(ctx, uuid.New(), 3)
	if err != nil {
		t.Fatalf("GetDoctorDayRule: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected nil rule for missing day, got %+v", rule)
	}

	// Невалидный день тоже просто "нет правила"
	rule, err = store.GetDoctorDayRule(ctx, uuid.New(), 42)
	if err != nil || rule != nil {
		t.Fatalf("expected nil rule for invalid day, got %+v, %v", rule, err)
	}
}

func TestListDoctorShiftsSorted(t *testing.T) {
	ctx := context.Background()
	store := NewMemStoreAdapter(nopLogger{})
	doctorID := uuid.New()
	date := json_types.NewDate(2025, time.March, 10)

	for _, start := range []json_types.TimeOfDay{900, 540, 720} {
		shift := domain.Shift{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			Type:      domain.ShiftTypeMorning,
			Date:      date,
			StartTime: start,
			EndTime:   start + 60,
			Status:    domain.ShiftStatusScheduled,
		}
		if err := store.SaveShift(ctx, shift); err != nil {
			t.Fatalf("SaveShift: %v", err)
		}
	}

	shifts, err := store.ListDoctorShifts(ctx, doctorID, date)
	if err != nil {
		t.Fatalf("ListDoctorShifts: %v", err)
	}
	if len(shifts) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(shifts))
	}
	for i := 1; i < len(shifts); i++ {
		if shifts[i-1].StartTime > shifts[i].StartTime {
			t.Fatalf("shifts not sorted by start time: %v", shifts)
		}
	}
}

// Критическая секция сериализует работу по ключу (врач, дата).
func TestWithDoctorDaySerializes(t *testing.T) {
	ctx := context.Background()
	store := NewMemStoreAdapter(nopLogger{})
	doctorID := uuid.New()
	date := json_types.NewDate(2025, time.March, 10)

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithDoctorDay(ctx, doctorID, date, func(ctx context.Context) error {
				current := counter
				time.Sleep(time.Millisecond)
				counter = current + 1
				return nil
			})
			if err != nil {
				t.Errorf("WithDoctorDay: %v", err)
			}
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected %d serialized increments, got %d", workers, counter)
	}
}

func TestListDoctorBookingsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemStoreAdapter(nopLogger{})
	doctorID := uuid.New()
	date := json_types.NewDate(2025, time.March, 10)

	store.AddBooking(ctx, domain.Booking{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		Date:      date,
		StartTime: 600,
		EndTime:   630,
		Status:    domain.BookingStatusScheduled,
	})

	bookings, err := store.ListDoctorBookings(ctx, doctorID, date)
	if err != nil {
		t.Fatalf("ListDoctorBookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}

	// Мутация возвращенного среза не трогает хранилище
	bookings[0].Status = domain.BookingStatusCancelled

	again, err := store.ListDoctorBookings(ctx, doctorID, date)
	if err != nil {
		t.Fatalf("ListDoctorBookings: %v", err)
	}
	if again[0].Status != domain.BookingStatusScheduled {
		t.Fatalf("stored booking mutated through returned slice")
	}
}
