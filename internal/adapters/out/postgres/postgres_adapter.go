package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suchimauz/doctor-schedule-engine/internal/config"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// PostgresAdapter реализует порты хранилища поверх pgxpool.
// Время суток хранится как минуты от полуночи (int), даты - как date.
type PostgresAdapter struct {
	pool   *pgxpool.Pool
	logger out.LoggerPort
}

func NewPostgresAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*PostgresAdapter, error) {
	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Error("postgres.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("postgres.ping.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &PostgresAdapter{
		pool:   pool,
		logger: logger.WithModule("PostgresAdapter"),
	}, nil
}

func (a *PostgresAdapter) Close() {
	a.pool.Close()
}

// RuleStorePort

const ruleColumns = `doctor_id, day_of_week, start_time, end_time, is_available,
	break_start, break_end, slot_duration_minutes, max_appointments`

func scanRule(row pgx.Row) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var startTime, endTime int
	var breakStart, breakEnd *int

	err := row.Scan(
		&rule.DoctorID,
		&rule.DayOfWeek,
		&startTime,
		&endTime,
		&rule.IsAvailable,
		&breakStart,
		&breakEnd,
		&rule.SlotDurationMinutes,
		&rule.MaxAppointments,
	)
	if err != nil {
		return nil, err
	}

	rule.StartTime = json_types.TimeOfDay(startTime)
	rule.EndTime = json_types.TimeOfDay(endTime)
	if breakStart != nil {
		t := json_types.TimeOfDay(*breakStart)
		rule.BreakStart = &t
	}
	if breakEnd != nil {
		t := json_types.TimeOfDay(*breakEnd)
		rule.BreakEnd = &t
	}

	return &rule, nil
}

func (a *PostgresAdapter) GetDoctorRules(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+ruleColumns+` FROM availability_rules
		 WHERE doctor_id = $1 ORDER BY day_of_week`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("postgres.rules.query: %w", err)
	}
	defer rows.Close()

	var rules []domain.AvailabilityRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres.rules.scan: %w", err)
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

func (a *PostgresAdapter) GetDoctorDayRule(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*domain.AvailabilityRule, error) {
	if !domain.IsValidStorageDay(dayOfWeek) {
		return nil, nil
	}

	row := a.pool.QueryRow(ctx,
		`SELECT `+ruleColumns+` FROM availability_rules
		 WHERE doctor_id = $1 AND day_of_week = $2`, doctorID, dayOfWeek)

	rule, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres.rule.scan: %w", err)
	}

	return rule, nil
}

func (a *PostgresAdapter) ReplaceDoctorRules(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.rules.begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rule := range rules {
		var breakStart, breakEnd *int
		if rule.BreakStart != nil {
			v := int(*rule.BreakStart)
			breakStart = &v
		}
		if rule.BreakEnd != nil {
			v := int(*rule.BreakEnd)
			breakEnd = &v
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO availability_rules (`+ruleColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (doctor_id, day_of_week) DO UPDATE SET
			   start_time = EXCLUDED.start_time,
			   end_time = EXCLUDED.end_time,
			   is_available = EXCLUDED.is_available,
			   break_start = EXCLUDED.break_start,
			   break_end = EXCLUDED.break_end,
			   slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			   max_appointments = EXCLUDED.max_appointments`,
			doctorID, rule.DayOfWeek, int(rule.StartTime), int(rule.EndTime),
			rule.IsAvailable, breakStart, breakEnd,
			rule.SlotDuration(), rule.MaxAppointments)
		if err != nil {
			return fmt.Errorf("postgres.rules.upsert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ShiftStorePort

const shiftColumns = `id, doctor_id, shift_type, shift_date, start_time, end_time,
	department_id, status, is_emergency, notes`

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var shift domain.Shift
	var startTime, endTime int

	err := row.Scan(
		&shift.ID,
		&shift.DoctorID,
		&shift.Type,
		&shift.Date.Date,
		&startTime,
		&endTime,
		&shift.DepartmentID,
		&shift.Status,
		&shift.IsEmergency,
		&shift.Notes,
	)
	if err != nil {
		return nil, err
	}

	shift.StartTime = json_types.TimeOfDay(startTime)
	shift.EndTime = json_types.TimeOfDay(endTime)

	return &shift, nil
}

func (a *PostgresAdapter) GetShift(ctx context.Context, shiftID uuid.UUID) (*domain.Shift, error) {
	row := a.pool.QueryRow(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, shiftID)

	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres.shift.scan: %w", err)
	}

	return shift, nil
}

func (a *PostgresAdapter) ListDoctorShifts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Shift, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+shiftColumns+` FROM shifts
		 WHERE doctor_id = $1 AND shift_date = $2 ORDER BY start_time`,
		doctorID, date.Date)
	if err != nil {
		return nil, fmt.Errorf("postgres.shifts.query: %w", err)
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres.shifts.scan: %w", err)
		}
		shifts = append(shifts, *shift)
	}

	return shifts, rows.Err()
}

func (a *PostgresAdapter) SaveShift(ctx context.Context, shift domain.Shift) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO shifts (`+shiftColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		   shift_type = EXCLUDED.shift_type,
		   shift_date = EXCLUDED.shift_date,
		   start_time = EXCLUDED.start_time,
		   end_time = EXCLUDED.end_time,
		   department_id = EXCLUDED.department_id,
		   status = EXCLUDED.status,
		   is_emergency = EXCLUDED.is_emergency,
		   notes = EXCLUDED.notes`,
		shift.ID, shift.DoctorID, shift.Type, shift.Date.Date,
		int(shift.StartTime), int(shift.EndTime),
		shift.DepartmentID, shift.Status, shift.IsEmergency, shift.Notes)
	if err != nil {
		return fmt.Errorf("postgres.shift.save: %w", err)
	}

	return nil
}

func (a *PostgresAdapter) DeleteShift(ctx context.Context, shiftID uuid.UUID) error {
	_, err := a.pool.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, shiftID)
	if err != nil {
		return fmt.Errorf("postgres.shift.delete: %w", err)
	}

	return nil
}

// WithDoctorDay держит advisory-блокировку по ключу (врач, дата) на время fn.
// Блокировка транзакционная: отпускается при commit/rollback, так что два
// конкурентных создания смены для одного врача и дня сериализуются базой.
func (a *PostgresAdapter) WithDoctorDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date, fn func(ctx context.Context) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.doctor_day.begin: %w", err)
	}
	defer tx.Rollback(ctx)

	lockKey := fmt.Sprintf("%s_%s", doctorID, date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("postgres.doctor_day.lock: %w", err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// BookingPort

func (a *PostgresAdapter) ListDoctorBookings(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Booking, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id, doctor_id, date, start_time, end_time, status, patient_name, appointment_type
		 FROM bookings
		 WHERE doctor_id = $1 AND date = $2 ORDER BY start_time`,
		doctorID, date.Date)
	if err != nil {
		return nil, fmt.Errorf("postgres.bookings.query: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		var startTime, endTime int

		err := rows.Scan(
			&booking.ID,
			&booking.DoctorID,
			&booking.Date.Date,
			&startTime,
			&endTime,
			&booking.Status,
			&booking.PatientName,
			&booking.AppointmentType,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres.bookings.scan: %w", err)
		}

		booking.StartTime = json_types.TimeOfDay(startTime)
		booking.EndTime = json_types.TimeOfDay(endTime)
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
