package services

import (
	"testing"

	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// nopLogger глушит вывод в тестах сервисов.
type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields) {}
func (nopLogger) Info(event string, fields out.LogFields)  {}
func (nopLogger) Warn(event string, fields out.LogFields)  {}
func (nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func mustTime(t *testing.T, str string) json_types.TimeOfDay {
	t.Helper()
	parsed, err := json_types.ParseTimeOfDay(str)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", str, err)
	}
	return parsed
}

func timePtr(t *testing.T, str string) *json_types.TimeOfDay {
	t.Helper()
	parsed := mustTime(t, str)
	return &parsed
}
