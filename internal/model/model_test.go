package model

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "completed", "cancelled"} {
		status, err := ParseAppointmentStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, AppointmentStatus(raw), status)
	}

	_, err := ParseAppointmentStatus("rescheduled")
	assert.Error(t, err)
	_, err = ParseAppointmentStatus("Pending")
	assert.Error(t, err)
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("lawyer")
	require.NoError(t, err)
	assert.Equal(t, RoleLawyer, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := CombineDateTime(date, "14:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), got)

	_, err = CombineDateTime(date, "25:00", time.UTC)
	assert.Error(t, err)
	_, err = CombineDateTime(date, "2pm", time.UTC)
	assert.Error(t, err)
}

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"zero values", Pagination{}, 1, DefaultPageSize},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"limit over max", Pagination{Page: 2, Limit: 500}, 2, MaxPageSize},
		{"already sane", Pagination{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestAvailabilitySlotRequestBinding(t *testing.T) {
	// A well-formed window must survive the binding layer; the
	// end-after-start ordering is checked in the service.
	var req CreateAvailabilitySlotRequest
	body := []byte(`{"slot_date":"2026-09-01","start_time":"09:00","end_time":"10:30"}`)
	require.NoError(t, binding.JSON.BindBody(body, &req))
	assert.Equal(t, "09:00", req.StartTime)
	assert.Equal(t, "10:30", req.EndTime)

	bad := [][]byte{
		[]byte(`{"slot_date":"2026-09-01","start_time":"09:00"}`),
		[]byte(`{"slot_date":"2026-09-01","start_time":"9am","end_time":"10:30"}`),
		[]byte(`{"slot_date":"September 1","start_time":"09:00","end_time":"10:30"}`),
	}
	for _, body := range bad {
		var req CreateAvailabilitySlotRequest
		assert.Error(t, binding.JSON.BindBody(body, &req), "body %s", body)
	}
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())

	p = Pagination{Page: 1, Limit: 50}
	assert.Equal(t, 0, p.Offset())
}
