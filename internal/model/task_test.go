package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-06-01", want: NewDate(2025, time.June, 1)},
		{in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{in: "2023-02-29", wantErr: true},
		{in: "06/01/2025", wantErr: true},
		{in: "2025-6-1", wantErr: true},
		{in: "", wantErr: true},
		{in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDeadline)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDateScan(t *testing.T) {
	want := NewDate(2025, time.June, 1)
	tests := []struct {
		name string
		src  any
	}{
		{name: "time", src: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{name: "string", src: "2025-06-01"},
		{name: "bytes", src: []byte("2025-06-01")},
		{name: "timestamp text", src: "2025-06-01 00:00:00+00:00"},
		{name: "rfc3339 text", src: "2025-06-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, want, d)
		})
	}

	var d Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, time.June, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTaskFieldsTask(t *testing.T) {
	fields := TaskFields{
		Name:        "Write report",
		Description: "Quarterly report",
		Category:    "Work",
		Deadline:    " 2025-06-01 ",
	}

	task, err := fields.Task(7)
	require.NoError(t, err)
	assert.Equal(t, Task{
		ID:          7,
		Name:        "Write report",
		Description: "Quarterly report",
		Category:    "Work",
		Deadline:    NewDate(2025, time.June, 1),
	}, task)

	back := task.Fields()
	assert.Equal(t, "2025-06-01", back.Deadline)
	assert.Equal(t, fields.Name, back.Name)

	fields.Deadline = "next friday"
	_, err = fields.Task(0)
	assert.ErrorIs(t, err, ErrInvalidDeadline)
}

func TestTaskString(t *testing.T) {
	task := Task{Name: "Write report", Category: "Work", Deadline: NewDate(2025, time.June, 1)}
	assert.Equal(t, "Write report (Work) - Due: 2025-06-01", task.String())
}

func TestDateTextRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2030-01-15")))

	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2030-01-15", string(b))
	assert.True(t, NewDate(2030, time.January, 14).Before(d))
}
