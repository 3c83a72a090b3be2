package datetime_test

import (
	"errors"
	"taskPlanner/internal/datetime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "success - start of day",
			input:    "01-04-2020 00:00:00",
			expected: time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "success - end of day",
			input:    "01-04-2020 23:59:59",
			expected: time.Date(2020, time.April, 1, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "success - leap day",
			input:    "29-02-2024 12:30:45",
			expected: time.Date(2024, time.February, 29, 12, 30, 45, 0, time.UTC),
		},
		{name: "error - wrong field order", input: "2020-04-01 00:00:00", expectError: true},
		{name: "error - missing time", input: "01-04-2020", expectError: true},
		{name: "error - not padded day", input: "1-04-2020 00:00:00", expectError: true},
		{name: "error - not padded hour", input: "01-04-2020 0:00:00", expectError: true},
		{name: "error - impossible day", input: "31-02-2020 00:00:00", expectError: true},
		{name: "error - impossible month", input: "01-13-2020 00:00:00", expectError: true},
		{name: "error - hour out of range", input: "01-04-2020 24:00:00", expectError: true},
		{name: "error - slash separators", input: "01/04/2020 00:00:00", expectError: true},
		{name: "error - trailing text", input: "01-04-2020 00:00:00Z", expectError: true},
		{name: "error - empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datetime.Parse(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, datetime.ErrInvalidFormat))

				var formatErr *datetime.FormatError
				require.True(t, errors.As(err, &formatErr))
				assert.Equal(t, datetime.Pattern, formatErr.Expected)
				assert.Contains(t, err.Error(), datetime.Pattern)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []time.Time{
		time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2038, time.January, 19, 3, 14, 7, 0, time.UTC),
		datetime.Naive(time.Now()),
	}

	for _, v := range values {
		text := datetime.Format(v)
		got, err := datetime.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, v, got)
	}
}

func TestFormat(t *testing.T) {
	v := time.Date(2020, time.April, 1, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "01-04-2020 09:05:03", datetime.Format(v))
}

func TestNaive(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	v := time.Date(2020, time.April, 1, 10, 0, 0, 123456789, zone)

	got := datetime.Naive(v)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, "01-04-2020 10:00:00", datetime.Format(got))
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2020, time.April, 1, 15, 42, 10, 0, time.UTC)

	start, end := datetime.DayBounds(now)

	assert.Equal(t, "01-04-2020 00:00:00", datetime.Format(start))
	assert.Equal(t, "01-04-2020 23:59:59", datetime.Format(end))
}
