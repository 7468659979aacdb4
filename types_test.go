package indexkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{name: "string", value: "hello", want: KindString},
		{name: "bool", value: true, want: KindBool},
		{name: "int", value: 42, want: KindInt},
		{name: "int8", value: int8(1), want: KindInt},
		{name: "int64", value: int64(1), want: KindInt},
		{name: "uint32", value: uint32(1), want: KindInt},
		{name: "float32", value: float32(1.5), want: KindFloat},
		{name: "float64", value: 1.5, want: KindFloat},
		{name: "date", value: Date{Year: 2024, Month: time.May, Day: 1}, want: KindDate},
		{name: "datetime", value: time.Now(), want: KindDateTime},
		{name: "nil", value: nil, want: KindUnknown},
		{name: "struct", value: struct{}{}, want: KindUnknown},
		{name: "slice", value: []int{1, 2}, want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestDate_UTC(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}

	got := d.UTC()
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDateOf(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	// DateOf keeps the calendar day of the value's own location.
	d := DateOf(time.Date(2024, 12, 31, 23, 30, 0, 0, est))
	assert.Equal(t, Date{Year: 2024, Month: time.December, Day: 31}, d)
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2024-03-05", Date{Year: 2024, Month: time.March, Day: 5}.String())
}
