package indexkit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// IndexedName Tests
// =============================================================================

func TestHandler_IndexedName(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		base    string
		want    string
	}{
		{name: "text suffix", handler: Text, base: "rating", want: "rating_text"},
		{name: "string suffix", handler: String, base: "title", want: "title_s"},
		{name: "integer suffix", handler: Integer, base: "price", want: "price_i"},
		{name: "float suffix", handler: Float, base: "rating", want: "rating_f"},
		{name: "time suffix", handler: Time, base: "published_at", want: "published_at_d"},
		{name: "boolean suffix", handler: Boolean, base: "in_stock", want: "in_stock_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.handler.IndexedName(tt.base))
			// Deterministic: repeated calls never drift.
			assert.Equal(t, tt.want, tt.handler.IndexedName(tt.base))
		})
	}
}

func TestHandler_IndexedName_DistinctPerType(t *testing.T) {
	seen := make(map[string]FieldType)
	for _, h := range []Handler{Text, String, Integer, Float, Time, Boolean} {
		name := h.IndexedName("price")
		previous, dup := seen[name]
		assert.False(t, dup, "suffix collision between %s and %s", previous, h.FieldType())
		seen[name] = h.FieldType()
	}
}

func TestSplitIndexedName(t *testing.T) {
	tests := []struct {
		name     string
		physical string
		wantBase string
		wantType FieldType
		wantOK   bool
	}{
		{name: "text", physical: "body_text", wantBase: "body", wantType: FieldTypeText, wantOK: true},
		{name: "string", physical: "title_s", wantBase: "title", wantType: FieldTypeString, wantOK: true},
		{name: "integer", physical: "price_i", wantBase: "price", wantType: FieldTypeInteger, wantOK: true},
		{name: "float", physical: "rating_f", wantBase: "rating", wantType: FieldTypeFloat, wantOK: true},
		{name: "time", physical: "published_at_d", wantBase: "published_at", wantType: FieldTypeTime, wantOK: true},
		{name: "boolean", physical: "in_stock_b", wantBase: "in_stock", wantType: FieldTypeBoolean, wantOK: true},
		{name: "no suffix", physical: "title", wantOK: false},
		{name: "bare suffix", physical: "_s", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ft, ok := SplitIndexedName(tt.physical)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBase, base)
				assert.Equal(t, tt.wantType, ft)
			}
		})
	}
}

// =============================================================================
// ToIndexed Tests
// =============================================================================

func TestHandler_ToIndexed(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name       string
		handler    Handler
		value      any
		want       string
		wantAbsent bool
	}{
		// String / Text
		{name: "string passthrough", handler: String, value: "hello", want: "hello"},
		{name: "string of int", handler: String, value: 7, want: "7"},
		{name: "string absent", handler: String, value: nil, wantAbsent: true},
		{name: "text passthrough", handler: Text, value: "full text body", want: "full text body"},
		{name: "text absent", handler: Text, value: nil, wantAbsent: true},

		// Integer
		{name: "integer", handler: Integer, value: 42, want: "42"},
		{name: "integer negative", handler: Integer, value: -17, want: "-17"},
		{name: "integer int64", handler: Integer, value: int64(1 << 40), want: "1099511627776"},
		{name: "integer truncates float toward zero", handler: Integer, value: 7.9, want: "7"},
		{name: "integer truncates negative float toward zero", handler: Integer, value: -7.9, want: "-7"},
		{name: "integer truncates numeric string", handler: Integer, value: "3.7", want: "3"},
		{name: "integer non-numeric string", handler: Integer, value: "abc", wantAbsent: true},
		{name: "integer absent", handler: Integer, value: nil, wantAbsent: true},

		// Float
		{name: "float", handler: Float, value: 3.14, want: "3.14"},
		{name: "float from int", handler: Float, value: 42, want: "42"},
		{name: "float from string", handler: Float, value: "2.5", want: "2.5"},
		{name: "float absent", handler: Float, value: nil, wantAbsent: true},

		// Time
		{
			name:    "datetime already UTC",
			handler: Time,
			value:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			want:    "2024-01-15T10:30:00Z",
		},
		{
			name:    "datetime normalized to UTC",
			handler: Time,
			value:   time.Date(2024, 1, 15, 5, 30, 0, 0, est),
			want:    "2024-01-15T10:30:00Z",
		},
		{
			name:    "calendar date encodes as UTC midnight",
			handler: Time,
			value:   Date{Year: 2024, Month: time.March, Day: 5},
			want:    "2024-03-05T00:00:00Z",
		},
		{
			name:    "timestamp string normalized",
			handler: Time,
			value:   "2024-01-15T05:30:00-05:00",
			want:    "2024-01-15T10:30:00Z",
		},
		{name: "unparseable timestamp string", handler: Time, value: "not a time", wantAbsent: true},
		{name: "time absent", handler: Time, value: nil, wantAbsent: true},

		// Boolean
		{name: "boolean true", handler: Boolean, value: true, want: "true"},
		{name: "boolean false is not absent", handler: Boolean, value: false, want: "false"},
		{name: "boolean absent", handler: Boolean, value: nil, wantAbsent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.handler.ToIndexed(tt.value)
			if tt.wantAbsent {
				assert.False(t, ok)
				assert.Empty(t, got)
			} else {
				require.True(t, ok)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// =============================================================================
// Cast Tests
// =============================================================================

func TestHandler_Cast(t *testing.T) {
	tests := []struct {
		name     string
		handler  Handler
		wire     string
		want     any
		wantCode string
	}{
		{name: "string identity", handler: String, wire: "hello", want: "hello"},
		{name: "integer", handler: Integer, wire: "42", want: int64(42)},
		{name: "integer negative", handler: Integer, wire: "-17", want: int64(-17)},
		{name: "integer malformed", handler: Integer, wire: "forty-two", wantCode: ErrCodeMalformedInteger},
		{name: "float", handler: Float, wire: "3.14", want: 3.14},
		{name: "float malformed", handler: Float, wire: "pi", wantCode: ErrCodeMalformedFloat},
		{
			name:    "timestamp",
			handler: Time,
			wire:    "2024-01-15T10:30:00Z",
			want:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{name: "timestamp malformed", handler: Time, wire: "2024-13-45", wantCode: ErrCodeMalformedTime},
		{name: "boolean true", handler: Boolean, wire: "true", want: true},
		{name: "boolean false", handler: Boolean, wire: "false", want: false},
		{name: "boolean unknown literal is absent", handler: Boolean, wire: "maybe", want: nil},
		{name: "text is write-only", handler: Text, wire: "anything", wantCode: ErrCodeWriteOnlyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.handler.Cast(tt.wire)
			if tt.wantCode != "" {
				require.Error(t, err)
				var kitErr *Error
				require.True(t, errors.As(err, &kitErr))
				assert.Equal(t, tt.wantCode, kitErr.Code)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
			} else if wantTime, ok := tt.want.(time.Time); ok {
				assert.True(t, wantTime.Equal(got.(time.Time)))
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// =============================================================================
// Round-trip Tests
// =============================================================================

func TestHandler_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		value   any
		want    any
	}{
		{name: "integer", handler: Integer, value: int64(42), want: int64(42)},
		{name: "integer negative", handler: Integer, value: int64(-9000), want: int64(-9000)},
		{name: "float", handler: Float, value: 3.14, want: 3.14},
		{name: "boolean true", handler: Boolean, value: true, want: true},
		{name: "boolean false", handler: Boolean, value: false, want: false},
		{
			name:    "time",
			handler: Time,
			value:   time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
			want:    time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, ok := tt.handler.ToIndexed(tt.value)
			require.True(t, ok)

			got, err := tt.handler.Cast(wire)
			require.NoError(t, err)
			if wantTime, isTime := tt.want.(time.Time); isTime {
				assert.True(t, wantTime.Equal(got.(time.Time)))
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHandlerFor(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeText, FieldTypeString, FieldTypeInteger, FieldTypeFloat, FieldTypeTime, FieldTypeBoolean} {
		handler, err := HandlerFor(ft)
		require.NoError(t, err)
		assert.Equal(t, ft, handler.FieldType())
	}

	_, err := HandlerFor(FieldType("geo"))
	require.Error(t, err)
	var kitErr *Error
	require.True(t, errors.As(err, &kitErr))
	assert.Equal(t, ErrCodeUnknownFieldType, kitErr.Code)
}
