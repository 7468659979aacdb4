package indexkit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldType identifies one of the built-in index field types.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeFloat   FieldType = "float"
	FieldTypeTime    FieldType = "time"
	FieldTypeBoolean FieldType = "boolean"
)

// Kind classifies the runtime type of an application value.
type Kind string

const (
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindUnknown  Kind = "unknown"
)

// KindOf classifies a value by its runtime type. This is a plain type check,
// not duck typing; values outside the recognized set are KindUnknown.
func KindOf(value any) Kind {
	switch value.(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case Date:
		return KindDate
	case time.Time:
		return KindDateTime
	default:
		return KindUnknown
	}
}

// Date is a calendar day with no time-of-day component. It is the explicit
// form for values that carry only year/month/day.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// UTC returns the instant at UTC midnight of the calendar day.
func (d Date) UTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DataRecord is the logical document handed to the indexing layer: a schema
// name, a row identity, and base field names mapped to native values.
type DataRecord struct {
	Schema string         `json:"schema"`
	DocID  uuid.UUID      `json:"docId"`
	Fields map[string]any `json:"fields"`
}

// IndexDocument is the physical form stored in the index: suffixed field
// names mapped to wire strings. Fields are multi-valued at this level.
type IndexDocument struct {
	ID     string              `json:"id"`
	Schema string              `json:"schema"`
	Fields map[string][]string `json:"fields"`
}
