package indexkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Handler converts native values of one field type to and from the string
// form stored in the search index, and derives the physical field name for
// that type's storage slot. Handlers are stateless singletons, safe for
// concurrent use.
type Handler interface {
	// FieldType reports which built-in type this handler implements.
	FieldType() FieldType

	// IndexedName returns base suffixed with this type's tag. The suffix is
	// stable for the life of a released handler: deployed index schemas
	// depend on it never changing.
	IndexedName(base string) string

	// ToIndexed encodes a native value into its wire string. The second
	// return is false when the value encodes to nothing: absent (nil) input,
	// or input the handler cannot represent. Encoding never fails.
	ToIndexed(value any) (string, bool)

	// Cast decodes a wire string produced by this handler's ToIndexed back
	// into the native value. Inputs are trusted round-trips, not arbitrary
	// user strings; behavior on malformed input is type-specific.
	Cast(s string) (any, error)
}

// Built-in handlers.
var (
	Text    Handler = textHandler{}
	String  Handler = stringHandler{}
	Integer Handler = integerHandler{}
	Float   Handler = floatHandler{}
	Time    Handler = timeHandler{}
	Boolean Handler = booleanHandler{}
)

// HandlerFor returns the handler for an explicitly declared field type. The
// set of field types is closed; unknown types are a schema error.
func HandlerFor(ft FieldType) (Handler, error) {
	switch ft {
	case FieldTypeText:
		return Text, nil
	case FieldTypeString:
		return String, nil
	case FieldTypeInteger:
		return Integer, nil
	case FieldTypeFloat:
		return Float, nil
	case FieldTypeTime:
		return Time, nil
	case FieldTypeBoolean:
		return Boolean, nil
	default:
		return nil, NewSchemaError(ErrCodeUnknownFieldType, fmt.Sprintf("unknown field type %q", ft))
	}
}

const (
	suffixText    = "_text"
	suffixString  = "_s"
	suffixInteger = "_i"
	suffixFloat   = "_f"
	suffixTime    = "_d"
	suffixBoolean = "_b"
)

// SplitIndexedName splits a physical field name into its base name and the
// field type implied by the suffix. It reports false for names that carry no
// recognized type suffix.
func SplitIndexedName(physical string) (string, FieldType, bool) {
	for _, s := range []struct {
		suffix string
		ft     FieldType
	}{
		{suffixText, FieldTypeText},
		{suffixString, FieldTypeString},
		{suffixInteger, FieldTypeInteger},
		{suffixFloat, FieldTypeFloat},
		{suffixTime, FieldTypeTime},
		{suffixBoolean, FieldTypeBoolean},
	} {
		if base, ok := strings.CutSuffix(physical, s.suffix); ok && base != "" {
			return base, s.ft, true
		}
	}
	return "", "", false
}

// stringify returns the textual form of a value for string-like encodings.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// textHandler is the full-text variant. It shares String's encoding but owns
// a distinct storage slot so the index can tokenize it. It registers no
// native kinds: fields must be declared as text explicitly.
type textHandler struct{}

func (textHandler) FieldType() FieldType { return FieldTypeText }

func (textHandler) IndexedName(base string) string { return base + suffixText }

func (textHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	return stringify(value), true
}

// Cast always fails: full-text fields are tokenized downstream and never
// read back.
func (textHandler) Cast(string) (any, error) {
	return nil, &Error{Type: ErrorTypeDecode, Code: ErrCodeWriteOnlyField, Message: "full-text fields are write-only"}
}

// stringHandler is the default handler: every value that resolves to no other
// handler is stored as a plain string.
type stringHandler struct{}

func (stringHandler) FieldType() FieldType { return FieldTypeString }

func (stringHandler) IndexedName(base string) string { return base + suffixString }

func (stringHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	return stringify(value), true
}

func (stringHandler) Cast(s string) (any, error) {
	return s, nil
}

type integerHandler struct{}

func (integerHandler) FieldType() FieldType { return FieldTypeInteger }

func (integerHandler) IndexedName(base string) string { return base + suffixInteger }

// ToIndexed encodes integer input directly; float and numeric string input
// truncates toward zero. Anything else encodes to absent.
func (integerHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatInt(int64(v), 10), true
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(int64(f), 10), true
	default:
		return "", false
	}
}

// Cast parses the wire string as a base-10 integer. Malformed input is a
// decode error, never a silent zero.
func (integerHandler) Cast(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, NewDecodeError(ErrCodeMalformedInteger, fmt.Sprintf("parse integer %q", s), err)
	}
	return n, nil
}

type floatHandler struct{}

func (floatHandler) FieldType() FieldType { return FieldTypeFloat }

func (floatHandler) IndexedName(base string) string { return base + suffixFloat }

func (floatHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case int:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case int8:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case int16:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case int32:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case int64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case uint:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case uint8:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case uint16:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case uint32:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case uint64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(f, 'g', -1, 64), true
	default:
		return "", false
	}
}

// Cast parses the wire string as a float. Malformed input is a decode error,
// matching the Integer handler's contract.
func (floatHandler) Cast(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, NewDecodeError(ErrCodeMalformedFloat, fmt.Sprintf("parse float %q", s), err)
	}
	return f, nil
}

// timeHandler stores timestamps in RFC 3339 / XML-schema form, always
// normalized to UTC.
type timeHandler struct{}

func (timeHandler) FieldType() FieldType { return FieldTypeTime }

func (timeHandler) IndexedName(base string) string { return base + suffixTime }

// ToIndexed accepts a closed set of input shapes: a time.Time (converted to
// UTC in place), a Date (encoded as UTC midnight of that calendar day), or a
// string (parsed as RFC 3339, then normalized). Anything else encodes to
// absent.
func (timeHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339), true
	case Date:
		return v.UTC().Format(time.RFC3339), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", false
		}
		return t.UTC().Format(time.RFC3339), true
	default:
		return "", false
	}
}

// Cast parses an RFC 3339 string into a time.Time. Unlike the numeric
// handlers' trusted round-trip, a garbage timestamp must surface to the
// caller.
func (timeHandler) Cast(s string) (any, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, NewDecodeError(ErrCodeMalformedTime, fmt.Sprintf("parse timestamp %q", s), err)
	}
	return t, nil
}

type booleanHandler struct{}

func (booleanHandler) FieldType() FieldType { return FieldTypeBoolean }

func (booleanHandler) IndexedName(base string) string { return base + suffixBoolean }

// ToIndexed encodes only non-absent booleans: an explicit false becomes
// "false", which keeps it distinguishable from an unset value.
func (booleanHandler) ToIndexed(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if v, ok := value.(bool); ok {
		return strconv.FormatBool(v), true
	}
	return "", false
}

// Cast maps unknown literals to absent rather than guessing a polarity.
func (booleanHandler) Cast(s string) (any, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, nil
	}
}
