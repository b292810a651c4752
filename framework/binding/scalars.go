package binding

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/itchyny/timefmt-go"
)

// Default strftime layouts of the date and time mappings.
const (
	DateLayout     = "%Y-%m-%d"
	DateTimeLayout = "%Y-%m-%dT%H:%M:%S"
	TimeLayout     = "%H:%M:%S"
)

var errNotBool = errors.New("not a boolean")

// parsed builds a Single field whose built-in check is "parses as T". Blank
// input converts to the zero value and passes the check.
func parsed[T any](key string, parse func(string) (T, error), args ...any) Mapping[T] {
	check := func(path string, data map[string]string, messages Messages, options Options) Errors {
		s := strings.TrimSpace(data[path])
		if s == "" {
			return nil
		}
		if _, err := parse(s); err != nil {
			label := LabelFor(path, messages, options)
			return Errors{{Path: path, Message: Message(messages, key, append([]any{label}, args...)...)}}
		}
		return nil
	}
	convert := func(path string, data map[string]string) (T, error) {
		s := strings.TrimSpace(data[path])
		if s == "" {
			var zero T
			return zero, nil
		}
		return parse(s)
	}
	return NewField[T](Single, convert, check)
}

// Text binds the raw string.
func Text() Mapping[string] {
	return NewField[string](Single, func(path string, data map[string]string) (string, error) {
		return data[path], nil
	}, nil)
}

// Bool accepts true/false, 1/0, yes/no and on/off in any case.
func Bool() Mapping[bool] {
	return parsed("error.boolean", parseBool)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, errNotBool
}

func Int() Mapping[int] {
	return parsed("error.number", strconv.Atoi)
}

func Int64() Mapping[int64] {
	return parsed("error.number", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func Float32() Mapping[float32] {
	return parsed("error.number", func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
}

func Float64() Mapping[float64] {
	return parsed("error.number", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// BigInt binds an arbitrary precision integer; blank input gives nil.
func BigInt() Mapping[*big.Int] {
	return parsed("error.number", func(s string) (*big.Int, error) {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return n, nil
	})
}

// UUID binds a UUID; blank input gives uuid.Nil.
func UUID() Mapping[uuid.UUID] {
	return parsed("error.uuid", uuid.Parse)
}

// Timestamp is a bound date or time. It keeps the layout it was parsed
// with, so String writes it back in the same form.
type Timestamp struct {
	time.Time
	layout string
}

// NewTimestamp returns t bound with the strftime layout.
func NewTimestamp(t time.Time, layout string) Timestamp {
	return Timestamp{Time: t, layout: layout}
}

// Layout returns the strftime layout, DateTimeLayout when none was set.
func (t Timestamp) Layout() string {
	if t.layout == "" {
		return DateTimeLayout
	}
	return t.layout
}

// String formats t with its layout.
func (t Timestamp) String() string { return timefmt.Format(t.Time, t.Layout()) }

// Date binds a calendar date, by default "%Y-%m-%d".
func Date(layout ...string) Mapping[Timestamp] {
	return timeField(DateLayout, layout)
}

// DateTime binds a timestamp, by default "%Y-%m-%dT%H:%M:%S".
func DateTime(layout ...string) Mapping[Timestamp] {
	return timeField(DateTimeLayout, layout)
}

// Time binds a time of day, by default "%H:%M:%S".
func Time(layout ...string) Mapping[Timestamp] {
	return timeField(TimeLayout, layout)
}

func timeField(def string, layout []string) Mapping[Timestamp] {
	format := def
	if len(layout) > 0 && layout[0] != "" {
		format = layout[0]
	}
	return parsed("error.date", func(s string) (Timestamp, error) {
		t, err := timefmt.Parse(s, format)
		if err != nil {
			return Timestamp{}, err
		}
		return NewTimestamp(t, format), nil
	}, format)
}

// Duration binds a Go duration string such as "1h30m".
func Duration() Mapping[time.Duration] {
	return parsed("error.duration", time.ParseDuration)
}
