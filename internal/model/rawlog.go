package model

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

// ErrKeyAccess is returned when a record lacks the field being read.
var ErrKeyAccess = errors.New("record key access")

// LogRecord is one element of a query response's logs array, kept as raw
// JSON. Fields are read on demand; nothing is validated up front.
type LogRecord struct {
	raw []byte
}

// NewLogRecord wraps raw JSON. The slice is not copied.
func NewLogRecord(raw []byte) LogRecord {
	return LogRecord{raw: raw}
}

// UnmarshalJSON keeps a copy of the record's raw bytes.
func (r *LogRecord) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[:0], data...)
	return nil
}

// MarshalJSON returns the record unchanged.
func (r LogRecord) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// Raw returns the record's JSON.
func (r LogRecord) Raw() []byte {
	return r.raw
}

// Message returns content.message.
func (r LogRecord) Message() (string, error) {
	v, err := fastjson.ParseBytes(r.raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyAccess, err)
	}
	msg := v.Get("content", "message")
	if msg == nil {
		return "", fmt.Errorf("%w: content.message missing", ErrKeyAccess)
	}
	b, err := msg.StringBytes()
	if err != nil {
		return "", fmt.Errorf("%w: content.message: %v", ErrKeyAccess, err)
	}
	return string(b), nil
}

// Row holds the tokens extracted from one record, in order of appearance.
type Row []string
