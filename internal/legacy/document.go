package legacy

import (
	"bytes"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/edispec/model"
)

// Document is the directly nested legacy description of a transaction set.
// Field names match case-insensitively and scalar fields accept numbers, so
// unquoted YAML such as "TransactionSetId: 810" reads as text.
type Document struct {
	TransactionSetID Text       `json:"transactionSetId"`
	Name             Text       `json:"name"`
	Version          Text       `json:"version"`
	Loops            []LoopNode `json:"loops"`
}

type LoopNode struct {
	ID       Text          `json:"id"`
	Name     Text          `json:"name"`
	Req      Text          `json:"req"`
	Max      Occurs        `json:"max"`
	Segments []SegmentNode `json:"segments"`
	Loops    []LoopNode    `json:"loops"`
}

type SegmentNode struct {
	ID       Text          `json:"id"`
	Name     Text          `json:"name"`
	Req      Text          `json:"req"`
	Max      Occurs        `json:"max"`
	Elements []ElementNode `json:"elements"`
}

type ElementNode struct {
	ID        Text       `json:"id"`
	Name      Text       `json:"name"`
	DataType  Text       `json:"dataType"`
	MinLength Length     `json:"minLength"`
	MaxLength Length     `json:"maxLength"`
	Req       Text       `json:"req"`
	Codes     []CodeNode `json:"codes"`
}

type CodeNode struct {
	Code        Text `json:"code"`
	Description Text `json:"description"`
}

// Occurs is a maximum occurrence written as a number or a string. Zero means
// the source did not state one.
type Occurs int

// UnmarshalJSON accepts 5, "5", ">1", "unbounded", "*" and "n".
func (o *Occurs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*o = 0
		return nil
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "0":
		*o = 0
		return nil
	case ">1", "unbounded", "*", "n":
		*o = model.Unbounded
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Anything unreadable counts as unstated.
		*o = 0
		return nil
	}
	if f >= model.Unbounded {
		*o = model.Unbounded
		return nil
	}
	*o = Occurs(f)
	return nil
}

// Length is an element length written as a number or a numeric string.
type Length int

func (l *Length) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		*l = 0
		return nil
	}
	*l = Length(f)
	return nil
}

// Text is a scalar written as a string, number or bool; it keeps the literal
// text. Objects, arrays and null read as empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '{' || b[0] == '[' || bytes.Equal(b, []byte("null")):
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}
