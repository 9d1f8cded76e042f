// Package model defines the canonical X12 transaction-set document: a tree of
// loops, segments and elements rooted at a Specification.
//
// Base fields (BaseUsage, BaseMinUse, BaseMaxUse, BaseCodes) are captured once
// at import time and record the values of the source specification, so that
// later edits can be compared against them.
package model

import "time"

// Unbounded stands in for "no declared maximum" on MaxUse. It is a display
// convention, not a real ceiling.
const Unbounded = 99999

// DefaultEDIVersion is used when a source does not declare one.
const DefaultEDIVersion = "005010"

// Specification is the root document.
type Specification struct {
	ID       string    `json:"id" yaml:"id"`
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Loops    []*Loop   `json:"loops" yaml:"loops"`
	Examples []Example `json:"examples" yaml:"examples"`
}

// Metadata describes a Specification.
type Metadata struct {
	Name               string    `json:"name" yaml:"name"`
	Description        string    `json:"description,omitempty" yaml:"description,omitempty"`
	Version            string    `json:"version" yaml:"version"`
	TransactionSet     string    `json:"transactionSet" yaml:"transactionSet"`
	TransactionSetName string    `json:"transactionSetName" yaml:"transactionSetName"`
	EDIVersion         string    `json:"ediVersion" yaml:"ediVersion"`
	CreatedDate        time.Time `json:"createdDate" yaml:"createdDate"`
	ModifiedDate       time.Time `json:"modifiedDate" yaml:"modifiedDate"`
	BaseSpec           string    `json:"baseSpec,omitempty" yaml:"baseSpec,omitempty"`
}

// Loop is a repeatable group of segments and nested loops.
type Loop struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Usage       Usage      `json:"usage" yaml:"usage"`
	MinUse      int        `json:"minUse" yaml:"minUse"`
	MaxUse      int        `json:"maxUse" yaml:"maxUse"`
	Segments    []*Segment `json:"segments" yaml:"segments"`
	Loops       []*Loop    `json:"loops" yaml:"loops"`

	// Order positions the loop among its siblings (segments and loops alike)
	// when the source declares them interleaved.
	Order      *int      `json:"order,omitempty" yaml:"order,omitempty"`
	Comments   string    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Condition  string    `json:"condition,omitempty" yaml:"condition,omitempty"`
	Variants   []Variant `json:"variants,omitempty" yaml:"variants,omitempty"`
	BaseUsage  Usage     `json:"baseUsage" yaml:"baseUsage"`
	BaseMinUse int       `json:"baseMinUse" yaml:"baseMinUse"`
	BaseMaxUse int       `json:"baseMaxUse" yaml:"baseMaxUse"`
}

// Segment is a fixed-shape record of elements.
type Segment struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Usage       Usage      `json:"usage" yaml:"usage"`
	MinUse      int        `json:"minUse" yaml:"minUse"`
	MaxUse      int        `json:"maxUse" yaml:"maxUse"`
	Order       *int       `json:"order,omitempty" yaml:"order,omitempty"`
	Elements    []*Element `json:"elements" yaml:"elements"`
	Comments    string     `json:"comments,omitempty" yaml:"comments,omitempty"`
	Condition   string     `json:"condition,omitempty" yaml:"condition,omitempty"`
	Example     string     `json:"example,omitempty" yaml:"example,omitempty"`
	Variants    []Variant  `json:"variants,omitempty" yaml:"variants,omitempty"`
	BaseUsage   Usage      `json:"baseUsage" yaml:"baseUsage"`
	BaseMinUse  int        `json:"baseMinUse" yaml:"baseMinUse"`
	BaseMaxUse  int        `json:"baseMaxUse" yaml:"baseMaxUse"`
}

// Element is an atomic field of a segment.
type Element struct {
	ID         string      `json:"id" yaml:"id"`
	Position   int         `json:"position" yaml:"position"`
	Name       string      `json:"name" yaml:"name"`
	DataType   DataType    `json:"dataType" yaml:"dataType"`
	MinLength  int         `json:"minLength" yaml:"minLength"`
	MaxLength  int         `json:"maxLength" yaml:"maxLength"`
	Usage      Usage       `json:"usage" yaml:"usage"`
	CodeValues []CodeValue `json:"codeValues,omitempty" yaml:"codeValues,omitempty"`
	Example    string      `json:"example,omitempty" yaml:"example,omitempty"`
	Comments   string      `json:"comments,omitempty" yaml:"comments,omitempty"`
	Condition  string      `json:"condition,omitempty" yaml:"condition,omitempty"`
	BaseUsage  Usage       `json:"baseUsage" yaml:"baseUsage"`
	BaseCodes  []CodeValue `json:"baseCodes,omitempty" yaml:"baseCodes,omitempty"`
}

// CodeValue is one permitted value of an element.
type CodeValue struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Included    bool   `json:"included" yaml:"included"`
	// Overridden marks a description changed by the user.
	Overridden bool `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// Variant is an alternative usage of a loop, segment or element under a condition.
type Variant struct {
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label" yaml:"label"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Comments  string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Example is a sample EDI document embedded in a Specification.
type Example struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// SnapshotBase records the current usage and cardinality as base values.
func (l *Loop) SnapshotBase() {
	l.BaseUsage = l.Usage
	l.BaseMinUse = l.MinUse
	l.BaseMaxUse = l.MaxUse
}

// SnapshotBase records the current usage and cardinality as base values.
func (s *Segment) SnapshotBase() {
	s.BaseUsage = s.Usage
	s.BaseMinUse = s.MinUse
	s.BaseMaxUse = s.MaxUse
}

// SnapshotBase records the current usage and a copy of the code list as base
// values. BaseCodes stays nil when there are no codes.
func (e *Element) SnapshotBase() {
	e.BaseUsage = e.Usage
	e.BaseCodes = nil
	if len(e.CodeValues) > 0 {
		e.BaseCodes = append([]CodeValue(nil), e.CodeValues...)
	}
}

// IsUnbounded reports whether the loop has no effective maximum.
func (l *Loop) IsUnbounded() bool { return l.MaxUse >= Unbounded }

// IsUnbounded reports whether the segment has no effective maximum.
func (s *Segment) IsUnbounded() bool { return s.MaxUse >= Unbounded }
