// Package edispec imports X12 transaction-set descriptions and normalizes
// them into the canonical document model of package model.
//
// Two source formats are accepted, as JSON or YAML:
//
//   - the legacy format, a directly nested Loop -> Segment -> Element document
//     (optionally wrapped in an array whose first entry is used);
//   - OpenEDI schemas, OpenAPI documents whose components.schemas carry
//     x-openedi-message-id, x-openedi-loop-id and x-openedi-segment-id markers.
//
// Typical usage:
//
//	spec, diag, err := edispec.Import(data, edispec.Options{})
//	if errors.Is(err, edispec.ErrEmptySpecArray) { ... }
//	for _, w := range diag.Warnings() { ... }
//
// Imports are synchronous and share no state, so independent documents may
// be imported concurrently.
package edispec
