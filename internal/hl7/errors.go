// Package hl7 provides a generic, interpretation-free decomposition of an
// HL7 v2.x pipe-delimited message into segments, fields, repetitions,
// components and subcomponents.
package hl7

import "fmt"

// AccessError reports that a requested segment or field does not exist in
// the message. It corresponds to the outermost error kind in the mapping pipeline:
// the HL7 shape itself is wrong.
type AccessError struct {
	Segment string
	Index   int
	Reason  string
}

func (e *AccessError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("hl7 access error: %s", e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("hl7 access error: segment %s[%d]: %s", e.Segment, e.Index, e.Reason)
	}
	return fmt.Sprintf("hl7 access error: segment %s[%d] not found", e.Segment, e.Index)
}

func missingSegment(name string) error {
	return &AccessError{Segment: name, Reason: "segment not present"}
}

func missingField(segment string, idx int) error {
	return &AccessError{Segment: segment, Index: idx, Reason: fmt.Sprintf("field %d not present", idx)}
}

// ParseError reports that the raw text could not be decomposed into
// delimiter-separated segments at all (e.g. no MSH segment, MSH too short
// to carry its own delimiter definition).
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hl7 parse error: %s", e.Reason)
}
