package hl7

import "strings"

// Segment is one decoded line of an HL7 message: the segment name plus its
// field texts, split on the message's field separator. Field 0 is the
// segment name itself, matching the raw split result; callers never address
// index 0 through Field.
type Segment struct {
	Name   string
	isMSH  bool
	fields []string
	delim  Delimiters
}

// Field returns the trimmed text of the nth (1-based) field, or ("", false)
// if the segment does not carry that many fields. An empty field and an
// absent field are intentionally indistinguishable to every caller above
// this layer.
func (s Segment) Field(n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	if s.isMSH {
		if n == 1 {
			return string(s.delim.Field), true
		}
		idx := n - 1
		if idx >= len(s.fields) {
			return "", false
		}
		v := strings.TrimSpace(s.fields[idx])
		if v == "" {
			return "", false
		}
		return v, true
	}
	if n >= len(s.fields) {
		return "", false
	}
	v := strings.TrimSpace(s.fields[n])
	if v == "" {
		return "", false
	}
	return v, true
}

// Message is the result of decomposing one HL7 v2 text payload into
// segments. It exposes segment/field/component/subcomponent/repetition
// lookups and performs no code-table interpretation of its own.
type Message struct {
	delim    Delimiters
	segments []Segment
}

// Parse decomposes raw HL7 text into a Message. It accepts segment
// terminators `\r`, `\n` and `\r\n` interchangeably and extracts the
// message's own delimiter set from MSH.1/MSH.2.
func Parse(text string) (*Message, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\r")
	normalized = strings.ReplaceAll(normalized, "\n", "\r")
	lines := strings.Split(normalized, "\r")

	var raw []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		raw = append(raw, l)
	}
	if len(raw) == 0 {
		return nil, &ParseError{Reason: "empty message"}
	}
	if !strings.HasPrefix(raw[0], "MSH") {
		return nil, &ParseError{Reason: "message does not begin with MSH"}
	}
	if len(raw[0]) < 8 {
		return nil, &ParseError{Reason: "MSH segment too short to declare delimiters"}
	}

	delim := Delimiters{
		Field:        raw[0][3],
		Component:    raw[0][4],
		Repetition:   raw[0][5],
		Escape:       raw[0][6],
		SubComponent: raw[0][7],
	}
	if delim.Component == 0 || delim.Repetition == 0 || delim.SubComponent == 0 {
		delim = standardDelimiters
	}

	msg := &Message{delim: delim}
	for _, line := range raw {
		name := line
		if len(name) > 3 {
			name = line[:3]
		}
		isMSH := name == "MSH"
		var fields []string
		if isMSH {
			// MSH-1 (the field separator) is not a split token; splitting
			// the remainder keeps MSH-2 (encoding characters) at index 1.
			rest := ""
			if len(line) > 4 {
				rest = line[4:]
			}
			fields = append([]string{"MSH"}, strings.Split(rest, string(delim.Field))...)
		} else {
			fields = strings.Split(line, string(delim.Field))
		}
		msg.segments = append(msg.segments, Segment{Name: name, isMSH: isMSH, fields: fields, delim: delim})
	}
	return msg, nil
}

// Delimiters returns the delimiter set declared by this message's MSH
// segment.
func (m *Message) Delimiters() Delimiters {
	return m.delim
}

// Segment returns the nth (0-based) occurrence of a named segment.
func (m *Message) Segment(name string, index int) (Segment, bool) {
	n := 0
	for _, s := range m.segments {
		if s.Name != name {
			continue
		}
		if n == index {
			return s, true
		}
		n++
	}
	return Segment{}, false
}

// FirstSegment returns the first occurrence of a named segment.
func (m *Message) FirstSegment(name string) (Segment, bool) {
	return m.Segment(name, 0)
}

// HasSegment reports whether at least one occurrence of a named segment is
// present.
func (m *Message) HasSegment(name string) bool {
	_, ok := m.FirstSegment(name)
	return ok
}

// Field looks up a field by segment name (first occurrence) and 1-based
// field number in a single call.
func (m *Message) Field(segment string, field int) (string, bool) {
	s, ok := m.FirstSegment(segment)
	if !ok {
		return "", false
	}
	return s.Field(field)
}

// RequireSegment returns the first occurrence of a named segment, or an
// AccessError if it is absent.
func (m *Message) RequireSegment(name string) (Segment, error) {
	s, ok := m.FirstSegment(name)
	if !ok {
		return Segment{}, missingSegment(name)
	}
	return s, nil
}

// RequireField looks up a field and returns an AccessError if either the
// segment or the field is absent.
func (m *Message) RequireField(segment string, field int) (string, error) {
	s, err := m.RequireSegment(segment)
	if err != nil {
		return "", err
	}
	v, ok := s.Field(field)
	if !ok {
		return "", missingField(segment, field)
	}
	return v, nil
}

// Repeat splits field text on the repetition separator and returns the
// idx-th (0-based) repetition, trimmed. Absent repetitions yield ("", false).
func (m *Message) Repeat(fieldText string, idx int) (string, bool) {
	if fieldText == "" || idx < 0 {
		return "", false
	}
	reps := strings.Split(fieldText, string(m.delim.Repetition))
	if idx >= len(reps) {
		return "", false
	}
	v := strings.TrimSpace(reps[idx])
	if v == "" {
		return "", false
	}
	return v, true
}

// Component splits field text on the component separator and returns the
// idx-th (1-based) component, trimmed. This operates on a single
// repetition's text; callers that must handle repeating fields call Repeat
// first.
func (m *Message) Component(fieldText string, idx int) (string, bool) {
	if fieldText == "" || idx < 1 {
		return "", false
	}
	comps := strings.Split(fieldText, string(m.delim.Component))
	if idx > len(comps) {
		return "", false
	}
	v := strings.TrimSpace(comps[idx-1])
	if v == "" {
		return "", false
	}
	return v, true
}

// SubComponents splits the idx-th (1-based) component of field text on the
// subcomponent separator. Components with no subcomponent separator yield a
// single-element slice equal to the component text.
func (m *Message) SubComponents(fieldText string, idx int) ([]string, bool) {
	comp, ok := m.Component(fieldText, idx)
	if !ok {
		return nil, false
	}
	subs := strings.Split(comp, string(m.delim.SubComponent))
	for i, s := range subs {
		subs[i] = strings.TrimSpace(s)
	}
	return subs, true
}

// At resolves a full Location against the message in one call, applying
// field/repetition/component/subcomponent narrowing only to the levels the
// Location specifies. It is a convenience built on Segment/Field/Repeat/
// Component/SubComponents for mapper code that addresses many HL7 paths.
func (m *Message) At(loc Location) (string, bool) {
	s, ok := m.Segment(loc.Segment, loc.SegmentIndex)
	if !ok {
		return "", false
	}
	if loc.Field == 0 {
		return "", false
	}
	text, ok := s.Field(loc.Field)
	if !ok {
		return "", false
	}
	if loc.Repetition > 0 {
		text, ok = m.Repeat(text, loc.Repetition)
		if !ok {
			return "", false
		}
	}
	if loc.Component == 0 {
		return text, true
	}
	if loc.SubComponent == 0 {
		return m.Component(text, loc.Component)
	}
	subs, ok := m.SubComponents(text, loc.Component)
	if !ok || loc.SubComponent > len(subs) {
		return "", false
	}
	v := subs[loc.SubComponent-1]
	if v == "" {
		return "", false
	}
	return v, true
}
