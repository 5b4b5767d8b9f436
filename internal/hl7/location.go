package hl7

// Location addresses a position within a parsed Message: a segment name with
// an optional repeat index, a 1-based field number, an optional repetition
// index, a 1-based component number and a 1-based subcomponent number.
//
// Zero value for Field/Component/SubComponent means "not specified"; callers
// build a Location with only as many levels as they need by using the
// segment-level, field-level, component-level or subcomponent-level helper
// constructors rather than populating every field by hand.
type Location struct {
	Segment      string
	SegmentIndex int // 0-based; which occurrence of a repeated segment
	Field        int // 1-based; 0 means unspecified
	Repetition   int // 0-based; which repeat of the field
	Component    int // 1-based; 0 means unspecified
	SubComponent int // 1-based; 0 means unspecified
}

// SegmentLoc addresses the nth (0-based) occurrence of a segment.
func SegmentLoc(name string, index int) Location {
	return Location{Segment: name, SegmentIndex: index}
}

// FieldLoc addresses a field within the first occurrence of a segment.
func FieldLoc(segment string, field int) Location {
	return Location{Segment: segment, Field: field}
}

// FieldRepLoc addresses a specific repetition of a field.
func FieldRepLoc(segment string, field, repetition int) Location {
	return Location{Segment: segment, Field: field, Repetition: repetition}
}

// ComponentLoc addresses a component within a field.
func ComponentLoc(segment string, field, component int) Location {
	return Location{Segment: segment, Field: field, Component: component}
}

// SubComponentLoc addresses a subcomponent within a component.
func SubComponentLoc(segment string, field, component, subComponent int) Location {
	return Location{Segment: segment, Field: field, Component: component, SubComponent: subComponent}
}
