// Package datetime normalizes HL7 v2 timestamps into FHIR date/dateTime
// strings. The Europe/Berlin policy is centralized here, in one
// time.LoadLocation call, per the "Timezone centralization" design note —
// every caller goes through ParseDate/ParseDateTime, never time.Parse
// directly.
package datetime

import (
	"time"

	"github.com/diz-unimr/adt2fhir/internal/faults"
)

// berlin is loaded once at package init; if the tzdata is unavailable the
// zero-value fallback would silently produce UTC offsets, so a missing
// Europe/Berlin is treated as a startup-time panic rather than a
// per-message fault.
var berlin = mustLoadBerlin()

func mustLoadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic("datetime: Europe/Berlin timezone data unavailable: " + err.Error())
	}
	return loc
}

const hl7DateLayout = "20060102"
const hl7DateTimeLayout = "200601021504"

// ParseDate converts an HL7 `YYYYMMDD` value into a FHIR `date` string
// (`YYYY-MM-DD`). Empty or malformed input is a FormattingError.
func ParseDate(field, raw string) (string, error) {
	if raw == "" {
		return "", faults.NewFormattingError(field, raw, "empty date")
	}
	t, err := time.Parse(hl7DateLayout, raw)
	if err != nil {
		return "", faults.NewFormattingError(field, raw, "not a YYYYMMDD date")
	}
	return t.Format("2006-01-02"), nil
}

// ParseDateTime converts an HL7 `YYYYMMDDHHmm` value, interpreted in
// Europe/Berlin local time, into a FHIR `dateTime` string with an explicit
// UTC offset (e.g. `2009-03-30T10:36:00+02:00`). A wall-clock time that
// occurs twice at the autumn DST transition resolves to the earlier of the
// two instants (the summer-time offset). A wall-clock time skipped at the
// spring transition is normalized forward by time.Date (02:30 becomes
// 03:30+02:00). Empty or malformed input is a FormattingError.
func ParseDateTime(field, raw string) (string, error) {
	if raw == "" {
		return "", faults.NewFormattingError(field, raw, "empty datetime")
	}
	parsedUTC, err := time.Parse(hl7DateTimeLayout, raw)
	if err != nil {
		return "", faults.NewFormattingError(field, raw, "not a YYYYMMDDHHmm datetime")
	}
	local := time.Date(
		parsedUTC.Year(), parsedUTC.Month(), parsedUTC.Day(),
		parsedUTC.Hour(), parsedUTC.Minute(), parsedUTC.Second(), 0,
		berlin,
	)
	// time.Date picks the later instant for a repeated wall-clock time;
	// step back one hour when that names the same wall-clock time.
	if earlier := local.Add(-time.Hour); earlier.Hour() == local.Hour() && earlier.Minute() == local.Minute() {
		local = earlier
	}
	return local.Format("2006-01-02T15:04:05Z07:00"), nil
}

// ParseInstant parses a FHIR dateTime string produced by ParseDateTime back
// into a time.Time, for status-derivation comparisons against "now".
func ParseInstant(value string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05Z07:00", value)
}

// Now returns the current instant in Europe/Berlin, the reference point for
// Encounter status derivation.
func Now() time.Time {
	return time.Now().In(berlin)
}
