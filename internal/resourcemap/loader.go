// Package resourcemap loads the two bundled JSON fixtures that back the
// Department coded-value table: department-key → display metadata, and
// cost-center → location metadata. Both are read once, eagerly, at startup
// before the engine is constructed, and never mutated afterward — the map
// is shared immutably across every message the engine processes.
package resourcemap

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

const departmentSystem = "http://fhir.de/CodeSystem/dkgev/Fachabteilungsschluessel-erweitert"

// icuFlag decodes the source fixtures' string-encoded boolean: "1" is
// true, "" and "0" are false, anything else is a fixture defect.
type icuFlag bool

func (f *icuFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "1":
		*f = true
	case "", "0":
		*f = false
	default:
		return fmt.Errorf("invalid istIntensivStation value %q", s)
	}
	return nil
}

// DepartmentInfo is one row of either fixture: a description, the
// department abbreviation (the lookup key for InfoByAbteilungskuerzel),
// the department display name, the department code (distinct from the
// lookup key), and the ICU flag.
type DepartmentInfo struct {
	Desc                     string  `json:"desc"`
	FachabteilungsKuerzel    string  `json:"fachabteilungsKuerzel"`
	AbteilungsBezeichnung    string  `json:"abteilungsBezeichnung"`
	FachabteilungsSchluessel string  `json:"fachabteilungsSchluessel"`
	IstIntensivStation       icuFlag `json:"istIntensivStation"`
}

// ResourceMap is the immutable, eagerly-loaded lookup surface over the two
// bundled fixtures.
type ResourceMap struct {
	byAbteilungskuerzel map[string]DepartmentInfo
	byKostenstelle      map[string]DepartmentInfo
}

// Load reads both fixtures from disk. Absence or malformed JSON in either
// file is a startup fault (the caller should fail to construct the engine
// rather than run with a partial map).
func Load(abteilungskuerzelPath, kostenstellePath string) (*ResourceMap, error) {
	byKuerzel, err := loadFixture(abteilungskuerzelPath)
	if err != nil {
		return nil, fmt.Errorf("loading InfoByAbteilungskuerzel fixture: %w", err)
	}
	byKostenstelle, err := loadFixture(kostenstellePath)
	if err != nil {
		return nil, fmt.Errorf("loading InfoByKostenstelle fixture: %w", err)
	}
	return &ResourceMap{byAbteilungskuerzel: byKuerzel, byKostenstelle: byKostenstelle}, nil
}

func loadFixture(path string) (map[string]DepartmentInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows map[string]DepartmentInfo
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Department looks up a department by its Abteilungskürzel and returns the
// Fachabteilungsschlüssel-erweitert Coding the Encounter Mapper attaches as
// serviceType. An unknown key is a mapping
// fault: the department code came from PV1.3 and the fixture is expected
// to be the authoritative superset of valid codes.
func (m *ResourceMap) Department(key string) (fhir.Coding, error) {
	row, ok := m.byAbteilungskuerzel[key]
	if !ok {
		return fhir.Coding{}, faults.NewMessageContentUnexpected("PV1.3", "a known department key", key)
	}
	return fhir.Coding{
		System:  departmentSystem,
		Code:    row.FachabteilungsSchluessel,
		Display: row.AbteilungsBezeichnung,
	}, nil
}

// CostCenter looks up location metadata by cost-center key. No current
// mapper consumes the ICU flag this exposes; it is surfaced for future
// callers rather than dropped, since the fixture schema carries it.
func (m *ResourceMap) CostCenter(key string) (DepartmentInfo, bool) {
	row, ok := m.byKostenstelle[key]
	return row, ok
}
