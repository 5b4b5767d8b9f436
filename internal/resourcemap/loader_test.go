package resourcemap

import "testing"

func TestLoadAndDepartmentLookup(t *testing.T) {
	m, err := Load("../../resources/mapping/InfoByAbteilungskuerzel.json", "../../resources/mapping/InfoByKostenstelle.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, err := m.Department("CHI")
	if err != nil {
		t.Fatalf("Department(CHI): %v", err)
	}
	if c.Code != "1500" || c.Display != "Chirurgie" {
		t.Fatalf("Department(CHI) = %+v", c)
	}
}

func TestDepartmentUnknownKeyFaults(t *testing.T) {
	m, err := Load("../../resources/mapping/InfoByAbteilungskuerzel.json", "../../resources/mapping/InfoByKostenstelle.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := m.Department("NOPE"); err == nil {
		t.Fatal("expected fault for unknown department key")
	}
}

func TestLoadMissingFileIsStartupFault(t *testing.T) {
	if _, err := Load("does-not-exist.json", "also-missing.json"); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}

func TestICUFlagDecoding(t *testing.T) {
	m, err := Load("../../resources/mapping/InfoByAbteilungskuerzel.json", "../../resources/mapping/InfoByKostenstelle.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	row, ok := m.CostCenter("4720")
	if !ok {
		t.Fatal("expected cost center 4720 to be present")
	}
	if !bool(row.IstIntensivStation) {
		t.Fatalf("expected ICU flag true for 4720, got %+v", row)
	}
}
