package codes

import "testing"

func TestGenderIsTotal(t *testing.T) {
	cases := map[string]string{
		"F": "female",
		"M": "male",
		"U": "other",
		"":  "unknown",
		"X": "unknown",
	}
	for in, want := range cases {
		if got := Gender(in); got != want {
			t.Errorf("Gender(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaritalStatusIsTotal(t *testing.T) {
	cases := map[string]string{
		"A": "L",
		"E": "L",
		"D": "D",
		"G": "T",
		"P": "T",
		"R": "T",
		"Q": "UNK",
		"":  "UNK",
	}
	for in, want := range cases {
		got := MaritalStatus(in)
		if len(got.Coding) != 1 || got.Coding[0].Code != want {
			t.Errorf("MaritalStatus(%q) code = %+v, want %q", in, got.Coding, want)
		}
	}
}

func TestEncounterClassRejectsUnknown(t *testing.T) {
	if _, err := EncounterClass("Q"); err == nil {
		t.Fatal("expected error for unknown PV1.2 value")
	}
	c, err := EncounterClass("I")
	if err != nil || c.Code != "IMP" {
		t.Fatalf("EncounterClass(I) = %+v, %v; want IMP, nil", c, err)
	}
}

func TestKontaktartOmittedForInpatientOutpatient(t *testing.T) {
	if _, ok := Kontaktart("I"); ok {
		t.Error("expected no Kontaktart coding for I")
	}
	if _, ok := Kontaktart("O"); ok {
		t.Error("expected no Kontaktart coding for O")
	}
	c, ok := Kontaktart("TS")
	if !ok || c.Code != "teilstationaer" {
		t.Errorf("Kontaktart(TS) = %+v, %v; want teilstationaer, true", c, ok)
	}
}

func TestAdmitSourceRejectsUnknown(t *testing.T) {
	if _, err := AdmitSource("Q"); err == nil {
		t.Fatal("expected error for unknown PV1.4.1 value")
	}
	c, err := AdmitSource("N")
	if err != nil || c.Code != "N" {
		t.Fatalf("AdmitSource(N) = %+v, %v; want N, nil", c, err)
	}
}
