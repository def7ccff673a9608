package model

import "testing"

func TestProperties_NilValueIsSQLNull(t *testing.T) {
	var p Properties
	v, err := p.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("expected a nil driver value, got %v", v)
	}
}

func TestProperties_ValueScanRoundTrip(t *testing.T) {
	p := Properties{"alt": "a chair", "weight": float64(3)}

	v, err := p.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out Properties
	if err := out.Scan(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["alt"] != "a chair" || out["weight"] != float64(3) {
		t.Errorf("unexpected round-tripped value: %v", out)
	}
}

func TestConversionStatus_ScanNull(t *testing.T) {
	s := ConversionStatus{"thumb": true}
	if err := s.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Errorf("expected a NULL column to scan to nil, got %v", s)
	}
}

func TestConversionStatus_ScanRejectsNonBytes(t *testing.T) {
	var s ConversionStatus
	if err := s.Scan(42); err == nil {
		t.Error("expected an error scanning a non-[]byte source")
	}
}

func TestStringList_ValueScanRoundTrip(t *testing.T) {
	l := StringList{"thumb", "large"}

	v, err := l.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out StringList
	if err := out.Scan(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != "thumb" || out[1] != "large" {
		t.Errorf("unexpected round-tripped value: %v", out)
	}
}
