package types

import "testing"

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"tomato sauce", "mozzarella", "basil"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded StringList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 3 || decoded[0] != "tomato sauce" || decoded[2] != "basil" {
		t.Fatalf("round trip lost order or entries: %v", decoded)
	}
}

func TestStringListScanNil(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list != nil {
		t.Fatalf("expected nil list, got %v", list)
	}
}

func TestStringListScanRejectsBadSource(t *testing.T) {
	var list StringList
	if err := list.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
	if err := list.Scan("{not json"); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
