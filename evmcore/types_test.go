package evmcore

import "testing"

func TestAddress_IsZero(t *testing.T) {
	if !(Address{}).IsZero() {
		t.Error("zero-value Address should report IsZero")
	}
	a := Address{1}
	if a.IsZero() {
		t.Error("non-zero Address should not report IsZero")
	}
}

func TestAddress_ParseAndMarshalRoundTrip(t *testing.T) {
	a, err := ParseAddress("0x00000000000000000000000000000000000000Ab")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if a[19] != 0xAB {
		t.Errorf("last byte = 0x%x, want 0xab", a[19])
	}

	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var got Address
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got != a {
		t.Errorf("round trip = %v, want %v", got, a)
	}
}

func TestParseAddress_WrongLength(t *testing.T) {
	if _, err := ParseAddress("0x1234"); err == nil {
		t.Error("a too-short address string should fail to parse")
	}
}

func TestUnmarshalText_RequiresPrefix(t *testing.T) {
	var a Address
	if err := a.UnmarshalText([]byte("0000000000000000000000000000000000000000")); err == nil {
		t.Error("UnmarshalText without a 0x prefix should fail")
	}
}

func TestWord_ToUint256RoundTrip(t *testing.T) {
	w := NewValue(1, 2)
	got := WordFromUint256(w.ToUint256())
	if got != w {
		t.Errorf("round trip through uint256 = %v, want %v", got, w)
	}
}

func TestWordFromUint256_Nil(t *testing.T) {
	if got := WordFromUint256(nil); got != (Word{}) {
		t.Errorf("WordFromUint256(nil) = %v, want zero Word", got)
	}
}

func TestNewValue(t *testing.T) {
	v := NewValue(0x1234)
	want := Word{}
	want[30], want[31] = 0x12, 0x34
	if v != want {
		t.Errorf("NewValue(0x1234) = %v, want %v", v, want)
	}
}

func TestNewValue_TooManyArgsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewValue with more than 4 args should panic")
		}
	}()
	NewValue(1, 2, 3, 4, 5)
}

func TestAdd(t *testing.T) {
	a := NewValue(1)
	b := NewValue(2)
	if got := Add(a, b); got != NewValue(3) {
		t.Errorf("Add(1, 2) = %v, want 3", got)
	}
}

func TestAdd_WrapsModulo2To256(t *testing.T) {
	max := Word{}
	for i := range max {
		max[i] = 0xFF
	}
	if got := Add(max, NewValue(1)); got != (Word{}) {
		t.Errorf("Add(maxWord, 1) = %v, want zero (wraps)", got)
	}
}

func TestSub(t *testing.T) {
	a := NewValue(5)
	b := NewValue(2)
	if got := Sub(a, b); got != NewValue(3) {
		t.Errorf("Sub(5, 2) = %v, want 3", got)
	}
}

func TestStorageStatus_String(t *testing.T) {
	if got := StorageAdded.String(); got != "StorageAdded" {
		t.Errorf("StorageAdded.String() = %q, want StorageAdded", got)
	}
	if got := StorageStatus(99).String(); got != "StorageStatus(99)" {
		t.Errorf("unknown StorageStatus.String() = %q, want StorageStatus(99)", got)
	}
}

func TestAccessStatus_Values(t *testing.T) {
	if ColdAccess != false || WarmAccess != true {
		t.Error("ColdAccess/WarmAccess should map to false/true")
	}
}
