package table

import "testing"

func TestKeyExtractorSingleField(t *testing.T) {
	ext, err := On("b").Extractor([]string{"a", "b"})
	if err != nil {
		t.Fatalf("Extractor failed: %v", err)
	}

	v, err := ext(Row{1, "x"})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != "x" {
		t.Errorf("extract = %v, want bare value x", v)
	}

	// short row: the field's position is past the end
	v, err = ext(Row{1})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != nil {
		t.Errorf("extract short row = %v, want nil", v)
	}
}

func TestKeyExtractorMultiField(t *testing.T) {
	ext, err := On("c", "a").Extractor([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Extractor failed: %v", err)
	}

	v, err := ext(Row{1, 2, 3})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !Equal(v, Row{3, 1}) {
		t.Errorf("extract = %v, want [3 1]", v)
	}
}

func TestKeyExtractorZeroKeyYieldsRow(t *testing.T) {
	ext, err := On().Extractor([]string{"a", "b"})
	if err != nil {
		t.Fatalf("Extractor failed: %v", err)
	}
	row := Row{1, 2}
	v, err := ext(row)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !Equal(v, row) {
		t.Errorf("extract = %v, want the whole row", v)
	}
}

func TestKeyExtractorUnknownField(t *testing.T) {
	if _, err := On("nope").Extractor([]string{"a"}); err == nil {
		t.Error("Extractor accepted a field not in the header")
	}
}

func TestKeyOf(t *testing.T) {
	k := KeyOf(func(r Record) (interface{}, error) {
		return r.Value("a"), nil
	})
	if !k.IsFunc() {
		t.Fatal("IsFunc() = false for a derived key")
	}
	if got := k.OutFields(); len(got) != 1 || got[0] != "key" {
		t.Errorf("OutFields() = %v, want [key]", got)
	}

	ext, err := k.Extractor([]string{"a"})
	if err != nil {
		t.Fatalf("Extractor failed: %v", err)
	}
	v, err := ext(Row{42})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != 42 {
		t.Errorf("extract = %v, want 42", v)
	}
}

func TestKeyParts(t *testing.T) {
	if parts := On().KeyParts(Row{1, 2}); len(parts) != 0 {
		t.Errorf("zero key KeyParts = %v, want empty", parts)
	}
	if parts := On("a").KeyParts("x"); len(parts) != 1 || parts[0] != "x" {
		t.Errorf("single key KeyParts = %v, want [x]", parts)
	}
	parts := On("a", "b").KeyParts(Row{1, 2})
	if !Equal(parts, Row{1, 2}) {
		t.Errorf("multi key KeyParts = %v, want [1 2]", parts)
	}

	// appending to the parts must not touch the source key
	src := Row{1, 2}
	parts = On("a", "b").KeyParts(src)
	_ = append(parts, 3)
	if len(src) != 2 {
		t.Error("KeyParts shares backing storage with the key value")
	}
}
