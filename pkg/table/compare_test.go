package table

import "testing"

func TestCompareOrdering(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"nil before bool", nil, false, -1},
		{"false before true", false, true, -1},
		{"bool before number", true, 0, -1},
		{"number before string", 99999, "0", -1},
		{"string before other", "zzz", []interface{}{1}, -1},
		{"nil equals nil", nil, nil, 0},
		{"int vs int", 1, 2, -1},
		{"int vs float", 2, 1.5, 1},
		{"int equals float", 2, 2.0, 0},
		{"int64 vs int", int64(3), 3, 0},
		{"string bytewise", "apple", "banana", -1},
		{"string equal", "x", "x", 0},
		{"reversed args flip sign", "banana", "apple", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareRows(t *testing.T) {
	tests := []struct {
		name string
		a, b Row
		want int
	}{
		{"equal rows", Row{1, "a"}, Row{1, "a"}, 0},
		{"first cell decides", Row{1, "z"}, Row{2, "a"}, -1},
		{"later cell decides", Row{1, "a"}, Row{1, "b"}, -1},
		{"shorter prefix first", Row{1}, Row{1, nil}, -1},
		{"cross-type cells", Row{nil}, Row{false}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareRows(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareRows(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"nil only equals nil", nil, 0, false},
		{"both nil", nil, nil, true},
		{"numeric across types", 2, 2.0, true},
		{"int64 and int", int64(7), 7, true},
		{"number vs numeric string", 2, "2", false},
		{"rows cell by cell", Row{1, "a"}, Row{1.0, "a"}, true},
		{"rows of different length", Row{1}, Row{1, nil}, false},
		{"strings", "x", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIdentical(t *testing.T) {
	if Identical(2, 2.0) {
		t.Error("Identical(2, 2.0) = true, want false: types differ")
	}
	if !Identical(2, 2) {
		t.Error("Identical(2, 2) = false, want true")
	}
	if !Identical(nil, nil) {
		t.Error("Identical(nil, nil) = false, want true")
	}
}

func TestFloat64(t *testing.T) {
	if f, ok := Float64(int32(5)); !ok || f != 5 {
		t.Errorf("Float64(int32(5)) = %v, %v, want 5, true", f, ok)
	}
	if _, ok := Float64("5"); ok {
		t.Error("Float64(\"5\") accepted a string")
	}
	if _, ok := Float64(true); ok {
		t.Error("Float64(true) accepted a bool")
	}
}
