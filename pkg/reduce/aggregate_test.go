package reduce

import (
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestAggregateValueCount(t *testing.T) {
	src := table.NewMemTable([]string{"foo", "bar"}, []table.Row{
		{"a", 3},
		{"b", 2},
		{"a", 7},
	})

	fields, rows := drain(t, AggregateValue(src, table.On("foo"), Count()))

	if !reflect.DeepEqual(fields, []string{"foo", "value"}) {
		t.Fatalf("header = %v, want [foo value]", fields)
	}
	want := []table.Row{
		{"a", int64(2)},
		{"b", int64(1)},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestAggregateValueDefaultCollects(t *testing.T) {
	src := table.NewMemTable([]string{"k", "v"}, []table.Row{
		{"a", 1},
		{"a", 2},
	})

	// the zero spec collects each group's rows
	_, rows := drain(t, AggregateValue(src, table.On("k"), AggSpec{}))

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	collected, ok := rows[0][1].([]interface{})
	if !ok || len(collected) != 2 {
		t.Errorf("value = %v, want the group's two rows", rows[0][1])
	}
}

func TestAggregateMultiColumn(t *testing.T) {
	src := table.NewMemTable([]string{"foo", "bar"}, []table.Row{
		{"a", 3},
		{"a", 7},
		{"b", 2},
	})

	agg := NewAggregation()
	agg.Set("count", Count())
	agg.Set("sumbar", Sum("bar"))

	fields, rows := drain(t, Aggregate(src, table.On("foo"), agg))

	if !reflect.DeepEqual(fields, []string{"foo", "count", "sumbar"}) {
		t.Fatalf("header = %v, want [foo count sumbar]", fields)
	}
	want := []table.Row{
		{"a", int64(2), int64(10)},
		{"b", int64(1), int64(2)},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestAggregateColumnsAddedLater(t *testing.T) {
	src := table.NewMemTable([]string{"k", "v"}, []table.Row{
		{"a", 1},
	})

	view := Aggregate(src, table.On("k"), nil)
	view.Set("count", Count())

	fields, _ := drain(t, view)
	if !reflect.DeepEqual(fields, []string{"k", "count"}) {
		t.Fatalf("header = %v, want [k count]", fields)
	}

	// a column set after the first iteration shows up on the next one
	view.Set("maxv", Max("v"))
	fields, rows := drain(t, view)
	if !reflect.DeepEqual(fields, []string{"k", "count", "maxv"}) {
		t.Fatalf("header after Set = %v, want [k count maxv]", fields)
	}
	if !reflect.DeepEqual(rows, []table.Row{{"a", int64(1), 1}}) {
		t.Errorf("rows = %v, want [[a 1 1]]", rows)
	}
}

func TestAggregateInvalidSpec(t *testing.T) {
	src := table.NewMemTable([]string{"k"}, []table.Row{{"a"}})

	t.Run("no fields and no function", func(t *testing.T) {
		view := Aggregate(src, table.On("k"), nil)
		view.Set("bad", AggSpec{})
		if _, err := view.Iterate(); err == nil {
			t.Error("Iterate accepted a spec with no fields and no function")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		view := Aggregate(src, table.On("k"), nil)
		view.Set("bad", Sum("nope"))
		if _, err := view.Iterate(); err == nil {
			t.Error("Iterate accepted a spec naming an unknown field")
		}
	})
}

func TestAggregateGlobal(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, []table.Row{
		{1}, {2}, {3},
	})

	agg := NewAggregation()
	agg.Set("n", Count())
	agg.Set("total", Sum("v"))

	// the zero key makes the whole table one group with no key columns
	fields, rows := drain(t, Aggregate(src, table.On(), agg))

	if !reflect.DeepEqual(fields, []string{"n", "total"}) {
		t.Fatalf("header = %v, want [n total]", fields)
	}
	if !reflect.DeepEqual(rows, []table.Row{{int64(3), int64(6)}}) {
		t.Errorf("rows = %v, want [[3 6]]", rows)
	}
}

func TestAggregateEmptyTable(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, nil)

	agg := NewAggregation()
	agg.Set("n", Count())

	_, rows := drain(t, Aggregate(src, table.On(), agg))
	if len(rows) != 0 {
		t.Errorf("empty input produced %v, want no rows", rows)
	}
}

func TestAggFuncs(t *testing.T) {
	src := table.NewMemTable([]string{"k", "v"}, []table.Row{
		{"a", 3},
		{"a", nil},
		{"a", 1},
		{"a", 2},
	})

	tests := []struct {
		name string
		spec AggSpec
		want interface{}
	}{
		{"count", Count(), int64(4)},
		{"count not nil", CountNotNil("v"), int64(3)},
		{"min puts nil lowest", Min("v"), nil},
		{"max", Max("v"), 3},
		{"first", First("v"), 3},
		{"last", Last("v"), 2},
		{"strjoin formats and skips nil", StrJoin("v", "|"), "3||1|2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rows := drain(t, AggregateValue(src, table.On("k"), tt.spec))
			if len(rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(rows))
			}
			if !table.Identical(rows[0][1], tt.want) {
				t.Errorf("value = %v (%T), want %v (%T)", rows[0][1], rows[0][1], tt.want, tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	t.Run("integral inputs give int64", func(t *testing.T) {
		src := table.NewMemTable([]string{"v"}, []table.Row{{1}, {int64(2)}})
		_, rows := drain(t, AggregateValue(src, table.On(), Sum("v")))
		if !table.Identical(rows[0][0], int64(3)) {
			t.Errorf("sum = %v (%T), want int64 3", rows[0][0], rows[0][0])
		}
	})

	t.Run("any float widens the result", func(t *testing.T) {
		src := table.NewMemTable([]string{"v"}, []table.Row{{1}, {2.5}})
		_, rows := drain(t, AggregateValue(src, table.On(), Sum("v")))
		if !table.Identical(rows[0][0], 3.5) {
			t.Errorf("sum = %v (%T), want float64 3.5", rows[0][0], rows[0][0])
		}
	})

	t.Run("non-numeric is an error", func(t *testing.T) {
		src := table.NewMemTable([]string{"v"}, []table.Row{{1}, {"two"}})
		it, err := AggregateValue(src, table.On(), Sum("v")).Iterate()
		if err != nil {
			t.Fatalf("Iterate failed: %v", err)
		}
		defer it.Close()
		for it.Next() {
		}
		if it.Error() == nil {
			t.Error("summing a string did not fail")
		}
	})
}

func TestMean(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, []table.Row{{1}, {2}, {6}})
	_, rows := drain(t, AggregateValue(src, table.On(), Mean("v")))
	if !table.Identical(rows[0][0], 3.0) {
		t.Errorf("mean = %v (%T), want 3.0", rows[0][0], rows[0][0])
	}
}

func TestApplyTo(t *testing.T) {
	src := table.NewMemTable([]string{"a", "b"}, []table.Row{
		{1, 10},
		{2, 20},
	})

	// two fields arrive as Row tuples
	spec := ApplyTo(func(vals *Seq) (interface{}, error) {
		sum := 0
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			pair := v.(table.Row)
			sum += pair[0].(int) * pair[1].(int)
		}
		return sum, nil
	}, "a", "b")

	_, rows := drain(t, AggregateValue(src, table.On(), spec))
	if rows[0][0] != 50 {
		t.Errorf("dot product = %v, want 50", rows[0][0])
	}
}
