package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var (
	testDay  = MustCalendarDay(2025, time.December, 1)
	testItem = ItemID("0b9f3c5e-6a57-4d3e-9f43-7b7e2a8c1d22")
)

func TestPlacement_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Placement
		want bool
	}{
		{"same date root", AtDate(testDay), AtDate(testDay), true},
		{"same sections", AtDate(testDay).Child(1).Child(2), AtDate(testDay).Child(1).Child(2), true},
		{"different section", AtDate(testDay).Child(1), AtDate(testDay).Child(2), false},
		{"prefix is not equal", AtDate(testDay).Child(1), AtDate(testDay).Child(1).Child(1), false},
		{"different day", AtDate(testDay), AtDate(testDay.AddDays(1)), false},
		{"different head kind", UnderItem(testItem), Permanent(), false},
		{"zero values", Placement{}, Placement{}, true},
		{"zero and root", Placement{}, Permanent(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlacement_Parent(t *testing.T) {
	p := UnderItem(testItem).Child(3).Child(1)

	parent, ok := p.Parent()
	if !ok || !parent.Equal(UnderItem(testItem).Child(3)) {
		t.Errorf("Parent() = %s, %v", parent, ok)
	}
	if _, ok := UnderItem(testItem).Parent(); ok {
		t.Error("Parent() of a root reported ok")
	}
}

func TestPlacement_ChildDoesNotAlias(t *testing.T) {
	base := Permanent().Child(1)
	a := base.Child(2)
	b := base.Child(3)
	if a.Last() != 2 || b.Last() != 3 {
		t.Errorf("children share storage: %s, %s", a, b)
	}
	s := a.Section()
	s[0] = 99
	if a.Section()[0] != 1 {
		t.Error("Section() exposed internal storage")
	}
}

func TestPlacement_SameParent(t *testing.T) {
	tests := []struct {
		name string
		a, b Placement
		want bool
	}{
		{"siblings", Permanent().Child(1).Child(2), Permanent().Child(1).Child(5), true},
		{"same placement", Permanent().Child(1), Permanent().Child(1), true},
		{"roots", Permanent(), Permanent(), false},
		{"different depth", Permanent().Child(1), Permanent().Child(1).Child(2), false},
		{"different head", AtDate(testDay).Child(1), Permanent().Child(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameParent(tt.b); got != tt.want {
				t.Errorf("SameParent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		input string
		want  Placement
	}{
		{"2025-12-01", AtDate(testDay)},
		{"2025-12-01/1/2", AtDate(testDay).Child(1).Child(2)},
		{"permanent/4", Permanent().Child(4)},
		{testItem.String() + "/3", UnderItem(testItem).Child(3)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlacement(tt.input)
			if err != nil {
				t.Fatalf("ParsePlacement() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePlacement() mismatch (-want +got):\n%s", diff)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParsePlacement_Errors(t *testing.T) {
	for _, input := range []string{"", "groceries", "permanent/0", "permanent/x", "2025-02-30/1"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParsePlacement(input); !errors.Is(err, ErrInvalidSyntax) {
				t.Errorf("ParsePlacement(%q) error = %v, want ErrInvalidSyntax", input, err)
			}
		})
	}
}

func TestNewPlacement_RejectsNonPositive(t *testing.T) {
	if _, err := NewPlacement(PermanentHead{}, 1, 0); !errors.Is(err, ErrInvalidSyntax) {
		t.Errorf("NewPlacement() error = %v, want ErrInvalidSyntax", err)
	}
	if _, err := NewPlacement(nil); err == nil {
		t.Error("NewPlacement(nil) error = nil")
	}
}

func TestNumericRange(t *testing.T) {
	parent := UnderItem(testItem)

	tests := []struct {
		name     string
		from, to int
		wantErr  bool
		want     []Placement
	}{
		{"span", 1, 3, false, []Placement{parent.Child(1), parent.Child(2), parent.Child(3)}},
		{"single", 2, 2, false, []Placement{parent.Child(2)}},
		{"reversed", 3, 1, true, nil},
		{"zero start", 0, 2, true, nil},
		{"negative end", 1, -1, true, nil},
		{"widest allowed", 1, MaxRangeSpan, false, nil},
		{"too wide", 1, MaxRangeSpan + 1, true, nil},
		{"huge", 1, 99999999999, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewNumericRange(parent, tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewNumericRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidSyntax) {
					t.Errorf("error = %v, want ErrInvalidSyntax", err)
				}
				return
			}
			if tt.want == nil {
				if got := len(Expand(r)); got != tt.to-tt.from+1 {
					t.Errorf("Expand() covers %d placements, want %d", got, tt.to-tt.from+1)
				}
				return
			}
			if diff := cmp.Diff(tt.want, Expand(r)); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumericRangeOfOneMatchesSingle(t *testing.T) {
	p := Permanent().Child(7)
	r, err := NewNumericRange(Permanent(), 7, 7)
	if err != nil {
		t.Fatalf("NewNumericRange() error: %v", err)
	}
	if diff := cmp.Diff(Expand(Single(p)), Expand(r)); diff != "" {
		t.Errorf("mismatch (-single +numeric):\n%s", diff)
	}
}

func TestDateRange(t *testing.T) {
	r, err := NewDateRange(testDay, testDay.AddDays(2))
	if err != nil {
		t.Fatalf("NewDateRange() error: %v", err)
	}
	want := []Placement{AtDate(testDay), AtDate(testDay.AddDays(1)), AtDate(testDay.AddDays(2))}
	if diff := cmp.Diff(want, Expand(r)); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewDateRange(testDay.AddDays(1), testDay); !errors.Is(err, ErrInvalidSyntax) {
		t.Errorf("NewDateRange(reversed) error = %v, want ErrInvalidSyntax", err)
	}
	if _, err := NewDateRange(testDay, testDay.AddDays(MaxRangeSpan-1)); err != nil {
		t.Errorf("NewDateRange(%d days) error = %v", MaxRangeSpan, err)
	}
	if _, err := NewDateRange(testDay, testDay.AddDays(MaxRangeSpan)); !errors.Is(err, ErrInvalidSyntax) {
		t.Errorf("NewDateRange(%d days) error = %v, want ErrInvalidSyntax", MaxRangeSpan+1, err)
	}
}

func TestCheckSpan(t *testing.T) {
	tests := []struct {
		name    string
		r       PlacementRange
		wantErr bool
	}{
		{"single", Single(Permanent()), false},
		{"numeric", NumericRange{Parent: Permanent(), From: 1, To: 3}, false},
		{"numeric too wide", NumericRange{Parent: Permanent(), From: 1, To: 99999999999}, true},
		{"numeric zero start", NumericRange{Parent: Permanent(), From: 0, To: 3}, true},
		{"numeric reversed", NumericRange{Parent: Permanent(), From: 4, To: 3}, true},
		{"dates", DateRange{From: testDay, To: testDay.AddDays(30)}, false},
		{"dates too wide", DateRange{From: testDay, To: testDay.AddYears(100)}, true},
		{"dates reversed", DateRange{From: testDay, To: testDay.AddDays(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSpan(tt.r)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckSpan(%s) error = %v, wantErr %v", tt.r, err, tt.wantErr)
			}
		})
	}
}
