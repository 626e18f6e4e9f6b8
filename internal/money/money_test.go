package money

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"1550", 155000},
		{"1550.5", 155050},
		{"₹ 1,550.50", 155050},
		{"Rs 12", 1200},
		{"", 0},
		{"0.005", 1},
		{"0.004", 0},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if _, err := Parse("abc"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestMulRoundsHalfUp(t *testing.T) {
	rate := MustParse("15.25")
	got := rate.Mul(decimal.RequireFromString("0.1"))
	// 1525 paise * 0.1 = 152.5 -> 153
	if got != 153 {
		t.Fatalf("got %d, want 153", got)
	}
	if got := FromRupees(15).Mul(decimal.NewFromInt(100)); got != FromRupees(1500) {
		t.Fatalf("15 x 100 = %s", got)
	}
}

func TestDiv(t *testing.T) {
	if got := FromRupees(12000).Div(12); got != FromRupees(1000) {
		t.Fatalf("12000/12 = %s", got)
	}
	if got := FromRupees(1000).Div(3); got != 33333 {
		t.Fatalf("1000/3 = %d paise", got)
	}
	if got := FromRupees(100).Div(0); got != Zero {
		t.Fatalf("division by zero should yield zero, got %s", got)
	}
}

func TestDisplay(t *testing.T) {
	if got := Display(nil); got != "0.00" {
		t.Fatalf("Display(nil) = %q", got)
	}
	m := MustParse("950")
	if got := Display(&m); got != "950.00" {
		t.Fatalf("Display = %q", got)
	}
	if got := Money(-5).String(); got != "-0.05" {
		t.Fatalf("negative String = %q", got)
	}
}

func TestJSON(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":1550.5,"b":"200","c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != 155050 || payload.B != 20000 || payload.C != 0 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":1550.50,"b":200.00,"c":0.00}` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestScan(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("12.34")); err != nil || m != 1234 {
		t.Fatalf("scan bytes: %d %v", m, err)
	}
	if err := m.Scan(nil); err != nil || m != 0 {
		t.Fatalf("scan nil: %d %v", m, err)
	}
	if err := m.Scan(float64(0.1) + float64(0.2)); err != nil || m != 30 {
		t.Fatalf("scan float: %d %v", m, err)
	}
	if err := m.Scan(true); err == nil {
		t.Fatalf("expected error for bool")
	}
}

func TestAdditionIsOrderIndependent(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("sum is independent of order", prop.ForAll(
		func(xs []int64) bool {
			forward := Zero
			for _, x := range xs {
				forward = forward.Add(FromMinor(x))
			}
			backward := Zero
			for i := len(xs) - 1; i >= 0; i-- {
				backward = backward.Add(FromMinor(xs[i]))
			}
			return forward == backward
		},
		gen.SliceOf(gen.Int64Range(0, 1_000_000_00)),
	))

	properties.Property("clamp never negative", prop.ForAll(
		func(a, b int64) bool {
			return !FromMinor(a).Sub(FromMinor(b)).ClampZero().IsNegative()
		},
		gen.Int64Range(0, 1_000_000_00),
		gen.Int64Range(0, 1_000_000_00),
	))

	properties.TestingRun(t)
}
