package money

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr error
	}{
		{"1500.25", 150025, nil},
		{"100", 10000, nil},
		{"0.1", 10, nil},
		{"0", 0, nil},
		{"-5.50", -550, nil},
		{"999999999999.99", MaxAmount, nil},
		{"1.234", 0, ErrPrecision},
		{"abc", 0, ErrInvalid},
		{"", 0, ErrInvalid},
		{"99999999999999999999", 0, ErrRange},
		{"1.000", 100, nil},
		{"12e2", 120000, nil},
		{"0e-50000000", 0, nil},
		{"1e-50000000", 0, ErrPrecision},
		{"1e50000000", 0, ErrRange},
		{"-1e50000000", 0, ErrRange},
		{"100001e-7", 0, ErrPrecision},
		{"100000e-7", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHugeExponentReturnsQuickly(t *testing.T) {
	for _, in := range []string{`"1e-50000000"`, `1e50000000`, `"-9e-2000000"`} {
		t.Run(in, func(t *testing.T) {
			start := time.Now()
			var a Amount
			err := json.Unmarshal([]byte(in), &a)
			if !errors.Is(err, ErrPrecision) && !errors.Is(err, ErrRange) {
				t.Fatalf("expected precision or range error, got %v", err)
			}
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("rejecting %s took %v", in, elapsed)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{150025, "1500.25"},
		{10000, "100.00"},
		{5, "0.05"},
		{0, "0.00"},
		{-550, "-5.50"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	t.Run("marshals as a two digit string", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Amount Amount `json:"amount"`
		}{Amount: 10000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `{"amount":"100.00"}` {
			t.Errorf("unexpected json %s", out)
		}
	})

	t.Run("accepts strings and numbers", func(t *testing.T) {
		for _, body := range []string{`{"amount":"100.5"}`, `{"amount":100.5}`} {
			var v struct {
				Amount *Amount `json:"amount"`
			}
			if err := json.Unmarshal([]byte(body), &v); err != nil {
				t.Fatalf("unexpected error for %s: %v", body, err)
			}
			if v.Amount == nil || *v.Amount != 10050 {
				t.Errorf("expected 10050 for %s, got %v", body, v.Amount)
			}
		}
	})

	t.Run("null leaves pointer nil", func(t *testing.T) {
		var v struct {
			Amount *Amount `json:"amount"`
		}
		if err := json.Unmarshal([]byte(`{"amount":null}`), &v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Amount != nil {
			t.Errorf("expected nil, got %v", *v.Amount)
		}
	})

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		var v struct {
			Amount Amount `json:"amount"`
		}
		err := json.Unmarshal([]byte(`{"amount":"1.001"}`), &v)
		if !errors.Is(err, ErrPrecision) {
			t.Errorf("expected ErrPrecision, got %v", err)
		}
	})
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Amount
	}{
		{"int64", int64(1234), 1234},
		{"nil", nil, 0},
		{"float", float64(1234), 1234},
		{"bytes", []byte("1234"), 1234},
		{"string", "1234", 1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount = 99
			if err := a.Scan(tt.src); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a != tt.want {
				t.Errorf("got %d, want %d", a, tt.want)
			}
		})
	}
}
