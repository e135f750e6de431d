package simtrade

import (
	"errors"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m      Money
		want   string
		signed string
	}{
		{USD(1234.5), "$1,234.50", "+$1,234.50"},
		{USD(-3), "-$3.00", "-$3.00"},
		{USD(0), "$0.00", "-"},
		{M(12.3456, ""), "12.35", "+12.35"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.m.Round().String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
			if got := tc.m.Round().SignedString(); got != tc.signed {
				t.Errorf("SignedString() = %q, want %q", got, tc.signed)
			}
		})
	}
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{1.004, 1.00},
		{-1.005, -1.01},
		{33.3333, 33.33},
	}
	for _, tc := range tests {
		if got := USD(tc.in).Round(); !got.Equal(USD(tc.want)) {
			t.Errorf("USD(%v).Round() = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	if got := M(1, "").Add(USD(2)); got.Currency() != "USD" {
		t.Errorf("Add() currency = %q, want USD", got.Currency())
	}
	defer func() {
		if recover() == nil {
			t.Error("Add() of USD and EUR did not panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    Quantity
		wantErr bool
	}{
		{in: "10", want: Q(10)},
		{in: " 1,250.5 ", want: Q(1250.5)},
		{in: "0.0001", want: Q(0.0001)},
		{in: "ten", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseQuantity(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidShareAmount) {
					t.Errorf("ParseQuantity(%q) error = %v, want ErrInvalidShareAmount", tc.in, err)
				}
				return
			}
			if err != nil || !got.Equal(tc.want) {
				t.Errorf("ParseQuantity(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
			}
		})
	}
}
