package pricing

import (
	"errors"
	"testing"

	"courier-admin/apperrors"
	bookingModel "courier-admin/models/booking"
)

func f(v float64) *float64 { return &v }

func TestComputeAutoWeight(t *testing.T) {
	cases := []struct {
		name            string
		weight          float64
		basePrice       float64
		packagingCharge float64
		tax             float64
		totalAmount     float64
	}{
		{"five kg", 5, 500, 40, 97.2, 637.2},
		{"one kg", 1, 100, 8, 19.44, 127.44},
		{"half kg", 0.5, 50, 4, 9.72, 63.72},
		{"quarter kg", 0.25, 25, 2, 4.86, 31.86},
		{"ten kg", 10, 1000, 80, 194.4, 1274.4},
		{"fractional", 1.3, 130, 10.4, 25.27, 165.67},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(f(tc.weight), bookingModel.WeightUnitKilogram, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Mode != bookingModel.PricingModeAutoWeight {
				t.Fatalf("mode = %q, want AUTO_WEIGHT", got.Mode)
			}
			if got.BasePrice != tc.basePrice {
				t.Errorf("basePrice = %v, want %v", got.BasePrice, tc.basePrice)
			}
			if got.PackagingCharge != tc.packagingCharge {
				t.Errorf("packagingCharge = %v, want %v", got.PackagingCharge, tc.packagingCharge)
			}
			if got.Tax != tc.tax {
				t.Errorf("tax = %v, want %v", got.Tax, tc.tax)
			}
			if got.TotalAmount != tc.totalAmount {
				t.Errorf("totalAmount = %v, want %v", got.TotalAmount, tc.totalAmount)
			}
		})
	}
}

func TestComputeManualMode(t *testing.T) {
	// Declared value wins even when a weight is present.
	got, err := Compute(f(12), bookingModel.WeightUnitKilogram, f(2500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode != bookingModel.PricingModeManual {
		t.Fatalf("mode = %q, want MANUAL", got.Mode)
	}
	if got.BasePrice != 2500 || got.TotalAmount != 2500 {
		t.Errorf("base/total = %v/%v, want 2500/2500", got.BasePrice, got.TotalAmount)
	}
	if got.PackagingCharge != 0 || got.Tax != 0 {
		t.Errorf("packaging/tax = %v/%v, want 0/0", got.PackagingCharge, got.Tax)
	}
}

func TestComputeRejectsMissingInput(t *testing.T) {
	cases := []struct {
		name     string
		weight   *float64
		declared *float64
	}{
		{"both nil", nil, nil},
		{"zero weight", f(0), nil},
		{"zero declared zero weight", f(0), f(0)},
		{"negative weight", f(-4), nil},
		{"zero declared nil weight", nil, f(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.weight, bookingModel.WeightUnitGram, tc.declared)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, err := Compute(f(3.7), bookingModel.WeightUnitKilogram, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compute(f(3.7), bookingModel.WeightUnitKilogram, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("call %d produced %+v, want %+v", i, again, first)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{97.2, 97.2},
		// 0.125 and 0.375 are exact in binary, so the .5 tie is real.
		{0.125, 0.13},
		{0.375, 0.38},
		{-0.125, -0.13},
		{10.404, 10.4},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
