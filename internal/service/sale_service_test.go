package service

import (
	"testing"

	"backend/internal/billing"
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

func TestParseDecimalField(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "empty means zero", value: "", want: "0"},
		{name: "plain integer", value: "105", want: "105"},
		{name: "fractional", value: "12.345", want: "12.345"},
		{name: "negative", value: "-3.5", want: "-3.5"},
		{name: "garbage", value: "12,5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDecimalField(tt.value, "field")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDecimalField(%q) expected error, got %s", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDecimalField(%q) unexpected error: %v", tt.value, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseDecimalField(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestBuildDraftFillsFormDefaults(t *testing.T) {
	req := CreateSaleRequest{
		CustomerID: "c1",
		SilverRate: "105",
		Items: []SaleItemRequest{
			{Description: "payal", GrossWeight: "250"},
		},
	}

	draft, err := buildDraft(req, billing.WholesaleGST())
	if err != nil {
		t.Fatalf("buildDraft: %v", err)
	}
	if len(draft.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(draft.Items))
	}

	item := draft.Items[0]
	if item.Pieces != 1 {
		t.Errorf("Pieces default = %d, want 1", item.Pieces)
	}
	if !item.Touch.Equal(billing.DefaultTouch) {
		t.Errorf("Touch default = %s, want %s", item.Touch, billing.DefaultTouch)
	}
	if !item.LaborRatePerKg.Equal(billing.DefaultLaborRatePerKg) {
		t.Errorf("LaborRatePerKg default = %s, want %s", item.LaborRatePerKg, billing.DefaultLaborRatePerKg)
	}
	if !item.StoneWeight.IsZero() {
		t.Errorf("StoneWeight default = %s, want 0", item.StoneWeight)
	}
}

func TestGSTConfigFromRequest(t *testing.T) {
	off := false

	tests := []struct {
		name           string
		billingType    string
		req            CreateSaleRequest
		wantApplicable bool
		wantCGST       string
	}{
		{
			name:           "wholesale defaults on",
			billingType:    model.BillingWholesale,
			wantApplicable: true,
			wantCGST:       "1.5",
		},
		{
			name:           "wholesale toggled off",
			billingType:    model.BillingWholesale,
			req:            CreateSaleRequest{GSTEnabled: &off},
			wantApplicable: false,
			wantCGST:       "1.5",
		},
		{
			name:           "wholesale custom percent",
			billingType:    model.BillingWholesale,
			req:            CreateSaleRequest{CGSTPercent: "2.5", SGSTPercent: "2.5"},
			wantApplicable: true,
			wantCGST:       "2.5",
		},
		{
			name:           "regular never applies gst",
			billingType:    model.BillingRegular,
			wantApplicable: false,
			wantCGST:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gst, err := gstConfigFromRequest(tt.billingType, tt.req)
			if err != nil {
				t.Fatalf("gstConfigFromRequest: %v", err)
			}
			if gst.Applicable != tt.wantApplicable {
				t.Errorf("Applicable = %v, want %v", gst.Applicable, tt.wantApplicable)
			}
			if !gst.CGSTPercent.Equal(decimal.RequireFromString(tt.wantCGST)) {
				t.Errorf("CGSTPercent = %s, want %s", gst.CGSTPercent, tt.wantCGST)
			}
		})
	}
}

func TestGSTConfigFromRequestRejectsBadPercent(t *testing.T) {
	_, err := gstConfigFromRequest(model.BillingWholesale, CreateSaleRequest{CGSTPercent: "two"})
	if err == nil {
		t.Fatal("expected error for non-numeric cgst_percent")
	}
}
