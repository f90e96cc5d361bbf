package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError points at a single invalid field of a sale draft.
// ItemIndex is -1 for draft-level errors.
type FieldError struct {
	Field     string `json:"field"`
	ItemIndex int    `json:"item_index"`
	Message   string `json:"message"`
}

func (e FieldError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("items[%d].%s: %s", e.ItemIndex, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field so the caller can
// surface all of them at once instead of failing on the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Draft is a sale as entered, before computation. The calculator itself
// never rejects input; this validation step runs first and the math only
// runs on a clean draft.
type Draft struct {
	CustomerID string
	SilverRate decimal.Decimal
	Items      []LineItem
	GST        GSTConfig
	Payment    Payment
}

// ValidateDraft checks the caller-side preconditions: customer selected,
// positive silver rate, at least one item, per-item description and
// gross weight present, stone weight not exceeding gross weight, and no
// negative numeric inputs. Optional fields (stone weight, wastage) left
// blank are fine — they already defaulted to zero upstream.
func ValidateDraft(d Draft) ValidationErrors {
	var errs ValidationErrors

	addDraftErr := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, ItemIndex: -1, Message: msg})
	}
	addItemErr := func(i int, field, msg string) {
		errs = append(errs, FieldError{Field: field, ItemIndex: i, Message: msg})
	}

	if strings.TrimSpace(d.CustomerID) == "" {
		addDraftErr("customer_id", "customer is required")
	}
	if !d.SilverRate.IsPositive() {
		addDraftErr("silver_rate", "silver rate must be greater than zero")
	}
	if len(d.Items) == 0 {
		addDraftErr("items", "at least one item is required")
	}

	for i, item := range d.Items {
		if strings.TrimSpace(item.Description) == "" {
			addItemErr(i, "description", "description is required")
		}
		if item.Pieces < 0 {
			addItemErr(i, "pieces", "pieces cannot be negative")
		}
		if item.GrossWeight.IsNegative() {
			addItemErr(i, "gross_weight", "gross weight cannot be negative")
		} else if item.GrossWeight.IsZero() {
			addItemErr(i, "gross_weight", "gross weight is required")
		}
		if item.StoneWeight.IsNegative() {
			addItemErr(i, "stone_weight", "stone weight cannot be negative")
		} else if item.StoneWeight.GreaterThan(item.GrossWeight) {
			addItemErr(i, "stone_weight", "stone weight cannot exceed gross weight")
		}
		if item.Wastage.IsNegative() {
			addItemErr(i, "wastage", "wastage cannot be negative")
		}
		if item.Touch.IsNegative() {
			addItemErr(i, "touch", "touch cannot be negative")
		}
		if item.LaborRatePerKg.IsNegative() {
			addItemErr(i, "labor_rate_per_kg", "labor rate cannot be negative")
		}
	}

	if d.Payment.PaidAmount.IsNegative() {
		addDraftErr("paid_amount", "paid amount cannot be negative")
	}
	if d.Payment.PaidSilver.IsNegative() {
		addDraftErr("paid_silver", "paid silver cannot be negative")
	}
	if d.GST.Applicable {
		if d.GST.CGSTPercent.IsNegative() {
			addDraftErr("cgst_percent", "CGST percent cannot be negative")
		}
		if d.GST.SGSTPercent.IsNegative() {
			addDraftErr("sgst_percent", "SGST percent cannot be negative")
		}
	}

	return errs
}
