package parser

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"receiptly/internal/models"
)

const sampleReceipt = `Fresh Mart Grocery
Invoice No: INV-2024-001
2024-01-27
10:45 AM
Milk 45.00
Bread 30.00
Sub Total 75.00
GST 6.00
Total 81.00
Paid by Card`

func fixedParser() *Parser {
	p := New()
	p.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	p.newBillID = func() string { return "BILL-123456" }
	return p
}

func TestParse_WellFormedReceipt(t *testing.T) {
	p := fixedParser()
	rec := p.Parse(context.Background(), sampleReceipt)

	if rec.BillID != "INV-2024-001" {
		t.Errorf("BillID = %q, want %q", rec.BillID, "INV-2024-001")
	}
	if rec.Vendor != "Fresh Mart Grocery" {
		t.Errorf("Vendor = %q, want %q", rec.Vendor, "Fresh Mart Grocery")
	}
	if rec.Date != "2024-01-27" {
		t.Errorf("Date = %q, want %q", rec.Date, "2024-01-27")
	}
	if rec.Time != "10:45 AM" {
		t.Errorf("Time = %q, want %q", rec.Time, "10:45 AM")
	}
	if rec.Payment != models.PaymentCard {
		t.Errorf("Payment = %q, want Card", rec.Payment)
	}
	if rec.Subtotal != 75.00 {
		t.Errorf("Subtotal = %v, want 75.00", rec.Subtotal)
	}
	if rec.Tax != 6.00 {
		t.Errorf("Tax = %v, want 6.00", rec.Tax)
	}
	if rec.Amount != 81.00 {
		t.Errorf("Amount = %v, want 81.00", rec.Amount)
	}
	if rec.Category != models.CategoryGrocery {
		t.Errorf("Category = %q, want Grocery", rec.Category)
	}

	wantItems := []models.LineItem{
		{Name: "Milk", Price: 45.00},
		{Name: "Bread", Price: 30.00},
	}
	if !reflect.DeepEqual(rec.Items, wantItems) {
		t.Errorf("Items = %+v, want %+v", rec.Items, wantItems)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := fixedParser()
	first := p.Parse(context.Background(), sampleReceipt)
	second := p.Parse(context.Background(), sampleReceipt)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractBillID(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"invoice keyword", "Invoice No: ABC123\nTotal 10.00", "ABC123"},
		{"txn keyword", "Txn ID 998877\nTotal 10.00", "998877"},
		{"hash fallback", "Some Shop\n# 4521\nTotal 10.00", "4521"},
		{"first match wins", "Receipt No R-100\nInvoice No I-200", "R-100"},
		{"short candidate skipped", "Bill No 12\nTotal 10.00", "BILL-123456"},
		{"synthesized when absent", "Corner Shop\nTotal 10.00", "BILL-123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(context.Background(), tt.text)
			if rec.BillID != tt.want {
				t.Errorf("BillID = %q, want %q", rec.BillID, tt.want)
			}
		})
	}
}

func TestExtractVendor(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Acme Stores\nTotal 10.00", "Acme Stores"},
		{"generic header skipped", "TAX INVOICE\nAcme Stores\nTotal 10.00", "Acme Stores"},
		{"short line skipped", "ABC\nAcme Stores\nTotal 10.00", "Acme Stores"},
		{"not found past third line", "ab\ncd\nef\nAcme Stores", "Unknown Vendor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(context.Background(), tt.text)
			if rec.Vendor != tt.want {
				t.Errorf("Vendor = %q, want %q", rec.Vendor, tt.want)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso", "Shop\n2024-01-27\nTotal 10.00", "2024-01-27"},
		{"dd/mm/yyyy", "Shop\n27/01/2024\nTotal 10.00", "2024-01-27"},
		{"dd-mm-yyyy", "Shop\n27-01-2024\nTotal 10.00", "2024-01-27"},
		{"iso wins over slash", "Shop\n27/01/2024 and 2023-12-31", "2023-12-31"},
		{"fallback to today", "Shop\nTotal 10.00", "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(context.Background(), tt.text)
			if rec.Date != tt.want {
				t.Errorf("Date = %q, want %q", rec.Date, tt.want)
			}
		})
	}
}

func TestScanFinancials(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		name         string
		text         string
		wantAmount   float64
		wantTax      float64
		wantSubtotal float64
	}{
		{
			name:         "last total wins",
			text:         "Shop Here\nTotal 50.00\nGrand Total 55.00",
			wantAmount:   55.00,
			wantTax:      0,
			wantSubtotal: 55.00,
		},
		{
			name:         "split cgst sgst sums",
			text:         "Shop Here\nSub Total 100.00\nCGST 4.00\nSGST 4.00\nTotal 108.00",
			wantAmount:   108.00,
			wantTax:      8.00,
			wantSubtotal: 100.00,
		},
		{
			name:         "split integer cents",
			text:         "Shop Here\nTOTAL 120 50",
			wantAmount:   120.50,
			wantTax:      0,
			wantSubtotal: 120.50,
		},
		{
			name:         "decimal token preferred over integers",
			text:         "Shop Here\nTotal 2 items 45.50",
			wantAmount:   45.50,
			wantTax:      0,
			wantSubtotal: 45.50,
		},
		{
			name:         "oversized tax discarded",
			text:         "Shop Here\nTotal 50.00\nGST 100.00",
			wantAmount:   50.00,
			wantTax:      0,
			wantSubtotal: 50.00,
		},
		{
			name:         "tax invoice line ignored for tax",
			text:         "Shop Here\nTax Invoice 445566\nSub Total 100.00\nTotal 108.00\nGST 8.00",
			wantAmount:   108.00,
			wantTax:      8.00,
			wantSubtotal: 100.00,
		},
		{
			name:         "max decimal token fallback",
			text:         "Shop Here\nCandy 10.00\nSoda 12.50",
			wantAmount:   12.50,
			wantTax:      0,
			wantSubtotal: 10.00,
		},
		{
			name:         "subtotal derived from total minus tax",
			text:         "Shop Here\nGST 8.00\nTotal 108.00",
			wantAmount:   108.00,
			wantTax:      8.00,
			wantSubtotal: 100.00,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(context.Background(), tt.text)
			if rec.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", rec.Amount, tt.wantAmount)
			}
			if rec.Tax != tt.wantTax {
				t.Errorf("Tax = %v, want %v", rec.Tax, tt.wantTax)
			}
			if rec.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal = %v, want %v", rec.Subtotal, tt.wantSubtotal)
			}
		})
	}
}

func TestExtractItems(t *testing.T) {
	p := fixedParser()

	t.Run("duplicates collapse", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\nCoffee 5.00\nCoffee 5.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Coffee", Price: 5.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})

	t.Run("price above total rejected", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\nCoffee 5.00\nWidget 99.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Coffee", Price: 5.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})

	t.Run("quantity breakdown line skipped", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\n2 x 5 10.00\nCoffee 5.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Coffee", Price: 5.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})

	t.Run("financial keyword line skipped", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\nCoffee 5.00\nChange 15.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Coffee", Price: 5.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})

	t.Run("short name rejected", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\nAB 5.00\nCoffee 6.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Coffee", Price: 6.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		rec := p.Parse(context.Background(), "Corner Shop\nZebra Toy 9.00\nApple 3.00\nTotal 20.00")
		want := []models.LineItem{{Name: "Zebra Toy", Price: 9.00}, {Name: "Apple", Price: 3.00}}
		if !reflect.DeepEqual(rec.Items, want) {
			t.Errorf("Items = %+v, want %+v", rec.Items, want)
		}
	})
}

func TestExtractPayment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.PaymentMethod
	}{
		{"cash", "Shop Here\nPaid in CASH\nTotal 10.00", models.PaymentCash},
		{"visa", "Shop Here\nVISA ****1234\nTotal 10.00", models.PaymentCard},
		{"upi", "Shop Here\nUPI ref 8877\nTotal 10.00", models.PaymentUPI},
		{"unknown", "Shop Here\nTotal 10.00", models.PaymentUnknown},
	}
	p := fixedParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Parse(context.Background(), tt.text)
			if rec.Payment != tt.want {
				t.Errorf("Payment = %q, want %q", rec.Payment, tt.want)
			}
		})
	}
}

type stubExtractor struct {
	ents Entities
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, text string) (Entities, error) {
	return s.ents, s.err
}

func TestEntityFallback(t *testing.T) {
	t.Run("fills missing vendor and date", func(t *testing.T) {
		p := fixedParser().WithEntityExtractor(&stubExtractor{
			ents: Entities{Org: "Blue Bottle", Date: "27/01/2024", Time: "9:30 AM"},
		})
		rec := p.Parse(context.Background(), "ab\ncd\nef\n5.00")
		if rec.Vendor != "Blue Bottle" {
			t.Errorf("Vendor = %q, want Blue Bottle", rec.Vendor)
		}
		if rec.Date != "2024-01-27" {
			t.Errorf("Date = %q, want 2024-01-27", rec.Date)
		}
		if rec.Time != "09:30 AM" {
			t.Errorf("Time = %q, want 09:30 AM", rec.Time)
		}
	})

	t.Run("regex hits are not overridden", func(t *testing.T) {
		p := fixedParser().WithEntityExtractor(&stubExtractor{
			ents: Entities{Org: "Blue Bottle", Date: "01/01/2020"},
		})
		rec := p.Parse(context.Background(), "Acme Stores\n2024-01-27\nTotal 10.00")
		if rec.Vendor != "Acme Stores" {
			t.Errorf("Vendor = %q, want Acme Stores", rec.Vendor)
		}
		if rec.Date != "2024-01-27" {
			t.Errorf("Date = %q, want 2024-01-27", rec.Date)
		}
	})

	t.Run("extractor failure keeps defaults", func(t *testing.T) {
		p := fixedParser().WithEntityExtractor(&stubExtractor{err: errors.New("model unavailable")})
		rec := p.Parse(context.Background(), "ab\ncd\nef\n5.00")
		if rec.Vendor != "Unknown Vendor" {
			t.Errorf("Vendor = %q, want Unknown Vendor", rec.Vendor)
		}
	})
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		vendor string
		want   models.Category
	}{
		{"vendor keyword wins", "uber ride downtown", "Apollo Pharmacy", models.CategoryMedical},
		{"text keyword", "Receipt\nmovie ticket 12.00", "Plain Vendor", models.CategoryEntertainment},
		{"vendor blocks text match", "Receipt\nmovie ticket 12.00", "Acme Stores", models.CategoryGrocery},
		{"uncategorized", "nothing matches here", "Plain Vendor", models.CategoryUncategorized},
		{"utility", "electricity charges", "City Power Board", models.CategoryUtility},
		{"food", "order 45", "Night Cafe", models.CategoryFood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectCategory(tt.text, tt.vendor)
			if got != tt.want {
				t.Errorf("detectCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{45.678, 45.68},
		{1.004, 1.0},
		{0, 0},
		{99.999, 100},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"45.00", 45},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := cleanAmount(tt.in); got != tt.want {
			t.Errorf("cleanAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
