// Package parser turns raw OCR text into a structured receipt record.
// Every field has a documented fallback, so Parse always produces a
// record regardless of how noisy the input is.
package parser

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"receiptly/internal/models"
)

const (
	defaultVendor  = "Unknown Vendor"
	notAvailable   = "N/A"
	isoDateLayout  = "2006-01-02"
	timeOutLayout  = "03:04 PM"
	maxVendorLines = 3
)

// genericHeaders are receipt headings that must not be mistaken for a
// vendor name when scanning the top of the receipt.
var genericHeaders = map[string]bool{
	"tax invoice":    true,
	"cash receipt":   true,
	"bill of supply": true,
	"estimate":       true,
	"original":       true,
}

// billIDPattern pairs a regex with the capture group holding the candidate ID.
type billIDPattern struct {
	re    *regexp.Regexp
	group int
}

// datePattern pairs a regex with the layout used to reparse its match.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

// Parser extracts structured receipt data from OCR text.
type Parser struct {
	billIDPatterns []billIDPattern
	datePatterns   []datePattern
	timePattern    *regexp.Regexp

	totalLine    *regexp.Regexp
	taxLine      *regexp.Regexp
	subtotalLine *regexp.Regexp

	qtyLine      *regexp.Regexp
	financialKey *regexp.Regexp
	itemLine     *regexp.Regexp
	numberToken  *regexp.Regexp

	// entities is an optional last-resort extractor consulted only for
	// vendor/date/time fields the regex stages left at their defaults.
	entities EntityExtractor

	// Injection points for deterministic tests.
	now       func() time.Time
	newBillID func() string
}

// New creates a receipt parser with all rule tables compiled.
func New() *Parser {
	return &Parser{
		billIDPatterns: []billIDPattern{
			{regexp.MustCompile(`(?i)(bill|invoice|receipt|txn|trans)\s*(no|id|#)?\s*[:.\-]?\s*([a-zA-Z0-9/-]+)`), 3},
			{regexp.MustCompile(`#\s*([0-9]+)`), 1},
		},
		datePatterns: []datePattern{
			{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), "2006-01-02"},
			{regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`), "02/01/2006"},
			{regexp.MustCompile(`\b(\d{2}-\d{2}-\d{4})\b`), "02-01-2006"},
		},
		timePattern: regexp.MustCompile(`(\d{1,2}:\d{2})\s?(AM|PM|am|pm)`),

		totalLine:    regexp.MustCompile(`(?i)\b(total|tot|due|payable)\b`),
		taxLine:      regexp.MustCompile(`(?i)\b(tax|gst|vat|cgst|sgst)\b`),
		subtotalLine: regexp.MustCompile(`(?i)\b(sub\s*total|sub\s*ttl|sub\s*tot|stot|net\s*amount|net\s*amt|taxable|sub)\b`),

		qtyLine:      regexp.MustCompile(`\d+\s*x\s*\d+`),
		financialKey: regexp.MustCompile(`(?i)(total|subtotal|subttl|tax|vat|gst|change|cash|card|due)`),
		itemLine:     regexp.MustCompile(`^(.+?)\s+(\d+[.,]?\d*)$`),
		numberToken:  regexp.MustCompile(`\d+[.,]?\d*`),

		now: time.Now,
		newBillID: func() string {
			return fmt.Sprintf("BILL-%06d", 100000+rand.Intn(900000))
		},
	}
}

// WithEntityExtractor attaches a named-entity fallback used when the
// regex stages cannot resolve vendor, date or time.
func (p *Parser) WithEntityExtractor(e EntityExtractor) *Parser {
	p.entities = e
	return p
}

// Parse converts raw OCR text into a receipt record. It never fails:
// unresolvable fields get their documented defaults. Later stages do
// not override earlier hits.
func (p *Parser) Parse(ctx context.Context, text string) *models.Receipt {
	lines := splitLines(text)

	rec := &models.Receipt{
		Vendor:  defaultVendor,
		Time:    notAvailable,
		Payment: models.PaymentUnknown,
	}

	rec.BillID = p.extractBillID(lines)
	rec.Vendor = p.extractVendor(lines)

	date, dateFound := p.extractDate(text)
	rec.Date = date

	clock, timeFound := p.extractTime(lines)
	rec.Time = clock

	rec.Payment = extractPayment(text)

	acc := p.scanFinancials(lines)

	rec.Items = p.extractItems(lines, acc.total)

	// Reconstruction priority: subtotal from summed items first, then
	// total from subtotal+tax, then subtotal from total-tax.
	if acc.subtotal == 0 && len(rec.Items) > 0 {
		var sum float64
		for _, it := range rec.Items {
			sum += it.Price
		}
		acc.subtotal = sum
	}
	if acc.total == 0 && acc.subtotal > 0 {
		acc.total = acc.subtotal + acc.tax
	}
	if acc.subtotal == 0 && acc.total > 0 {
		acc.subtotal = acc.total - acc.tax
	}

	rec.Subtotal = round2(acc.subtotal)
	rec.Tax = round2(acc.tax)
	rec.Amount = round2(acc.total)

	rec.Category = detectCategory(text, rec.Vendor)

	// Last-resort NER stage for fields still at their defaults.
	if p.entities != nil && (rec.Vendor == defaultVendor || !dateFound || !timeFound) {
		p.applyEntities(ctx, text, rec, dateFound, timeFound)
	}

	return rec
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// extractBillID scans lines in order against the ID patterns; the first
// candidate longer than 2 characters wins. A missing ID is synthesized.
func (p *Parser) extractBillID(lines []string) string {
	for _, l := range lines {
		for _, bp := range p.billIDPatterns {
			m := bp.re.FindStringSubmatch(l)
			if m == nil {
				continue
			}
			candidate := m[bp.group]
			if len(candidate) > 2 {
				return candidate
			}
		}
	}
	return p.newBillID()
}

// extractVendor takes the first of the top lines that is not a generic
// receipt heading and is long enough to be a name.
func (p *Parser) extractVendor(lines []string) string {
	for i, l := range lines {
		if i >= maxVendorLines {
			break
		}
		if !genericHeaders[strings.ToLower(l)] && len(l) > 3 {
			return l
		}
	}
	return defaultVendor
}

// extractDate tries each date pattern against the full text in order
// and reformats the first hit to ISO. No hit falls back to today,
// which deliberately fabricates a plausible date rather than failing.
func (p *Parser) extractDate(text string) (string, bool) {
	for _, dp := range p.datePatterns {
		m := dp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, err := time.Parse(dp.layout, m[1]); err == nil {
			return t.Format(isoDateLayout), true
		}
	}
	return p.now().Format(isoDateLayout), false
}

func (p *Parser) extractTime(lines []string) (string, bool) {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, l := range lines[:limit] {
		m := p.timePattern.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		raw := m[1] + " " + strings.ToUpper(m[2])
		if norm, ok := normalizeTime(raw); ok {
			return norm, true
		}
	}
	return notAvailable, false
}

func normalizeTime(raw string) (string, bool) {
	for _, layout := range []string{"3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t.Format(timeOutLayout), true
		}
	}
	return "", false
}

func extractPayment(text string) models.PaymentMethod {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "cash"):
		return models.PaymentCash
	case strings.Contains(lower, "card"),
		strings.Contains(lower, "visa"),
		strings.Contains(lower, "master"),
		strings.Contains(lower, "credit"),
		strings.Contains(lower, "debit"):
		return models.PaymentCard
	case strings.Contains(lower, "upi"):
		return models.PaymentUPI
	}
	return models.PaymentUnknown
}

// extractItems collects "name price" lines that are neither quantity
// breakdown lines nor financial summary lines. The price ceiling keeps
// misparsed totals out of the item list.
func (p *Parser) extractItems(lines []string, total float64) []models.LineItem {
	var items []models.LineItem
	seen := make(map[string]bool)

	for _, l := range lines {
		if p.qtyLine.MatchString(l) {
			continue
		}
		if p.financialKey.MatchString(l) {
			continue
		}
		m := p.itemLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		price := cleanAmount(m[2])
		if price <= 0 || price >= total || len(name) <= 2 {
			continue
		}
		price = round2(price)
		key := fmt.Sprintf("%s-%.2f", strings.ToLower(name), price)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, models.LineItem{Name: name, Price: price})
	}
	return items
}

func (p *Parser) applyEntities(ctx context.Context, text string, rec *models.Receipt, dateFound, timeFound bool) {
	ents, err := p.entities.Extract(ctx, text)
	if err != nil {
		// The NER stage is best effort; defaults already stand.
		return
	}
	if rec.Vendor == defaultVendor && len(ents.Org) > 3 {
		rec.Vendor = ents.Org
	}
	if !dateFound && ents.Date != "" {
		if norm, ok := normalizeEntityDate(ents.Date); ok {
			rec.Date = norm
		}
	}
	if !timeFound && ents.Time != "" {
		if norm, ok := normalizeTime(ents.Time); ok {
			rec.Time = norm
		}
	}
}

// normalizeEntityDate coerces the free-form date strings an entity
// extractor returns into ISO format.
func normalizeEntityDate(raw string) (string, bool) {
	layouts := []string{
		"2006-01-02",
		"02/01/2006",
		"02/01/06",
		"01/02/2006",
		"01/02/06",
		"2 Jan 2006",
		"2 January 2006",
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(isoDateLayout), true
		}
	}
	return "", false
}
