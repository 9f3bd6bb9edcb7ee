package parser

import (
	"strings"

	"receiptly/internal/models"
)

// categoryRule is one entry of the ordered keyword table. Order matters:
// the first category whose keywords hit wins, so broader tables sit
// after more specific ones.
type categoryRule struct {
	category models.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{models.CategoryUtility, []string{"power", "electricity", "water", "gas", "bescom", "tata power", "bill", "supply", "electric"}},
	{models.CategoryFood, []string{"restaurant", "cafe", "kitchen", "hotel", "dining", "burger", "pizza", "swiggy", "zomato", "coffee", "tea", "bistro", "foods"}},
	{models.CategoryGrocery, []string{"mart", "super market", "fresh", "store", "vegetable", "fruit", "market", "grocer", "kirana", "basket"}},
	{models.CategoryMedical, []string{"pharmacy", "hospital", "clinic", "doctor", "dr.", "medplus", "apollo", "pharma", "health", "medical"}},
	{models.CategoryTravel, []string{"fuel", "petrol", "diesel", "station", "pump", "uber", "ola", "rapido", "ride", "trip", "travel"}},
	{models.CategoryShopping, []string{"retail", "fashion", "clothing", "trends", "zudio", "apparel", "garment", "mall", "shoe", "footwear"}},
	{models.CategoryEntertainment, []string{"movie", "cinema", "theatre", "show", "entertainment", "game", "fun"}},
}

// detectCategory matches the vendor name against the keyword tables
// first, then the full text. Vendor priority avoids false positives
// from item descriptions deeper in the receipt.
func detectCategory(text, vendor string) models.Category {
	vendorLower := strings.ToLower(vendor)
	for _, rule := range categoryRules {
		if containsAny(vendorLower, rule.keywords) {
			return rule.category
		}
	}

	textLower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if containsAny(textLower, rule.keywords) {
			return rule.category
		}
	}

	return models.CategoryUncategorized
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
