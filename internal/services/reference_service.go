package services

import "github.com/shopspring/decimal"

// BaseCurrency is the currency every rate is quoted against.
const BaseCurrency = "PLN"

const updatedLayout = "2006-01-02 15:04"

var currencyRates = map[string]decimal.Decimal{
	"EUR": decimal.RequireFromString("4.32"),
	"USD": decimal.RequireFromString("3.98"),
	"GBP": decimal.RequireFromString("5.05"),
}

var knowledgeBase = []Article{
	{
		Title:   "Oszczędzanie krok po kroku",
		Summary: "Tworzenie poduszki finansowej i planowanie wydatków.",
		Tags:    []string{"oszczędzanie", "budżet"},
	},
	{
		Title:   "Podstawy inwestowania",
		Summary: "Różnice między funduszami, obligacjami i akcjami.",
		Tags:    []string{"inwestowanie"},
	},
	{
		Title:   "Spłata długów z głową",
		Summary: "Metody śnieżnej kuli i lawiny oraz unikanie spirali zadłużenia.",
		Tags:    []string{"długi"},
	},
	{
		Title:   "Budżetowanie 50/30/20",
		Summary: "Model budżetu, który pomaga odzyskać kontrolę nad pieniędzmi.",
		Tags:    []string{"budżetowanie"},
	},
}

// referenceService serves hardcoded rates and articles. Nothing is fetched.
type referenceService struct {
	now Clock
}

// NewReferenceService creates a new ReferenceServicer.
func NewReferenceService(now Clock) ReferenceServicer {
	if now == nil {
		now = utcNow
	}
	return &referenceService{now: now}
}

// CurrencyRates returns the fixed rate table stamped with the call time.
func (s *referenceService) CurrencyRates() CurrencySnapshot {
	rates := make(map[string]decimal.Decimal, len(currencyRates))
	for code, rate := range currencyRates {
		rates[code] = rate
	}
	return CurrencySnapshot{
		Base:    BaseCurrency,
		Rates:   rates,
		Updated: s.now().UTC().Format(updatedLayout),
	}
}

// Knowledge returns a copy of the knowledge base.
func (s *referenceService) Knowledge() []Article {
	articles := make([]Article, len(knowledgeBase))
	copy(articles, knowledgeBase)
	return articles
}
