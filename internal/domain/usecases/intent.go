// Package usecases - intent.go routes queries to specialized tool paths.
package usecases

import (
	"strings"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// IntentClassifier assigns exactly one label from the fixed enumeration.
// It is deterministic and side-effect-free: plain keyword rules, no
// external calls, so classification is cheap on every query.
type IntentClassifier struct{}

// NewIntentClassifier creates a rule-based classifier.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

var (
	priceKeywords    = []string{"price", "ticker", "$", "quote"}
	advisoryKeywords = []string{"should i", "invest", "advice", "plan"}
)

// Classify inspects the raw query text. Unmatched queries default to GENERAL.
func (c *IntentClassifier) Classify(query *entities.Query) entities.IntentLabel {
	text := strings.ToLower(query.Text)
	for _, kw := range priceKeywords {
		if strings.Contains(text, kw) {
			return entities.IntentPrice
		}
	}
	for _, kw := range advisoryKeywords {
		if strings.Contains(text, kw) {
			return entities.IntentAdvisory
		}
	}
	return entities.IntentGeneral
}
