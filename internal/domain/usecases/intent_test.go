package usecases

import (
	"testing"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

func TestIntentClassifier(t *testing.T) {
	cases := []struct {
		query string
		want  entities.IntentLabel
	}{
		{"What is the stock price of Infosys?", entities.IntentPrice},
		{"ticker for apple", entities.IntentPrice},
		{"how much is $TSLA worth", entities.IntentPrice},
		{"Should I invest in index funds?", entities.IntentAdvisory},
		{"Give me advice on my retirement plan", entities.IntentAdvisory},
		{"What does the quarterly report say about revenue?", entities.IntentGeneral},
		{"", entities.IntentGeneral},
	}

	c := NewIntentClassifier()
	for _, tc := range cases {
		got := c.Classify(&entities.Query{ID: "q", Text: tc.query})
		if got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestIntentClassifier_IsDeterministic(t *testing.T) {
	c := NewIntentClassifier()
	query := &entities.Query{ID: "q", Text: "should i invest?"}
	first := c.Classify(query)
	for i := 0; i < 10; i++ {
		if c.Classify(query) != first {
			t.Fatal("classification must be deterministic")
		}
	}
}
