// Package usecases - prompts.go builds the LLM prompts for each answer path.
package usecases

import (
	"strings"
	"time"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// buildDocumentPrompt instructs the model to answer strictly from the
// retrieved chunks, citing nothing outside them.
func buildDocumentPrompt(query string, chunks []entities.ScoredChunk) string {
	var sb strings.Builder
	sb.WriteString("Answer the question strictly using the context below.\n")
	sb.WriteString("If the context does not contain the answer, say so plainly.\n\nContext:\n")
	for _, sc := range chunks {
		sb.WriteString("[Source: ")
		sb.WriteString(sc.Chunk.SourceFile)
		sb.WriteString("]\n")
		sb.WriteString(sc.Chunk.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}

// buildAdvisorPrompt frames the model as a risk-aware financial advisor,
// grounding it in the current date and any document context available.
func buildAdvisorPrompt(query string, chunks []entities.ScoredChunk, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("You are a certified senior financial advisor. Provide balanced, risk-aware guidance.\n\n")
	sb.WriteString("Current date: ")
	sb.WriteString(now.Format("January 2, 2006"))
	sb.WriteString("\nUser query: ")
	sb.WriteString(query)
	sb.WriteString("\n\nDocument context:\n")
	if len(chunks) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, sc := range chunks {
		sb.WriteString(sc.Chunk.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("\nGuidelines:\n")
	sb.WriteString("1. Keep the tone professional and objective.\n")
	sb.WriteString("2. Always state \"Investing involves risk\" when discussing markets.\n")
	sb.WriteString("3. Give clear strategic steps based on the context.\n\n")
	sb.WriteString("Structure: Analysis -> Strategic Advice -> Risk Considerations.")
	return sb.String()
}

// buildWebPrompt condenses raw web search results into a short direct
// answer. Sources are rendered separately, so the model must not repeat
// URLs or site names.
func buildWebPrompt(query, results string) string {
	var sb strings.Builder
	sb.WriteString("Based on the following search results, provide a direct, concise answer to the question.\n")
	sb.WriteString("Do not mention source names or URLs; they are displayed separately.\n\nSearch results:\n")
	sb.WriteString(results)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nProvide a concise answer (1-2 sentences):")
	return sb.String()
}
