// Package prompt assembles grounded prompts for the answer-generation
// collaborator. Retrieved chunks become numbered context blocks so the
// generator can cite them as [#] with their DocID.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bazarlens/bazarlens/services"
)

const systemInstruction = "You are a helpful e-commerce assistant for users in Bangladesh. " +
	"Answer the user's question based only on the provided context blocks. " +
	"If the information is not in the context, say 'I do not have that information in the provided data.' " +
	"Present your answer clearly, using bullet points for lists of products. " +
	"Cite your sources at the end of relevant sentences using the format `[#]` with the DocID."

// ContextBlock formats one hit as a numbered context block. The block
// number is 1-based.
func ContextBlock(number int, hit services.Hit) string {
	c := hit.Chunk

	var b strings.Builder
	if c.Source != "" {
		fmt.Fprintf(&b, "[%d] (%s) %s - DocID: %s", number, c.Source, c.Title, c.ParentID)
	} else {
		fmt.Fprintf(&b, "[%d] %s - DocID: %s", number, c.Title, c.ParentID)
	}
	b.WriteByte('\n')
	if c.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", c.URL)
	}

	meta := make([]string, 0, 3)
	if c.Category != "" {
		meta = append(meta, "Category: "+c.Category)
	}
	if c.PriceValue != nil {
		meta = append(meta, fmt.Sprintf("PriceValue: %d", int(*c.PriceValue)))
	}
	if c.RatingAverage != nil {
		meta = append(meta, fmt.Sprintf("Rating: %g/5", *c.RatingAverage))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | "))
		b.WriteByte('\n')
	}

	b.WriteString("---\n")
	b.WriteString(c.Text)
	b.WriteByte('\n')
	return b.String()
}

// BuildPrompt produces the system instruction and the user prompt
// (question plus numbered context) for a single-turn generation call.
func BuildPrompt(query string, hits []services.Hit) (system string, user string) {
	blocks := make([]string, 0, len(hits))
	for i, hit := range hits {
		blocks = append(blocks, ContextBlock(i+1, hit))
	}
	user = "Question:\n" + query + "\n\nContext:\n" + strings.Join(blocks, "\n\n")
	return systemInstruction, user
}
