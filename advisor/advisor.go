// Package advisor asks a Gemini model to propose next week's trades.
//
// The advisor is a collaborator outside the ledger engine: it produces a
// trades JSON document in the exact schema the engine's DecodeTrades
// consumes, and nothing it returns is trusted until reconciliation validates
// it against actual fills.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Advisor holds one chat session with the model.
type Advisor struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// New creates an Advisor for the given asset class ("equity" or "crypto").
// The instrument key of the produced document follows the class.
func New(class string) *Advisor {
	key := "ticker"
	if class == "crypto" {
		key = "symbol"
	}
	instruction := fmt.Sprintf(`
	You advise a small weekly-contribution portfolio. Given the current
	holdings CSV and a candidates document, propose the trades for this week.

	Reply with a single JSON object and nothing else, in this exact schema:
	{"trades": [{"action": "buy"|"sell", %q: "<instrument>", "qty": <number>}]}

	Rules: fractional quantities are allowed; never sell more than is held;
	an empty week is {"trades": []}. Do not include prices, they come from
	the executed fills.`, key)

	return &Advisor{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	}
}

// Start opens the chat session.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// SuggestTrades sends the current holdings and candidates and returns the
// model's trades JSON document.
func (a *Advisor) SuggestTrades(ctx context.Context, holdingsCSV, candidatesJSON string, budgetCAD float64) (string, error) {
	prompt := fmt.Sprintf(
		"Weekly budget: %.2f CAD.\n\nCurrent holdings CSV:\n%s\n\nCandidates:\n%s\n",
		budgetCAD, holdingsCSV, candidatesJSON)

	resp, err := a.chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from advisor")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	return stripFences(text), nil
}

// stripFences removes a ```json ... ``` wrapper if the model added one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
