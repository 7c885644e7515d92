// Package insight answers natural-language questions about the loaded
// portfolio by forwarding a bounded data snapshot to an LLM. Results are
// always displayable strings: failures come back as "Error: ..." text,
// never as errors to the caller.
package insight

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"delivery_insights/pkg/core/agent"
	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/prompt"
	"delivery_insights/pkg/core/rollup"
	"delivery_insights/pkg/core/store"
	"delivery_insights/pkg/core/utils"
)

// promptID is the optional template override in the prompt library.
const promptID = "insight.ask"

// agentType keys the provider/model override in config/models.yaml.
const agentType = "insight"

const askTimeout = 60 * time.Second

const systemPrompt = `You are a data analytics assistant for a software delivery tracking portfolio.
Answer the user's question based only on the provided data context.
Respond with a JSON object: {"answer": "<concise answer>", "highlights": ["<supporting fact>", ...]}.
Return ONLY valid JSON, no markdown or extra text.`

// Answer is the structured reply the assistant asks the model for.
type Answer struct {
	Answer     string   `json:"answer"`
	Highlights []string `json:"highlights"`
}

// Assistant ties the agent manager to the session snapshot. History is
// optional; when nil, answers are simply not recorded.
type Assistant struct {
	mgr     *agent.Manager
	history *store.InsightRepo
}

func NewAssistant(mgr *agent.Manager, history *store.InsightRepo) *Assistant {
	return &Assistant{mgr: mgr, history: history}
}

// Ask returns a displayable answer for the question. The network call
// carries its own timeout; every failure mode is converted into an
// error string so callers never branch on error.
func (a *Assistant) Ask(ctx context.Context, question string, snap *dataset.Snapshot) string {
	if snap == nil {
		return "Error: no dataset loaded"
	}
	if strings.TrimSpace(question) == "" {
		return "Error: empty question"
	}

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	sys := systemPrompt
	if t, ok := prompt.Get().Lookup(promptID); ok && t.SystemPrompt != "" {
		sys = t.SystemPrompt
	}

	userPrompt := renderPrompt(question, BuildDataContext(snap))

	raw, err := a.mgr.ExecutePrompt(ctx, agentType, userPrompt, sys, nil)
	if err != nil {
		return fmt.Sprintf("Error querying the insight provider: %v", err)
	}

	answer := parseAnswer(raw)

	if a.history != nil {
		if err := a.history.Save(context.Background(), snap.Generation, question, answer); err != nil {
			log.Printf("insight history save failed: %v", err)
		}
	}

	return answer
}

// History returns the most recently recorded Q&A pairs, newest first.
func (a *Assistant) History(ctx context.Context, limit int) ([]store.HistoryEntry, error) {
	if a.history == nil {
		return nil, fmt.Errorf("insight history not enabled")
	}
	return a.history.Recent(ctx, limit)
}

// renderPrompt prefers the loaded template so wording can change without
// a rebuild; the builtin prompt covers a missing or broken template.
func renderPrompt(question, dataContext string) string {
	if t, ok := prompt.Get().Lookup(promptID); ok && t.UserTmpl != "" {
		rendered, err := t.RenderUser(map[string]interface{}{
			"Question":    question,
			"DataContext": dataContext,
		})
		if err == nil {
			return rendered
		}
		log.Printf("prompt template %s render failed: %v", promptID, err)
	}
	return buildPrompt(question, dataContext)
}

func buildPrompt(question, dataContext string) string {
	return fmt.Sprintf("Question: %s\n\nData Context:\n%s\n\nProvide a concise and accurate response based only on the data provided.", question, dataContext)
}

// parseAnswer decodes the structured reply leniently; when the model
// ignored the JSON instruction the raw text is shown with any code
// fences stripped.
func parseAnswer(raw string) string {
	var ans Answer
	if err := utils.DecodeLenient(raw, &ans); err != nil || ans.Answer == "" {
		return utils.CleanMarkdown(raw)
	}
	if len(ans.Highlights) == 0 {
		return ans.Answer
	}
	var b strings.Builder
	b.WriteString(ans.Answer)
	b.WriteString("\n")
	for _, h := range ans.Highlights {
		b.WriteString("\n- ")
		b.WriteString(h)
	}
	return b.String()
}

// BuildDataContext serializes the portfolio views the model needs:
// the per-project overview and the milestone completion table. Record
// level detail is deliberately left out to keep the prompt bounded.
func BuildDataContext(snap *dataset.Snapshot) string {
	var b strings.Builder

	b.WriteString("Projects overview:\n")
	for _, row := range rollup.Overview(snap) {
		fmt.Fprintf(&b, "- %s: %d developments; stages [%s]; process areas [%s]; dev leads [%s]; FUT [%s]\n",
			row.ProjectName, row.Total, row.Stages, row.ProcessAreas, row.DevLeads, row.FUTStatus)
	}

	b.WriteString("\nMilestone completion:\n")
	for _, row := range rollup.Milestones(snap) {
		fmt.Fprintf(&b, "- %s:", row.ProjectName)
		for _, cp := range rollup.Checkpoints {
			cell := row.Checkpoints[cp]
			fmt.Fprintf(&b, " %s %s;", cp, cell.Display)
		}
		b.WriteString("\n")
	}

	return b.String()
}
