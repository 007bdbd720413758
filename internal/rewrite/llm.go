package rewrite

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/logger"
)

// LLM rewrites explanation bullets with a single bounded model call per
// draft. Any failure, including unparseable output, degrades to passthrough.
type LLM struct {
	model   llms.Model
	timeout time.Duration
	log     *logger.Logger
}

// NewLLM creates an OpenAI-backed rewriter from configuration.
func NewLLM(cfg config.RewriterConfig, log *logger.Logger) (*LLM, error) {
	model, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}
	return &LLM{model: model, timeout: cfg.Timeout, log: log}, nil
}

// NewLLMWithModel wires an existing model, used by tests.
func NewLLMWithModel(model llms.Model, timeout time.Duration, log *logger.Logger) *LLM {
	return &LLM{model: model, timeout: timeout, log: log}
}

type topicBullets struct {
	TopicName   string   `json:"topic_name"`
	Explanation []string `json:"explanation"`
}

// Rewrite sends every topic's bullets to the model in one call and applies
// the rewritten bullets positionally. Topics the model drops, reorders, or
// pads keep their original bullets.
func (l *LLM) Rewrite(ctx context.Context, req Request) []domain.TopicNote {
	if len(req.Notes) == 0 {
		return req.Notes
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	payload := make([]topicBullets, 0, len(req.Notes))
	for _, n := range req.Notes {
		payload = append(payload, topicBullets{TopicName: n.TopicName, Explanation: n.Explanation})
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		l.log.WithError(err).Warn("rewrite skipped, could not encode draft")
		return req.Notes
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt(req.Language, req.Style)),
		llms.TextParts(llms.ChatMessageTypeHuman, string(encoded)),
	}
	resp, err := l.model.GenerateContent(ctx, messages)
	if err != nil {
		l.log.WithError(err).Warn("rewrite failed, returning draft unchanged")
		return req.Notes
	}
	if len(resp.Choices) == 0 {
		l.log.Warn("rewrite returned no choices, returning draft unchanged")
		return req.Notes
	}

	var rewritten []topicBullets
	if err := json.Unmarshal([]byte(extractJSON(resp.Choices[0].Content)), &rewritten); err != nil {
		l.log.WithError(err).Warn("rewrite output unparseable, returning draft unchanged")
		return req.Notes
	}
	if len(rewritten) != len(req.Notes) {
		l.log.Warn("rewrite changed topic count, returning draft unchanged",
			"want", len(req.Notes), "got", len(rewritten))
		return req.Notes
	}

	out := make([]domain.TopicNote, len(req.Notes))
	copy(out, req.Notes)
	for i := range out {
		bullets := rewritten[i].Explanation
		if len(bullets) == 0 {
			continue
		}
		// A topic's bullet count may only shrink.
		if len(bullets) > len(out[i].Explanation) {
			bullets = bullets[:len(out[i].Explanation)]
		}
		out[i].Explanation = bullets
	}
	return out
}

func systemPrompt(language domain.Language, style domain.Style) string {
	var b strings.Builder
	b.WriteString("You rewrite study-note bullet points for engineering students. ")
	b.WriteString("The input is a JSON array of {topic_name, explanation} objects. ")
	b.WriteString("Return ONLY a JSON array of the same shape, same length, topics in the same order. ")
	b.WriteString("Rewrite only the explanation strings; never rename topics, never add bullets.\n")

	switch style {
	case domain.StyleExam:
		b.WriteString("Style: crisp, exam-oriented phrasing. Lead key bullets with 'Exam focus:' where a point is likely to be tested.\n")
	default:
		b.WriteString("Style: simple, conversational phrasing a first-year student follows easily.\n")
	}
	switch language {
	case domain.LanguageHinglish:
		b.WriteString("Language: Hinglish - natural Hindi-English code-switching in Latin script, keeping technical terms in English.\n")
	default:
		b.WriteString("Language: plain English.\n")
	}
	return b.String()
}

// extractJSON trims markdown code fences the model may wrap around its output.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
