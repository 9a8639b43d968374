// Package writer drafts Vietnamese news articles and outlines from a topic,
// a hot topic, source articles or an uploaded document.
package writer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/prompt"
)

const writeModel = "gpt-4o"

type Request struct {
	InputMethod    string `json:"inputMethod"`
	InputContent   string `json:"inputContent" validate:"required"`
	InputContext   string `json:"inputContext"`
	ArticleType    string `json:"articleType"`
	OutputType     string `json:"outputType"`
	WritingTone    string `json:"writingTone"`
	TargetAudience string `json:"targetAudience"`
}

// Result holds either Outline and Article (output "both" with valid JSON) or
// Content.
type Result struct {
	Outline string `json:"outline,omitempty"`
	Article string `json:"article,omitempty"`
	Content string `json:"content,omitempty"`
}

type Writer struct {
	llm llm.Completer
}

func New(completer llm.Completer) *Writer {
	return &Writer{llm: completer}
}

// Write returns prompt.ErrUnknownMethod for an unsupported input method.
func (w *Writer) Write(ctx context.Context, req Request) (*Result, error) {
	p, err := prompt.Writing(prompt.WritingRequest{
		Method:   req.InputMethod,
		Content:  req.InputContent,
		Context:  req.InputContext,
		Spec:     prompt.Article(req.ArticleType),
		Tone:     prompt.Tone(req.WritingTone),
		Audience: prompt.Audience(req.TargetAudience),
		Output:   req.OutputType,
	})
	if err != nil {
		return nil, err
	}
	if w.llm == nil {
		return nil, llm.ErrNotConfigured
	}

	logger.Info("AI writing", "method", req.InputMethod, "articleType", req.ArticleType, "output", req.OutputType)

	both := req.OutputType == prompt.OutputBoth
	maxTokens := 2500
	if both {
		maxTokens = 4000
	}
	out, err := w.llm.Complete(ctx, llm.Request{
		System:           p.System,
		User:             p.User,
		Model:            writeModel,
		Temperature:      0.7,
		TopP:             0.9,
		MaxTokens:        maxTokens,
		FrequencyPenalty: 0.1,
		PresencePenalty:  0.1,
		JSON:             both,
	})
	if err != nil {
		return nil, err
	}

	if both {
		return parseBoth(out), nil
	}
	return &Result{Content: out}, nil
}

// parseBoth falls back to plain content when the model ignored the JSON
// format.
func parseBoth(out string) *Result {
	var parsed struct {
		Outline json.RawMessage `json:"outline"`
		Article json.RawMessage `json:"article"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		logger.Warn("writer output is not JSON, returning raw content", "error", err)
		return &Result{Content: out}
	}
	return &Result{Outline: rawText(parsed.Outline), Article: rawText(parsed.Article)}
}

// rawText accepts a JSON string or any other JSON value, which is kept as
// indented JSON text.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.TrimSpace(string(raw))
	}
	pretty, _ := json.MarshalIndent(v, "", "  ")
	return string(pretty)
}
