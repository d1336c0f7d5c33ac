// Package commentary produces a short Korean remark on a correlation result,
// from an LLM when one is reachable and from fixed rules otherwise.
package commentary

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	OriginLLM      = "llm"
	OriginFallback = "fallback"

	temperature = 0.4
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Recorder counts commentaries by origin.
type Recorder interface {
	RecordCommentary(origin string)
}

// Payload describes the correlation result to comment on.
type Payload struct {
	Source1   string
	Source2   string
	R         float64
	N         int
	StartDate string
	EndDate   string
}

// Result is what the commentary endpoint returns.
type Result struct {
	Text      string `json:"llmInterpretation"`
	Origin    string `json:"source"`
	Strength  string `json:"strength"`
	Direction string `json:"direction"`
}

type Service struct {
	tracer   trace.Tracer
	llm      LLMClient
	model    string
	timeout  time.Duration
	recorder Recorder
}

// NewService builds a commentary service. A nil llm makes every call use the
// rule-based fallback.
func NewService(tracer trace.Tracer, llm LLMClient, model string, timeout time.Duration, recorder Recorder) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{
		tracer:   tracer,
		llm:      llm,
		model:    model,
		timeout:  timeout,
		recorder: recorder,
	}
}

// Interpret never fails: any LLM problem downgrades to the fallback text.
func (s *Service) Interpret(ctx context.Context, p Payload) Result {
	ctx, span := s.tracer.Start(ctx, "commentary.interpret")
	defer span.End()
	span.SetAttributes(attribute.Int("n", p.N), attribute.Float64("r", p.R))

	strength, direction := Classify(p.R)
	res := Result{Strength: strength, Direction: direction}

	text, err := s.generate(ctx, p)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("llm commentary unavailable, using fallback")
		res.Text = FallbackText(p)
		res.Origin = OriginFallback
	} else {
		res.Text = text
		res.Origin = OriginLLM
	}

	span.SetAttributes(attribute.String("origin", res.Origin))
	if s.recorder != nil {
		s.recorder.RecordCommentary(res.Origin)
	}
	return res
}

func (s *Service) generate(ctx context.Context, p Payload) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("llm client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.callLLM(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(BuildSystemPrompt()),
		openai.UserMessage(BuildUserPrompt(p)),
	})
	if err != nil {
		return "", err
	}

	text := Finalize(reply)
	if text == "" {
		return "", fmt.Errorf("llm reply empty after sanitizing")
	}
	return text, nil
}

func (s *Service) callLLM(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	ctx, span := s.tracer.Start(ctx, "commentary.llm-call")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.model))

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:       s.model,
		Messages:    messages,
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

// NewOpenAIClient builds a client for the OpenAI API or any compatible
// endpoint when baseURL is set.
func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiClient{client: openai.NewClient(opts...)}
}

func (c *openaiClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
