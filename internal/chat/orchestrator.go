package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/zerolog"

	"github.com/askaweather/chat-gateway/internal/config"
	"github.com/askaweather/chat-gateway/internal/dates"
	"github.com/askaweather/chat-gateway/internal/observability"
	"github.com/askaweather/chat-gateway/internal/tools"
)

// Fixed replies for the recovered failure modes. Every failure resolves
// to a well-formed assistant message; nothing here is fatal to the process.
const (
	emptyReplyFallback = "I'm not sure how to help with that."
	tooManyStepsReply  = "I apologize, but I needed too many steps to answer your request."
)

// Orchestrator runs the tool loop: it sends the conversation plus the
// tool schemas to the reasoning engine, executes whatever tool
// invocations come back, feeds the results in, and repeats until the
// engine produces a final answer or the turn ceiling is reached.
type Orchestrator struct {
	engine        Engine
	registry      *tools.Registry
	model         string
	maxTokens     int
	maxTurns      int
	engineTimeout time.Duration
}

// NewOrchestrator wires an orchestrator from its collaborators. The
// engine client's lifecycle belongs to the caller.
func NewOrchestrator(engine Engine, registry *tools.Registry, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		engine:        engine,
		registry:      registry,
		model:         cfg.AnthropicModel,
		maxTokens:     cfg.AnthropicMaxTokens,
		maxTurns:      cfg.MaxTurns,
		engineTimeout: time.Duration(cfg.AnthropicTimeout) * time.Second,
	}
}

// Respond processes a full conversation history and returns exactly one
// assistant message. All run state lives on the stack of this call;
// concurrent runs share nothing.
func (o *Orchestrator) Respond(ctx context.Context, history []Message) Message {
	runID := observability.NewRunID()
	logger := observability.WithRunID(runID)
	metrics := observability.NewRunMetrics(runID)
	metrics.RecordRunStart()
	defer metrics.RecordRunEnd()

	messages := make([]anthropic.Message, 0, len(history))
	for _, m := range history {
		if m.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantTextMessage(m.Content))
		} else {
			messages = append(messages, anthropic.NewUserTextMessage(m.Content))
		}
	}

	system := systemPrompt(dates.Today())
	definitions := o.registry.Definitions()

	for turn := 0; turn < o.maxTurns; turn++ {
		request := anthropic.MessagesRequest{
			Model:     anthropic.Model(o.model),
			System:    system,
			Messages:  messages,
			MaxTokens: o.maxTokens,
			Tools:     definitions,
		}

		metrics.RecordEngineStart()
		reqCtx, cancel := context.WithTimeout(ctx, o.engineTimeout)
		response, err := o.engine.CreateMessages(reqCtx, request)
		cancel()
		metrics.RecordEngineEnd(err == nil)

		if err != nil {
			// Recovered, non-fatal: one failed engine call ends the run.
			logger.Error().Err(err).Int("turn", turn).Msg("reasoning engine request failed")
			metrics.RecordError("engine_request", "chat")
			return Message{
				Role:    RoleAssistant,
				Content: fmt.Sprintf("I'm sorry, I couldn't reach my reasoning service: %v", err),
			}
		}

		if response.StopReason != anthropic.MessagesStopReasonToolUse {
			text := concatText(response.Content)
			if text == "" {
				text = emptyReplyFallback
			}
			logger.Info().Int("turns", turn).Msg("conversation completed")
			return Message{Role: RoleAssistant, Content: text}
		}

		results := o.dispatch(ctx, logger, metrics, response.Content)

		// Transcript fidelity: the engine's raw turn content goes back
		// verbatim, followed by one user message with every tool result.
		messages = append(messages, anthropic.Message{
			Role:    anthropic.RoleAssistant,
			Content: response.Content,
		})
		messages = append(messages, anthropic.Message{
			Role:    anthropic.RoleUser,
			Content: results,
		})
	}

	logger.Warn().Int("limit", o.maxTurns).Msg("turn ceiling reached")
	metrics.RecordTurnLimit()
	return Message{Role: RoleAssistant, Content: tooManyStepsReply}
}

// dispatch executes every tool invocation of one engine turn and returns
// one result block per invocation, in invocation order, tagged with the
// originating IDs. The dispatches are independent network calls and run
// concurrently; the caller must not issue the next engine request until
// all of them finish.
func (o *Orchestrator) dispatch(ctx context.Context, logger zerolog.Logger, metrics *observability.Metrics, content []anthropic.MessageContent) []anthropic.MessageContent {
	var invocations []*anthropic.MessageContentToolUse
	for i := range content {
		if content[i].Type == anthropic.MessagesContentTypeToolUse && content[i].MessageContentToolUse != nil {
			invocations = append(invocations, content[i].MessageContentToolUse)
		}
	}

	results := make([]anthropic.MessageContent, len(invocations))
	var wg sync.WaitGroup
	for i, invocation := range invocations {
		wg.Add(1)
		go func(i int, invocation *anthropic.MessageContentToolUse) {
			defer wg.Done()

			start := time.Now()
			output, err := o.registry.Execute(ctx, invocation.Name, invocation.Input)
			metrics.RecordToolExecution(invocation.Name, time.Since(start), err == nil)

			if err != nil {
				// A failing tool still produces a result block, so the
				// engine sees a complete result set and can narrate the
				// failure instead of desynchronizing the pairing.
				logger.Warn().Err(err).Str("tool", invocation.Name).Msg("tool execution failed")
				metrics.RecordError("tool_execution", "tools")
				payload, _ := json.Marshal(map[string]string{"error": err.Error()})
				results[i] = anthropic.NewToolResultMessageContent(invocation.ID, string(payload), true)
				return
			}

			results[i] = anthropic.NewToolResultMessageContent(invocation.ID, output, false)
		}(i, invocation)
	}
	wg.Wait()

	return results
}

func concatText(content []anthropic.MessageContent) string {
	var sb strings.Builder
	for i := range content {
		if content[i].Type == anthropic.MessagesContentTypeText && content[i].Text != nil {
			sb.WriteString(*content[i].Text)
		}
	}
	return sb.String()
}
