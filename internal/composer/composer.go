package composer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/wander/internal/llm"
)

// Composer turns structured context into narrative excursion content.
type Composer interface {
	// Plan builds one or more excursion plans from ranked candidates.
	Plan(ctx context.Context, pc PlanContext) ([]PlanOption, error)

	// Guide produces guidance for the current zone of an active excursion.
	Guide(ctx context.Context, gc GuideContext) (*Guidance, error)

	// Reflect produces post-excursion reflection questions.
	Reflect(ctx context.Context, rc ReflectContext) (*Reflection, error)
}

type llmComposer struct {
	client llm.Client
}

// NewLLMComposer creates a Composer backed by a chat completion client.
// Every failure is returned to the caller; there is no silent fallback.
func NewLLMComposer(client llm.Client) Composer {
	return &llmComposer{client: client}
}

func (c *llmComposer) Plan(ctx context.Context, pc PlanContext) ([]PlanOption, error) {
	env, err := generate(ctx, c.client, llm.TaskPlan, planSystemPrompt,
		"Here is the planning context:\n\n", pc, validatePlanEnvelope)
	if err != nil {
		return nil, fmt.Errorf("compose plan: %w", err)
	}
	return env.PlanOptions, nil
}

func (c *llmComposer) Guide(ctx context.Context, gc GuideContext) (*Guidance, error) {
	env, err := generate(ctx, c.client, llm.TaskGuide, guideSystemPrompt,
		"Here is the guidance context:\n\n", gc, validateGuideEnvelope)
	if err != nil {
		return nil, fmt.Errorf("compose guidance: %w", err)
	}
	return &env.Guidance, nil
}

func (c *llmComposer) Reflect(ctx context.Context, rc ReflectContext) (*Reflection, error) {
	env, err := generate(ctx, c.client, llm.TaskReflect, reflectSystemPrompt,
		"Here is the session summary:\n\n", rc, validateReflectEnvelope)
	if err != nil {
		return nil, fmt.Errorf("compose reflection: %w", err)
	}
	return &env.Reflection, nil
}

func generate[T any](
	ctx context.Context,
	client llm.Client,
	task llm.TaskType,
	systemPrompt, preamble string,
	payload any,
	validator llm.SchemaValidator[T],
) (T, error) {
	var zero T

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("marshal context: %w", err)
	}

	resp, err := client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: systemPrompt,
		UserPrompt:   preamble + string(payloadJSON),
	})
	if err != nil {
		return zero, err
	}

	return llm.ExtractJSON[T](resp.Text, validator)
}
