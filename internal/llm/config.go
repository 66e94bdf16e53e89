package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPlan    TaskType = "plan"
	TaskGuide   TaskType = "guide"
	TaskReflect TaskType = "reflect"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the assistant subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the assistant disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "https://api.openai.com/v1",
		Model:      "gpt-4o-mini",
		TimeoutMs:  20000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan:    {Temperature: 0.7, MaxTokens: 4096, TimeoutMs: 45000},
			TaskGuide:   {Temperature: 0.5, MaxTokens: 1024, TimeoutMs: 15000},
			TaskReflect: {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads WANDER_LLM_* environment variables, falling back to
// defaults for any unset or malformed value.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("WANDER_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WANDER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WANDER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("WANDER_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("WANDER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WANDER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WANDER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPlan, "WANDER_LLM_PLAN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskGuide, "WANDER_LLM_GUIDE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskReflect, "WANDER_LLM_REFLECT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a task in milliseconds.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	n, err := strconv.Atoi(os.Getenv(envName))
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
