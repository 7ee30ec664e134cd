package repository

import "github.com/tiagofoil/valuerank/internal/domain"

// FallbackModels returns the embedded static snapshot: known models
// with their last-verified OpenRouter prices. It is the injected
// tier-of-last-resort, served only when both database tiers fail, so
// the dashboard never renders empty just because the database is down.
// Benchmark fields are deliberately absent here; only the scraper and
// admin writes populate them.
func FallbackModels() []domain.Model {
	return []domain.Model{
		snapshot("openai/gpt-5", "GPT-5", "OpenAI", 400000, 1.25, 10.00),
		snapshot("openai/gpt-5.1", "GPT-5.1", "OpenAI", 400000, 1.25, 10.00),
		snapshot("openai/gpt-5.2", "GPT-5.2", "OpenAI", 400000, 1.75, 14.00),
		snapshot("openai/gpt-4o", "GPT-4o", "OpenAI", 128000, 2.50, 10.00),
		snapshot("openai/o1", "o1", "OpenAI", 200000, 15.00, 60.00),
		snapshot("openai/o1-pro", "o1 Pro", "OpenAI", 200000, 150.00, 600.00),
		snapshot("openai/o3-mini", "o3-mini", "OpenAI", 200000, 1.10, 4.40),
		snapshot("anthropic/claude-opus-4", "Claude Opus 4", "Anthropic", 200000, 15.00, 75.00),
		snapshot("anthropic/claude-opus-4.5", "Claude Opus 4.5", "Anthropic", 200000, 5.00, 25.00),
		snapshot("anthropic/claude-opus-4.6", "Claude Opus 4.6", "Anthropic", 1000000, 5.00, 25.00),
		snapshot("anthropic/claude-sonnet-4", "Claude Sonnet 4", "Anthropic", 1000000, 3.00, 15.00),
		snapshot("anthropic/claude-sonnet-4.5", "Claude Sonnet 4.5", "Anthropic", 1000000, 3.00, 15.00),
		snapshot("google/gemini-2.5-pro", "Gemini 2.5 Pro", "Google", 1048576, 1.25, 10.00),
		snapshot("google/gemini-2.5-flash", "Gemini 2.5 Flash", "Google", 1048576, 0.30, 2.50),
		snapshot("deepseek/deepseek-v3.2", "DeepSeek V3.2", "DeepSeek", 163840, 0.26, 0.38),
		snapshot("deepseek/deepseek-r1", "DeepSeek R1", "DeepSeek", 64000, 0.70, 2.50),
		snapshot("meta-llama/llama-4-scout", "Llama 4 Scout", "Meta", 327680, 0.08, 0.30),
		snapshot("meta-llama/llama-4-maverick", "Llama 4 Maverick", "Meta", 1048576, 0.15, 0.60),
		snapshot("moonshotai/kimi-k2", "Kimi K2", "Moonshot", 131072, 0.50, 2.40),
		snapshot("moonshotai/kimi-k2.5", "Kimi K2.5", "Moonshot", 262144, 0.23, 3.00),
		snapshot("mistralai/mistral-large", "Mistral Large", "Mistral", 128000, 2.00, 6.00),
		snapshot("mistralai/mistral-medium-3", "Mistral Medium 3", "Mistral", 131072, 0.40, 2.00),
		snapshot("mistralai/mistral-medium-3.1", "Mistral Medium 3.1", "Mistral", 131072, 0.40, 2.00),
		snapshot("minimax/minimax-m2.5", "MiniMax M2.5", "MiniMax", 196608, 0.30, 1.10),
	}
}

func snapshot(id, name, provider string, contextLength int, prompt, completion float64) domain.Model {
	return domain.Model{
		ID:            id,
		Name:          name,
		Provider:      provider,
		ContextLength: contextLength,
		Pricing:       domain.Pricing{Prompt: prompt, Completion: completion},
		Source:        "snapshot",
	}
}
