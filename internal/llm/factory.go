package llm

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/stellarlinkco/wordbench/internal/config"
)

// NormalizeProvider maps provider aliases to canonical names.
func NormalizeProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "anthropic":
		return "claude"
	default:
		return name
	}
}

// ProviderFor builds a provider from config for the given provider name,
// optionally overriding the configured model. The credential check is a
// precondition: a provider with no usable API key fails here, before any
// prompt is dispatched.
func ProviderFor(cfg *config.Config, providerName string, model string) (Provider, string, error) {
	if cfg == nil {
		return nil, "", errors.New("llm: nil config")
	}

	name := NormalizeProvider(providerName)
	if name == "" {
		name = NormalizeProvider(cfg.LLM.DefaultProvider)
	}
	if name == "" {
		return nil, "", errors.New("llm: missing provider")
	}

	pcfg, ok := cfg.LLM.Providers[name]
	if !ok {
		available := make([]string, 0, len(cfg.LLM.Providers))
		for k := range cfg.LLM.Providers {
			available = append(available, k)
		}
		sort.Strings(available)
		return nil, "", fmt.Errorf("llm: provider %q not configured (available: %s)", name, strings.Join(available, ", "))
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = strings.TrimSpace(pcfg.Model)
	}
	modelName := m
	if modelName == "" {
		modelName = "default"
	}

	if err := requireCredential(name, pcfg.APIKey); err != nil {
		return nil, "", err
	}

	switch name {
	case "claude":
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, m), modelName, nil
	case "openai":
		return NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, m), modelName, nil
	default:
		return nil, "", fmt.Errorf("llm: unsupported provider %q", name)
	}
}

// NewRegistryFromConfig builds a registry holding every configured
// provider. Any provider failing the credential check fails the whole
// build, so a bad config surfaces at startup.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	r := NewRegistry()
	for name := range cfg.LLM.Providers {
		p, _, err := ProviderFor(cfg, name, "")
		if err != nil {
			return nil, err
		}
		r.Register(p)
	}
	return r, nil
}

func requireCredential(provider string, apiKey string) error {
	if strings.TrimSpace(apiKey) != "" {
		return nil
	}

	switch provider {
	case "claude":
		if strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")) != "" ||
			strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")) != "" {
			return nil
		}
		return errors.New("llm: missing credential for claude (set ANTHROPIC_API_KEY)")
	case "openai":
		if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
			return nil
		}
		return errors.New("llm: missing credential for openai (set OPENAI_API_KEY)")
	default:
		return fmt.Errorf("llm: missing credential for %q", provider)
	}
}
