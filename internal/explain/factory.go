package explain

import (
	"fmt"

	"github.com/veridict/veridict/internal/model"
)

// NewProvider builds a provider from configuration. An empty provider name
// means narration is disabled and yields (nil, nil).
func NewProvider(cfg model.ExplainConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown explain provider %q (supported: openai)", cfg.Provider)
	}
}
