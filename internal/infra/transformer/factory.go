package transformer

import (
	"fmt"

	"github.com/DesignerNewsStories/internal/domain"
)

// GetTransformer returns the appropriate transformer by name.
// This acts as a factory/registry.
func GetTransformer(name string) (domain.Transformer, error) {
	switch name {
	case EnvelopeName, "":
		return NewEnvelopeTransformer(), nil
	case PlainName:
		return NewPlainTransformer(), nil
	default:
		return nil, fmt.Errorf("transformer not found: %s", name)
	}
}
