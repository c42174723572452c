package smilejson

import "fmt"

// ParserOption is a parser option.
type ParserOption func(p *parser) error

// WithMaxDepth sets how deeply arrays and objects may nest before the
// parser gives up with ErrMaxDepthExceeded. The limit bounds stack use
// on adversarial input.
// Default: 128.
func WithMaxDepth(n int) ParserOption {
	return func(p *parser) error {
		if n <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		p.maxDepth = n
		return nil
	}
}
