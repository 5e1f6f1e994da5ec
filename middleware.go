package aimemo

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// CallFunc is the shape of an LLM call site: prompt in, completion out.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// MiddlewareOptions configures the memory middleware.
type MiddlewareOptions struct {
	// RecordPrompts stores each prompt as a memory after a successful
	// call, so future calls can retrieve it as context.
	RecordPrompts bool
}

// Middleware wraps an LLM call site with memory. The host application
// registers it explicitly around its own calls; there is no patching of
// third-party clients and no process-global state.
//
// Before the call, relevant context for the prompt is retrieved and
// prepended, separated by a blank line. Context-assembly problems are
// logged and skipped, never failing the wrapped call.
func (m *Memo) Middleware(opts MiddlewareOptions) func(CallFunc) CallFunc {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, prompt string) (string, error) {
			log := m.logger.With("invocation", ulid.Make().String())

			full := prompt
			if block, err := m.GetContext(ctx, prompt); err != nil {
				log.Debug("context assembly skipped", "error", err)
			} else if block != "" {
				full = block + "\n\n" + prompt
				log.Debug("context injected", "chars", len(block))
			}

			resp, err := next(ctx, full)
			if err != nil {
				return "", err
			}

			if opts.RecordPrompts {
				if _, err := m.AddMemory(ctx, prompt, AddOptions{}); err != nil {
					log.Debug("prompt not recorded", "error", err)
				}
			}
			return resp, nil
		}
	}
}
