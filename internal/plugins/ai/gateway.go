package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

// Gateway sends a single structured prompt to a vendor and decodes the validated reply.
type Gateway struct {
	vendor  Vendor
	schemas *schema.Manager
	opts    domain.ChatOptions
	// stepModels overrides opts.Model per response schema.
	stepModels map[string]string
	timeout    time.Duration
}

func NewGateway(vendor Vendor, opts *domain.ChatOptions) *Gateway {
	ret := &Gateway{vendor: vendor, schemas: schema.Default()}
	if opts != nil {
		ret.opts = *opts
	}
	return ret
}

// WithStepModels sets per-schema model overrides, e.g. a cheaper model for select_folders.
func (g *Gateway) WithStepModels(models map[string]string) *Gateway {
	g.stepModels = models
	return g
}

// WithTimeout bounds every vendor call. Zero leaves the caller's context untouched.
func (g *Gateway) WithTimeout(timeout time.Duration) *Gateway {
	g.timeout = timeout
	return g
}

func (g *Gateway) Vendor() Vendor {
	return g.vendor
}

// Invoke fills out from the model reply to call. Unparseable or schema-violating
// replies return an error wrapping domain.ErrValidation.
func (g *Gateway) Invoke(ctx context.Context, call *domain.PromptCall, out any) (err error) {
	opts := g.opts
	if model := g.stepModels[call.Schema]; model != "" {
		opts.Model = model
	}
	if err = g.schemas.Prepare(g.vendor.SchemaProvider(), call.Schema, &opts); err != nil {
		return
	}

	msgs := []*chat.ChatCompletionMessage{
		chat.NewSystemMessage(call.System),
		chat.NewUserMessage(call.User),
	}
	debuglog.Debug(debuglog.Detailed, "%s: sending %s request to %s (model %q)", call.Schema, call.Schema, g.vendor.GetName(), opts.Model)
	debuglog.Debug(debuglog.Wire, "%s system prompt:\n%s\nuser prompt:\n%s", call.Schema, call.System, call.User)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var reply string
	if reply, err = g.vendor.Send(ctx, msgs, &opts); err != nil {
		return fmt.Errorf("%s request to %s failed: %w", call.Schema, g.vendor.GetName(), err)
	}
	debuglog.Debug(debuglog.Wire, "%s reply:\n%s", call.Schema, reply)

	content := schema.ExtractJSON(reply)
	if !json.Valid([]byte(content)) {
		return fmt.Errorf("%w: %s response is not valid JSON: %s", domain.ErrValidation, call.Schema, debuglog.Truncate(content, 200))
	}
	if err = g.schemas.ValidateOutput(content, opts.SchemaContent); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrValidation, call.Schema, err)
	}
	if err = json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %w", domain.ErrValidation, call.Schema, err)
	}
	return nil
}
