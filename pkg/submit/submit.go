package submit

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/form"
)

// Submitter receives the final answers once the report has been exported.
type Submitter interface {
	Submit(ctx context.Context, answers form.AnswerMap) error
}

// Func adapts a function to Submitter.
type Func func(ctx context.Context, answers form.AnswerMap) error

func (fn Func) Submit(ctx context.Context, answers form.AnswerMap) error {
	return fn(ctx, answers)
}

// Encode renders answers as the flat JSON object a remote endpoint would
// receive. Keys are emitted in sorted order.
func Encode(answers form.AnswerMap) ([]byte, error) {
	raw, err := json.Marshal(answers.Payload())
	if err != nil {
		return nil, fmt.Errorf("submit: encode payload: %w", err)
	}
	return raw, nil
}

// Nop records that a submission would have been sent to Endpoint and sends
// nothing.
type Nop struct {
	Endpoint string
	Logger   *zap.Logger
}

// NewNop returns an inert submitter. A nil logger is replaced by zap.NewNop.
func NewNop(endpoint string, logger *zap.Logger) *Nop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Nop{Endpoint: endpoint, Logger: logger}
}

func (n *Nop) Submit(ctx context.Context, answers form.AnswerMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Encode(answers)
	if err != nil {
		return err
	}
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("submission deferred",
		zap.String("endpoint", n.Endpoint),
		zap.Int("fields", len(answers)),
		zap.Int("bytes", len(body)),
	)
	return nil
}
