package strategies

import "github.com/rustyeddy/relaytrader/broker"

// Noop does nothing.
type Noop struct{ Base }

func newNoop(ctx broker.Context, params Params) (Strategy, error) {
	return &Noop{Base{Ctx: ctx, Params: params}}, nil
}
