package postboard

import (
	"context"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/not.go"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// Both subjects carry a ViewState in the envelope data, error phase included
const (
	BoardSubject        = "postboard.Board.Get"
	BoardSettledSubject = "postboard.Board.Settled"
	queueGroup          = "postboard"
)

type Handler interface {
	Run(ctx context.Context) error // Subscribes to the queue and dispatches handler go-routines
	Shutdown()                     // Unsubscribes and stops the handler go-routines
}

type Runner struct {
	sub    *nats.Subscription
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Shutdown unsubscribes and waits for the workers to return. A message being
// handled is finished first.
func (r *Runner) Shutdown() error {
	err := r.sub.Unsubscribe()
	r.cancel()
	r.wg.Wait()
	return err
}

// StartRunner queue-subscribes to subj and hands messages to concurrency
// goroutines until ctx is done or the runner is shut down.
func StartRunner(ctx context.Context, nc *nats.Conn, subj, group string, concurrency int, handleFn func(msg *nats.Msg)) (*Runner, error) {
	subChan := make(chan *nats.Msg, concurrency)

	sub, err := nc.ChanQueueSubscribe(subj, group, subChan)

	if err != nil {
		return nil, err
	}

	runner := &Runner{sub: sub}
	ctx, runner.cancel = context.WithCancel(ctx)

	for i := 0; i < concurrency; i++ {
		runner.wg.Add(1)
		go func() {
			defer runner.wg.Done()

			var msg *nats.Msg
			var ok bool

			for {
				select {
				case <-ctx.Done():
					return

				case msg, ok = <-subChan:
					if !ok {
						return
					}

					handleFn(msg)
				}
			}
		}()
	}

	return runner, nil
}

type boardHandler struct {
	component   *Component
	nc          *nats.Conn
	concurrency int
	runner      *Runner
}

// NewBoardHandler answers requests on BoardSubject with the component's
// current state
func NewBoardHandler(c *Component, nc *nats.Conn, concurrency int) Handler {
	if concurrency < 1 {
		concurrency = 1
	}

	return &boardHandler{
		component:   c,
		nc:          nc,
		concurrency: concurrency,
	}
}

func (h *boardHandler) Run(ctx context.Context) error {
	runner, err := StartRunner(ctx, h.nc, BoardSubject, queueGroup, h.concurrency, h.handle)

	if err != nil {
		return err
	}

	h.runner = runner
	return nil
}

func (h *boardHandler) handle(msg *nats.Msg) {
	tracer := h.component.cfg.Tracer

	var opts []opentracing.StartSpanOption
	t := not.NewTraceMsg(msg)
	if sc, err := tracer.Extract(opentracing.Binary, t); err == nil {
		opts = append(opts, ext.RPCServerOption(sc))
	} else {
		opts = append(opts, ext.SpanKindRPCServer)
	}

	replySpan := tracer.StartSpan("postboard:BoardServer:Get", opts...)
	ext.MessageBusDestination.Set(replySpan, msg.Subject)
	ext.Component.Set(replySpan, "postboard")
	replySpan.SetTag("postboard.component", h.component.ID())
	defer replySpan.Finish()

	state := h.component.State()

	reply := GetReply()
	defer PutReply(reply)

	if err := reply.MarshalAndSetData(state); err != nil {
		replySpan.LogFields(log.Error(err))
		ext.Error.Set(replySpan, true)
		return
	}

	replyData, err := reply.MarshalBinary()

	if err != nil {
		replySpan.LogFields(log.Error(err))
		ext.Error.Set(replySpan, true)
		return
	}

	if err := msg.Respond(replyData); err != nil {
		replySpan.LogFields(log.Error(err))
		ext.Error.Set(replySpan, true)
		h.component.logger.Warnf("respond on %s: %v", msg.Subject, err)
	}
}

func (h *boardHandler) Shutdown() {
	if h.runner != nil {
		_ = h.runner.Shutdown()
	}
}
