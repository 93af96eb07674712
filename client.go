package postboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/not.go"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

const defaultRequestTimeout = time.Second * 3

// ErrBoard is returned when the remote board settled in its error phase
var ErrBoard = errors.New("postboard: remote board failed")

// BoardClient reads the board of a remote component over NATS
type BoardClient struct {
	NatsConn *nats.Conn
	Timeout  time.Duration
	Tracer   opentracing.Tracer
}

func NewBoardClient(nc *nats.Conn) *BoardClient {
	return &BoardClient{
		NatsConn: nc,
		Timeout:  defaultRequestTimeout,
		Tracer:   opentracing.GlobalTracer(),
	}
}

// Get returns the remote view state. A board in its error phase is returned
// as ErrBoard.
func (client *BoardClient) Get(ctx context.Context) (*ViewState, error) {
	reqSpan, reqCtx := opentracing.StartSpanFromContextWithTracer(ctx, client.Tracer, "postboard:BoardClient:Get", ext.SpanKindRPCClient)
	ext.MessageBusDestination.Set(reqSpan, BoardSubject)
	ext.Component.Set(reqSpan, "postboard")
	defer reqSpan.Finish()

	var t not.TraceMsg

	if err := client.Tracer.Inject(reqSpan.Context(), opentracing.Binary, &t); err != nil {
		reqSpan.LogFields(log.Error(err))
		t.Reset()
	}

	timeout := client.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	reqCtx, cancelFn := context.WithTimeout(reqCtx, timeout)
	defer cancelFn()

	replyMsg, err := client.NatsConn.RequestWithContext(reqCtx, BoardSubject, t.Bytes())
	if err != nil {
		reqSpan.LogFields(log.Error(err))
		ext.Error.Set(reqSpan, true)
		return nil, err
	}

	reply := GetReply()
	defer PutReply(reply)

	if err := reply.UnmarshalBinary(replyMsg.Data); err != nil {
		reqSpan.LogFields(log.Error(err))
		ext.Error.Set(reqSpan, true)
		return nil, err
	}

	if err := reply.GetError(); err != nil {
		reqSpan.LogFields(log.Error(err))
		ext.Error.Set(reqSpan, true)
		return nil, err
	}

	var result ViewState
	if err := reply.UnmarshalData(&result); err != nil {
		reqSpan.LogFields(log.Error(err))
		ext.Error.Set(reqSpan, true)
		return nil, err
	}

	if result.Phase == PhaseError {
		err := fmt.Errorf("%w: %s", ErrBoard, result.Message)
		reqSpan.LogFields(log.Error(err))
		ext.Error.Set(reqSpan, true)
		return nil, err
	}

	return &result, nil
}
