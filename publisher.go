package postboard

import (
	"github.com/nats-io/nats.go"
)

// Publisher announces settled boards on BoardSettledSubject. Its Publish
// method fits Config.OnSettle.
type Publisher struct {
	conn   *nats.EncodedConn
	logger Logger
}

func NewPublisher(nc *nats.Conn, logger Logger) (*Publisher, error) {
	ec, err := nats.NewEncodedConn(nc, ENCODER)

	if err != nil {
		return nil, err
	}

	return &Publisher{conn: ec, logger: loggerOrDefault(logger)}, nil
}

func (p *Publisher) Publish(state ViewState) {
	if err := p.conn.Publish(BoardSettledSubject, state); err != nil {
		p.logger.Errorf("publish %s: %v", BoardSettledSubject, err)
		return
	}

	if err := p.conn.Flush(); err != nil {
		p.logger.Warnf("flush %s: %v", BoardSettledSubject, err)
	}
}
