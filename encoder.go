package postboard

import (
	"github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
)

// ENCODER is the name the board encoder is registered under
const ENCODER = "POSTBOARD_ENCODER"

func init() {
	nats.RegisterEncoder(ENCODER, &Encoder{})
}

// Encoder wraps values in a Reply envelope. An error value travels as the
// envelope error and is returned by Decode.
type Encoder struct{}

// Implement (nats.Encoder).Encode
func (enc *Encoder) Encode(subject string, v interface{}) ([]byte, error) {
	reply := GetReply()
	defer PutReply(reply)

	if e, ok := v.(error); ok {
		reply.Error = []byte(e.Error())
	} else if err := reply.MarshalAndSetData(v); err != nil {
		return nil, err
	}

	return reply.MarshalBinary()
}

// Implement (nats.Encoder).Decode
func (enc *Encoder) Decode(subject string, data []byte, vPtr interface{}) error {
	reply := GetReply()
	defer PutReply(reply)

	if err := reply.UnmarshalBinary(data); err != nil {
		return err
	}

	if err := reply.GetError(); err != nil {
		return err
	}

	if vPtr == nil {
		return nil
	}

	switch arg := vPtr.(type) {
	case *string:
		// unquoted or malformed payloads are taken as raw text
		if err := jsoniter.Unmarshal(reply.Data, arg); err != nil {
			*arg = string(reply.Data)
		}

	case *[]byte:
		*arg = append((*arg)[:0], reply.Data...)

	default:
		return reply.UnmarshalData(vPtr)
	}

	return nil
}
