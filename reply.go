package postboard

import (
	"errors"
	"sync"

	"github.com/json-iterator/go"
)

var replyPool = &sync.Pool{
	New: func() interface{} {
		return new(Reply)
	},
}

func GetReply() *Reply {
	return replyPool.Get().(*Reply)
}

func PutReply(reply *Reply) {
	reply.Reset()
	replyPool.Put(reply)
}

// Reply is the envelope sent over NATS. Error is set instead of Data when
// the board is in its error state.
type Reply struct {
	Data  []byte `json:"d,omitempty"`
	Error []byte `json:"e,omitempty"`
}

func (r *Reply) MarshalBinary() ([]byte, error) {
	return jsoniter.Marshal(r)
}

func (r *Reply) UnmarshalBinary(data []byte) error {
	return jsoniter.Unmarshal(data, r)
}

func (r *Reply) MarshalAndSetData(data interface{}) error {
	var err error
	r.Data, err = jsoniter.Marshal(data)
	return err
}

func (r *Reply) GetError() error {
	if len(r.Error) == 0 {
		return nil
	}

	return errors.New(string(r.Error))
}

func (r *Reply) UnmarshalData(vPtr interface{}) error {
	if vPtr == nil || len(r.Data) == 0 {
		return nil
	}

	return jsoniter.Unmarshal(r.Data, vPtr)
}

func (r *Reply) Reset() {
	r.Data = nil
	r.Error = nil
}
