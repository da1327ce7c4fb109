// Package tuning exposes the live configuration over WebSocket.
// Frames are binary protobuf google.protobuf.Struct values with a "type" field.
package tuning

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Message types
const (
	// Client to server
	TypeSet     = "set"
	TypeGet     = "get"
	TypeRestart = "restart"

	// Server to client
	TypeState     = "state"
	TypeApplied   = "applied"
	TypeTelemetry = "telemetry"
	TypeError     = "error"
)

// Message is one decoded frame
type Message struct {
	Type string
	// Name and Value carry a single-parameter set or its applied result
	Name  string
	Value float64
	// Values carries bulk sets, full state and telemetry
	Values map[string]float64
	Error  string
	Client string
}

// Encode marshals a message into a protobuf Struct frame
func Encode(m Message) ([]byte, error) {
	fields := map[string]any{"type": m.Type}
	if m.Name != "" {
		fields["name"] = m.Name
		fields["value"] = m.Value
	}
	if len(m.Values) > 0 {
		values := make(map[string]any, len(m.Values))
		for k, v := range m.Values {
			values[k] = v
		}
		fields["values"] = values
	}
	if m.Error != "" {
		fields["error"] = m.Error
	}
	if m.Client != "" {
		fields["client"] = m.Client
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "build frame")
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal frame")
	}
	return data, nil
}

// Decode unmarshals a protobuf Struct frame
func Decode(data []byte) (Message, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return Message{}, errors.Wrap(err, "unmarshal frame")
	}

	var m Message
	f := s.GetFields()
	m.Type = f["type"].GetStringValue()
	if m.Type == "" {
		return m, errors.New("frame has no type")
	}
	m.Name = f["name"].GetStringValue()
	m.Value = f["value"].GetNumberValue()
	m.Error = f["error"].GetStringValue()
	m.Client = f["client"].GetStringValue()

	if values := f["values"].GetStructValue(); values != nil {
		m.Values = make(map[string]float64, len(values.GetFields()))
		for k, v := range values.GetFields() {
			n, ok := v.GetKind().(*structpb.Value_NumberValue)
			if !ok {
				return m, errors.Errorf("value %q is not a number", k)
			}
			m.Values[k] = n.NumberValue
		}
	}
	return m, nil
}
