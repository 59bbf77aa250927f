package module

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// Encoder writes invocation responses to an output stream, one JSON
// document per line.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder creates a new response encoder.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes the response followed by a newline and flushes.
func (e *Encoder) Encode(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

// Decoder reads invocation parameters from an input stream.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder creates a new parameter decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Decode reads one parameter document. Unknown fields are ignored so the
// calling tool can carry extra bookkeeping keys.
func (d *Decoder) Decode() (*Params, error) {
	var p Params
	if err := d.dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, engine.NewConfigurationError("no parameters supplied", nil)
		}
		return nil, engine.NewConfigurationError("malformed parameters", err)
	}
	return &p, nil
}
