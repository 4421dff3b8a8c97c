package edusign

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// maxErrorBody bounds the body text kept on a TransportError.
const maxErrorBody = 512

var errEmptyResult = errors.New("edusign: empty result")

// Envelope is the {status, message, result} wrapper returned by every
// Edusign endpoint. Result is kept raw and decoded on demand.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// OK reports a success envelope.
func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// Failed reports an error envelope.
func (e *Envelope) Failed() bool {
	return e != nil && e.Status == StatusError
}

// HasResult reports whether the envelope carries a non-null result.
func (e *Envelope) HasResult() bool {
	if e == nil {
		return false
	}
	trimmed := strings.TrimSpace(string(e.Result))
	return trimmed != "" && trimmed != "null"
}

// Decode decodes the result into out. Remote flags arrive as numbers,
// strings or booleans depending on the endpoint, so decoding is weakly
// typed.
func (e *Envelope) Decode(out interface{}) error {
	if !e.HasResult() {
		return errEmptyResult
	}
	return decodeResult(e.Result, out)
}

func decodeResult(raw json.RawMessage, out interface{}) error {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(generic)
}

// classify turns a raw status code and body into an envelope or a typed
// failure. Gateway statuses win over whatever the body contains.
func classify(op Operation, statusCode int, body []byte) (*Envelope, error) {
	switch statusCode {
	case http.StatusBadGateway:
		return nil, &TransportError{Operation: op, StatusCode: statusCode, Body: truncate(body), Err: ErrBadGateway}
	case http.StatusGatewayTimeout:
		return nil, &TransportError{Operation: op, StatusCode: statusCode, Body: truncate(body), Err: ErrGatewayTimeout}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{
			Operation:  op,
			StatusCode: statusCode,
			Body:       truncate(body),
			Err:        errors.Join(ErrMalformedResponse, err),
		}
	}

	if env.Failed() {
		return &env, &RemoteError{Operation: op, Message: env.Message}
	}

	return &env, nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
