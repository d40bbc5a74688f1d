package rpc

import "encoding/json"

// ID is the unsigned integer identifier requests and responses carry.
// Notifications have no ID.
type ID uint64

// Kind discriminates a decoded envelope.
type Kind int

const (
	KindRequest Kind = iota
	KindResponse
	KindNotification
)

// Envelope is the raw shape of an incoming message before it is routed.
// Exactly the fields present on the wire are populated; Classify derives
// Kind structurally rather than from a type tag, per the JSON-RPC spec.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *ID             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// Classify discriminates the envelope per §4.E: id+method is a Request,
// id+(result|error) is a Response, method alone is a Notification. Any
// other combination is a protocol error — the transport never guesses.
func (e Envelope) Classify() (Kind, error) {
	hasID := e.ID != nil
	hasMethod := e.Method != ""
	hasResultOrError := e.Result != nil || e.Error != nil

	switch {
	case hasID && hasMethod:
		return KindRequest, nil
	case hasID && hasResultOrError:
		return KindResponse, nil
	case !hasID && hasMethod:
		return KindNotification, nil
	default:
		return 0, newProtocolError("cannot classify message envelope", nil)
	}
}

// DecodeEnvelope unmarshals a single JSON body into an Envelope.
func DecodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, newProtocolError("decoding JSON-RPC envelope", err)
	}
	return env, nil
}

// successResponse is the shape written for a successful request reply.
type successResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      ID          `json:"id"`
	Result  interface{} `json:"result"`
}

// errorResponse is the shape written for a failed request reply.
type errorResponse struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      ID             `json:"id"`
	Error   *ResponseError `json:"error"`
}

// notificationMessage is the shape written for a server-initiated
// notification; it carries no id.
type notificationMessage struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// EncodeSuccessResponse marshals a successful reply to id.
func EncodeSuccessResponse(id ID, result interface{}) ([]byte, error) {
	if result == nil {
		result = json.RawMessage("null")
	}
	return json.Marshal(successResponse{JSONRPC: "2.0", ID: id, Result: result})
}

// EncodeErrorResponse marshals a failed reply to id.
func EncodeErrorResponse(id ID, respErr *ResponseError) ([]byte, error) {
	return json.Marshal(errorResponse{JSONRPC: "2.0", ID: id, Error: respErr})
}

// EncodeNotification marshals a server-initiated notification.
func EncodeNotification(method string, params interface{}) ([]byte, error) {
	return json.Marshal(notificationMessage{JSONRPC: "2.0", Method: method, Params: params})
}
