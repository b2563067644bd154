package priceapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedResponse = errors.New("malformed price response")

// Response is the decoded body of a /check-price/ answer.
type Response struct {
	URL   string
	Price string
	Error string
}

// decodeResponse accepts any JSON body except null. Bodies that are not
// objects carry no price.
func decodeResponse(body []byte) (Response, error) {
	var v json.RawMessage
	if err := json.Unmarshal(body, &v); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	v = bytes.TrimSpace(v)
	if bytes.Equal(v, []byte("null")) {
		return Response{}, fmt.Errorf("%w: body is null", ErrMalformedResponse)
	}
	if v[0] != '{' {
		return Response{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(v, &fields); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return Response{
		URL:   stringField(fields["url"]),
		Price: priceText(fields["price"]),
		Error: stringField(fields["error"]),
	}, nil
}

// priceText renders a price value the way it is displayed. Values that carry
// no price (null, false, 0, objects, arrays) come back empty.
func priceText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
