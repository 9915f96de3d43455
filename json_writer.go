package folio

import (
	"encoding/json"
	"fmt"
)

// orderedObject builds a JSON object whose properties keep their insertion
// order. The zero value is an empty object.
type orderedObject struct {
	buf []byte
	err error
}

// Set appends the property key with the JSON encoding of value. The first
// marshal error is kept and returned by MarshalJSON.
func (o *orderedObject) Set(key string, value any) *orderedObject {
	if o.err != nil {
		return o
	}
	v, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return o
	}
	k, _ := json.Marshal(key)
	if len(o.buf) > 0 {
		o.buf = append(o.buf, ',')
	}
	o.buf = append(append(append(o.buf, k...), ':'), v...)
	return o
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	return append(append([]byte{'{'}, o.buf...), '}'), nil
}
