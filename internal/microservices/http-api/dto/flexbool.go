package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexBool accepts true/false, 1/0 and strings such as "True", "yes" or "on",
// from JSON bodies and form fields alike.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*b = FlexBool(v)
	case float64:
		*b = v != 0
	case string:
		return b.UnmarshalParam(v)
	default:
		return fmt.Errorf("invalid boolean value %s", string(data))
	}
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (b *FlexBool) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "1", "t", "true", "y", "yes", "on":
		*b = true
	case "", "0", "f", "false", "n", "no", "off":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %q", param)
	}
	return nil
}

func (b FlexBool) Bool() bool {
	return bool(b)
}
