package providerhttp

import (
	"bytes"
	"strconv"
	"strings"
)

// Provider APIs are inconsistent about quoting numbers and ids. The Flex
// types accept either form and decode null or garbage as the zero value.

// FlexString accepts a JSON string or number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*s = FlexString(unquoted)
		return nil
	}
	*s = FlexString(data)
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if text == "" || text == "null" || text == "-" {
		*f = 0
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(value)
	return nil
}

// FlexInt accepts a JSON number or a numeric string; fractions are truncated.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(int(f))
	return nil
}

// FlexBool accepts true/false, 1/0 and their string forms.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	text := strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`))
	*b = FlexBool(text == "true" || text == "1" || text == "yes")
	return nil
}

// StatMap is a provider stat bag keyed by stat id or name.
type StatMap map[string]FlexFloat

// Floats converts the bag to plain float64 values.
func (m StatMap) Floats() map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for key, value := range m {
		out[key] = float64(value)
	}
	return out
}
