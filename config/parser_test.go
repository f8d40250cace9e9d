package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJSONOrYAMLStruct struct {
	Name string `json:"name"`
	On   bool   `json:"on"`
	Ints []int  `json:"ints"`
}

func TestParseJSONOrYAML(t *testing.T) {
	for _, params := range []struct {
		desc  string
		input string
	}{
		{"JSON", `{"name":"x","on":true,"ints":[1,2]}`},
		{"YAML", `---
name: x
on: true
ints:
  - 1
  - 2
`},
	} {
		t.Run(params.desc, func(t *testing.T) {
			var out testJSONOrYAMLStruct
			require.NoError(t, ParseJSONOrYAML([]byte(params.input), &out))
			assert.Equal(t, "x", out.Name)
			assert.True(t, out.On)
			assert.Equal(t, []int{1, 2}, out.Ints)
		})
	}
}

func TestParseJSONOrYAMLRejectsMalformedInput(t *testing.T) {
	var out testJSONOrYAMLStruct
	assert.Error(t, ParseJSONOrYAML([]byte("name: [unclosed"), &out))
	assert.Error(t, ParseJSONOrYAML([]byte("ints: not-a-list"), &out))
}

func TestParseJSONOrYAMLRejectsNonStringKeys(t *testing.T) {
	_, err := jsonCompatible(map[interface{}]interface{}{1: "x"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level")

	var out map[string]interface{}
	err = ParseJSONOrYAML([]byte("nested:\n  list:\n    - 1: x\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested.list[0]")
}

func TestParseJSONOrYAMLReportsJSONSyntaxErrors(t *testing.T) {
	var out testJSONOrYAMLStruct
	err := ParseJSONOrYAML([]byte(`{"name": "x",}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}
