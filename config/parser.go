package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// ParseJSONOrYAML is used like json.Unmarshal, but also accepts YAML. A document whose first
// non-blank character is '{' is JSON; anything else is read as YAML and converted to JSON first,
// so a config type only needs json tags.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return json.Unmarshal(data, target)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	converted, err := jsonCompatible(doc, "")
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(converted)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

// jsonCompatible rewrites the maps produced by the YAML decoder so encoding/json can marshal
// them. path names the position in the document for error messages.
func jsonCompatible(value interface{}, path string) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, item := range v {
			converted, err := jsonCompatible(item, path+"."+key)
			if err != nil {
				return nil, err
			}
			v[key] = converted
		}
		return v, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("key %v at %s is a %T; only string keys are allowed", key, pathOrRoot(path), key)
			}
			converted, err := jsonCompatible(item, path+"."+name)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
		return out, nil
	case []interface{}:
		for i, item := range v {
			converted, err := jsonCompatible(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			v[i] = converted
		}
		return v, nil
	default:
		return v, nil
	}
}

func pathOrRoot(path string) string {
	if path == "" {
		return "top level"
	}
	return path[1:]
}
