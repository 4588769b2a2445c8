package libs

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/palang/pkg/ext"
)

func init() {
	ext.Register("yaml", yamlModule)
}

func yamlModule() ext.Value {
	return ext.Exports(map[string]ext.NativeFunction{
		"encode": yamlEncode,
		"decode": yamlDecode,
	})
}

func yamlEncode(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	v, err := ext.Arg(args, kwargs, 0, "value", ext.NIL)
	if err != nil {
		return nil, err
	}
	data, err := toGo(v, "yaml.encode")
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, ext.ArgumentError("yaml.encode: %v.", err)
	}
	return ext.Str(string(out)), nil
}

// decode(text) maps YAML mappings to Dictionaries (non-string keys are
// stringified) and sequences to Lists.
func yamlDecode(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	text, err := ext.StringArg(args, kwargs, 0, "text")
	if err != nil {
		return nil, err
	}
	var data interface{}
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		return nil, ext.ArgumentError("yaml.decode: malformed YAML: %v.", err)
	}
	return fromGo(data), nil
}
