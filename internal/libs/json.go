package libs

import (
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/funvibe/palang/pkg/ext"
)

func init() {
	ext.Register("json", jsonModule)
}

func jsonModule() ext.Value {
	return ext.Exports(map[string]ext.NativeFunction{
		"encode": jsonEncode,
		"decode": jsonDecode,
	})
}

// encodeJSON renders data through structpb, so every number is written as
// a JSON number (float64 precision).
func encodeJSON(v ext.Value, symbol string) ([]byte, error) {
	data, err := toGo(v, symbol)
	if err != nil {
		return nil, err
	}
	pb, err := structpb.NewValue(data)
	if err != nil {
		return nil, ext.ArgumentError("%s: %v.", symbol, err)
	}
	out, err := protojson.Marshal(pb)
	if err != nil {
		return nil, ext.ArgumentError("%s: %v.", symbol, err)
	}
	return out, nil
}

func decodeJSON(text []byte, symbol string) (ext.Value, error) {
	var pb structpb.Value
	if err := protojson.Unmarshal(text, &pb); err != nil {
		return nil, ext.ArgumentError("%s: malformed JSON: %v.", symbol, err)
	}
	return fromGo(integralNumbers(pb.AsInterface())), nil
}

// integralNumbers turns integral float64s back into int64s. structpb
// carries every JSON number as float64.
func integralNumbers(data interface{}) interface{} {
	switch v := data.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
			return int64(v)
		}
	case []interface{}:
		for i, item := range v {
			v[i] = integralNumbers(item)
		}
	case map[string]interface{}:
		for k, item := range v {
			v[k] = integralNumbers(item)
		}
	}
	return data
}

func jsonEncode(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	v, err := ext.Arg(args, kwargs, 0, "value", ext.NIL)
	if err != nil {
		return nil, err
	}
	out, err := encodeJSON(v, "json.encode")
	if err != nil {
		return nil, err
	}
	return ext.Str(string(out)), nil
}

func jsonDecode(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	text, err := ext.StringArg(args, kwargs, 0, "text")
	if err != nil {
		return nil, err
	}
	return decodeJSON([]byte(text), "json.decode")
}
