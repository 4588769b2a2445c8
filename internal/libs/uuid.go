package libs

import (
	"github.com/google/uuid"

	"github.com/funvibe/palang/pkg/ext"
)

func init() {
	ext.Register("uuid", uuidModule)
}

func uuidModule() ext.Value {
	return ext.Exports(map[string]ext.NativeFunction{
		"new":     uuidNew,
		"parse":   uuidParse,
		"valid":   uuidValid,
		"version": uuidVersion,
	})
}

// new() returns a random (version 4) UUID in canonical form.
func uuidNew(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, ext.IOError(err, "uuid.new() could not read random bytes.")
	}
	return ext.Str(id.String()), nil
}

func parseUUIDArg(args *ext.List, kwargs *ext.Dictionary) (uuid.UUID, error) {
	text, err := ext.StringArg(args, kwargs, 0, "text")
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, ext.ArgumentError("text is not a UUID: %q.", text)
	}
	return id, nil
}

func uuidParse(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	id, err := parseUUIDArg(args, kwargs)
	if err != nil {
		return nil, err
	}
	return ext.Str(id.String()), nil
}

func uuidValid(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	text, err := ext.StringArg(args, kwargs, 0, "text")
	if err != nil {
		return nil, err
	}
	return ext.Bool(uuid.Validate(text) == nil), nil
}

func uuidVersion(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	id, err := parseUUIDArg(args, kwargs)
	if err != nil {
		return nil, err
	}
	return ext.Int(int64(id.Version())), nil
}
