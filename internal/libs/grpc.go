package libs

import (
	"context"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/funvibe/palang/pkg/ext"
)

var (
	connections = newHandleTable[*grpc.ClientConn]("grpc")

	// Loaded proto files by name. Shared by every import of the module.
	protoRegistry      = make(map[string]*desc.FileDescriptor)
	protoRegistryMutex sync.RWMutex
)

func init() {
	ext.Register("grpc", grpcModule)
}

func grpcModule() ext.Value {
	return ext.Exports(map[string]ext.NativeFunction{
		"connect":    grpcConnect,
		"load_proto": grpcLoadProto,
		"invoke":     grpcInvoke,
		"close":      grpcClose,
	})
}

// connect(target) creates a client connection without transport security.
// The connection is established lazily by the first invoke.
func grpcConnect(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	target, err := ext.StringArg(args, kwargs, 0, "target")
	if err != nil {
		return nil, err
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, ext.IOError(err, "grpc.connect(%q) failed.", target)
	}
	return ext.Int(connections.add(conn)), nil
}

// load_proto(path, import_paths=[]) parses a .proto file and makes its
// services callable. path is relative to one of the import paths, which
// default to the working directory.
func grpcLoadProto(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	path, err := ext.StringArg(args, kwargs, 0, "path")
	if err != nil {
		return nil, err
	}
	paths, err := ext.ListArg(args, kwargs, 1, "import_paths")
	if err != nil {
		return nil, err
	}

	parser := protoparse.Parser{ImportPaths: []string{"."}}
	if paths.Len() > 0 {
		parser.ImportPaths = parser.ImportPaths[:0]
		for i, p := range paths.Elements {
			s, ok := p.(*ext.String)
			if !ok {
				return nil, ext.ArgumentError("import_paths[%d] must be a string, got %s.", i, p.Type())
			}
			parser.ImportPaths = append(parser.ImportPaths, s.Value)
		}
	}

	fds, err := parser.ParseFiles(path)
	if err != nil {
		return nil, ext.ArgumentError("grpc.load_proto: %v.", err)
	}

	protoRegistryMutex.Lock()
	defer protoRegistryMutex.Unlock()
	for _, fd := range fds {
		protoRegistry[fd.GetName()] = fd
	}
	return ext.NIL, nil
}

func findMethodDescriptor(path string) (*desc.MethodDescriptor, error) {
	service, method, ok := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if !ok || service == "" || method == "" || strings.Contains(method, "/") {
		return nil, ext.ArgumentError("invalid method %q, expected package.Service/Method.", path)
	}

	protoRegistryMutex.RLock()
	defer protoRegistryMutex.RUnlock()
	for _, fd := range protoRegistry {
		if svc := fd.FindService(service); svc != nil {
			if md := svc.FindMethodByName(method); md != nil {
				if md.IsClientStreaming() || md.IsServerStreaming() {
					return nil, ext.ArgumentError("method %q is streaming; only unary calls are supported.", path)
				}
				return md, nil
			}
		}
	}
	return nil, ext.ArgumentError("method %q not found (was its proto loaded?).", path)
}

// invoke(handle, method, request={}) performs a unary call. The request
// Dictionary and the response are bridged through the protobuf JSON
// mapping, so 64-bit integer fields come back as Strings.
func grpcInvoke(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	_, conn, err := handleArg(connections, args, kwargs)
	if err != nil {
		return nil, err
	}
	method, err := ext.StringArg(args, kwargs, 1, "method")
	if err != nil {
		return nil, err
	}
	request, err := ext.DictArg(args, kwargs, 2, "request")
	if err != nil {
		return nil, err
	}

	md, err := findMethodDescriptor(method)
	if err != nil {
		return nil, err
	}

	reqJSON, err := encodeJSON(request, "grpc.invoke")
	if err != nil {
		return nil, err
	}
	reqMsg := dynamic.NewMessage(md.GetInputType())
	if err := reqMsg.UnmarshalJSON(reqJSON); err != nil {
		return nil, ext.ArgumentError("grpc.invoke: request does not fit %s: %v.", md.GetInputType().GetFullyQualifiedName(), err)
	}
	respMsg := dynamic.NewMessage(md.GetOutputType())

	fullMethod := "/" + md.GetService().GetFullyQualifiedName() + "/" + md.GetName()
	if err := conn.Invoke(context.Background(), fullMethod, reqMsg, respMsg); err != nil {
		return nil, ext.IOError(err, "grpc.invoke(%q) failed.", method)
	}

	respJSON, err := respMsg.MarshalJSON()
	if err != nil {
		return nil, ext.IOError(err, "grpc.invoke(%q): cannot read the response.", method)
	}
	return decodeJSON(respJSON, "grpc.invoke")
}

func grpcClose(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	id, _, err := handleArg(connections, args, kwargs)
	if err != nil {
		return nil, err
	}
	conn, err := connections.remove(id)
	if err != nil {
		return nil, err
	}
	if err := conn.Close(); err != nil {
		return nil, ext.IOError(err, "grpc.close failed.")
	}
	return ext.NIL, nil
}
