// Package libs holds the native modules bundled into palang binaries.
// Importing it for side effects registers uuid, json, yaml, sqlite and grpc
// with the module loader:
//
//	import _ "github.com/funvibe/palang/internal/libs"
//
// Each module is an ordinary ext.InitFunc and behaves exactly like a shared
// library found on disk; a library of the same name on the search path
// takes precedence.
package libs
