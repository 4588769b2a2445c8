package config

import "runtime"

// EntrySymbol is the symbol every native module exports. It takes nothing
// and returns the module's exports (conventionally a Dictionary of Functions).
const EntrySymbol = "PA_INIT"

// Environment variables consulted by the runtime
const (
	HomeEnvVar    = "PA_HOME"
	NoColorEnvVar = "NO_COLOR"
)

// FallbackHome is used when neither PA_HOME nor a project home is set.
const FallbackHome = "/usr/local/palang"

// LibsDirName is the subdirectory holding native modules, both next to the
// program and under the installation root.
const LibsDirName = "libs"

// Project file names, searched in this order
var ProjectFileNames = []string{"palang.yaml", "palang.yml"}

// Built-in function names
const (
	PrintFuncName = "print"
	RangeFuncName = "range"
	InputFuncName = "input"
	LenFuncName   = "len"
	NilName       = "nil"
)

// Protocol names looked up in a class's operator table
const (
	ConstructorName = "constructor"
	GetAttrName     = "getattr"
	SetAttrName     = "setattr"
)

// Operator symbols. They double as operator table keys for objects.
const (
	OpAdd          = "+"
	OpSubtract     = "-"
	OpMultiply     = "*"
	OpDivide       = "/"
	OpModulo       = "%"
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpAnd          = "and"
	OpOr           = "or"
	OpGetItem      = "getitem"
	OpSetItem      = "setitem"
	OpLength       = "length"
	OpFlow         = "->"

	// Display names used in diagnostics for operators whose table key differs
	IndexSymbol     = "[]"
	AttributeSymbol = "."
	LogicalSymbol   = "logical"
)

// SharedLibrarySuffix returns the file suffix of native modules on the
// host platform.
func SharedLibrarySuffix() string {
	return sharedLibrarySuffix(runtime.GOOS)
}

func sharedLibrarySuffix(goos string) string {
	switch goos {
	case "darwin", "ios":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}
