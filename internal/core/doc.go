// Package core is the runtime generated programs execute against: the
// Value variants, the class/object model, the argument binder, the operator
// functions, function invocation and the intrinsic functions.
//
// Lists, dictionaries and objects have reference semantics: values holding
// the same container alias it, and mutation through one is visible through
// all. Memory is reclaimed by the Go garbage collector; nothing in the core
// frees values explicitly, and the only value with a fixed identity is NIL.
//
// The runtime is single-threaded. None of its data structures are guarded,
// and a native function that blocks blocks its caller.
package core
