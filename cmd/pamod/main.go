// Command pamod resolves and imports native modules the way a program
// would, then lists what each one exports.
//
//	pamod [-list] module...
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/palang/internal/modules"
	palang "github.com/funvibe/palang/pkg/embed"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "Usage: pamod [-list] <module> [module...]\n")
		return 1
	}

	if args[0] == "-list" || args[0] == "--list" {
		for _, name := range modules.Registered() {
			fmt.Fprintf(stdout, "%s (bundled)\n", name)
		}
		args = args[1:]
		if len(args) == 0 {
			return 0
		}
	}

	rt, err := palang.New(palang.Options{Stdout: stdout, Stderr: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	for _, name := range args {
		if _, err := rt.Import(name); err != nil {
			rt.Reporter.Report(err)
			return 1
		}
	}

	for _, h := range rt.Loader.Imports() {
		where := h.Path
		if h.Bundled() {
			where = "(bundled)"
		}
		fmt.Fprintf(stdout, "%s %s\n", h.Name, where)
		for _, key := range h.Exports.Keys() {
			v, _ := h.Exports.Get(key)
			fmt.Fprintf(stdout, "  %s %s\n", key, strings.ToLower(string(v.Type())))
		}
	}
	return 0
}
