package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/palang/internal/config"
	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Reporter writes fatal runtime errors in the reference format:
// one "Runtime Error: ..." line, followed by the underlying causes.
type Reporter struct {
	w     io.Writer
	color bool
}

func NewReporter(w io.Writer, mode config.ColorMode) *Reporter {
	color := false
	switch mode {
	case config.ColorAlways:
		color = true
	case config.ColorNever:
		color = false
	default:
		color = supportsColor(w)
	}
	return &Reporter{w: w, color: color}
}

// Colored reports whether the reporter emits ANSI escapes.
func (r *Reporter) Colored() bool { return r.color }

// Report writes err and its cause chain. Errors that are not RuntimeErrors
// are reported with the same prefix.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}

	var re *RuntimeError
	head := err.Error()
	var cause error
	if errors.As(err, &re) {
		head = re.Error()
		cause = re.Cause
	} else {
		head = "Runtime Error: " + head
	}

	if r.color {
		fmt.Fprintf(r.w, "%s%s%s\n", ansiRed, head, ansiReset)
	} else {
		fmt.Fprintln(r.w, head)
	}

	for cause != nil {
		line := cause.Error()
		if inner := errors.Unwrap(cause); inner != nil {
			// Print only the part contributed by this link of the chain
			// when the wrapper embeds the inner text.
			line = strings.TrimSuffix(line, ": "+inner.Error())
		}
		if r.color {
			fmt.Fprintf(r.w, "  %s%s%s\n", ansiDim, line, ansiReset)
		} else {
			fmt.Fprintf(r.w, "  %s\n", line)
		}
		cause = errors.Unwrap(cause)
	}
}

func supportsColor(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv(config.NoColorEnvVar); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
