// Package cli holds the argument handling shared by the command line tools.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	mandel "github.com/marben/distmandel"
)

// Labels of the positional arguments, in order.
var Labels = [...]string{"x", "y", "range", "width", "height", "maxiter", "threshold"}

// ErrUsage is returned when there are too few positional arguments.
var ErrUsage = errors.New("not enough arguments")

// ArgError reports a positional argument that could not be parsed.
type ArgError struct {
	Index int // 1-based
	Label string
	Err   error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("argument %d (%q): %v", e.Index, e.Label, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }

// Usage prints the synopsis followed by the flag defaults of fs.
func Usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: \n  %s [flags] %s\n", fs.Name(), strings.Join(Labels[:], " "))
	fs.PrintDefaults()
}

// ParseView reads x y range width height maxiter threshold from args.
// Arguments past the seventh are ignored.
func ParseView(args []string) (mandel.ViewConfig, error) {
	var c mandel.ViewConfig
	if len(args) < len(Labels) {
		return c, ErrUsage
	}

	dst := []any{&c.X, &c.Y, &c.Range, &c.Width, &c.Height, &c.MaxIterations, &c.Threshold}
	for i, p := range dst {
		var err error
		switch p := p.(type) {
		case *float64:
			*p, err = strconv.ParseFloat(args[i], 64)
		case *int:
			*p, err = strconv.Atoi(args[i])
		}
		if err != nil {
			return c, &ArgError{Index: i + 1, Label: Labels[i], Err: err}
		}
	}
	return c, nil
}

// Parse parses the flags leading args into fs and returns the remaining
// positional arguments. Unlike fs.Parse it treats negative numbers such as
// -0.8 as the start of the positionals.
func Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	flags, rest := split(fs, args)
	if err := fs.Parse(flags); err != nil {
		return nil, err
	}
	return append(fs.Args(), rest...), nil
}

func split(fs *flag.FlagSet, args []string) (flags, rest []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if !looksLikeFlag(a) {
			return args[:i], args[i:]
		}
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			i++ // value follows
		}
	}
	return args, nil
}

func looksLikeFlag(a string) bool {
	if !strings.HasPrefix(a, "-") {
		return false
	}
	a = strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-")
	return a != "" && unicode.IsLetter(rune(a[0]))
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}
