package ffcmd

import "strings"

// Arg is a single named value in an escape-hatch list. Options without a
// dedicated struct field travel through these instead of being dropped.
type Arg struct {
	Name  string
	Value string
}

// dashPrefix ensures a flag name carries exactly one leading dash. Names
// that already start with a dash are passed through unchanged.
func dashPrefix(name string) string {
	if strings.HasPrefix(name, "-") {
		return name
	}
	return "-" + name
}

// appendArg appends "-name value" to args.
func appendArg(args []string, name, value string) []string {
	return append(args, dashPrefix(name), value)
}

// appendFlag appends the bare switch "-name" to args.
func appendFlag(args []string, name string) []string {
	return append(args, dashPrefix(name))
}

// appendExtra appends the escape-hatch args then flags, in caller order.
func appendExtra(args []string, extra []Arg, flags []string) []string {
	for _, a := range extra {
		args = appendArg(args, a.Name, a.Value)
	}
	for _, f := range flags {
		args = appendFlag(args, f)
	}
	return args
}
