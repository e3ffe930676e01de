package analyzer

import (
	"flag"
	"log/slog"
)

// runOptions holds the settings of one analyzer instance.
type runOptions struct {
	minValues int
}

func defaultRunOptions() *runOptions {
	return &runOptions{minValues: 1}
}

// registerFlags binds the options to analyzer command line flags.
func registerFlags(flags *flag.FlagSet, r *runOptions) {
	flags.IntVar(&r.minValues, "min", r.minValues, "only report variables with at least this many possible values")
}

// Option configures specific behavior of a [New] valueset analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithMinValues is an [Option] to only report variables with at least n possible values.
// Values below 1 are treated as 1.
func WithMinValues(n int) Option { return minValuesOption{minValues: n} }

type minValuesOption struct{ minValues int }

func (o minValuesOption) apply(r *runOptions) {
	r.minValues = max(o.minValues, 1)
}

func (o minValuesOption) LogAttr() slog.Attr {
	return slog.Int("min", o.minValues)
}
