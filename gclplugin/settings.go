package gclplugin

import valueset "github.com/l3aro/go-valueset/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// MinValues only reports variables with at least this many possible values.
	MinValues *int `json:"min-values,omitzero"`
}

// Options converts [Settings] into a list of [valueset.Option] for the valueset analyzer.
// Settings are applied only when explicitly set (non-nil).
func (s Settings) Options() []valueset.Option {
	var opts []valueset.Option

	if s.MinValues != nil {
		opts = append(opts, valueset.WithMinValues(*s.MinValues))
	}

	return opts
}
