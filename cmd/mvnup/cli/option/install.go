package option

import (
	"github.com/mvnup/mvnup/dist/apachedist"
)

type Install struct {
	Method     string         `json:"method" yaml:"method,omitempty" mapstructure:"method"`
	Parameters map[string]any `json:"with" yaml:"with,omitempty" mapstructure:"with"`
}

func DefaultInstall() Install {
	return Install{
		Method: apachedist.InstallMethod,
	}
}
