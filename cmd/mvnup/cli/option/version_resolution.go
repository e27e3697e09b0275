package option

import (
	"fmt"

	"github.com/anchore/clio"

	"github.com/mvnup/mvnup/dist"
)

type VersionResolution struct {
	Want       string         `json:"want" yaml:"want" mapstructure:"want"`
	Constraint string         `json:"constraint" yaml:"constraint,omitempty" mapstructure:"constraint"`
	Method     string         `json:"method" yaml:"method,omitempty" mapstructure:"method"`
	Parameters map[string]any `json:"with" yaml:"with,omitempty" mapstructure:"with"`
}

func DefaultVersionResolution() VersionResolution {
	return VersionResolution{
		Want: "latest",
	}
}

func (o *VersionResolution) AddFlags(flags clio.FlagSet) {
	flags.StringVarP(&o.Constraint, "constraint", "", "Version constraint (e.g. '<4.0' or '>=3.9.0')")
	flags.StringVarP(&o.Method, "version-from", "f", fmt.Sprintf("The method to use to resolve versions (available: %+v)", dist.VersionResolverMethods()))
}
