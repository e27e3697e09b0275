package option

type Run struct {
	// Args are prepended to every mvn invocation made through the run command
	// (e.g. "--batch-mode").
	Args string `json:"args" yaml:"args,omitempty" mapstructure:"args"`
}
