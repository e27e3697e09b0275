package option

type AppConfig struct {
	Inventory `json:"" yaml:",inline" mapstructure:",squash"`
	Version   VersionResolution `json:"version" yaml:"version" mapstructure:"version"`
	Install   Install           `json:"install" yaml:"install" mapstructure:"install"`
	Check     Check             `json:"check" yaml:"check" mapstructure:"check"`
	Run       Run               `json:"run" yaml:"run" mapstructure:"run"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Inventory: DefaultInventory(),
		Version:   DefaultVersionResolution(),
		Install:   DefaultInstall(),
	}
}
