package option

type Inventory struct {
	Root string `json:"root" yaml:"root" mapstructure:"root"`
}

func DefaultInventory() Inventory {
	return Inventory{
		Root: ".mvnup",
	}
}
