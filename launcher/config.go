package launcher

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is extracted from the `dfusehedera.yaml` file, keyed by command
// name (`start`).
var Config map[string]*CommandConfig

type CommandConfig struct {
	Args  []string          `yaml:"args"`
	Flags map[string]string `yaml:"flags"`
}

// LoadConfigFile reads the YAML config and sets the global Config variable.
func LoadConfigFile(filename string) (err error) {
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(yamlBytes, &Config)
	if err != nil {
		return fmt.Errorf("reading yaml: %w", err)
	}

	return nil
}
