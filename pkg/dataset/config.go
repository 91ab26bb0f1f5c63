package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is the dataset configuration file.
// Only the class mapping is needed here. Other keys in the file are ignored.
type Config struct {
	Classes map[string]string `json:"classes"` // "0" -> "person", "1" -> "car", ...
}

// LoadConfig reads a JSON configuration file
func LoadConfig(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("Error loading as JSON %v: %w", filename, err)
	}
	if cfg.Classes == nil {
		return nil, fmt.Errorf("Error loading %v: missing 'classes' object", filename)
	}
	return cfg, nil
}

// ClassNames returns the class names ordered by class index 0..N-1.
// Every index in that range must be present.
func (c *Config) ClassNames() ([]string, error) {
	if len(c.Classes) == 0 {
		return nil, fmt.Errorf("No classes defined")
	}
	names := make([]string, len(c.Classes))
	for i := range names {
		name, ok := c.Classes[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("Class index %v is missing from 'classes' (expected indices 0..%v)", i, len(c.Classes)-1)
		}
		names[i] = name
	}
	return names, nil
}
