package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// LoadPersonality reads a YAML personality file over the defaults.
// An empty path returns the defaults.
func LoadPersonality(path string) (domain.Personality, error) {
	p := domain.DefaultPersonality()
	if err := decodeYAML(path, &p); err != nil {
		return domain.Personality{}, fmt.Errorf("load personality: %w", err)
	}
	return p, nil
}

// LoadUserContext reads a YAML user context file over the defaults.
// An empty path returns the defaults.
func LoadUserContext(path string) (domain.UserContext, error) {
	uc := domain.DefaultUserContext()
	if err := decodeYAML(path, &uc); err != nil {
		return domain.UserContext{}, fmt.Errorf("load user context: %w", err)
	}
	return uc, nil
}

func decodeYAML(path string, out any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
