// Package profiles loads named bot profiles from a YAML file so CLI users
// can say --profile staging-bot instead of pasting tokens on the command
// line. Tokens stay in the file; they are never logged.
package profiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is one configured bot.
type Profile struct {
	Token       string `yaml:"token"`
	BotID       int64  `yaml:"bot_id"`
	Environment string `yaml:"environment"`
}

// File is the parsed profiles file.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and parses a profiles YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return &f, nil
}

// Get returns the named profile.
func (f *File) Get(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}
