// Package config reads the gopho preferences file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mozvip/gopho/scale"
)

// FileName is the name of the preferences file inside the config folder.
const FileName = "config.yml"

type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type Preferences struct {
	ScaleMode     scale.Mode `yaml:"scale_mode"`
	ScaleRatio    float64    `yaml:"scale_ratio"`
	DelaySeconds  int        `yaml:"delay_seconds"`
	Presentation  bool       `yaml:"presentation"`
	RemoveBorders bool       `yaml:"remove_borders"`
	WindowedSize  Size       `yaml:"windowed_size"`
	Debug         bool       `yaml:"debug"`
}

func NewPreferences() Preferences {
	return Preferences{
		ScaleMode:    scale.Normal,
		ScaleRatio:   1,
		WindowedSize: Size{W: 800, H: 600},
	}
}

// Folder returns the default configuration folder, <UserConfigDir>/gopho.
func Folder() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gopho"), nil
}

// Load reads the preferences stored in folder. A missing file yields the
// defaults.
func Load(folder string) (Preferences, error) {
	preferences := NewPreferences()

	configurationFile := filepath.Join(folder, FileName)
	fileData, err := os.ReadFile(configurationFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("%s was not found, using default preferences", configurationFile)
		return preferences, nil
	}
	if err != nil {
		return preferences, err
	}

	log.Printf("Loading configuration from %s", configurationFile)
	if err := yaml.Unmarshal(fileData, &preferences); err != nil {
		return NewPreferences(), fmt.Errorf("%s: %w", configurationFile, err)
	}
	if preferences.WindowedSize.W <= 0 || preferences.WindowedSize.H <= 0 {
		preferences.WindowedSize = NewPreferences().WindowedSize
	}
	return preferences, preferences.Validate()
}

// Validate checks the values that cannot be repaired silently.
func (p Preferences) Validate() error {
	if !p.ScaleMode.Valid() {
		return fmt.Errorf("%w: %d", scale.ErrInvalidMode, int(p.ScaleMode))
	}
	if p.ScaleRatio <= 0 {
		return fmt.Errorf("scale_ratio must be greater than zero, given %g", p.ScaleRatio)
	}
	if p.DelaySeconds < 0 {
		return fmt.Errorf("delay_seconds cannot be negative, given %d", p.DelaySeconds)
	}
	return nil
}
