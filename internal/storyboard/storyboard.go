package storyboard

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Storyboard is an editable cut list: render one, tweak durations or zoom
// factors by hand, render again from the file.
type Storyboard struct {
	Version string `yaml:"version"`
	Cuts    []Cut  `yaml:"cuts"`
}

// Cut pins down one rendered line: its text, screen time and zoom factor.
type Cut struct {
	ID       int     `yaml:"id"`
	Text     string  `yaml:"text"`
	Duration float64 `yaml:"duration"` // seconds
	Zoom     float64 `yaml:"zoom"`     // 1.0 = no zoom
}

// FromCuts builds a storyboard with the uniform duration split and the zoom
// factors the run would use.
func FromCuts(lines []string, totalDuration float64, zoom func(int) float64) *Storyboard {
	cuts := make([]Cut, len(lines))
	perCut := 0.0
	if len(lines) > 0 {
		perCut = totalDuration / float64(len(lines))
	}
	for i, line := range lines {
		z := 1.0
		if zoom != nil {
			z = zoom(i)
		}
		cuts[i] = Cut{
			ID:       i + 1,
			Text:     line,
			Duration: perCut,
			Zoom:     z,
		}
	}
	return &Storyboard{Version: "1.0", Cuts: cuts}
}

// Write saves a storyboard to a YAML file.
func Write(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a storyboard from a YAML file.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}
