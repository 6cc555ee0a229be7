package config

import "fmt"

type Config struct {
	ScriptPath       string
	ScriptText       string
	OutputVideo      string
	TotalDuration    float64
	Width            int
	Height           int
	FontSize         int
	FontPath         string
	Margin           int
	LineGap          int
	FPS              int
	Workers          int
	Quality          int
	ZoomMin          float64
	ZoomMax          float64
	QRLink           string
	StoryboardInput  string
	StoryboardOutput string
	ShowStats        bool
	BuildVersion     string
}

type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Zoom          float64
	CutIndex      int
}

// Форматы холста, как в исходном UI: вертикальный, квадратный, горизонтальный.
const (
	FormatVertical   = "vertical"
	FormatSquare     = "square"
	FormatHorizontal = "horizontal"
)

func ResolveFormat(name string) (width, height int, err error) {
	switch name {
	case FormatVertical, "":
		return 1080, 1920, nil
	case FormatSquare:
		return 1080, 1080, nil
	case FormatHorizontal:
		return 1920, 1080, nil
	default:
		return 0, 0, fmt.Errorf("неизвестный формат %q (vertical, square, horizontal)", name)
	}
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("некорректное разрешение %dx%d", c.Width, c.Height)
	}
	if c.TotalDuration <= 0 {
		return fmt.Errorf("длительность должна быть положительной, получено %.2f", c.TotalDuration)
	}
	switch c.FPS {
	case 24, 30, 60:
	default:
		return fmt.Errorf("fps должен быть 24, 30 или 60, получено %d", c.FPS)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("размер шрифта должен быть положительным, получено %d", c.FontSize)
	}
	if c.Margin < 0 || c.LineGap < 0 {
		return fmt.Errorf("отступы не могут быть отрицательными (margin=%d, line-gap=%d)", c.Margin, c.LineGap)
	}
	if 2*c.Margin >= c.Width {
		return fmt.Errorf("margin %d не оставляет места для текста при ширине %d", c.Margin, c.Width)
	}
	if c.ZoomMin > c.ZoomMax {
		return fmt.Errorf("zoom-min %.2f больше zoom-max %.2f", c.ZoomMin, c.ZoomMax)
	}
	return nil
}
