package server

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ivlev/quickcuts/internal/config"
	"github.com/ivlev/quickcuts/internal/effects"
	"github.com/ivlev/quickcuts/internal/engine"
	"github.com/ivlev/quickcuts/internal/render"
	"github.com/ivlev/quickcuts/internal/script"
	"github.com/ivlev/quickcuts/internal/system"
	"github.com/ivlev/quickcuts/internal/video"
)

// Options carries the render defaults the CLI resolved for serve mode.
type Options struct {
	FontPath     string
	Quality      int
	ZoomMin      float64
	ZoomMax      float64
	BuildVersion string
}

// NewRouter constructs a Gin engine with the form page and render endpoint.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(formPage))
	})
	r.POST("/render", func(c *gin.Context) {
		handleRender(c, opts)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

// handleRender runs one synchronous render and returns the MP4 as an
// attachment. Each request gets its own output path, so concurrent renders
// never collide on a shared file.
func handleRender(c *gin.Context, opts Options) {
	src, err := script.NewStringSource(c.PostForm("script"))
	if err != nil {
		if errors.Is(err, script.ErrEmptyScript) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Введите хотя бы одну непустую строку сценария."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration := clampFloat(parseFloat(c.DefaultPostForm("duration", "10"), 10), 8, 15)
	fontSize := clampInt(parseInt(c.DefaultPostForm("font_size", "95"), 95), 50, 140)

	width, height, err := config.ResolveFormat(c.DefaultPostForm("format", config.FormatVertical))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fps := parseInt(c.DefaultPostForm("fps", "30"), 30)
	switch fps {
	case 24, 30, 60:
	default:
		fps = 30
	}

	outPath := system.UniquePath(os.TempDir(), ".mp4")
	cfg := &config.Config{
		OutputVideo:   outPath,
		TotalDuration: duration,
		Width:         width,
		Height:        height,
		FontSize:      fontSize,
		FontPath:      opts.FontPath,
		Margin:        80,
		LineGap:       20,
		FPS:           fps,
		Quality:       opts.Quality,
		ZoomMin:       opts.ZoomMin,
		ZoomMax:       opts.ZoomMax,
		BuildVersion:  opts.BuildVersion,
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renderer := render.NewRenderer(render.NewFace(cfg.FontPath, cfg.FontSize))
	effect := effects.NewZoomEffect(effects.RandomZoomSource(cfg.ZoomMin, cfg.ZoomMax))
	project := engine.NewVideoProject(cfg, src, renderer, &video.FFmpegEncoder{}, effect)

	if err := project.Run(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Рендер не удался: " + err.Error()})
		return
	}
	defer os.Remove(outPath)

	c.FileAttachment(outPath, "quick_cuts_text.mp4")
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
