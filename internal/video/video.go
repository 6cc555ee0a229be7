package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ivlev/quickcuts/internal/config"
)

// Metadata описывает закодированный файл по данным ffprobe.
type Metadata struct {
	Duration float64
	Width    int
	Height   int
	NbFrames int
}

type Encoder interface {
	EncodeSegment(ctx context.Context, img *image.RGBA, videoPath string, params config.SegmentParams, quality int) error
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error
	Probe(path string) (*Metadata, error)
}

// FFmpegEncoder кодирует сегменты через FFmpeg: один raw RGBA кадр
// повторяется нужное число раз в stdin, склейка — через concat demuxer.
type FFmpegEncoder struct{}

func (e *FFmpegEncoder) EncodeSegment(
	ctx context.Context,
	img *image.RGBA,
	videoPath string,
	params config.SegmentParams,
	quality int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rgba := normalizeRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	frames := int(math.Round(params.Duration * float64(params.FPS)))
	if frames < 1 {
		frames = 1
	}

	var ffLog bytes.Buffer
	err := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":       "rawvideo",
		"pixel_format": "rgba",
		"video_size":   fmt.Sprintf("%dx%d", w, h),
		"framerate":    params.FPS,
	}).Output(videoPath, ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"preset":   "medium",
		"crf":      quality,
		"r":        params.FPS,
		"frames:v": frames,
	}).OverWriteOutput().
		WithInput(newRepeatReader(rgba.Pix, frames)).
		WithErrorOutput(&ffLog).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg segment error: %w, log: %s", err, ffLog.String())
	}
	return nil
}

func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(segmentPaths) == 0 {
		return fmt.Errorf("нет сегментов для склейки")
	}

	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(concatFilePath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, _ := filepath.Abs(p)
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	f.Close()

	var ffLog bytes.Buffer
	err = ffmpeg.Input(concatFilePath, ffmpeg.KwArgs{
		"f":    "concat",
		"safe": 0,
	}).Output(finalPath, ffmpeg.KwArgs{
		"c":        "copy",
		"movflags": "+faststart",
	}).OverWriteOutput().
		WithErrorOutput(&ffLog).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg concat error: %w, log: %s", err, ffLog.String())
	}
	return nil
}

// Probe читает метаданные файла через ffprobe. Используется для проверки
// результата перед тем, как отдавать его пользователю.
func (e *FFmpegEncoder) Probe(path string) (*Metadata, error) {
	probe, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("error probing video: %w", err)
	}
	return parseProbe(probe)
}

func parseProbe(raw string) (*Metadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, ok := s["codec_type"].(string); ok && codecType == "video" {
			videoStream = s
			break
		}
	}
	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	meta := &Metadata{}
	if w, ok := videoStream["width"].(float64); ok {
		meta.Width = int(w)
	}
	if h, ok := videoStream["height"].(float64); ok {
		meta.Height = int(h)
	}
	if nbFrames, ok := videoStream["nb_frames"].(string); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(nbFrames)); err == nil {
			meta.NbFrames = n
		}
	}

	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			meta.Duration = d
		}
	}
	if meta.Duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					meta.Duration = d
				}
			}
		}
	}
	if meta.Duration == 0 {
		return nil, fmt.Errorf("could not determine video duration")
	}

	return meta, nil
}

// normalizeRGBA приводит буфер к плотному RGBA со стандартным шагом,
// чтобы Pix можно было писать в rawvideo-поток как есть.
func normalizeRGBA(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	if img.Stride == bounds.Dx()*4 && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// repeatReader отдает один и тот же кадр count раз, не размножая его в памяти.
type repeatReader struct {
	frame []byte
	count int
	off   int
}

func newRepeatReader(frame []byte, count int) io.Reader {
	return &repeatReader{frame: frame, count: count}
}

func (r *repeatReader) Read(p []byte) (int, error) {
	if r.count <= 0 {
		return 0, io.EOF
	}
	n := copy(p, r.frame[r.off:])
	r.off += n
	if r.off == len(r.frame) {
		r.off = 0
		r.count--
	}
	return n, nil
}
