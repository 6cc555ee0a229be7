package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/quickcuts/internal/config"
	"github.com/ivlev/quickcuts/internal/effects"
	"github.com/ivlev/quickcuts/internal/render"
	"github.com/ivlev/quickcuts/internal/script"
	"github.com/ivlev/quickcuts/internal/storyboard"
	"github.com/ivlev/quickcuts/internal/system"
	"github.com/ivlev/quickcuts/internal/video"
)

// Число параллельных энкодеров. Больше обычно не ускоряет, а душит CPU.
const encodeWorkers = 4

type VideoProject struct {
	Config   *config.Config
	Source   script.Source
	Renderer *render.Renderer
	Encoder  video.Encoder
	Effect   effects.Effect
	tempDir  string
}

func NewVideoProject(cfg *config.Config, src script.Source, r *render.Renderer, enc video.Encoder, eff effects.Effect) *VideoProject {
	return &VideoProject{
		Config:   cfg,
		Source:   src,
		Renderer: r,
		Encoder:  enc,
		Effect:   eff,
	}
}

// cut — один кат: текст или QR-код, с его длительностью и зумом.
type cut struct {
	text     string
	qrLink   string
	duration float64
	zoom     float64 // 0 — фактор выбирает Effect
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	cuts, err := p.collectCuts()
	if err != nil {
		return err
	}

	if p.Config.StoryboardOutput != "" {
		return p.writeStoryboard(cuts)
	}

	p.tempDir, err = os.MkdirTemp("", "quickcuts_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	fmt.Println("--- [QUICK CUTS ENGINE] ---")
	fmt.Printf("[*] Катов: %d | Длительность: %.2fs\n", len(cuts), p.Config.TotalDuration)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Шрифт: %d\n", p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.FontSize)
	fmt.Println("---------------------------")

	renderStart := time.Now()
	results := make([]string, len(cuts))

	type renderedCut struct {
		index int
		img   *image.RGBA
	}

	g, gctx := errgroup.WithContext(ctx)
	rendered := make(chan renderedCut, len(cuts))

	// 1. Пул рендеринга (CPU bound): растеризация + зум-кроп.
	renderGroup, renderCtx := errgroup.WithContext(gctx)
	renderGroup.SetLimit(p.renderWorkers(len(cuts)))
	g.Go(func() error {
		defer close(rendered)
		for i := range cuts {
			i := i
			renderGroup.Go(func() error {
				img, err := p.renderCut(i, cuts[i])
				if err != nil {
					return fmt.Errorf("кат %d: %w", i+1, err)
				}
				select {
				case rendered <- renderedCut{index: i, img: img}:
					return nil
				case <-renderCtx.Done():
					return renderCtx.Err()
				}
			})
		}
		return renderGroup.Wait()
	})

	// 2. Пул кодирования: каждый кадр становится сегментом фиксированной длины.
	for w := 0; w < encodeWorkers; w++ {
		g.Go(func() error {
			for rc := range rendered {
				segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%d.mp4", rc.index))
				params := config.SegmentParams{
					Width:    p.Config.Width,
					Height:   p.Config.Height,
					FPS:      p.Config.FPS,
					Duration: cuts[rc.index].duration,
					CutIndex: rc.index,
				}
				if err := p.Encoder.EncodeSegment(gctx, rc.img, segPath, params, p.Config.Quality); err != nil {
					return fmt.Errorf("кодирование ката %d: %w", rc.index+1, err)
				}
				results[rc.index] = segPath
				fmt.Printf("[>] Готово: %d/%d\n", rc.index+1, len(cuts))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	for i, r := range results {
		if r == "" {
			return fmt.Errorf("сегмент %d не был создан", i)
		}
	}

	fmt.Println("[*] Сборка финального видео...")
	concatStart := time.Now()
	if err := p.Encoder.Concatenate(ctx, results, p.Config.OutputVideo, p.tempDir); err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	concatTime := time.Since(concatStart)

	if err := p.verifyOutput(cuts); err != nil {
		// Битый или неполный файл нельзя выдавать за результат.
		os.Remove(p.Config.OutputVideo)
		return err
	}

	if p.Config.ShowStats {
		p.reportStats(len(cuts), time.Since(startTime), renderTime, concatTime)
	}

	return nil
}

// collectCuts строит список катов: строки сценария или сторибород, плюс
// опциональный QR-кат в конце.
func (p *VideoProject) collectCuts() ([]cut, error) {
	var cuts []cut

	if p.Config.StoryboardInput != "" {
		sb, err := storyboard.Read(p.Config.StoryboardInput)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сториборода: %w", err)
		}
		if len(sb.Cuts) == 0 {
			return nil, script.ErrEmptyScript
		}
		fmt.Printf("[*] Используется сторибород: %s\n", p.Config.StoryboardInput)
		total := 0.0
		for _, c := range sb.Cuts {
			cuts = append(cuts, cut{text: c.Text, duration: c.Duration, zoom: c.Zoom})
			total += c.Duration
		}
		p.Config.TotalDuration = total
	} else {
		n := p.Source.CutCount()
		if n == 0 {
			return nil, script.ErrEmptyScript
		}
		for i := 0; i < n; i++ {
			text, err := p.Source.Cut(i)
			if err != nil {
				return nil, err
			}
			cuts = append(cuts, cut{text: text})
		}
	}

	if p.Config.QRLink != "" {
		cuts = append(cuts, cut{qrLink: p.Config.QRLink})
	}

	// Равномерное деление: каждая строка получает одинаковое экранное время.
	perCut := p.Config.TotalDuration / float64(len(cuts))
	for i := range cuts {
		if cuts[i].duration == 0 {
			cuts[i].duration = perCut
		}
	}

	// Итоговая длительность — сумма катов. QR-кат удлиняет таймлайн
	// сториборода, и проверка результата сверяется именно с этой суммой.
	sum := 0.0
	for _, c := range cuts {
		sum += c.duration
	}
	p.Config.TotalDuration = sum

	return cuts, nil
}

// CutDurations возвращает рассчитанные длительности катов (для отчетов и тестов).
func CutDurations(total float64, n int) []float64 {
	durations := make([]float64, n)
	for i := range durations {
		durations[i] = total / float64(n)
	}
	return durations
}

func (p *VideoProject) renderCut(index int, c cut) (*image.RGBA, error) {
	var img *image.RGBA
	if c.qrLink != "" {
		qr, err := render.QRFrame(c.qrLink, p.Config.Width, p.Config.Height, p.Config.Margin)
		if err != nil {
			return nil, fmt.Errorf("QR-кат: %w", err)
		}
		img = qr
	} else {
		img = p.Renderer.RenderFrame(c.text, p.Config.Width, p.Config.Height, p.Config.Margin, p.Config.LineGap)
	}

	if p.Effect == nil {
		return img, nil
	}
	return p.Effect.Apply(img, config.SegmentParams{
		Width:    p.Config.Width,
		Height:   p.Config.Height,
		FPS:      p.Config.FPS,
		Duration: c.duration,
		Zoom:     c.zoom,
		CutIndex: index,
	}), nil
}

func (p *VideoProject) renderWorkers(cutCount int) int {
	n := p.Config.Workers
	if n <= 0 {
		n = system.DefaultWorkers()
	}
	if n > cutCount {
		n = cutCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// verifyOutput сверяет итоговый файл с запросом: битый или обрезанный
// результат — это ошибка, а не предупреждение.
func (p *VideoProject) verifyOutput(cuts []cut) error {
	meta, err := p.Encoder.Probe(p.Config.OutputVideo)
	if err != nil {
		return fmt.Errorf("проверка результата: %w", err)
	}

	// Каждый сегмент округляется до целого числа кадров, плюс запас
	// на контейнер.
	tolerance := float64(len(cuts))*0.5/float64(p.Config.FPS) + 0.2
	if math.Abs(meta.Duration-p.Config.TotalDuration) > tolerance {
		return fmt.Errorf("длительность результата %.2fs не совпадает с запрошенной %.2fs", meta.Duration, p.Config.TotalDuration)
	}
	if meta.Width != p.Config.Width || meta.Height != p.Config.Height {
		return fmt.Errorf("разрешение результата %dx%d не совпадает с запрошенным %dx%d", meta.Width, meta.Height, p.Config.Width, p.Config.Height)
	}

	// nb_frames есть не в каждом контейнере; если он известен, счет кадров
	// должен сойтись точно.
	if meta.NbFrames > 0 {
		if expected := expectedFrames(cuts, p.Config.FPS); meta.NbFrames != expected {
			return fmt.Errorf("в результате %d кадров, ожидалось %d", meta.NbFrames, expected)
		}
	}
	return nil
}

// expectedFrames считает суммарное число кадров: каждый кат округляется до
// целого числа кадров, минимум один кадр.
func expectedFrames(cuts []cut, fps int) int {
	total := 0
	for _, c := range cuts {
		f := int(math.Round(c.duration * float64(fps)))
		if f < 1 {
			f = 1
		}
		total += f
	}
	return total
}

func (p *VideoProject) writeStoryboard(cuts []cut) error {
	lines := make([]string, len(cuts))
	for i, c := range cuts {
		if c.qrLink != "" {
			lines[i] = c.qrLink
		} else {
			lines[i] = c.text
		}
	}

	var zoomFn func(int) float64
	if ze, ok := p.Effect.(*effects.ZoomEffect); ok && ze.Source != nil {
		zoomFn = ze.Source
	}

	sb := storyboard.FromCuts(lines, p.Config.TotalDuration, zoomFn)
	if err := storyboard.Write(sb, p.Config.StoryboardOutput); err != nil {
		return err
	}
	fmt.Printf("[+++] Сторибород сохранен: %s\n", p.Config.StoryboardOutput)
	return nil
}

func (p *VideoProject) reportStats(cutCount int, total, renderTime, concatTime time.Duration) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Cuts: %d\n"+
			"Total Time: %.2fs\n"+
			"Render+Encode: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"Workers: %d | RSS: %.1f MB\n"+
			"----------------------------\n",
		p.Config.BuildVersion, cutCount, total.Seconds(), renderTime.Seconds(), concatTime.Seconds(),
		p.renderWorkers(cutCount), system.ProcessMemoryMB(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Output: %s | Cuts: %d | Total: %.2fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.OutputVideo),
		cutCount,
		total.Seconds(),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		log.Printf("[!] Не удалось записать benchmark.log: %v", err)
	}
}
