package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/ivlev/quickcuts/internal/config"
	"github.com/ivlev/quickcuts/internal/effects"
	"github.com/ivlev/quickcuts/internal/engine"
	"github.com/ivlev/quickcuts/internal/render"
	"github.com/ivlev/quickcuts/internal/script"
	"github.com/ivlev/quickcuts/internal/server"
	"github.com/ivlev/quickcuts/internal/system"
	"github.com/ivlev/quickcuts/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	for _, d := range []string{"input/script", "output"} {
		os.MkdirAll(d, 0755)
	}

	scriptPtr := flag.String("script", "", "Путь к .txt со сценарием (по умолчанию: самый свежий файл в input/script/)")
	textPtr := flag.String("text", "", "Сценарий прямо в аргументе (одна строка — один кат, разделитель \\n)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	durationPtr := flag.Float64("duration", 10, "Общая длительность видео в секундах")
	fontSizePtr := flag.Int("font-size", 95, "Размер шрифта")
	fontPtr := flag.String("font", "", "Путь к .ttf (если пусто — DejaVuSans, затем встроенный шрифт)")
	formatPtr := flag.String("format", "vertical", "Формат холста: vertical, square, horizontal")
	fpsPtr := flag.Int("fps", 30, "FPS: 24, 30 или 60")
	marginPtr := flag.Int("margin", 80, "Отступ текста от краев, px")
	lineGapPtr := flag.Int("line-gap", 20, "Интервал между строками, px")
	workersPtr := flag.Int("workers", 0, "Потоки рендеринга (0 — по числу ядер)")
	qualityPtr := flag.Int("quality", 23, "Качество x264 (CRF)")
	zoomMinPtr := flag.Float64("zoom-min", 1.00, "Нижняя граница случайного зума")
	zoomMaxPtr := flag.Float64("zoom-max", 1.06, "Верхняя граница случайного зума")
	qrPtr := flag.String("qr", "", "Ссылка для финального QR-ката (если пусто — не добавляется)")
	storyboardPtr := flag.String("storyboard", "", "Путь к YAML-сторибороду (каты берутся из него)")
	storyboardOutPtr := flag.String("storyboard-out", "", "Сохранить рассчитанный сторибород в YAML и выйти")
	statsPtr := flag.Bool("stats", false, "Показать отчет производительности")
	servePtr := flag.Bool("serve", false, "Запустить веб-интерфейс вместо разового рендера")
	addrPtr := flag.String("addr", "", "Адрес веб-интерфейса (по умолчанию: QUICKCUTS_ADDR или :8080)")

	flag.Parse()

	if *servePtr {
		runServe(*addrPtr, *fontPtr, *qualityPtr, *zoomMinPtr, *zoomMaxPtr)
		return
	}

	width, height, err := config.ResolveFormat(*formatPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	var src script.Source
	switch {
	case *storyboardPtr != "":
		// Каты придут из сториборода, сценарий не нужен.
	case *textPtr != "":
		src, err = script.NewStringSource(*textPtr)
	default:
		scriptPath := *scriptPtr
		if scriptPath == "" {
			latest, ferr := system.FindLatestScript("input/script")
			if ferr != nil {
				log.Fatalf("[-] Ошибка: %v. Положите сценарий в input/script/ или передайте -text", ferr)
			}
			scriptPath = latest
			fmt.Printf("[*] Выбран файл: %s\n", scriptPath)
		}
		src, err = script.NewFileSource(scriptPath)
	}
	if err != nil {
		log.Fatalf("[-] Ошибка сценария: %v", err)
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("quick_cuts_%s.mp4", timestamp))
	}

	cfg := &config.Config{
		OutputVideo:      finalOutput,
		TotalDuration:    *durationPtr,
		Width:            width,
		Height:           height,
		FontSize:         *fontSizePtr,
		FontPath:         *fontPtr,
		Margin:           *marginPtr,
		LineGap:          *lineGapPtr,
		FPS:              *fpsPtr,
		Workers:          *workersPtr,
		Quality:          *qualityPtr,
		ZoomMin:          *zoomMinPtr,
		ZoomMax:          *zoomMaxPtr,
		QRLink:           *qrPtr,
		StoryboardInput:  *storyboardPtr,
		StoryboardOutput: *storyboardOutPtr,
		ShowStats:        *statsPtr,
		BuildVersion:     buildVersion,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	renderer := render.NewRenderer(render.NewFace(cfg.FontPath, cfg.FontSize))
	effect := effects.NewZoomEffect(effects.RandomZoomSource(cfg.ZoomMin, cfg.ZoomMax))

	project := engine.NewVideoProject(cfg, src, renderer, &video.FFmpegEncoder{}, effect)
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	if cfg.StoryboardOutput == "" {
		fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
	}
}

func runServe(addr, fontPath string, quality int, zoomMin, zoomMax float64) {
	_ = godotenv.Load()

	if addr == "" {
		addr = os.Getenv("QUICKCUTS_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	r := server.NewRouter(server.Options{
		FontPath:     fontPath,
		Quality:      quality,
		ZoomMin:      zoomMin,
		ZoomMax:      zoomMax,
		BuildVersion: buildVersion,
	})

	fmt.Printf("[*] Веб-интерфейс: http://localhost%s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("[-] Ошибка сервера: %v", err)
	}
}
