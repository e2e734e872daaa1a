package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/menta2k/circlecrop"
	"github.com/menta2k/circlecrop/internal/config"
	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/internal/utils"
	"github.com/menta2k/circlecrop/pkg/client"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/detection"
	"github.com/menta2k/circlecrop/pkg/editor"
	"github.com/menta2k/circlecrop/pkg/export"
	"github.com/menta2k/circlecrop/pkg/imageio"
	"github.com/menta2k/circlecrop/pkg/llamacpp"
	"github.com/menta2k/circlecrop/pkg/ollama"
	"github.com/menta2k/circlecrop/pkg/suggest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "circlecrop: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var in, outDir, ext, backend, model, serverURL, overlay, configPath, logLevel string
	var previews, checkVision bool
	var crops, gestures listFlag

	flag.StringVar(&in, "in", "", "input image path or URL (jpg/png/gif/webp)")
	flag.StringVar(&outDir, "out", "", "output directory for crops (default from config)")
	flag.StringVar(&ext, "ext", "", "crop format: png|jpg|webp (default from config)")
	flag.Var(&crops, "crop", "crop region x,y,size[,display[,username]] (repeatable)")
	flag.Var(&gestures, "gesture", `pointer gesture such as "down:10,10 move:50,30 up:50,30" (repeatable)`)
	flag.StringVar(&backend, "suggest", "", "crop suggestions: none|saliency|ollama|llamacpp")
	flag.StringVar(&model, "model", "", "vision model name for ollama/llamacpp suggestions")
	flag.StringVar(&serverURL, "url", "", "vision server URL")
	flag.BoolVar(&checkVision, "check-vision", false, "ask the vision model to describe the image before suggesting")
	flag.StringVar(&overlay, "overlay", "", "write the editor overlay to this PNG path")
	flag.BoolVar(&previews, "previews", false, "write circular previews next to the crops")
	flag.StringVar(&configPath, "config", "", "config file (.json, .yaml or .yml)")
	flag.StringVar(&logLevel, "log", "", "log level: debug|info|warn|error")
	flag.Parse()

	if in == "" {
		return fmt.Errorf("usage: %s -in input.jpg|URL [-crop x,y,size[,display[,username]]] [-gesture ...] [-suggest none|saliency|ollama|llamacpp] [-out dir] [-ext png|jpg|webp]",
			filepath.Base(os.Args[0]))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, outDir, ext, backend, model, logLevel)
	if checkVision {
		cfg.Suggest.CheckVision = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}, os.Stderr)
	defer closeLog()

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}

	editorCfg := editor.DefaultConfig()
	editorCfg.ResizeHandleSize = cfg.Editor.ResizeHandleSize
	editorCfg.DeleteHandleSize = cfg.Editor.DeleteHandleSize
	editorCfg.PreviewSize = cfg.Editor.PreviewSize
	editorCfg.LineWidth = cfg.Editor.LineWidth

	loaderCfg := imageio.Config{
		SupportedFormats: cfg.Editor.SupportedFormats,
		MinImageSize:     1,
		UserAgent:        "circlecrop/" + circlecrop.Version,
	}

	ed := circlecrop.NewWithOptions(circlecrop.Options{
		Editor: editorCfg,
		Export: export.Options{
			Format:   format,
			Quality:  cfg.Export.Quality,
			Lossless: cfg.Export.Lossless,
			Prefix:   cfg.Export.Prefix,
		},
		Loader: loaderCfg,
		Logger: logger,
	})

	if !strings.Contains(in, "://") && !utils.IsImageFile(in) {
		logger.Warn("input does not have an image extension, trying to decode anyway", "in", in)
	}
	if err := ed.Open(in); err != nil {
		return err
	}

	suggester, err := newSuggester(cfg.Suggest, serverURL, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(max(cfg.Suggest.TimeoutSec, 1))*time.Second)
	defer cancel()
	n, err := ed.Suggest(ctx, suggester)
	if err != nil {
		logger.Warn("suggestions skipped", "error", err)
	} else if n > 0 {
		logger.Info("suggested crops added", "backend", cfg.Suggest.Backend, "count", n)
	}

	for _, c := range crops {
		r, err := parseCrop(c)
		if err != nil {
			return err
		}
		ed.AddRegions([]*crop.Region{r})
	}

	for _, g := range gestures {
		events, err := parseGesture(g)
		if err != nil {
			return err
		}
		replay(ed.Session(), events)
	}

	if overlay != "" {
		if err := utils.EnsureDir(filepath.Dir(overlay)); err != nil {
			return err
		}
		if err := imaging.Save(ed.Overlay(), overlay); err != nil {
			return fmt.Errorf("failed to write overlay: %w", err)
		}
		logger.Info("wrote overlay", "path", overlay)
	}

	if previews {
		if err := writePreviews(cfg.Export.OutputDir, ed.Session().Previews()); err != nil {
			return err
		}
	}

	results, err := ed.ExportTo(cfg.Export.OutputDir)
	if err != nil {
		return err
	}
	if failed := reportResults(os.Stdout, results, logger); failed > 0 {
		return fmt.Errorf("%d of %d crops failed to export", failed, len(results))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if def := config.GetConfigPath(); utils.FileExists(def) {
			path = def
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func applyOverrides(cfg *config.Config, outDir, ext, backend, model, logLevel string) {
	if outDir != "" {
		cfg.Export.OutputDir = outDir
	}
	if ext != "" {
		cfg.Export.Format = strings.TrimPrefix(ext, ".")
	}
	if backend != "" {
		cfg.Suggest.Backend = backend
	}
	if model != "" {
		cfg.Suggest.Model = model
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

func newSuggester(cfg config.SuggestConfig, serverURL string, logger *slog.Logger) (suggest.Suggester, error) {
	var vc client.VisionClient
	switch cfg.Backend {
	case "", "none":
		return suggest.None{}, nil
	case "saliency":
		sc := suggest.DefaultSaliencyConfig()
		if cfg.MaxRegions > 0 {
			sc.MaxRegions = cfg.MaxRegions
		}
		return suggest.NewSaliencySuggester(sc, logger), nil
	case "ollama":
		if serverURL == "" {
			serverURL = cfg.OllamaURL
		}
		c, err := ollama.NewClient(serverURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		vc = c
	case "llamacpp":
		if serverURL == "" {
			serverURL = cfg.LlamaCppURL
		}
		c, err := llamacpp.NewClient(serverURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create llama.cpp client: %w", err)
		}
		vc = c
	default:
		return nil, fmt.Errorf("unknown suggest backend: %s", cfg.Backend)
	}

	detector := detection.NewDetector(vc)
	detector.SetMinConfidence(cfg.MinConfidence)
	return suggest.NewVisionSuggester(detector, suggest.VisionConfig{
		Model:        cfg.Model,
		MaxDimension: cfg.MaxDimension,
		Padding:      cfg.Padding,
		Prompt:       cfg.Prompt,
		CheckVision:  cfg.CheckVision,
	}, logger), nil
}

// reportResults prints the path of every written crop and returns how many
// failed. Zero-size crops have nothing to encode and only warn.
func reportResults(w io.Writer, results []export.Result, logger *slog.Logger) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.Err == nil:
			fmt.Fprintln(w, r.Path)
		case errors.Is(r.Err, export.ErrEmptyImage):
			logger.Warn("skipped zero-size crop", "name", r.Name)
		default:
			failed++
			logger.Error("export failed", "name", r.Name, "error", r.Err)
		}
	}
	return failed
}

func writePreviews(dir string, previews []editor.Preview) error {
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	for _, p := range previews {
		path := filepath.Join(dir, fmt.Sprintf("preview%d.png", p.Index+1))
		if err := imaging.Save(p.Image, path); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}
