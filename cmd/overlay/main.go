package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"siege-tracker/internal/capture"
	"siege-tracker/internal/logger"
	"siege-tracker/internal/overlay"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to overlay.yaml (default ./overlay.yaml)")
	textPath := pflag.String("text", "", "read recognized text from a file, or - for stdin, instead of capturing the screen")
	platform := pflag.StringP("platform", "p", "", "platform for every player (overrides the config)")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	pflag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.SetLevel(os.Stderr, level)

	cfg, err := overlay.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load overlay config")
	}
	if *platform != "" {
		cfg.Platform = *platform
	}

	var text *string
	if *textPath != "" {
		t, err := readText(*textPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *textPath).Msg("failed to read text")
		}
		text = &t
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := overlay.NewRunner(
		cfg,
		capture.NewRecognizer(cfg.Tesseract.Binary, cfg.Tesseract.Language, log),
		overlay.NewBackendClient(cfg, log),
		log,
	)

	if err := runner.Run(ctx, os.Stdout, text); err != nil {
		if errors.Is(err, overlay.ErrNoCandidates) {
			fmt.Println("[No candidate names detected]")
			stop()
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("overlay run failed")
	}
}

func readText(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
