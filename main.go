package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bosley/arpamap/batch"
	"github.com/bosley/arpamap/phone"
	"github.com/bosley/arpamap/watch"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	outFile := flag.String("out", "", "Output JSON file (only valid when input is a file). Default: <input>.arpa.json")
	outDir := flag.String("out_dir", "", "Output directory (only valid when input is a directory). Default: <input>_arpa sibling directory")
	inPlace := flag.Bool("inplace", false, "Overwrite input JSON(s) in place")
	defaultStress := flag.String("default_stress", "1", "Default stress digit for vowels (0/1/2), or 'none' for stress-less vowel bases")
	watchMode := flag.Bool("watch", false, "Keep running and convert timestamp files as they appear (directory input only)")
	httpAddr := flag.String("http", ":8441", "HTTP address for the watch service API")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	stress, err := phone.ParseStress(*defaultStress)
	if err != nil {
		slog.Error("Invalid default_stress value", "error", err)
		os.Exit(1)
	}

	if *watchMode {
		if *inPlace || *outFile != "" {
			slog.Error("watch mode only supports -out_dir")
			os.Exit(1)
		}
		runWatch(input, *outDir, *httpAddr, stress)
		return
	}

	err = batch.Run(batch.Config{
		Input:   input,
		OutFile: *outFile,
		OutDir:  *outDir,
		InPlace: *inPlace,
		Stress:  stress,
	})
	if err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func runWatch(input, outDir, httpAddr string, stress phone.Stress) {
	if outDir == "" {
		outDir = batch.DefaultOutDir(input)
	}

	service, err := watch.New(watch.Config{
		InputDir:  input,
		OutputDir: outDir,
		HTTPAddr:  httpAddr,
		Stress:    stress,
		Workers:   2,
	})
	if err != nil {
		slog.Error("Failed to initialize watch service", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Debug("Received shutdown signal")
		cancel()
	}()

	if err := service.Start(ctx); err != nil {
		slog.Error("Watch service failed", "error", err)
		os.Exit(1)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := service.Stop(stopCtx); err != nil {
		slog.Error("Failed to stop watch service", "error", err)
	}

	slog.Debug("Program exiting")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: arpamap [flags] <input.json | input-dir>\n\n")
	fmt.Fprintf(flag.CommandLine.Output(), "Converts MFA IPA-like phone labels in timestamp JSONs to ARPABET\nwhile preserving the JSON schema.\n\n")
	flag.PrintDefaults()
}
