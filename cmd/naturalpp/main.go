package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/podhmo/naturalpp"
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: naturalpp <file.npp>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), os.Stdout, os.Stderr, flag.Arg(0)); err != nil {
		log.Fatalf("!! %+v", err)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, filename string) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{ReplaceAttr: dropTime}))
	interp := naturalpp.New(
		naturalpp.WithStdout(stdout),
		naturalpp.WithLogger(logger),
	)
	_, err := interp.RunFile(ctx, filename)
	return err
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}
