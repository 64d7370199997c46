// Command lectern builds a static lesson site from a tree of Markdown
// files with front matter.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/lecternfs"
	"github.com/getlectern/lectern/site"
)

const (
	exitOK = iota
	// exitDocumentErrors: some documents failed, the rest of the site built.
	exitDocumentErrors
	// exitFatal: configuration error, output path collision or other
	// structural failure; nothing useful was produced.
	exitFatal
)

var cli struct {
	Verbose bool `short:"v" help:"Enable verbose logging."`

	Build struct {
		Input  string `short:"i" default:"content" help:"Content root directory."`
		Output string `short:"o" default:"public" help:"Output directory."`
		Config string `short:"c" default:"config.toml" help:"Site configuration file."`
	} `cmd:"" help:"Build the site once."`

	Serve struct {
		Input  string `short:"i" default:"content" help:"Content root directory."`
		Output string `short:"o" default:"public" help:"Output directory."`
		Config string `short:"c" default:"config.toml" help:"Site configuration file."`
		Port   int    `short:"p" default:"1313" help:"Port to serve the site on."`
	} `cmd:"" help:"Build, serve locally and rebuild on changes."`

	Init struct {
		Dir   string `arg:"" optional:"" default:"." help:"Directory to scaffold into."`
		Force bool   `help:"Overwrite an existing configuration file."`
	} `cmd:"" help:"Scaffold a new site."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("lectern"),
		kong.Description("A static site generator for course material."),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch ctx.Command() {
	case "build":
		os.Exit(runBuild(cli.Build.Input, cli.Build.Output, cli.Build.Config))
	case "serve":
		os.Exit(runServe(cli.Serve.Input, cli.Serve.Output, cli.Serve.Config, cli.Serve.Port))
	case "init", "init <dir>":
		os.Exit(runInit(cli.Init.Dir, cli.Init.Force))
	}
}

func newSite(input, output, configFile string) (*site.Site, error) {
	cfg, err := config.FromFile(lecternfs.Os, configFile)
	if err != nil {
		return nil, err
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg.Set("contentDir", input)
	cfg.Set("publishDir", output)

	fs := lecternfs.NewDefault(cfg, workingDir)
	return site.New(cfg, fs)
}

func runBuild(input, output, configFile string) int {
	s, err := newSite(input, output, configFile)
	if err != nil {
		slog.Error("Build failed", "error", err)
		return exitFatal
	}

	res, err := s.Build(context.Background())
	if err != nil {
		slog.Error("Build failed", "error", err)
		return exitFatal
	}

	slog.Info("Site built", "pages", res.Rendered, "assets", res.Assets, "failed", res.Failed)
	if res.Failed > 0 {
		slog.Error("Some documents failed to build", "failed", res.Failed)
		return exitDocumentErrors
	}
	return exitOK
}

func runServe(input, output, configFile string, port int) int {
	s, err := newSite(input, output, configFile)
	if err != nil {
		slog.Error("Initial build failed", "error", err)
		return exitFatal
	}

	if _, err := s.Build(context.Background()); err != nil {
		slog.Error("Initial build failed", "error", err)
		return exitFatal
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create file watcher", "error", err)
		return exitFatal
	}
	defer watcher.Close()

	go watchAndRebuild(watcher, input, output, configFile)

	watchTree(watcher, input)
	watchTree(watcher, s.Cfg.GetString("layoutDir"))

	addr := fmt.Sprintf(":%d", port)
	slog.Info("Serving site", "dir", output, "url", "http://localhost"+addr)

	if err := http.ListenAndServe(addr, noCache(http.FileServer(http.Dir(output)))); err != nil {
		slog.Error("Server failed", "error", err)
		return exitFatal
	}
	return exitOK
}

// watchAndRebuild debounces change events and rebuilds the whole site.
// Rebuild errors are logged, never fatal; the previous output keeps serving.
func watchAndRebuild(watcher *fsnotify.Watcher, input, output, configFile string) {
	const debounce = 500 * time.Millisecond
	var timer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				slog.Info("Change detected, rebuilding", "file", event.Name)
				s, err := newSite(input, output, configFile)
				if err == nil {
					_, err = s.Build(context.Background())
				}
				if err != nil {
					slog.Error("Rebuild failed", "error", err)
					return
				}
				slog.Info("Site rebuilt")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) {
	if root == "" {
		return
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				slog.Warn("Failed to watch directory", "dir", path, "error", err)
			}
		}
		return nil
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

const defaultConfig = `title = "My Course"
baseURL = "http://localhost:1313/"

enableEmoji = false
minify = false
`

const sampleLesson = `---
title: "Welcome"
date: 2024-01-15
tags: ["intro"]
---

# Welcome

Your first lesson. Edit me.
`

func runInit(dir string, force bool) int {
	fs := afero.Afero{Fs: lecternfs.Os}

	configPath := filepath.Join(dir, "config.toml")
	if exists, _ := fs.Exists(configPath); exists && !force {
		slog.Error("Configuration file already exists, use --force to overwrite", "path", configPath)
		return exitFatal
	}

	for _, d := range []string{"content", "layouts", "public"} {
		if err := fs.MkdirAll(filepath.Join(dir, d), 0777); err != nil {
			slog.Error("Init failed", "error", err)
			return exitFatal
		}
	}

	if err := fs.WriteFile(configPath, []byte(defaultConfig), 0666); err != nil {
		slog.Error("Init failed", "error", err)
		return exitFatal
	}

	lessonPath := filepath.Join(dir, "content", "welcome.md")
	if exists, _ := fs.Exists(lessonPath); !exists {
		if err := fs.WriteFile(lessonPath, []byte(sampleLesson), 0666); err != nil {
			slog.Error("Init failed", "error", err)
			return exitFatal
		}
	}

	slog.Info("Site scaffolded", "dir", dir)
	return exitOK
}
