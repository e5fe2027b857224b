/*
NAME
  main.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// h265info watches a directory for HEVC Annex B bitstream files and
// logs derived stream information (picture size, bit depth, sample
// aspect ratio, framerate) whenever one is written.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/h265meta"
	"github.com/ausocean/h265meta/info"
)

// Logging configuration, matching the rest of ausocean-av's binaries.
const (
	logPath      = "/var/log/h265info/h265info.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	dirPtr := flag.String("dir", ".", "directory to watch for .hevc/.h265/.hvcc files")
	extPtr := flag.String("ext", ".hevc,.h265,.hvcc", "comma-separated list of file extensions to process")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, fileLog, logSuppress)

	exts := strings.Split(*extPtr, ",")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("could not create watcher", "error", err)
	}
	defer watcher.Close()

	if err := watcher.Add(*dirPtr); err != nil {
		log.Fatal("could not watch directory", "dir", *dirPtr, "error", err)
	}
	log.Info("watching directory", "dir", *dirPtr)

	for event := range watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		if !hasExt(event.Name, exts) {
			continue
		}
		describeFile(event.Name, log)
	}
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// describeFile parses name as an Annex B HEVC byte stream and logs
// the derived Info for the SPS/PPS pair installed at id 0.
func describeFile(name string, log logging.Logger) {
	buf, err := os.ReadFile(name)
	if err != nil {
		log.Error("could not read file", "file", name, "error", err)
		return
	}

	reader := h265meta.NewReader()
	if _, err := reader.Parse(buf); err != nil {
		log.Error("parse failed", "file", name, "error", err)
	}
	sps := reader.Context.SPS(0)
	pps := reader.Context.PPS(0)
	vps := reader.Context.VPS(0)
	if sps == nil {
		log.Warning("no SPS found", "file", name)
		return
	}
	got := info.GetInfo(vps, sps, pps)
	log.Info("stream info",
		"file", name,
		"width", got.Width,
		"height", got.Height,
		"bitDepthLuma", got.BitDepthLuma,
		"bitDepthChroma", got.BitDepthChroma,
		"framerate", got.Framerate,
		"sarWidth", got.SARWidth,
		"sarHeight", got.SARHeight,
	)
}
