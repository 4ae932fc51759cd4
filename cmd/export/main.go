package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aerugo/ancestral-vision/internal/setup"
	"github.com/aerugo/ancestral-vision/internal/storage"
	"github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/export"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/logger/console"
	pgstore "github.com/aerugo/ancestral-vision/pkg/store/pgx"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := setup.OpenDatabase(ctx)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pool.Close()

	st := pgstore.NewFamilyDBStore(pool)
	snap, err := export.Collect(ctx, st)
	if err != nil {
		logger.Fatal("Failed to read the graph", "err", err)
	}
	logger.Info("Collected graph",
		"persons", len(snap.Persons),
		"child_links", len(snap.ChildLinks),
		"spouse_links", len(snap.SpouseLinks))

	outDir := util.GetEnvString("AV_EXPORT_DIR", ".")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Fatal("Failed to create output directory", "dir", outDir, "err", err)
	}

	artifacts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"graph.json", snap.WriteJSON},
		{"persons.csv", snap.WritePersonsCSV},
		{"relationships.csv", snap.WriteRelationshipsCSV},
		{"family.ged", snap.WriteGEDCOM},
	}

	upload := util.GetEnvBool("AV_EXPORT_UPLOAD", false)
	s3Client := storage.NewS3Client(ctx)
	if upload && s3Client == nil {
		logger.Fatal("Upload requested but object storage is not configured")
	}

	for _, a := range artifacts {
		var buf bytes.Buffer
		if err := a.write(&buf); err != nil {
			logger.Fatal("Failed to render export", "artifact", a.name, "err", err)
		}

		path := filepath.Join(outDir, a.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			logger.Fatal("Failed to write export", "path", path, "err", err)
		}
		logger.Info("Wrote export", "path", path, "bytes", buf.Len())

		if !upload {
			continue
		}
		key, err := storage.PutExport(ctx, s3Client, a.name, bytes.NewReader(buf.Bytes()))
		if err != nil {
			logger.Fatal("Failed to upload export", "artifact", a.name, "err", err)
		}
		link, err := storage.PresignDownload(ctx, s3Client, key)
		if err != nil {
			logger.Fatal("Failed to presign download", "key", key, "err", err)
		}
		logger.Info("Uploaded export", "key", key, "url", link)
	}
}
