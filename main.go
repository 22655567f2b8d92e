package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"transcriptify/config"
	"transcriptify/handlers"
	"transcriptify/internal/pipeline"
	"transcriptify/internal/progress"
	"transcriptify/internal/summarize"
	"transcriptify/internal/transcript"
	"transcriptify/internal/worker"
	"transcriptify/internal/youtube"
	"transcriptify/middleware"
)

func main() {
	config.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		config.Log.Fatalf("Failed to load configuration: %v", err)
	}

	yt, err := youtube.NewClient(context.Background(), cfg.YouTubeAPIKey, config.Log)
	if err != nil {
		config.Log.Fatalf("Failed to initialize YouTube client: %v", err)
	}

	transcripts := transcript.NewFetcher(config.Log)
	summarizer := summarize.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.SummarizeInterval, config.Log)
	tracker := progress.NewTracker()

	dispatcher := worker.NewDispatcher(cfg.MaxConcurrentDownloads, 100, config.Log)
	dispatcher.Run()
	defer dispatcher.Stop()

	orchestrator := pipeline.New(yt, transcripts, summarizer, tracker, dispatcher, config.Log)
	h := handlers.NewApplicationHandler(yt, orchestrator, tracker, config.Log, cfg.PlaylistFetchTimeout)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Transcriptify is healthy",
		})
	})

	app.Post("/get_playlist", h.GetPlaylist)
	app.Post("/download_transcript_batch", h.DownloadTranscriptBatch)
	app.Post("/download_progress", h.DownloadProgress)

	app.Static("/", "./web/static")

	config.Log.Infof("Starting Transcriptify on port %s", cfg.Port)
	config.Log.Fatal(app.Listen(":" + cfg.Port))
}
