// chatcli sends one chat turn to a heartchat backend and prints the event
// stream as it arrives. Useful for poking at the protocol against the mock
// server or a real deployment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nuanxinlab/heartchat-go/internal/client"
	"github.com/nuanxinlab/heartchat-go/internal/config"
	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var (
		baseURL   = flag.String("base", cfg.Client.BaseURL, "backend base URL")
		userID    = flag.String("user", "local-dev", "user identifier")
		sessionID = flag.String("session", "", "existing session id (empty starts a new one)")
		locale    = flag.String("locale", cfg.Client.Locale, "request locale")
		streaming = flag.Bool("stream", cfg.Client.Streaming, "ask for a streamed response")
		message   = flag.String("message", "", "message to send (required)")
	)
	flag.Parse()

	if *message == "" {
		fmt.Fprintln(os.Stderr, "usage: chatcli -message \"...\" [-base URL] [-session ID]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Client.TimeoutSeconds)*time.Second)
	defer cancel()

	c := client.New(*baseURL, client.WithLocale(*locale), client.WithStreaming(*streaming))
	stream, err := c.StreamTurn(ctx, chat.TurnRequest{
		UserID:    *userID,
		SessionID: *sessionID,
		Message:   *message,
	})
	if err != nil {
		log.Fatalf("turn failed: %v", err)
	}
	defer stream.Close()

	if err := printEvents(stream); err != nil {
		log.Fatalf("stream failed: %v", err)
	}
}

func printEvents(stream *client.Stream) error {
	for {
		event, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch event.Type {
		case chat.EventSession:
			fmt.Printf("session: %s (locale %s)\n", event.Session.SessionID, event.Session.ResolvedLocale)
			for _, rec := range event.Session.Recommendations {
				fmt.Printf("  推荐咨询师: %s（%s） score=%.0f\n", rec.Name, rec.Title, rec.Score)
			}

		case chat.EventToken:
			fmt.Print(event.Delta)

		case chat.EventComplete:
			fmt.Println()
			fmt.Printf("complete: session=%s reply=%d chars\n", event.Turn.SessionID, len([]rune(event.Turn.Reply.Content)))
			for _, highlight := range event.Turn.MemoryHighlights {
				fmt.Printf("  记忆摘要: %s %v\n", highlight.Summary, highlight.Keywords)
			}

		case chat.EventError:
			fmt.Println()
			fmt.Printf("error: %s\n", event.Detail)
		}
	}
}
