package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-applytrack/internal/browser"
	"go-applytrack/internal/config"
	"go-applytrack/internal/dedup"
	"go-applytrack/internal/extract"
	"go-applytrack/internal/extract/altprobe"
	"go-applytrack/internal/extract/fetch"
	"go-applytrack/internal/extract/headless"
	"go-applytrack/internal/extract/mobileapi"
	"go-applytrack/internal/extract/structured"
	"go-applytrack/internal/store"
	"go-applytrack/internal/telegram"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extract <posting-url>")
		os.Exit(2)
	}
	postingURL := os.Args[1]

	//load config
	cfg := config.Load()
	fetchTimeout := time.Duration(cfg.FetchTimeoutSec) * time.Second

	//setup context with timeout = 5 mins
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("🚀 Starting posting extraction...")

	//load cookies (optional — guest extraction works without them)
	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-linkedin.json")
	if loaded, err := browser.LoadCookies(cookieFile); err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing as guest.", err)
	} else {
		log.Printf("🍪 Loaded %d cookies", len(loaded))
		cookies = loaded
	}

	//init playwright launcher; extraction degrades to HTTP strategies if it fails
	strategies := make([]extract.Strategy, 0, 5)
	pwManager, err := browser.NewPlaywright(cookies)
	if err != nil {
		log.Printf("⚠️ Browser unavailable, skipping browser strategy: %v", err)
	} else {
		defer pwManager.Close()
		strategies = append(strategies, headless.New(pwManager))
	}

	strategies = append(strategies,
		fetch.New(fetchTimeout),
		mobileapi.New(cfg.BaseURL, fetchTimeout),
		structured.New(fetchTimeout),
		altprobe.New(fetchTimeout),
	)

	//run the fallback chain
	orchestrator := extract.NewOrchestrator(strategies...)
	res, err := orchestrator.Run(ctx, postingURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	//print result as JSON for the caller
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to marshal result: %v", err)
	}
	fmt.Println(string(out))

	//persist into the record store when configured
	if cfg.DatabaseURL != "" {
		repo, err := store.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Record store unavailable: %v", err)
		} else {
			defer repo.Close()
			app, err := repo.SaveResult(ctx, res)
			if err != nil {
				log.Printf("⚠️ Failed to save application: %v", err)
			} else {
				log.Printf("💾 Saved application %s (%s)", app.ID, app.Status)
			}
		}
	}

	//notify unless this posting was already seen recently
	cache := dedup.NewPostingCache(cfg.CachePath)
	if cache.IsSeen(res.PostingURL) {
		log.Println("🔁 Posting already extracted recently, skipping notification.")
		return
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram bot: %v", err)
		} else if err := bot.SendResult(res); err != nil {
			log.Printf("⚠️ Failed to send result to Telegram: %v", err)
		}
	}

	cache.Add([]string{res.PostingURL})
	log.Println("🏁 Execution finished.")
}
