package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/MrSnakeDoc/skypost/internal/app"
)

func main() {
	var serve, yes bool
	var url, comment, tags, title, description, image string
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API instead of posting once")
	flag.StringVar(&url, "url", "", "URL to bookmark and post")
	flag.StringVar(&comment, "comment", "", "Free-text comment for the post")
	flag.StringVar(&tags, "tags", "", "Comma-separated bookmark tags")
	flag.StringVar(&title, "title", "", "Page title (scraped from the page when empty)")
	flag.StringVar(&description, "description", "", "Page description (scraped when empty)")
	flag.StringVar(&image, "image", "", "Thumbnail URL (scraped og:image when empty)")
	flag.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	flag.Parse()

	a, err := app.New()
	if err != nil {
		log.Fatalf("skypost failed to start: %v", err)
	}

	if serve {
		if err := a.Serve(); err != nil {
			log.Fatalf("skypost failed: %v", err)
		}
		return
	}

	if url == "" {
		log.Fatalf("-url is required (or use -serve)")
	}

	err = a.PostOnce(context.Background(), app.PostOptions{
		URL:         url,
		Comment:     comment,
		Tags:        splitTags(tags),
		Title:       title,
		Description: description,
		Image:       image,
		Yes:         yes,
	})
	if err != nil {
		log.Fatalf("skypost failed: %v", err)
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
