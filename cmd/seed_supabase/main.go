// seed_supabase loads demo ideas, projects and plans into a Supabase
// project so a fresh environment has something to search against.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/storage/supabase"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Path to .env with SUPABASE_URL and SUPABASE_SERVICE_KEY")
		owner   = flag.String("owner", "demo-user", "Owner id stamped on the seeded rows")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("no env file loaded (%s): %v", *envFile, err)
	}

	url := os.Getenv("SUPABASE_URL")
	key := os.Getenv("SUPABASE_SERVICE_KEY")
	if url == "" || key == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_KEY are required")
	}

	client, err := supabase.NewClient(supabase.Config{ProjectURL: url, ServiceKey: key, Timeout: 15 * time.Second})
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	store := supabase.New(client)
	ctx := context.Background()

	ideas := []idea.Idea{
		{Title: "Solar rooftop planner", Summary: "Optimizes panel layouts from satellite imagery", Category: "climate", Locale: "en", Score: 88, Public: true},
		{Title: "Invoice reconciliation copilot", Summary: "Matches bank feeds to open invoices", Category: "fintech", Locale: "en", Score: 74, Public: true},
		{Title: "On-call runbook assistant", Summary: "Surfaces the right runbook during incidents", Category: "devtools", Locale: "en", Score: idea.UnscoredScore, Public: false},
	}
	var firstIdeaID string
	for _, it := range ideas {
		it.OwnerID = *owner
		created, err := store.CreateIdea(ctx, it)
		if err != nil {
			log.Fatalf("seed idea %q: %v", it.Title, err)
		}
		if firstIdeaID == "" {
			firstIdeaID = created.ID
		}
		log.Printf("idea %s (%s)", created.Title, created.ID)
	}

	projects := []project.Project{
		{Name: "GridWatch", Event: "spring-2026", TeamSize: 4, Score: 81},
		{Name: "PaperTrail", Event: "spring-2026", TeamSize: 2, Score: project.UnscoredScore},
	}
	for _, p := range projects {
		p.OwnerID = *owner
		created, err := store.CreateProject(ctx, p)
		if err != nil {
			log.Fatalf("seed project %q: %v", p.Name, err)
		}
		log.Printf("project %s (%s)", created.Name, created.ID)
	}

	doc, err := store.CreatePlan(ctx, plan.Document{
		IdeaID:  firstIdeaID,
		OwnerID: *owner,
		Kind:    plan.KindPRD,
		Title:   "Solar rooftop planner PRD",
		Content: "## Problem\nRooftop solar quoting is manual and slow.\n",
	})
	if err != nil {
		log.Fatalf("seed plan: %v", err)
	}
	log.Printf("plan %s (%s)", doc.Title, doc.ID)
}
