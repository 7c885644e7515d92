package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"delivery_insights/pkg/api/assistant"
	apiconfig "delivery_insights/pkg/api/config"
	"delivery_insights/pkg/api/data"
	"delivery_insights/pkg/api/session"
	"delivery_insights/pkg/api/views"
	"delivery_insights/pkg/core/agent"
	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/insight"
	"delivery_insights/pkg/core/prompt"
	"delivery_insights/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize prompt library; hardcoded prompts cover a missing dir
	if err := prompt.LoadFromDirectory("resources/prompts"); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts\n", prompt.Get().Count())
	}

	// Initialize provider manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Optional insight history (skipped when DATABASE_URL is unset)
	var history *store.InsightRepo
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Insight history disabled: %v\n", err)
	} else {
		history = store.NewInsightRepo()
		defer store.Close()
	}

	// Session snapshot: try the default workbook, keep serving without
	// one if it is missing (views answer 503 until an upload arrives).
	holder := session.NewHolder()
	dataPath := os.Getenv("DATA_FILE")
	if dataPath == "" {
		dataPath = "data/tracking.xlsx"
	}
	if snap, err := dataset.Load(dataPath); err != nil {
		fmt.Printf("[WARNING] No default dataset: %v\n", err)
		fmt.Println("  Waiting for an upload on /api/data/upload")
	} else {
		holder.Replace(snap)
		fmt.Printf("[DATA] Loaded %d records from %s (generation %s)\n", len(snap.Records), dataPath, snap.Generation)
	}

	// Dataset endpoints
	dataHandler := data.NewHandler(holder)
	http.HandleFunc("/api/data/upload", dataHandler.HandleUpload)
	http.HandleFunc("/api/projects", dataHandler.HandleProjects)

	// View endpoints
	viewHandler := views.NewHandler(holder)
	http.HandleFunc("/api/status", viewHandler.HandleStatus)
	http.HandleFunc("/api/overview", viewHandler.HandleOverview)
	http.HandleFunc("/api/milestones", viewHandler.HandleMilestones)
	http.HandleFunc("/api/gantt", viewHandler.HandleGantt)
	http.HandleFunc("/api/charts", viewHandler.HandleCharts)

	// Insight assistant endpoints
	assistantHandler := assistant.NewHandler(holder, insight.NewAssistant(agentMgr, history))
	http.HandleFunc("/api/assistant/ask", assistantHandler.HandleAsk)
	http.HandleFunc("/api/assistant/history", assistantHandler.HandleHistory)

	// Config endpoints
	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/data/upload")
	fmt.Println("  - GET  /api/projects")
	fmt.Println("  - GET  /api/status?project=")
	fmt.Println("  - GET  /api/overview")
	fmt.Println("  - GET  /api/milestones")
	fmt.Println("  - GET  /api/gantt?project=")
	fmt.Println("  - GET  /api/charts?project=&column=")
	fmt.Println("  - POST /api/assistant/ask")
	fmt.Println("  - GET  /api/assistant/history")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
