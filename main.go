package main

import (
	"net/http"
	"os"

	"wepub/api"
	"wepub/config"
	"wepub/images"
	"wepub/logutil"
	"wepub/wechat"
	"wepub/workflow"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	logutil.SetVerbose(os.Getenv("VERBOSE") == "1")

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	client := wechat.NewClient(config.APIBaseURL())
	fetcher := images.NewFetcher()
	runner := workflow.NewRunner(client, fetcher)

	r := api.NewRouter(runner)
	logutil.Infof("starting publish relay on %s", addr)
	logutil.Infof("endpoints: POST /publish, GET /health")

	if err := http.ListenAndServe(addr, r); err != nil {
		logutil.Fatalf("server error: %v", err)
	}
}
