package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wepub/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	relayURL := flag.String("url", "http://localhost:8080", "Publish relay URL")
	articleURL := flag.String("article", "", "Article URL to extract and publish")
	flag.Parse()

	if *articleURL == "" {
		fmt.Println("usage: demo -article <url> [-url <relay>]")
		os.Exit(2)
	}

	m := tui.NewModel(*relayURL, *articleURL)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
