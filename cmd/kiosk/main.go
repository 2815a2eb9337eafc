package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"backend-turnero/internal/config"
	"backend-turnero/internal/kiosk"
	"backend-turnero/internal/realtime"
)

func main() {
	config.LoadEnv()
	url := config.GetEnv("KIOSK_URL", "ws://127.0.0.1:8080/ws/board")

	// Log lines would tear the alt screen.
	if path := config.GetEnv("KIOSK_LOG", ""); path != "" {
		f, err := tea.LogToFile(path, "kiosk")
		if err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(kiosk.NewModel(), tea.WithAltScreen())

	client := kiosk.NewClient(url)
	go client.Run(ctx,
		func(msg realtime.BoardMessage) { p.Send(kiosk.BoardMsg(msg)) },
		func(err error) { p.Send(kiosk.ConnMsg{Err: err}) },
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running kiosk: %v\n", err)
		os.Exit(1)
	}
}
