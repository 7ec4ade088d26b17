// Package main provides a small demonstration of the eventhub library.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/eventhub/hub"
	"github.com/opencode-ai/eventhub/internal/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "hubdemo",
	Short: "Demonstrates the eventhub publish/subscribe hub",
	Long: `hubdemo walks through the hub's lifecycle: it registers two listeners
on a "tick" event, broadcasts to both, mutes one listener, mutes the whole
event, and finishes with a whisper and explicit destruction.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
}

func run(cmd *cobra.Command, args []string) error {
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Output: zerolog.ConsoleWriter{Out: os.Stderr},
	})

	h := hub.New(hub.WithLogger(logging.Logger))

	printer := func(name string) hub.Handler {
		return func(msg hub.Message) error {
			fmt.Printf("%s received %v on %q (meta %v)\n", name, msg.Payload, msg.Event, msg.Meta)
			return nil
		}
	}

	a, err := h.Register("tick", "listener-a", printer("A"),
		hub.WithMeta(map[string]any{"unit": "seconds"}))
	if err != nil {
		return err
	}
	b, err := h.Register("tick", "listener-b", printer("B"))
	if err != nil {
		return err
	}

	if _, err := h.Broadcast("tick", map[string]int{"n": 1}); err != nil {
		return err
	}

	if err := h.MuteListener("tick", a); err != nil {
		return err
	}
	fmt.Println("-- listener A muted --")
	if _, err := h.Broadcast("tick", map[string]int{"n": 2}); err != nil {
		return err
	}

	if err := h.UnmuteListener("tick", a); err != nil {
		return err
	}
	if err := h.MuteEvent("tick"); err != nil {
		return err
	}
	fmt.Println("-- event muted --")
	n, err := h.Broadcast("tick", map[string]int{"n": 3})
	if err != nil {
		return err
	}
	fmt.Printf("notified %d listeners while muted\n", n)

	if err := h.UnmuteEvent("tick"); err != nil {
		return err
	}
	fmt.Println("-- event unmuted, whispering to A --")
	if _, err := h.Whisper("tick", a, "just for you"); err != nil {
		return err
	}

	if err := h.DestroyListener("tick", b); err != nil {
		return err
	}
	if err := h.DestroyEvent("tick"); err != nil {
		return err
	}
	fmt.Println("-- done --")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
