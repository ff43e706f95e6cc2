package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/internal/service"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events from a running server",
	Long: "Subscribe to the server's websocket feed and print every inventory\n" +
		"change as it happens. Stop with Ctrl-C.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "websocket endpoint, defaults to ws://APP_HOST/ws")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	target := watchURL
	if target == "" {
		target = "ws://" + cfg.AppHost + "/ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", target, err)
	}
	go func() {
		<-ctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	}()

	log.Info("watching", zap.String("url", target))
	for {
		var e service.Event
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Printf("%s  %-18s %s %s\n", e.TS.Local().Format("15:04:05"), e.Type, e.ID, e.Name)
	}
}
