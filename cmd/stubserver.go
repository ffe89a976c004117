package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriPDF/internal/stubserver"
)

var (
	stubAddr       string
	stubChunkBytes int
	stubDelay      time.Duration
	stubLegacy     bool
)

var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run a local stand-in for the question-answering service",
	Long: `Run a local server with the same HTTP API as the question-answering
service. It counts chunks and returns canned answers, for trying the client
without the real backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := stubserver.New(stubserver.Options{
			ChunkBytes: stubChunkBytes,
			Delay:      stubDelay,
			Legacy:     stubLegacy,
		})
		srv := &http.Server{
			Addr:              stubAddr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		log.Printf("RoriPDF stub backend listening on %s", stubAddr)
		if err := stubserver.Run(ctx, srv); err != nil {
			log.Fatalf("server error: %v", err)
		}
	},
}

func init() {
	stubServerCmd.Flags().StringVar(&stubAddr, "addr", ":8000", "Listen address")
	stubServerCmd.Flags().IntVar(&stubChunkBytes, "chunk-bytes", stubserver.DefaultChunkBytes, "Upload bytes per reported chunk")
	stubServerCmd.Flags().DurationVar(&stubDelay, "delay", 0, "Artificial latency for uploads and answers")
	stubServerCmd.Flags().BoolVar(&stubLegacy, "legacy", false, "Report chunk_stored like older backends")

	rootCmd.AddCommand(stubServerCmd)
}
