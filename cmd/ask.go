package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriPDF/internal/core"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question about the uploaded document",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return
		}

		cfg := loadConfig()
		renderer, err := render.NewRenderer(cfg.GetMarkdown())
		if err != nil {
			log.Fatalf("Failed to initialize renderer: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		resp, err := newClient(cfg).Ask(ctx, question)
		if err != nil {
			log.Printf("Question error: %v", err)
			fmt.Fprintln(os.Stderr, core.QuestionFailedText)
			os.Exit(1)
		}

		answer := resp.Answer
		if strings.TrimSpace(answer) == "" {
			answer = core.NoAnswerText
		}
		fmt.Println(renderer.Render(models.Message{Type: models.Assistant, Content: answer, Rich: true}))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
