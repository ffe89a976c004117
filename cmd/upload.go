package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriPDF/internal/api"
	"github.com/Rorical/RoriPDF/internal/core"
	"github.com/Rorical/RoriPDF/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF without starting the chat UI",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		f, err := upload.Open(args[0])
		if err != nil {
			log.Fatalf("Could not open %s: %v", args[0], err)
		}

		var verr *upload.ValidationError
		if err := upload.Validate(f); errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.Message())
			os.Exit(1)
		}

		fh, err := os.Open(f.Path)
		if err != nil {
			log.Fatalf("Could not open %s: %v", f.Path, err)
		}
		defer fh.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Println(core.UploadingText)
		resp, err := newClient(cfg).UploadPDF(ctx, f.Name, fh)
		if err != nil {
			log.Printf("Upload error: %v", err)
			fmt.Fprintln(os.Stderr, core.UploadFailedText(reason(err)))
			os.Exit(1)
		}

		fmt.Println(core.UploadSuccessText(resp.Chunks()))
	},
}

// reason is the short user-facing cause of a request failure.
func reason(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Reason()
	}
	return err.Error()
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
