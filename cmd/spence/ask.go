package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amoghbhat/spence/internal/cli"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/voice"
	"github.com/spf13/cobra"
)

// processor is the slice of the assistant the ask command needs.
type processor interface {
	Process(ctx context.Context, input string) model.ProcessingResult
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Talk to the expense assistant",
		Long: `Process one natural-language sentence, or start an interactive
session when no text is given.

Examples:
  spence ask "I bought coffee for 50 rupees"
  spence ask "How much did I spend this month?"
  spence ask            # interactive loop, Ctrl-D to exit
  spence ask --listen   # capture a single spoken/typed utterance`,
		RunE: runAsk,
	}

	cmd.Flags().Bool("listen", false, "Capture one utterance from a voice-style session")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	asst, _ := buildAssistant(store)

	listen, _ := cmd.Flags().GetBool("listen")
	if listen {
		return askOnceFromVoice(ctx, asst)
	}

	if len(args) > 0 {
		result := asst.Process(ctx, strings.Join(args, " "))
		fmt.Println(cli.RenderResult(result))
		return nil
	}

	return askLoop(ctx, asst)
}

// askOnceFromVoice runs one capture session and feeds its transcript to
// the assistant. Ctrl-C cancels the capture instead of killing the
// process mid-listen.
func askOnceFromVoice(ctx context.Context, asst processor) error {
	fmt.Println(cli.FormatInfo(cli.MicIcon + " Listening... (type your utterance, Enter to finish)"))

	session := voice.Start(ctx, voice.NewReaderTranscriber(os.Stdin))
	defer session.Stop()

	event := <-session.Events()
	switch {
	case event.Cancelled:
		fmt.Println(cli.FormatWarning("Capture cancelled."))
		return nil
	case event.Err != nil:
		if errors.Is(event.Err, voice.ErrNoSpeech) {
			fmt.Println(cli.FormatWarning("No speech detected. Please try speaking again."))
			return nil
		}
		return fmt.Errorf("voice capture failed: %w", event.Err)
	}

	fmt.Println(cli.SubtleStyle.Render("heard: " + event.Text))
	result := asst.Process(ctx, event.Text)
	fmt.Println(cli.RenderResult(result))
	return nil
}

func askLoop(ctx context.Context, asst processor) error {
	fmt.Println(cli.WelcomeMessage)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cli.FormatPrompt("you"))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		result := asst.Process(ctx, input)
		fmt.Println(cli.RenderResult(result))
		fmt.Println()

		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Println(cli.SubtleStyle.Render("bye!"))
	return nil
}
