package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reads the answer from reader.
// Anything but "y" or "yes" is a no, including EOF. When ctx is done first it
// returns ctx.Err(), but the read already in flight keeps reader until a line
// arrives, so reader must not be shared with later prompts after that.
func ConfirmPrompt(ctx context.Context, question string, reader *bufio.Reader) (bool, error) {
	answerChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s [y/N]: ", question)))

		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			errChan <- fmt.Errorf("error reading input: %w", err)
			return
		}
		answerChan <- strings.ToLower(strings.TrimSpace(answer))
	}()

	select {
	case <-ctx.Done():
		fmt.Println()
		return false, ctx.Err()
	case err := <-errChan:
		return false, err
	case answer := <-answerChan:
		return answer == "y" || answer == "yes", nil
	}
}
