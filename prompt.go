package r2sync

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirmer asks the operator a question and returns the raw answer. Kept as
// an interface so mutating flows are testable without a terminal.
type Confirmer interface {
	Ask(question string) (string, error)
}

type StdinConfirmer struct {
	reader *bufio.Reader
}

func NewStdinConfirmer() *StdinConfirmer {
	return &StdinConfirmer{reader: bufio.NewReader(os.Stdin)}
}

func (c *StdinConfirmer) Ask(question string) (string, error) {
	fmt.Print(question)
	line, readErr := c.reader.ReadString('\n')
	if readErr != nil {
		return "", readErr
	}
	return strings.TrimSpace(line), nil
}

// ConfirmUpload asks a y/N question; anything but y/yes declines.
func ConfirmUpload(confirmer Confirmer, fileCount int) bool {
	answer, askErr := confirmer.Ask(fmt.Sprintf("Upload %d files? [y/N]: ", fileCount))
	if askErr != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// ConfirmDelete requires the operator to type DELETE exactly.
func ConfirmDelete(confirmer Confirmer, keyCount int) bool {
	answer, askErr := confirmer.Ask(fmt.Sprintf(
		"WARNING: This will permanently delete %d files! Type 'DELETE' to confirm: ", keyCount))
	if askErr != nil {
		return false
	}
	return answer == "DELETE"
}
