package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints prompt to out and reads a yes/no answer from in.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/n]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		fmt.Fprintln(out, "Error reading response:", err)
		return false
	}
	response = strings.TrimSpace(response)

	validResponses := []string{"yes", "yep", "y"}
	for _, vr := range validResponses {
		if strings.EqualFold(response, vr) {
			return true
		}
	}

	return false
}
