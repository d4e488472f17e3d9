package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is where confirmations are read from. Tests replace it.
var Stdin io.Reader = os.Stdin

// Confirm prints prompt and reports whether the user answered yes.
func Confirm(prompt string) (bool, error) {
	fmt.Print(prompt + " [y/N]: ")
	response, err := bufio.NewReader(Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
