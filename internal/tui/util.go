package tui

import "fmt"

func pad(input string) string {
	return fmt.Sprintf(" %s", input)
}
