package display

// ANSI escape sequences used by the terminal client.
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Paint wraps text in a color escape and a reset.
func Paint(color, text string) string {
	return color + text + Reset
}

// Prompt appends the input arrow to an already-styled prompt body.
func Prompt(text string) string {
	return text + Yellow + " > " + Reset
}
