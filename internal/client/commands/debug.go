package commands

import (
	"fmt"
	"strings"
	"time"

	"chesslive/internal/client/api"
	"chesslive/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the API base URL",
		Usage:       "url [apiUrl]",
		Handler:     urlHandler,
	})

	r.Register(&Command{
		Name:        "raw",
		ShortName:   ":",
		Description: "Send a raw API request",
		Usage:       "raw <method> <path> [json-body]",
		Handler:     rawRequestHandler,
	})

	r.Register(&Command{
		Name:        "clear",
		ShortName:   "-",
		Description: "Clear screen",
		Usage:       "clear",
		Handler:     clearHandler,
	})
}

func healthHandler(s Session, args []string) error {
	c := s.GetClient().(*api.Client)
	resp, err := c.Health()
	if err != nil {
		return err
	}

	reported := time.Unix(resp.Time, 0).Format("2006-01-02 15:04:05")
	fmt.Println(display.Paint(display.Cyan, "Server health"))
	fmt.Printf("  status: %s\n", display.Paint(display.Green, resp.Status))
	fmt.Printf("  server time: %s\n", reported)
	return nil
}

func urlHandler(s Session, args []string) error {
	if len(args) == 0 {
		fmt.Printf("API base URL: %s\n", display.Paint(display.Cyan, s.GetAPIBaseURL()))
		return nil
	}

	url := args[0]
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}

	s.SetAPIBaseURL(url)
	s.GetClient().(*api.Client).SetBaseURL(url)

	fmt.Printf("API base URL set to %s\n", display.Paint(display.Cyan, url))
	return nil
}

func rawRequestHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	method := strings.ToUpper(args[0])
	path := args[1]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	body := ""
	if len(args) > 2 {
		body = strings.Join(args[2:], " ")
	}

	return s.GetClient().(*api.Client).RawRequest(method, path, body)
}

// clearHandler wipes the terminal with escape codes so it works without a
// clear binary on PATH.
func clearHandler(s Session, args []string) error {
	fmt.Print("\033[2J\033[H")
	return nil
}
