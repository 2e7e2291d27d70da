package cli

import (
	"github.com/jessevdk/go-flags"
)

// Flags is the command line surface. With no message and no management flag
// the client starts an interactive conversation.
type Flags struct {
	Message       string `short:"m" long:"message" description:"Question to submit; omit for interactive mode"`
	Attach        string `short:"a" long:"attach" description:"Path of a file to attach to the question"`
	Mode          string `long:"mode" description:"Assistant mode: search, study or create_image"`
	Session       string `long:"session" description:"Open a saved session by id before submitting"`
	ListSessions  bool   `short:"l" long:"list-sessions" description:"List saved sessions and exit"`
	DeleteSession string `long:"delete-session" description:"Delete a saved session by id and exit"`
	Stats         bool   `long:"stats" description:"Show usage statistics and exit"`
	Voice         bool   `long:"voice" description:"Dictate the question instead of typing it"`
	Incognito     bool   `long:"incognito" description:"Keep this run's history in memory only"`
	DryRun        bool   `long:"dry-run" description:"Echo the outgoing request instead of calling the endpoint"`
	Verbose       bool   `short:"v" long:"verbose" description:"Debug logging"`
}

// ParseFlags parses the process arguments.
func ParseFlags() (*Flags, error) {
	ret := &Flags{}
	parser := flags.NewParser(ret, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}
	return ret, nil
}
