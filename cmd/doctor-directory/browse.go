// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doctor-directory/internal/directory"
	"github.com/pdiddy/doctor-directory/internal/records"
	"github.com/pdiddy/doctor-directory/internal/source"
	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

const browseHelp = `Commands:
  search [text]       set the search term and show suggestions
  pick <n|name>       select suggestion n, or search for name exactly
  mode <video|clinic> set the consultation mode
  check <specialty>   include a specialty
  uncheck <specialty> remove a specialty
  sort <fees|experience|none>
  show                print the current results
  url                 print the current query string
  help                print this message
  quit                leave
`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively search and filter the directory",
	Long: `Browse starts an interactive session over the doctor list. Each command
updates the filter state, recomputes the results, and prints them along
with the query string a page would show. The list loads in the background;
results refresh once it arrives.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("query", "", "seed filter state from a query string or URL")
	browseCmd.Flags().String("format", string(directory.OutputCards), "result format: table or cards")

	rootCmd.AddCommand(browseCmd)
}

// browseAction is a non-event shell command.
type browseAction string

const (
	actionEvent browseAction = ""
	actionShow  browseAction = "show"
	actionURL   browseAction = "url"
	actionHelp  browseAction = "help"
	actionQuit  browseAction = "quit"
)

type browseCommand struct {
	action browseAction
	event  directory.Event
}

var modeAliases = map[string]string{
	"video":         types.ModeVideoConsult,
	"video consult": types.ModeVideoConsult,
	"clinic":        types.ModeInClinic,
	"in clinic":     types.ModeInClinic,
}

// parseCommand turns one input line into a shell command. suggestions are
// the names currently offered, so "pick 2" can resolve to a name.
func parseCommand(line string, suggestions []types.Doctor) (browseCommand, error) {
	line = strings.TrimSpace(line)
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "search", "s":
		return browseCommand{event: directory.Event{Type: directory.EventSearch, Value: arg}}, nil
	case "pick", "p":
		if arg == "" {
			return browseCommand{}, fmt.Errorf("pick needs a suggestion number or a name")
		}
		name := arg
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(suggestions) {
				return browseCommand{}, fmt.Errorf("no suggestion %d", n)
			}
			name = suggestions[n-1].Name
		}
		return browseCommand{event: directory.Event{Type: directory.EventSuggestion, Value: name}}, nil
	case "mode", "m":
		mode, ok := modeAliases[strings.ToLower(arg)]
		if !ok {
			return browseCommand{}, fmt.Errorf("unknown mode %q: use video or clinic", arg)
		}
		return browseCommand{event: directory.Event{Type: directory.EventMode, Value: mode}}, nil
	case "check", "uncheck":
		if arg == "" {
			return browseCommand{}, fmt.Errorf("%s needs a specialty", verb)
		}
		return browseCommand{event: directory.Event{
			Type:    directory.EventSpecialty,
			Value:   canonicalSpecialty(arg),
			Checked: strings.EqualFold(verb, "check"),
		}}, nil
	case "sort":
		if strings.EqualFold(arg, "none") {
			arg = ""
		}
		return browseCommand{event: directory.Event{Type: directory.EventSort, Value: strings.ToLower(arg)}}, nil
	case "show", "ls":
		return browseCommand{action: actionShow}, nil
	case "url", "query":
		return browseCommand{action: actionURL}, nil
	case "help", "?", "":
		return browseCommand{action: actionHelp}, nil
	case "quit", "exit", "q":
		return browseCommand{action: actionQuit}, nil
	default:
		return browseCommand{}, fmt.Errorf("unknown command %q (try help)", verb)
	}
}

// canonicalSpecialty maps a case-insensitive match onto the taxonomy name.
// Other names pass through unchanged.
func canonicalSpecialty(name string) string {
	for _, s := range types.Specialties {
		if strings.EqualFold(s, name) {
			return s
		}
	}
	return name
}

// browser renders engine views for the interactive shell.
type browser struct {
	engine *directory.Engine
	out    io.Writer
	format directory.OutputFormat
}

func (b *browser) render(v directory.View) {
	if len(v.Suggestions) > 0 {
		fmt.Fprintln(b.out, "Suggestions:")
		directory.FormatSuggestions(v.Suggestions, b.out)
		fmt.Fprintln(b.out)
	}
	if err := directory.Write(b.out, b.format, v); err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
	}
	fmt.Fprintf(b.out, "%d doctor(s)  ?%s\n", len(v.Doctors), v.Query)
}

// handle runs one input line and reports whether the session should end.
func (b *browser) handle(line string) bool {
	view := b.engine.View()
	c, err := parseCommand(line, view.Suggestions)
	if err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
		return false
	}

	switch c.action {
	case actionShow:
		b.render(view)
	case actionURL:
		fmt.Fprintf(b.out, "?%s\n", view.Query)
	case actionHelp:
		fmt.Fprint(b.out, browseHelp)
	case actionQuit:
		return true
	default:
		if err := b.engine.Apply(c.event); err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
	}
	return false
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetString("query")
	q, err := urlstate.ParseQuery(raw)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if f := directory.OutputFormat(format); f != directory.OutputTable && f != directory.OutputCards {
		return fmt.Errorf("unsupported browse format %q: use table or cards", format)
	}

	ctx := cmd.Context()
	src, err := source.Open(ctx, cfg)
	if err != nil {
		return err
	}
	store := records.NewStore(slog.Default())
	loaded := store.LoadAsync(ctx, src)

	e := directory.New(store, q, directory.WithPolicy(cfg.URL.Policy))
	b := &browser{engine: e, out: cmd.OutOrStdout(), format: directory.OutputFormat(format)}
	e.Subscribe(b.render)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Fprintf(b.out, "Loading doctors from %s... (type help for commands)\n", src.Name())
	for {
		select {
		case <-loaded:
			loaded = nil
			if !store.Loaded() {
				fmt.Fprintln(b.out, "No doctors could be loaded.")
			}
			e.Refresh()
		case line, ok := <-lines:
			if !ok || b.handle(line) {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}
