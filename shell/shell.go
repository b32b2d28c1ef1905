package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/anagame/anagrammer"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/game"
	"github.com/domino14/anagame/stats"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	outMu      sync.Mutex
	config     *config.Config
	execPath   string
	gitVersion string

	round     *game.Round
	roundTime *time.Timer
	last      *stats.Stats
	summary   stats.Summary
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{config: cfg, execPath: execPath, gitVersion: gitVersion}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31managame>\033[0m ",
		HistoryFile:     "/tmp/anagame_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	sc.outMu.Lock()
	defer sc.outMu.Unlock()
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) index() (*anagrammer.Index, error) {
	return anagrammer.Load(sc.config)
}

func (sc *ShellController) startRound(r *game.Round) {
	sc.round = r
	remaining := r.Remaining()
	sc.roundTime = time.AfterFunc(remaining, func() {
		sc.showMessage("Time is up! Press enter to see how you did.")
	})
}

// finishRound scores the current round, adds it to the session summary and
// appends it to the export file if one is configured.
func (sc *ShellController) finishRound() string {
	if sc.roundTime != nil {
		sc.roundTime.Stop()
		sc.roundTime = nil
	}
	st := sc.round.Finish()
	sc.round = nil
	sc.last = &st
	sc.summary.Add(st)
	if path := sc.config.GetString(config.ConfigStatsExportPath); path != "" {
		if err := st.AppendYAML(path); err != nil {
			log.Err(err).Str("path", path).Msg("could not export round")
		} else {
			log.Debug().Str("path", path).Msg("exported round")
		}
	}
	return "Thanks for playing Anagame!\n" + st.ToDisplayText()
}

// guess handles a line containing a comma.
func (sc *ShellController) guess(line string) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	_, err := sc.round.AddGuess(line)
	if errors.Is(err, game.ErrInvalidGuess) {
		sc.showMessage("Invalid input")
	} else if err != nil && !errors.Is(err, game.ErrRoundOver) {
		return nil, err
	}
	return msg(sc.round.ToDisplayText()), nil
}

// isCommandLine reports whether line is a command given options, such as
// "new -hand p,o,t,s,r,i,a", which may contain commas without being a guess.
func isCommandLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[1], "-") {
		return false
	}
	return lo.Contains(commandNames, fields[0]) || lo.Contains(commandAliases, fields[0])
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	if game.IsGuess(line) && !isCommandLine(line) {
		return sc.guess(line)
	}
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new", "n":
		return sc.newRound(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "hint", "h":
		return sc.hint(cmd)
	case "quit", "q":
		return sc.quit(cmd)
	case "stats":
		return sc.stats(cmd)
	case "summary":
		return sc.sessionSummary(cmd)
	case "export":
		return sc.export(cmd)
	case "set":
		return sc.set(cmd)
	case "anagrams", "a":
		return sc.anagrams(cmd)
	case "info":
		return sc.info(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("command %v not found; type `help` for a list", strconv.Quote(cmd.cmd))
	}
}

// handle runs one line and finishes the round if its time ran out.
func (sc *ShellController) handle(line string, sig chan os.Signal) error {
	resp, err := sc.standardModeSwitch(line, sig)
	if errors.Is(err, errQuit) {
		return err
	}
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
	if sc.round != nil && sc.round.Playing() == game.TimedOut {
		sc.showMessage(sc.finishRound())
	}
	return nil
}

// Execute runs a single command, as given on the command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.handle(line, sig); err != nil {
		log.Debug().Err(err).Msg("")
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showMessage("Welcome to Anagame " + sc.gitVersion +
		". Type `new` to start a round or `help` for instructions.")
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if sc.round != nil && sc.round.Playing() == game.TimedOut {
				sc.showMessage(sc.finishRound())
			}
			continue
		}
		if err := sc.handle(line, sig); err != nil {
			log.Debug().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup finishes a round left in progress so that it still makes it into
// the export file.
func (sc *ShellController) Cleanup() {
	if sc.round != nil {
		sc.round.Quit()
		sc.showMessage(sc.finishRound())
	}
	if sc.summary.Rounds() > 0 {
		sc.showMessage(sc.summary.ToDisplayText())
	}
}

// newContext bounds hand generation so that an impossible fun factor does
// not hang the shell.
func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
