package shell

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/anagame/anagrammer"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/game"
	"github.com/domino14/anagame/hand"
	"github.com/domino14/anagame/letterdist"
	"github.com/domino14/anagame/lexicon"
)

type CmdOptions map[string]string

func (c CmdOptions) String(key, def string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) DurationDefault(key string, def time.Duration) (time.Duration, error) {
	v, ok := c[key]
	if !ok {
		return def, nil
	}
	return config.ParseDuration(v)
}

var errNoRound = errors.New("no round in progress; type `new` to start one")

func (sc *ShellController) newRound(cmd *shellcmd) (*Response, error) {
	if sc.round != nil {
		sc.round.Quit()
		sc.showMessage(sc.finishRound())
	}
	opts := game.OptionsFromConfig(sc.config)
	o := CmdOptions(cmd.options)
	var err error
	opts.Distribution = o.String("dist", opts.Distribution)
	if letters, ok := o["hand"]; ok {
		opts.Hand = hand.FromString(letters)
	}
	if opts.FunFactor, err = o.IntDefault("fun", opts.FunFactor); err != nil {
		return nil, err
	}
	if opts.TimeLimit, err = o.DurationDefault("time", opts.TimeLimit); err != nil {
		return nil, err
	}

	idx, err := sc.index()
	if err != nil {
		return nil, err
	}
	ctx, cancel := newContext()
	defer cancel()
	r, err := game.StartRound(ctx, sc.config, idx, opts)
	if err != nil {
		return nil, err
	}
	sc.startRound(r)
	return msg("Make as many anagram pairs as you can, typed as word1,word2.\n" +
		r.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	return msg(sc.round.ToDisplayText()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	word, err := sc.round.Hint()
	if err != nil {
		return nil, err
	}
	leave, err := hand.Leave(sc.round.Hand(), word)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Try working with: %s (leaves %s)\n%s", word,
		strings.Join(leave.Letters(), " "), sc.round.ToDisplayText())), nil
}

func (sc *ShellController) quit(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	sc.round.Quit()
	return msg(sc.finishRound()), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errors.New("no round has been finished yet")
	}
	return msg(sc.last.ToDisplayText()), nil
}

func (sc *ShellController) sessionSummary(cmd *shellcmd) (*Response, error) {
	if sc.summary.Rounds() == 0 {
		return msg(sc.summary.ToDisplayText()), nil
	}
	var sb strings.Builder
	sb.WriteString(sc.summary.ToDisplayText())
	sb.WriteString("\nScores:\n")
	if err := sc.summary.FprintScoreHistogram(&sb, 40); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errors.New("no round has been finished yet")
	}
	var path string
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	} else {
		path = sc.config.GetString(config.ConfigStatsExportPath)
	}
	if path == "" {
		return nil, errors.New("usage: export <path>")
	}
	if err := sc.last.AppendYAML(path); err != nil {
		return nil, err
	}
	return msg("exported last round to " + path), nil
}

func (sc *ShellController) settingsText() string {
	settings := sc.config.SanitizedSettings()
	keys := lo.Keys(settings)
	slices.Sort(keys)
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s: %v\n", k, settings[k])
	}
	return sb.String()
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		if !sc.config.Known(key) {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	val := strings.Join(cmd.args[1:], " ")
	if err := sc.config.Update(key, val); err != nil {
		return nil, err
	}
	if key == config.ConfigCorpusEncoding && anagrammer.Evict(sc.config) {
		log.Debug().Msg("corpus will be read again with the new encoding")
	}
	return msg("set " + key + " to " + val), nil
}

func (sc *ShellController) anagrams(cmd *shellcmd) (*Response, error) {
	if sc.round != nil {
		return nil, errors.New("no peeking while a round is in progress")
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: anagrams <word>")
	}
	idx, err := sc.index()
	if err != nil {
		return nil, err
	}
	words := idx.Anagrams(cmd.args[0])
	if len(words) < 2 {
		return msg("no anagrams of " + cmd.args[0]), nil
	}
	return msg(strings.Join(words, " ")), nil
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	corpus, err := lexicon.Load(sc.config)
	if err != nil {
		return nil, err
	}
	idx, err := sc.index()
	if err != nil {
		return nil, err
	}
	dist, err := letterdist.Named(sc.config, sc.config.GetString(config.ConfigLetterDistribution))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Corpus: %s (%d words, checksum %016x)\n", corpus.Name(), corpus.Len(),
		corpus.Checksum())
	fmt.Fprintf(&sb, "Anagram groups: %d\n", idx.NumGroups())
	fmt.Fprintf(&sb, "Letter distribution: %s (%d letters)", dist.Name, dist.NumLetters())
	return msg(sb.String()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
