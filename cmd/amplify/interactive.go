package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"amplify/internal/clipboard"
	"amplify/internal/discovery"
	"amplify/internal/display"
	"amplify/internal/llm"
	"amplify/internal/logging"
	"amplify/internal/metrics"
	"amplify/internal/optimizer"
	"amplify/internal/profile"
	"amplify/internal/store"
	"amplify/internal/theme"
)

var stdin = bufio.NewReader(os.Stdin)

func promptLine(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

type optimizeFlags struct {
	cfgPath       string
	file          string
	media         bool
	thread        bool
	lang          string
	topic         string
	style         string
	variations    int
	username      string
	refresh       bool
	jsonOut       bool
	noInteractive bool
	verbose       bool
	verify        bool
	angle         string
}

func parseOptimizeFlags(name string, args []string) (optimizeFlags, []string) {
	var f optimizeFlags
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&f.cfgPath, "config", "./amplify.yaml", "config path")
	fs.StringVar(&f.file, "file", "", "read tweet text from file")
	fs.BoolVar(&f.media, "media", false, "tweet will include media")
	fs.BoolVar(&f.thread, "thread", false, "optimize as a thread")
	fs.StringVar(&f.lang, "lang", "", "output language (en, tr); auto-detected when empty")
	fs.StringVar(&f.topic, "topic", "", "topic or niche context")
	fs.StringVar(&f.style, "style", "", "style/tone for variations")
	fs.IntVar(&f.variations, "variations", 0, "number of variations (default from config)")
	fs.StringVar(&f.username, "username", "", "match this account's writing style")
	fs.BoolVar(&f.refresh, "refresh-profile", false, "bypass the profile cache")
	fs.BoolVar(&f.jsonOut, "json", false, "emit JSON instead of the report")
	fs.BoolVar(&f.noInteractive, "no-interactive", false, "print the result and exit")
	fs.BoolVar(&f.verbose, "verbose", false, "show all 19 signals")
	fs.BoolVar(&f.verify, "verify", false, "re-estimate scores from the generated text")
	fs.StringVar(&f.angle, "angle", "dominant", "discovery angle (dominant, contrarian, personal)")
	_ = fs.Parse(args)
	return f, fs.Args()
}

func cmdOptimize() error {
	f, rest := parseOptimizeFlags("optimize", cliArgs())
	cfg, err := loadConfig(f.cfgPath)
	if err != nil {
		return err
	}
	metrics.StartServer(cfg.Metrics.Addr)

	client, err := llm.New(cfg.LLM)
	if err != nil {
		if errors.Is(err, llm.ErrNoProvider) {
			return fmt.Errorf("%w: set llm.provider to \"openai\" in config and export OPENAI_API_KEY (or use `amplify score` for offline scoring)", err)
		}
		return err
	}

	text, err := readTweet(f.file, rest)
	if err != nil {
		return err
	}

	db := openStore(cfg)
	if db != nil {
		defer db.Close()
	}
	ctx := context.Background()

	username := f.username
	if username == "" {
		username = cfg.Account.Username
	}
	prof := loadProfile(ctx, cfg, db, client, username, f.lang, f.refresh)

	numVariations := f.variations
	if numVariations <= 0 {
		numVariations = cfg.LLM.MaxVariations
	}
	opts := optimizer.Options{
		Style:         f.style,
		Topic:         f.topic,
		Lang:          f.lang,
		HasMedia:      f.media,
		Thread:        f.thread,
		NumVariations: numVariations,
		Profile:       prof,
		Verify:        f.verify,
	}
	opt := optimizer.New(client, cfg.Scoring)

	res, err := opt.PreserveStyle(ctx, text, opts)
	if err != nil {
		return err
	}
	if db != nil {
		_ = db.SaveSession(ctx, username, "optimize")
	}

	renderer := display.New(cfg.Display)
	if f.jsonOut {
		out, err := display.RenderJSON(text, res)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(renderer.Full(text, res, f.verbose))
	if f.noInteractive {
		return nil
	}
	return optimizeLoop(ctx, opt, renderer, text, res, opts)
}

// optimizeLoop is the two-phase interactive menu: the preserve-style pass
// already ran, now the user decides what happens with it.
func optimizeLoop(ctx context.Context, opt *optimizer.Optimizer, renderer *display.Renderer, original string, res *optimizer.Result, opts optimizer.Options) error {
	current := original
	if best := res.Best(); best != nil {
		current = best.Tweet
	}
	for {
		fmt.Println()
		fmt.Println("  [1] Copy optimized tweet to clipboard")
		fmt.Println("  [2] Refine with feedback")
		fmt.Printf("  [3] Generate %d alternative variations\n", maxInt(opts.NumVariations, 2))
		fmt.Println("  [4] Copy original tweet")
		fmt.Println("  [q] Quit")
		switch promptLine("> ") {
		case "1":
			copyToClipboard(current)
		case "2":
			feedback := promptLine("What should change? ")
			if feedback == "" {
				continue
			}
			next, err := opt.Refine(ctx, original, current, feedback, opts)
			if err != nil {
				fmt.Println("refine failed:", err)
				continue
			}
			fmt.Println(renderer.Full(original, next, false))
			if best := next.Best(); best != nil {
				current = best.Tweet
			}
		case "3":
			next, err := opt.Variations(ctx, original, opts)
			if err != nil {
				fmt.Println("variations failed:", err)
				continue
			}
			fmt.Println(renderer.Full(original, next, false))
			if pick := pickVariation(next); pick != "" {
				current = pick
			}
		case "4":
			copyToClipboard(original)
		case "q", "quit", "exit":
			return nil
		}
	}
}

func pickVariation(res *optimizer.Result) string {
	if len(res.Variations) == 0 {
		return ""
	}
	choice := promptLine(fmt.Sprintf("Keep which variation? [1-%d, enter to skip] ", len(res.Variations)))
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(res.Variations) {
		return ""
	}
	return res.Variations[n-1].Tweet
}

func copyToClipboard(text string) {
	if err := clipboard.Copy(text); err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			fmt.Println("No clipboard tool found; here is the text:")
			fmt.Println(text)
			return
		}
		fmt.Println("clipboard failed:", err)
		return
	}
	fmt.Println("Copied to clipboard.")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// manualProfileEntry collects account stats by hand when neither the API
// nor model research could produce a profile.
func manualProfileEntry(username string) *profile.Profile {
	fmt.Printf("Enter @%s's stats by hand (blank followers to cancel).\n", username)
	followers := promptInt("Followers: ")
	if followers <= 0 {
		return nil
	}
	avgLikes := promptFloat("Avg likes per tweet: ")
	avgRetweets := promptFloat("Avg retweets per tweet: ")
	avgReplies := promptFloat("Avg replies per tweet: ")

	var topics []string
	for _, part := range strings.Split(promptLine("Main topics (comma separated): "), ",") {
		if part = strings.TrimSpace(part); part != "" {
			topics = append(topics, part)
		}
	}

	var samples []string
	fmt.Println("Paste a few typical tweets, one per line (blank line to finish):")
	for len(samples) < 5 {
		line := promptLine("> ")
		if line == "" {
			break
		}
		samples = append(samples, line)
	}
	return profile.BuildManual(username, followers, avgLikes, avgRetweets, avgReplies, topics, samples)
}

func promptInt(label string) int {
	n, _ := strconv.Atoi(promptLine(label))
	return n
}

func promptFloat(label string) float64 {
	f, _ := strconv.ParseFloat(promptLine(label), 64)
	return f
}

func cmdDiscover() error {
	f, _ := parseOptimizeFlags("discover", cliArgs())
	cfg, err := loadConfig(f.cfgPath)
	if err != nil {
		return err
	}
	metrics.StartServer(cfg.Metrics.Addr)

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return err
	}

	db := openStore(cfg)
	if db != nil {
		defer db.Close()
	}
	ctx := context.Background()

	username := f.username
	if username == "" {
		username = cfg.Account.Username
	}
	prof := loadProfile(ctx, cfg, db, client, username, f.lang, f.refresh)

	lang := f.lang
	if lang == "" {
		lang = "en"
		if prof != nil && prof.Lang != "" {
			lang = prof.Lang
		}
	}

	seed := f.topic
	if seed == "" && prof != nil {
		if ranked := discovery.RankTopics(prof); len(ranked) > 0 {
			seed = ranked[0].Topic
		}
	}
	if seed == "" && !f.noInteractive {
		seed = promptLine("Topic to research: ")
	}
	if seed == "" {
		return fmt.Errorf("no topic: pass -topic or set up a profile with detectable topics")
	}

	topics, err := researchTopics(ctx, client, db, seed, lang)
	if err != nil {
		return err
	}

	topic := topics[0]
	if !f.noInteractive && len(topics) > 1 {
		for i, t := range topics {
			fmt.Printf("  [%d] %s\n", i+1, t.Name)
		}
		if n, err := strconv.Atoi(promptLine("Pick a topic: ")); err == nil && n >= 1 && n <= len(topics) {
			topic = topics[n-1]
		}
	}

	angle := discovery.Angle(f.angle)
	valid := false
	for _, a := range discovery.Angles {
		if a == angle {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unknown angle %q (want dominant, contrarian, or personal)", f.angle)
	}

	opts := optimizer.Options{
		Lang:     lang,
		HasMedia: f.media,
		Thread:   f.thread,
		Profile:  prof,
		Verify:   f.verify,
	}
	res, err := optimizer.New(client, cfg.Scoring).FromTrending(ctx, topic, angle, opts)
	if err != nil {
		return err
	}
	if db != nil {
		_ = db.SaveSession(ctx, username, "discover")
	}

	if f.jsonOut {
		out, err := display.RenderJSON(res.Variations[0].Tweet, res)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Printf("Topic: %s (%s angle)\n\n", topic.Name, angle)
	fmt.Println(display.New(cfg.Display).Full(res.Variations[0].Tweet, res, f.verbose))
	return nil
}

// researchTopics asks the model what is trending around seed, with a
// 6-hour cache so repeated runs do not burn completions.
func researchTopics(ctx context.Context, client llm.Client, db *store.DB, seed, lang string) ([]discovery.TrendingTopic, error) {
	const ttl = 6 * time.Hour
	if db != nil {
		if entry, err := db.GetTrending(ctx, seed, ttl); err == nil && entry != nil {
			var cached []discovery.TrendingTopic
			if jsonErr := entry.Decode(&cached); jsonErr == nil && len(cached) > 0 {
				logging.Debug("trending_cache_hit", map[string]any{"topic": seed})
				return cached, nil
			}
		}
	}
	raw, err := client.Complete(ctx, discovery.ResearchPrompt(seed, lang))
	if err != nil {
		return nil, fmt.Errorf("topic research: %w", err)
	}
	topics := discovery.Parse(raw)
	if len(topics) == 0 {
		return nil, fmt.Errorf("could not parse any trending topics from the research response")
	}
	if db != nil {
		_ = db.PutTrending(ctx, seed, raw, topics)
	}
	return topics, nil
}

func cmdWelcome() error {
	theme.PrintBanner()
	cfg, err := loadConfig("./amplify.yaml")
	if err != nil {
		return err
	}
	db := openStore(cfg)
	ctx := context.Background()
	if db != nil {
		defer db.Close()
		if sess, err := db.LoadSession(ctx); err == nil && sess.LastUsername != "" {
			fmt.Printf("Welcome back, @%s (last run: %s)\n\n", sess.LastUsername, sess.LastAction)
		}
	}
	fmt.Println("  [1] Score a tweet (offline)")
	fmt.Println("  [2] Optimize a tweet")
	fmt.Println("  [3] Discover trending topics")
	fmt.Println("  [4] Build account profile")
	fmt.Println("  [q] Quit")
	switch promptLine("> ") {
	case "1":
		return cmdScore()
	case "2":
		return cmdOptimize()
	case "3":
		return cmdDiscover()
	case "4":
		return cmdProfile()
	}
	return nil
}

