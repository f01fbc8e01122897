package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"amplify/internal/analyzer"
	"amplify/internal/cmdlog"
	"amplify/internal/config"
	"amplify/internal/discovery"
	"amplify/internal/display"
	"amplify/internal/llm"
	"amplify/internal/logging"
	"amplify/internal/metrics"
	"amplify/internal/profile"
	"amplify/internal/scorer"
	"amplify/internal/store"
	"amplify/internal/theme"
	"amplify/internal/xclient"
)

// cliArgs returns everything after the subcommand name.
func cliArgs() []string {
	if len(os.Args) > 2 {
		return os.Args[2:]
	}
	return nil
}

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	var err error
	switch cmd {
	case "init":
		err = cmdlog.Run("init", cmdInit)
	case "score":
		err = cmdlog.Run("score", cmdScore)
	case "optimize":
		err = cmdlog.Run("optimize", cmdOptimize)
	case "discover":
		err = cmdlog.Run("discover", cmdDiscover)
	case "profile":
		err = cmdlog.Run("profile", cmdProfile)
	case "help", "-h", "--help":
		printHelp()
	case "":
		err = cmdlog.Run("welcome", cmdWelcome)
	default:
		fmt.Println("unknown command:", cmd)
		printHelp()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: amplify <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./amplify.yaml")
	fmt.Println("  score       Score a tweet offline against the ranking signals")
	fmt.Println("  optimize    Rewrite a tweet for the algorithm (LLM required)")
	fmt.Println("  discover    Research trending topics and draft a tweet")
	fmt.Println("  profile     Fetch and show an account's style fingerprint")
	fmt.Println("Run with no command for the interactive welcome flow.")
}

// loadConfig reads the config file, falling back to defaults plus
// environment credentials when the file does not exist yet.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		cfg = config.Default()
		cfg.ResolveEnv()
		return cfg, nil
	}
	return config.Config{}, err
}

func openStore(cfg config.Config) *store.DB {
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		logging.Warn("store_open_failed", map[string]any{"path": cfg.Storage.DBPath, "error": err.Error()})
		return nil
	}
	return db
}

// loadProfile resolves the account fingerprint, best effort: cache or API
// when a bearer token exists, LLM research when it does not (or when the
// API fails). Every failure degrades to no profile, never to a crash.
func loadProfile(ctx context.Context, cfg config.Config, db *store.DB, client llm.Client, username, lang string, refresh bool) *profile.Profile {
	if username == "" {
		return nil
	}
	if cfg.Credentials.BearerToken != "" {
		p, src, err := newFetcher(cfg, db, refresh).Fetch(ctx, username)
		if err == nil {
			metrics.IncProfileFetch(string(src))
			return p
		}
		logging.Warn("profile_fetch_failed", map[string]any{"username": username, "error": err.Error()})
	} else {
		logging.Warn("profile_api_skipped", map[string]any{"username": username, "reason": "missing X_BEARER_TOKEN"})
	}
	return researchProfile(ctx, db, client, username, lang)
}

func newFetcher(cfg config.Config, db *store.DB, refresh bool) *profile.Fetcher {
	return profile.NewFetcher(xclient.NewHTTPClient(cfg.Credentials.BearerToken), db, profile.Options{
		MaxTweets:    cfg.Profile.MaxTweets,
		TopTweets:    cfg.Profile.TopTweets,
		CacheTTL:     time.Duration(cfg.Profile.CacheTTLHours * float64(time.Hour)),
		ForceRefresh: refresh,
	})
}

// researchProfile is the no-API fallback: ask the model what it knows
// about the account and cache whatever comes back.
func researchProfile(ctx context.Context, db *store.DB, client llm.Client, username, lang string) *profile.Profile {
	if client == nil {
		return nil
	}
	p, err := discovery.ResearchProfile(ctx, client, username, lang)
	if err != nil {
		logging.Warn("profile_research_failed", map[string]any{"username": username, "error": err.Error()})
		return nil
	}
	metrics.IncProfileFetch(string(profile.SourceManual))
	if db != nil {
		_ = db.PutProfile(ctx, p.Username, p)
	}
	return p
}

func cmdInit() error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./amplify.yaml", "path to write config")
	_ = fs.Parse(cliArgs())
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
	fmt.Println("Set X_BEARER_TOKEN and OPENAI_API_KEY in your environment, or fill in credentials.")
	return nil
}

// readTweet resolves the input text: -file, trailing args, or a prompt.
func readTweet(file string, args []string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	text := promptLine("Tweet text: ")
	if text == "" {
		return "", fmt.Errorf("no tweet text given")
	}
	return text, nil
}

func cmdScore() error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	cfgPath := fs.String("config", "./amplify.yaml", "config path")
	file := fs.String("file", "", "read tweet text from file")
	media := fs.Bool("media", false, "tweet will include media")
	jsonOut := fs.Bool("json", false, "emit JSON instead of the report")
	verbose := fs.Bool("verbose", false, "show all 19 signals")
	_ = fs.Parse(cliArgs())

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	text, err := readTweet(*file, fs.Args())
	if err != nil {
		return err
	}

	f := analyzer.Analyze(text, *media)
	report := scorer.Score(f, cfg.Scoring)
	if *jsonOut {
		b, err := json.MarshalIndent(struct {
			Tweet string `json:"tweet"`
			scorer.Report
		}{text, report}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	fmt.Println(display.New(cfg.Display).ScoreReport(text, f, report, *verbose))
	return nil
}

func cmdProfile() error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	cfgPath := fs.String("config", "./amplify.yaml", "config path")
	username := fs.String("username", "", "account to fingerprint (defaults to config account)")
	refresh := fs.Bool("refresh", false, "bypass the cache")
	jsonOut := fs.Bool("json", false, "emit the profile as JSON")
	_ = fs.Parse(cliArgs())

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	user := *username
	if user == "" {
		user = cfg.Account.Username
	}
	if user == "" {
		return fmt.Errorf("no username: pass -username or set account.username in config")
	}

	db := openStore(cfg)
	if db != nil {
		defer db.Close()
	}
	ctx := context.Background()

	var p *profile.Profile
	if cfg.Credentials.BearerToken != "" {
		fetched, src, err := newFetcher(cfg, db, *refresh).Fetch(ctx, user)
		if err != nil {
			logging.Warn("profile_fetch_failed", map[string]any{"username": user, "error": err.Error()})
		} else {
			metrics.IncProfileFetch(string(src))
			p = fetched
		}
	}
	if p == nil {
		client, err := llm.New(cfg.LLM)
		if err == nil {
			fmt.Printf("Researching @%s via the model...\n", user)
			p = researchProfile(ctx, db, client, user, "")
		}
	}
	if p == nil && !*jsonOut {
		p = manualProfileEntry(user)
		if p != nil {
			metrics.IncProfileFetch(string(profile.SourceManual))
			if db != nil {
				_ = db.PutProfile(ctx, p.Username, p)
			}
		}
	}
	if p == nil {
		return fmt.Errorf("could not build a profile for @%s: set X_BEARER_TOKEN or configure an LLM provider", user)
	}
	if db != nil {
		_ = db.SaveSession(ctx, p.Username, "profile")
	}

	if *jsonOut {
		b, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	printProfile(p)
	return nil
}

func printProfile(p *profile.Profile) {
	fmt.Printf("@%s: %d followers, %d top tweets\n", p.Username, p.Followers, len(p.TopTweets))
	fmt.Printf("Tone: %s | Avg length: %.0f chars | Lang: %s\n",
		p.Style.TypicalTone, p.Style.AvgTweetLength, strings.ToUpper(p.Lang))
	fmt.Printf("Emoji/tweet: %.1f | Hashtags/tweet: %.1f | Questions/tweet: %.1f\n",
		p.Style.EmojiFrequency, p.Style.HashtagFrequency, p.Style.QuestionFrequency)
	fmt.Printf("Engagement: %.1f likes, %.1f RTs, %.1f replies per tweet (%.2f%% rate)\n",
		p.Engagement.AvgLikes, p.Engagement.AvgRetweets, p.Engagement.AvgReplies,
		p.Engagement.EngagementRateTotal)
	if p.PostingFrequencyHours > 0 {
		fmt.Printf("Posts roughly every %.0f hours\n", p.PostingFrequencyHours)
	}
	if len(p.Topics) > 0 {
		fmt.Println("Topics:", strings.Join(p.Topics, ", "))
	}
	for i, t := range p.TopTweets {
		fmt.Printf("\nTop tweet #%d (%d engagement):\n%s\n", i+1, t.EngagementScore, t.Text)
	}
}
