package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/completion"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/resolve"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		configDir   string
		ask         string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configDir, "config", "", "config directory (default "+config.DefaultConfigDir()+")")
	flag.StringVar(&ask, "ask", "", "print suggestions for a mood or description and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configDir, ask); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir, ask string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, configDir)
	}

	metadata := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.Token, cfg.TMDB.Language, logger)
	completer := completion.NewClient(completion.Options{
		Endpoint:    cfg.Completion.Endpoint,
		Token:       cfg.Completion.Token,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
	}, logger)

	favorites, err := store.NewFavoritesStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open saved movies: %w", err)
	}
	defer favorites.Close()

	searchOpts := service.SearchOptions{
		KeywordDebounce:   cfg.Search.KeywordDebounce,
		AssistDebounce:    cfg.Search.AssistDebounce,
		RecommendDebounce: cfg.Search.RecommendDebounce,
		AssistLimit:       cfg.Search.AssistLimit,
		RecommendLimit:    cfg.Search.RecommendLimit,
	}

	if ask != "" {
		searchSvc := service.NewSearchService(metadata, completer, searchOpts, func(resolve.Update) {}, logger)
		defer searchSvc.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return printSuggestions(ctx, searchSvc, ask, os.Stdout)
	}

	pub := tui.NewChannelPublisher(logger)
	searchSvc := service.NewSearchService(metadata, completer, searchOpts, pub.Publish, logger)
	defer searchSvc.Close()

	model := tui.NewModel(tui.Services{
		Discovery: service.NewDiscoveryService(metadata, logger),
		Details:   service.NewDetailsService(metadata, logger),
		Search:    searchSvc,
		Favorites: service.NewFavoritesService(favorites, logger),
	}, pub.Updates(), logger)
	model.Detail.SetImageBase(cfg.TMDB.ImageBaseURL)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printSuggestions runs one recommendation query with a spinner and prints
// the results. The request ends only when it settles or ctx is cancelled;
// cancellation exits quietly.
func printSuggestions(ctx context.Context, svc *service.SearchService, query string, w io.Writer) error {
	type result struct {
		movies []domain.ResolvedMovie
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		movies, err := svc.Recommend(ctx, query)
		resultCh <- result{movies, err}
	}()

	frame := 0
	fmt.Fprintf(w, "\r%s Thinking...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(w, clearSpinnerLine)
			if errors.Is(res.err, domain.ErrCancelled) {
				return nil
			}
			if res.err != nil {
				return res.err
			}
			if len(res.movies) == 0 {
				fmt.Fprintln(w, "No suggestions found.")
				return nil
			}
			for _, m := range res.movies {
				title := m.Title
				if year := m.Year(); year != "" {
					title += " (" + year + ")"
				}
				fmt.Fprintln(w, styles.TitleStyle.Render(title))
				if m.Rationale != "" {
					fmt.Fprintln(w, "  "+styles.RationaleStyle.Render(m.Rationale))
				}
			}
			return nil

		case <-ticker.C:
			frame++
			fmt.Fprintf(w, "\r%s Thinking...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}

// runSetupFlow asks for the missing service tokens and saves them
func runSetupFlow(cfg *config.Config, configDir string) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	if cfg.TMDB.Token == "" {
		token, err := promptSecret(reader, "Enter your TMDB read access token: ")
		if err != nil {
			return err
		}
		cfg.TMDB.Token = token
	}

	if cfg.Completion.Token == "" {
		token, err := promptSecret(reader, "Enter your completion gateway token: ")
		if err != nil {
			return err
		}
		cfg.Completion.Token = token
	}

	if err := config.SaveConfig(cfg, configDir); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// promptSecret reads a non-empty value without echo, falling back to a
// plain line read when stdin is not a terminal
func promptSecret(reader *bufio.Reader, prompt string) (string, error) {
	for {
		fmt.Print(prompt)

		var input string
		if term.IsTerminal(int(syscall.Stdin)) {
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			input = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			input = line
		}

		if value := strings.TrimSpace(input); value != "" {
			return value, nil
		}
		fmt.Println("Token cannot be empty. Please try again.")
	}
}
