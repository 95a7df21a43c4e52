package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/drpaneas/gitscope/internal/config"
	"github.com/drpaneas/gitscope/internal/ghfetch"
	"github.com/drpaneas/gitscope/internal/scope"
	"github.com/drpaneas/gitscope/internal/search"
	"github.com/drpaneas/gitscope/internal/textutil"
)

func main() {
	var cfg config.Config
	flag.BoolVar(&cfg.Interactive, "i", false, "Interactive mode: read usernames from stdin; a new name cancels the search in flight")
	flag.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "Timeout per lookup")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gitscope [flags] <username>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 || (flag.NArg() == 0 && !cfg.Interactive) {
		flag.Usage()
		os.Exit(1)
	}
	cfg.Username = flag.Arg(0)

	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, &cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("starting gitscope", "username", cfg.Username, "interactive", cfg.Interactive)

	client := ghfetch.New(cfg.GitHubToken)
	agg := scope.New(client)

	if cfg.Interactive {
		return runInteractive(ctx, cfg, agg)
	}
	return runOnce(ctx, cfg, agg)
}

func runOnce(ctx context.Context, cfg *config.Config, agg *scope.Aggregator) error {
	slog.Debug("looking up user", "username", cfg.Username)
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	res, err := agg.UserWithRepositories(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("lookup cancelled: %w", err)
	}
	if res.IsError() {
		return errors.New(res.Message())
	}
	printResult(res.Value())
	return nil
}

func runInteractive(ctx context.Context, cfg *config.Config, agg *scope.Aggregator) error {
	ctrl := search.NewController(agg)
	defer ctrl.Close()

	go func() {
		for st := range ctrl.Updates() {
			renderState(st)
		}
	}()

	if cfg.Username != "" {
		ctrl.UpdateSearchQuery(cfg.Username)
		ctrl.Search()
	}

	fmt.Fprintln(os.Stderr, "Type a GitHub username and press enter (ctrl-D to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ctrl.UpdateSearchQuery(line)
		ctrl.Search()
	}
	return scanner.Err()
}

func renderState(st search.State) {
	switch {
	case st.IsLoading:
		fmt.Fprintf(os.Stderr, "searching %q...\n", st.SearchQuery)
	case st.Error != "":
		fmt.Fprintf(os.Stderr, "error: %s\n", st.Error)
	case st.User != nil:
		printResult(scope.UserWithRepositories{
			User:         *st.User,
			Repositories: st.Repositories,
			TotalForks:   st.TotalForks,
		})
		if len(st.RecentSearches) > 0 {
			fmt.Printf("recent: %s\n", strings.Join(st.RecentSearches, ", "))
		}
	}
}

func printResult(res scope.UserWithRepositories) {
	fmt.Printf("%s\n", res.User.Name)
	fmt.Printf("avatar: %s\n", res.User.AvatarURL)
	for _, repo := range res.Repositories {
		line := fmt.Sprintf("  %-32s stars %-6d forks %-6d updated %s",
			repo.Name, repo.StargazersCount, repo.ForksCount, textutil.FormatDate(repo.UpdatedAt))
		if repo.Description != "" {
			line += "  " + textutil.Truncate(repo.Description, 80, "...")
		}
		fmt.Println(line)
	}
	fmt.Printf("total forks across %d repositories: %d\n", len(res.Repositories), res.TotalForks)
}
