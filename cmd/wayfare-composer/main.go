package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathanTyoung/wayfare-client/internal/composer"
	"github.com/jonathanTyoung/wayfare-client/internal/config"
	"github.com/jonathanTyoung/wayfare-client/internal/geocode"
	"github.com/jonathanTyoung/wayfare-client/internal/journal"
	"github.com/jonathanTyoung/wayfare-client/internal/logging"
	"github.com/jonathanTyoung/wayfare-client/internal/session"
	"github.com/jonathanTyoung/wayfare-client/internal/typeahead"
)

var (
	name    = "wayfare-composer"
	version = "0.1.0"
)

func main() {
	// Initialize logger
	logger, shutdown := logging.InitializeLogger(name)
	defer shutdown()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalw("Failed to load configuration", "error", err)
	}

	// The composer needs an authenticated session up front.
	sess, err := session.FromToken(cfg.Token)
	if err != nil {
		logger.Fatalw("No session, set WAYFARE_TOKEN and try again", "error", err)
	}

	// Register metrics and expose them when an address is configured.
	geocode.RegisterMetrics()
	typeahead.RegisterMetrics()
	composer.RegisterMetrics()
	if cfg.MetricsAddress != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
				logger.Warnw("Metrics endpoint stopped", "error", err)
			}
		}()
	}

	// Wire up the clients and the typeahead engine.
	geocoder := geocode.NewClient(logger, cfg.GeocoderBaseURL, cfg.SuggestionLimit, cfg.RequestTimeout, cfg.SuggestionCacheTTL)
	journalClient := journal.NewClient(logger, cfg.APIBaseURL, sess, cfg.RequestTimeout)

	engine := typeahead.NewEngine(logger, geocoder.Search, typeahead.Options{
		MinQueryLength:   cfg.MinQueryLength,
		DebounceInterval: cfg.DebounceInterval,
		OnUpdate:         printSnapshot,
	})
	defer engine.Close()

	coordinator := composer.NewCoordinator(logger, journalClient, sess, composer.Options{
		Destination: "/home",
		Navigate: func(destination string) {
			fmt.Printf("-> navigating to %s\n", destination)
		},
		OnSuccess: func() {
			fmt.Println("-> post published")
		},
	})

	// Create a context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("Starting %s v%s", name, version)
	runComposer(ctx, logger, engine, coordinator)
}

// runComposer drives the composer from stdin. Plain lines feed the
// location field; ':'-prefixed commands edit the rest of the draft and
// submit it.
func runComposer(ctx context.Context, logger *zap.SugaredLogger, engine *typeahead.Engine, coordinator *composer.Coordinator) {
	draft := &composer.DraftPost{}
	photos := &composer.PhotoBuffer{}

	fmt.Println("wayfare composer - type a place name, or :help for commands")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, ":") {
			draft.LocationText = line
			engine.SetText(line)
			continue
		}

		command, argument, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
		switch command {
		case "help":
			fmt.Println("  :title <text>      set the post title")
			fmt.Println("  :desc <text>       set the short description")
			fmt.Println("  :long <text>       set the long description")
			fmt.Println("  :category <id>     set the category")
			fmt.Println("  :tags <text>       set the tags")
			fmt.Println("  :attach <paths>    attach photos (replaces selection)")
			fmt.Println("  :pick <n>          confirm the n-th suggestion")
			fmt.Println("  :submit            publish the post")
			fmt.Println("  :quit              exit")
		case "title":
			draft.Title = argument
		case "desc":
			draft.ShortDescription = argument
		case "long":
			draft.LongDescription = argument
		case "category":
			id, err := strconv.ParseInt(argument, 10, 64)
			if err != nil {
				fmt.Println("category wants a numeric id")
				continue
			}
			draft.CategoryID = id
		case "tags":
			draft.TagsText = argument
		case "attach":
			if err := photos.AttachPaths(strings.Fields(argument)); err != nil {
				fmt.Printf("attach failed: %v\n", err)
				continue
			}
			fmt.Printf("%d photo(s) attached\n", photos.Len())
		case "pick":
			index, err := strconv.Atoi(argument)
			snap := engine.Snapshot()
			if err != nil || index < 1 || index > len(snap.Suggestions) {
				fmt.Println("no such suggestion")
				continue
			}
			engine.Select(snap.Suggestions[index-1])
			draft.LocationText = snap.Suggestions[index-1].Name
		case "submit":
			outcome := coordinator.Submit(ctx, draft, engine.Confirmed(), photos)
			printOutcome(outcome)
			if outcome.Succeeded() {
				draft.Reset()
			}
		case "quit":
			return
		default:
			fmt.Println("unknown command, try :help")
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Warnw("Input closed", "error", err)
	}
}

func printSnapshot(snap typeahead.Snapshot) {
	if snap.Confirmed != nil {
		fmt.Printf("location confirmed: %s (%.4f, %.4f)\n", snap.Confirmed.Name, snap.Confirmed.Lat, snap.Confirmed.Lng)
		return
	}
	if len(snap.Suggestions) == 0 {
		return
	}
	for i, suggestion := range snap.Suggestions {
		fmt.Printf("  %d. %s (%.4f, %.4f)\n", i+1, suggestion.Name, suggestion.Lat, suggestion.Lng)
	}
}

func printOutcome(outcome composer.Outcome) {
	switch outcome.Kind {
	case composer.OutcomeSuccess:
		fmt.Printf("post %d created\n", outcome.PostID)
	case composer.OutcomePartialSuccess:
		fmt.Printf("post %d created, but the photo upload failed: %v\n", outcome.PostID, outcome.PhotoUploadError)
	default:
		fmt.Printf("%s: %s\n", outcome.Kind, outcome.Message)
	}
}
