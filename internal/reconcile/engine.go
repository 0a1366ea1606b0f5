package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"animelib/internal/catalog"
	"animelib/internal/folders"
	"animelib/internal/library"
	"animelib/internal/logging"
	"animelib/internal/textutil"
)

// EntryDelay is the pause after every processed entry.
const EntryDelay = time.Second

// Catalog searches the remote catalog.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.Anime, error)
}

// Store reads and writes linked records.
type Store interface {
	LookupTitle(ctx context.Context, linkKey string) (string, bool, error)
	Upsert(ctx context.Context, rec library.Record) error
}

// Disambiguator picks one candidate, or none, for an unmatched token.
type Disambiguator interface {
	Resolve(ctx context.Context, token string, candidates []catalog.Anime) (*catalog.Anime, error)
}

// ImageFetcher downloads cover images.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Reporter shows run progress on the console.
type Reporter interface {
	Start(message string)
	SetMessage(message string)
	Println(a ...any)
	Stop()
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options selects the run mode.
type Options struct {
	// Full re-resolves folders that are already linked.
	Full bool
	// Verbose prints a line for every decision, not only failures.
	Verbose bool
}

// Dependencies wires an Engine to its collaborators. Catalog, Store,
// Disambiguator, Images, LibraryDir and ImagesDir are required.
type Dependencies struct {
	Catalog       Catalog
	Store         Store
	Disambiguator Disambiguator
	Images        ImageFetcher
	Fs            afero.Fs
	LibraryDir    string
	ImagesDir     string
	// ImageExtension defaults to "webp".
	ImageExtension string
	Reporter       Reporter
	Stdout         io.Writer
	Stderr         io.Writer
	Sleep          SleepFunc
	Logger         *slog.Logger
}

// Engine runs reconciliation passes.
type Engine struct {
	opts       Options
	catalog    Catalog
	store      Store
	chooser    Disambiguator
	images     ImageFetcher
	fs         afero.Fs
	libraryDir string
	imagesDir  string
	imageExt   string
	reporter   Reporter
	stdout     io.Writer
	stderr     io.Writer
	sleep      SleepFunc
	logger     *slog.Logger
}

// New validates deps and returns an Engine.
func New(deps Dependencies, opts Options) (*Engine, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("reconcile: catalog required")
	case deps.Store == nil:
		return nil, errors.New("reconcile: store required")
	case deps.Disambiguator == nil:
		return nil, errors.New("reconcile: disambiguator required")
	case deps.Images == nil:
		return nil, errors.New("reconcile: image fetcher required")
	case strings.TrimSpace(deps.LibraryDir) == "":
		return nil, errors.New("reconcile: library dir required")
	case strings.TrimSpace(deps.ImagesDir) == "":
		return nil, errors.New("reconcile: images dir required")
	}
	e := &Engine{
		opts:       opts,
		catalog:    deps.Catalog,
		store:      deps.Store,
		chooser:    deps.Disambiguator,
		images:     deps.Images,
		fs:         deps.Fs,
		libraryDir: deps.LibraryDir,
		imagesDir:  deps.ImagesDir,
		imageExt:   strings.TrimPrefix(strings.TrimSpace(deps.ImageExtension), "."),
		reporter:   deps.Reporter,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		sleep:      deps.Sleep,
		logger:     deps.Logger,
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.imageExt == "" {
		e.imageExt = "webp"
	}
	if e.stdout == nil {
		e.stdout = io.Discard
	}
	if e.stderr == nil {
		e.stderr = io.Discard
	}
	if e.reporter == nil {
		e.reporter = lineReporter{out: e.stdout}
	}
	if e.sleep == nil {
		e.sleep = sleepContext
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e, nil
}

// Run performs one reconciliation pass. Skipped entries are reported and
// counted; scan failures, store failures, a closed prompt and cancellation
// end the run with an error alongside the partial Summary.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := e.logger.With(
		logging.String(logging.FieldRunID, summary.RunID),
		logging.Bool("full", e.opts.Full),
	)

	entries, err := folders.Scan(e.fs, e.libraryDir)
	if err != nil {
		return summary, &ScanError{Dir: e.libraryDir, Err: err}
	}
	summary.Entries = len(entries)

	targets, err := e.planTargets(ctx, entries)
	if err != nil {
		return summary, err
	}
	summary.Targets = len(targets)
	logger.Info("reconciliation started",
		logging.String("library_dir", e.libraryDir),
		logging.Int("entries", summary.Entries),
		logging.Int("targets", summary.Targets),
	)

	if err := e.resolveAll(ctx, logger, targets, &summary); err != nil {
		logger.Error("reconciliation aborted", logging.Error(err))
		return summary, err
	}
	fmt.Fprintln(e.stdout, "All Data Has been saved.")

	if err := e.downloadAll(ctx, logger, &summary); err != nil {
		logger.Error("image downloads aborted", logging.Error(err))
		return summary, err
	}

	fmt.Fprintln(e.stdout, summary.String())
	logger.Info("reconciliation finished",
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("failed", summary.Failed),
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("download_failed", summary.DownloadFailed),
	)
	return summary, nil
}

func (e *Engine) planTargets(ctx context.Context, entries []folders.Entry) ([]target, error) {
	targets := make([]target, 0, len(entries))
	for _, entry := range entries {
		storedTitle, linked, err := e.store.LookupTitle(ctx, entry.Name)
		if err != nil {
			return nil, &PersistenceError{Op: "lookup", LinkKey: entry.Name, Err: err}
		}
		token, ok := chooseTargetToken(entry, storedTitle, linked, e.opts.Full)
		if !ok {
			continue
		}
		targets = append(targets, target{entry: entry, token: token})
	}
	return targets, nil
}

func (e *Engine) resolveAll(ctx context.Context, logger *slog.Logger, targets []target, summary *Summary) error {
	e.reporter.Start("Updating Database...")
	defer e.reporter.Stop()

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.reporter.SetMessage("Fetching " + t.token)
		entryLogger := logger.With(
			logging.String(logging.FieldLinkKey, t.entry.Name),
			logging.String(logging.FieldToken, t.token),
		)

		match, err := e.resolve(ctx, entryLogger, t)
		switch {
		case err == nil && match != nil:
			summary.Matched++
			summary.Matches = append(summary.Matches, *match)
		case err == nil:
			summary.Unmatched++
		case isSkippable(err):
			summary.Failed++
		default:
			return err
		}

		if err := e.sleep(ctx, EntryDelay); err != nil {
			return err
		}
		summary.Delays++
	}
	return nil
}

// resolve returns the persisted match for t, nil when the operator declined
// every candidate, or an error. Search failures are reported here and come
// back as skippable errors.
func (e *Engine) resolve(ctx context.Context, logger *slog.Logger, t target) (*Match, error) {
	probe, err := e.search(ctx, logger, t.token, catalog.ProbeLimit)
	if err != nil {
		return nil, err
	}

	top := probe[0]
	chosen := &top
	fast := textutil.SameTitle(top.Title, t.token)
	if fast {
		e.verbosef("Found match for %s.", t.token)
	} else {
		candidates, err := e.search(ctx, logger, t.token, catalog.CandidateLimit)
		if err != nil {
			return nil, err
		}
		chosen, err = e.chooser.Resolve(ctx, t.token, candidates)
		if err != nil {
			return nil, err
		}
		if chosen == nil {
			e.reporter.Println(fmt.Sprintf("Couldn't find %s", t.token))
			logger.Info("no acceptable match", logging.String(logging.FieldDecision, "none"))
			return nil, nil
		}
		e.verbosef("Found result for %s", t.token)
	}

	match := Match{
		LinkKey: chooseLinkKey(t.entry, t.token, e.opts.Full),
		Anime:   *chosen,
		Fast:    fast,
	}
	if err := e.store.Upsert(ctx, library.RecordFromAnime(match.LinkKey, match.Anime)); err != nil {
		return nil, &PersistenceError{Op: "upsert", LinkKey: match.LinkKey, MalID: match.Anime.MalID, Err: err}
	}
	logger.Info("match saved",
		logging.Int64(logging.FieldMalID, match.Anime.MalID),
		logging.String("title", match.Anime.Title),
		logging.String(logging.FieldDecision, textutil.Ternary(fast, "fast", "operator")),
	)
	e.verbosef("Saved %s.", match.LinkKey)
	return &match, nil
}

// search wraps a catalog query, turning an empty result into ErrEmptyResult
// and reporting either failure to the operator.
func (e *Engine) search(ctx context.Context, logger *slog.Logger, token string, limit int) ([]catalog.Anime, error) {
	results, err := e.catalog.Search(ctx, token, limit)
	if err == nil && len(results) == 0 {
		err = fmt.Errorf("%w for %q", ErrEmptyResult, token)
	}
	if err == nil {
		return results, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	e.reporter.Println(fmt.Sprintf("Failed to fetch %s.", token))
	var searchErr *catalog.SearchError
	if errors.As(err, &searchErr) {
		e.reporter.Println(searchErr.Err.Error())
	}
	logger.Warn("search failed", logging.Int("limit", limit), logging.Error(err))
	return nil, err
}

func isSkippable(err error) bool {
	var searchErr *catalog.SearchError
	return errors.As(err, &searchErr) || errors.Is(err, ErrEmptyResult)
}

func (e *Engine) verbosef(format string, args ...any) {
	if !e.opts.Verbose {
		return
	}
	e.reporter.Println(fmt.Sprintf(format, args...))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lineReporter prints progress lines without animation.
type lineReporter struct {
	out io.Writer
}

func (lineReporter) Start(string) {}

func (lineReporter) SetMessage(string) {}

func (r lineReporter) Println(a ...any) { fmt.Fprintln(r.out, a...) }

func (lineReporter) Stop() {}
