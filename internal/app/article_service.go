// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
//
// Every service operation is a task: a use case delegate paired with a
// postable, submitted to the executor. Request-scoped operations await their
// task's outcome through a notify.Future; the feed sync is fire-and-forget and
// reports through a notify.Channel.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jsamuelsen11/go-interactor/internal/app/interactor"
	"github.com/jsamuelsen11/go-interactor/internal/app/notify"
	"github.com/jsamuelsen11/go-interactor/internal/app/usecase"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Compile-time check that ArticleService implements ports.ArticleService.
var _ ports.ArticleService = (*ArticleService)(nil)

// ArticleRepository is the storage the service needs: the transactional
// repository plus its fast-path view.
type ArticleRepository interface {
	ports.Repository[string, article.Article]
	ports.FastRepository[string, article.Article]
}

const defaultSyncBuffer = 8

// Constructor errors.
var (
	ErrNilRepository = errors.New("article service: nil repository")
	ErrNilFeed       = errors.New("article service: nil feed delegate")
	ErrNilExecutor   = errors.New("article service: nil executor")
)

// errSyncOutcomeDropped marks a sync whose outcome never reached the status
// consumer.
var errSyncOutcomeDropped = domain.NewError(domain.CategoryUnavailable, "sync outcome dropped before it was recorded", nil)

// ServiceOption configures an ArticleService.
type ServiceOption func(*ArticleService)

// WithServiceMetrics records task metrics for every operation.
func WithServiceMetrics(m *telemetry.Metrics) ServiceOption {
	return func(s *ArticleService) { s.metrics = m }
}

// WithIntrospection attaches performance modules to every use case.
func WithIntrospection(modules ...ports.PerformanceModule) ServiceOption {
	return func(s *ArticleService) { s.modules = append(s.modules, modules...) }
}

// WithIDGenerator replaces the ULID generator used for new articles.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *ArticleService) { s.newID = fn }
}

// WithSyncNotifyTimeout bounds how long a finished sync waits to hand its
// outcome to the status consumer before the outcome is dropped.
func WithSyncNotifyTimeout(d time.Duration) ServiceOption {
	return func(s *ArticleService) { s.notifyTimeout = d }
}

// WithSyncBuffer sets how many finished sync outcomes may wait for the status
// consumer. Negative values are treated as zero.
func WithSyncBuffer(n int) ServiceOption {
	return func(s *ArticleService) { s.syncBuffer = n }
}

// WithSyncErrorComposer sets the composer for sync failures, typically the
// feed adapter's transport-aware one.
func WithSyncErrorComposer(fn interactor.ErrorComposer) ServiceOption {
	return func(s *ArticleService) {
		if fn != nil {
			s.composeSync = fn
		}
	}
}

// WithTaskLogging turns on task lifecycle debug logs.
func WithTaskLogging(on bool) ServiceOption {
	return func(s *ArticleService) { s.loggable = on }
}

// ArticleService implements ports.ArticleService on top of the article
// repository, the task executor, and the upstream feed.
type ArticleService struct {
	repo   ArticleRepository
	feed   ports.Delegate[[]article.Article]
	exec   ports.Executor
	logger *slog.Logger

	metrics       *telemetry.Metrics
	modules       []ports.PerformanceModule
	newID         func() string
	notifyTimeout time.Duration
	syncBuffer    int
	loggable      bool
	composeSync   interactor.ErrorComposer

	syncOutcomes *notify.Channel[int]
	syncStatus   *notify.Dispatcher[int]
	consumers    atomic.Int32

	mu   sync.RWMutex
	last ports.SyncStatus
}

// NewArticleService creates an ArticleService. feed is the network delegate
// that fetches the upstream articles for a sync. A nil logger discards output.
// Call Start before StartSync so sync outcomes are consumed.
func NewArticleService(
	repo ArticleRepository,
	feed ports.Delegate[[]article.Article],
	exec ports.Executor,
	logger *slog.Logger,
	opts ...ServiceOption,
) (*ArticleService, error) {
	switch {
	case repo == nil:
		return nil, ErrNilRepository
	case feed == nil:
		return nil, ErrNilFeed
	case exec == nil:
		return nil, ErrNilExecutor
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &ArticleService{
		repo:          repo,
		feed:          feed,
		exec:          exec,
		logger:        logger,
		newID:         func() string { return ulid.Make().String() },
		notifyTimeout: time.Second,
		syncBuffer:    defaultSyncBuffer,
		composeSync:   composeSyncError,
		last:          ports.SyncStatus{State: ports.SyncIdle},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.syncOutcomes = notify.NewChannel[int](s.syncBuffer, s.notifyTimeout, logger)
	s.syncStatus = notify.NewDispatcher[int](notify.Handlers[int]{
		OnSuccess: s.syncSucceeded,
		OnError:   s.syncFailed,
	})
	s.syncOutcomes.OnDrop(func(ctx context.Context, _ domain.Outcome[int]) {
		s.syncFailed(ctx, errSyncOutcomeDropped)
	})
	return s, nil
}

// Start consumes sync outcomes until ctx ends. StartSync is refused while
// no consumer is running.
func (s *ArticleService) Start(ctx context.Context) {
	s.consumers.Add(1)
	go func() {
		defer s.consumers.Add(-1)
		for {
			select {
			case <-ctx.Done():
				return
			case outcome := <-s.syncOutcomes.Outcomes():
				s.syncStatus.Post(ctx, outcome)
			}
		}
	}()
}

// ListArticles returns every stored article.
func (s *ArticleService) ListArticles(ctx context.Context) ([]article.Article, error) {
	s.logger.InfoContext(ctx, "listing articles")

	uc, err := build(s, usecase.Execute[[]article.Article]("list-articles", s.repo.List))
	if err != nil {
		return nil, err
	}

	articles, err := run(ctx, s, uc)
	if err != nil {
		s.logError(ctx, "failed to list articles", "ListArticles", err)
		return nil, err
	}
	return articles, nil
}

// GetArticles returns the stored articles among ids through the fast path.
func (s *ArticleService) GetArticles(ctx context.Context, ids []string) ([]article.Article, error) {
	s.logger.InfoContext(ctx, "fetching articles", slog.Int("count", len(ids)))

	uc, err := build(s, usecase.Execute[[]article.Article]("get-articles", func(ctx context.Context) ([]article.Article, error) {
		return s.repo.GetAllFromMemory(ctx, ids)
	}))
	if err != nil {
		return nil, err
	}

	articles, err := run(ctx, s, uc)
	if err != nil {
		s.logError(ctx, "failed to fetch articles", "GetArticles", err)
		return nil, err
	}
	return articles, nil
}

// GetArticle returns a single article through the fast path.
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*article.Article, error) {
	s.logger.InfoContext(ctx, "fetching article", slog.String("article_id", id))

	uc, err := build(s, usecase.Execute[*article.Article]("get-article", func(ctx context.Context) (*article.Article, error) {
		a, found, err := s.repo.GetFromMemory(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("article %q: %w", id, domain.ErrNotFound)
		}
		return &a, nil
	}))
	if err != nil {
		return nil, err
	}

	a, err := run(ctx, s, uc)
	if err != nil {
		s.logError(ctx, "failed to fetch article", "GetArticle", err, slog.String("article_id", id))
		return nil, err
	}
	return a, nil
}

// SaveArticle validates and upserts one article. An empty ID gets a new ULID.
func (s *ArticleService) SaveArticle(ctx context.Context, a *article.Article) (*article.Article, error) {
	if a == nil {
		return nil, domain.Invalid("article", domain.MsgRequired)
	}

	incoming := *a
	if incoming.ID == "" {
		incoming.ID = s.newID()
	}
	s.logger.InfoContext(ctx, "saving article", slog.String("article_id", incoming.ID))

	uc, err := build(s,
		usecase.Execute[article.Article]("save-article", func(context.Context) (article.Article, error) {
			return incoming, incoming.Validate()
		}).Process(s.repo.Save),
	)
	if err != nil {
		return nil, err
	}

	saved, err := run(ctx, s, uc)
	if err != nil {
		s.logError(ctx, "failed to save article", "SaveArticle", err, slog.String("article_id", incoming.ID))
		return nil, err
	}
	return &saved, nil
}

// SaveArticles validates and upserts a batch in one transaction. Articles
// without an ID get a new ULID.
func (s *ArticleService) SaveArticles(ctx context.Context, as []article.Article) ([]article.Article, error) {
	s.logger.InfoContext(ctx, "saving articles", slog.Int("count", len(as)))

	batch := make([]article.Article, len(as))
	copy(batch, as)
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = s.newID()
		}
	}

	uc, err := build(s,
		usecase.Execute[[]article.Article]("save-articles", func(context.Context) ([]article.Article, error) {
			return batch, validateBatch(batch)
		}).Process(s.repo.SaveAll),
	)
	if err != nil {
		return nil, err
	}

	saved, err := run(ctx, s, uc)
	if err != nil {
		s.logError(ctx, "failed to save articles", "SaveArticles", err, slog.Int("count", len(as)))
		return nil, err
	}
	return saved, nil
}

// DeleteArticle removes one article, failing with domain.ErrNotFound when it
// does not exist.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting article", slog.String("article_id", id))

	uc, err := build(s,
		usecase.Execute[article.Article]("delete-article", func(ctx context.Context) (article.Article, error) {
			a, found, err := s.repo.GetFromMemory(ctx, id)
			if err != nil {
				return a, err
			}
			if !found {
				return a, fmt.Errorf("article %q: %w", id, domain.ErrNotFound)
			}
			return a, nil
		}).Persist(func(ctx context.Context, a article.Article) error {
			return s.repo.Delete(ctx, a.ID, a)
		}),
	)
	if err != nil {
		return err
	}

	if _, err := run(ctx, s, uc); err != nil {
		s.logError(ctx, "failed to delete article", "DeleteArticle", err, slog.String("article_id", id))
		return err
	}
	return nil
}

// DeleteArticles removes the given ids in one transaction. Unknown ids are
// ignored.
func (s *ArticleService) DeleteArticles(ctx context.Context, ids []string) error {
	s.logger.InfoContext(ctx, "deleting articles", slog.Int("count", len(ids)))

	uc, err := build(s,
		usecase.Execute[[]article.Article]("delete-articles", func(ctx context.Context) ([]article.Article, error) {
			return s.repo.GetAll(ctx, ids)
		}).Persist(s.repo.DeleteAll),
	)
	if err != nil {
		return err
	}

	if _, err := run(ctx, s, uc); err != nil {
		s.logError(ctx, "failed to delete articles", "DeleteArticles", err, slog.Int("count", len(ids)))
		return err
	}
	return nil
}

// StartSync schedules an import of the upstream feed and returns the task ID
// without waiting for it.
func (s *ArticleService) StartSync(ctx context.Context) (string, error) {
	if s.consumers.Load() == 0 {
		return "", fmt.Errorf("sync status consumer not started: %w", domain.ErrUnavailable)
	}

	uc, err := build(s,
		usecase.Execute[[]article.Article]("sync-feed", s.feed.Execute).
			Process(s.repo.SaveAll).
			OnError(s.composeSync),
	)
	if err != nil {
		return "", err
	}

	// The feed delegate yields articles; the sync outcome reports how many.
	counted := ports.DelegateFunc[int](func(ctx context.Context) (int, error) {
		saved, err := uc.Execute(ctx)
		return len(saved), err
	})

	task, err := interactor.New[int](counted, s.syncOutcomes, s.taskOptions("sync-feed")...)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.last.State == ports.SyncRunning {
		running := s.last.TaskID
		s.mu.Unlock()
		return "", fmt.Errorf("sync %s already running: %w", running, domain.ErrConflict)
	}
	previous := s.last
	s.last = ports.SyncStatus{TaskID: task.ID(), State: ports.SyncRunning}
	s.mu.Unlock()

	if err := s.exec.Submit(ctx, task); err != nil {
		s.mu.Lock()
		s.last = previous
		s.mu.Unlock()
		s.logError(ctx, "failed to schedule sync", "StartSync", err)
		return "", schedulingError("sync-feed", err)
	}

	s.logger.InfoContext(ctx, "sync scheduled", slog.String("task_id", task.ID()))
	return task.ID(), nil
}

// LastSync reports the most recent sync status.
func (s *ArticleService) LastSync(_ context.Context) ports.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *ArticleService) syncSucceeded(ctx context.Context, imported int) {
	s.mu.Lock()
	s.last.State = ports.SyncSucceeded
	s.last.Imported = imported
	s.last.Error = ""
	taskID := s.last.TaskID
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "sync finished",
		slog.String("task_id", taskID),
		slog.Int("imported", imported),
	)
}

func (s *ArticleService) syncFailed(ctx context.Context, err *domain.Error) {
	s.mu.Lock()
	s.last.State = ports.SyncFailed
	s.last.Imported = 0
	s.last.Error = err.Error()
	taskID := s.last.TaskID
	s.mu.Unlock()

	s.logger.ErrorContext(ctx, "sync failed",
		slog.String("operation", "Sync"),
		slog.String("task_id", taskID),
		slog.String("category", string(err.Category)),
		slog.Any("error", err),
	)
}

// build finishes a use case with the service's performance modules.
func build[R any](s *ArticleService, b *usecase.Builder[R]) (*usecase.UseCase[R], error) {
	return b.WithIntrospection(s.modules...).Build()
}

func (s *ArticleService) taskOptions(name string) []interactor.Option {
	return []interactor.Option{
		interactor.WithName(name),
		interactor.WithLogger(s.logger),
		interactor.WithMetrics(s.metrics),
		interactor.WithLoggable(s.loggable),
	}
}

func (s *ArticleService) logError(ctx context.Context, msg, op string, err error, attrs ...any) {
	attrs = append(attrs,
		slog.String("operation", op),
		slog.Any("error", err),
	)
	s.logger.ErrorContext(ctx, msg, attrs...)
}

// run submits uc as a task and waits for its outcome.
func run[R any](ctx context.Context, s *ArticleService, uc *usecase.UseCase[R]) (R, error) {
	var zero R

	future := notify.NewFuture[R]()
	task, err := interactor.New[R](uc, future, s.taskOptions(uc.Name())...)
	if err != nil {
		return zero, err
	}

	if err := s.exec.Submit(ctx, task); err != nil {
		return zero, schedulingError(uc.Name(), err)
	}

	outcome, err := future.Await(ctx)
	if err != nil {
		return zero, err
	}
	return outcome.Get()
}

func schedulingError(name string, err error) error {
	return fmt.Errorf("scheduling %s: %w", name, domain.NewError(domain.CategoryUnavailable, "", err))
}

// composeSyncError keeps repository failures as they are and treats anything
// unclassified as a network failure, since the feed is the only remote call.
func composeSyncError(err error) *domain.Error {
	derr := domain.AsError(err)
	if derr.Category == domain.CategoryUnknown {
		return domain.NewError(domain.CategoryNetwork, "", err)
	}
	return derr
}

func validateBatch(batch []article.Article) error {
	fields := make(map[string]string)
	for i := range batch {
		var verr *domain.ValidationError
		if errors.As(batch[i].Validate(), &verr) {
			for field, msg := range verr.Fields {
				fields[fmt.Sprintf("[%d].%s", i, field)] = msg
			}
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
