package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/memdb"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/sqlite"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/sqlite/sqlitetest"
	"github.com/jsamuelsen11/go-interactor/internal/app/executor"
	"github.com/jsamuelsen11/go-interactor/internal/app/repository"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
	"github.com/jsamuelsen11/go-interactor/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	svc  *ArticleService
	repo *repository.Repository[string, article.Article]
	feed *mocks.MockDelegate[[]article.Article]
}

func newFixture(t *testing.T, opts ...ServiceOption) *fixture {
	t.Helper()

	primary := sqlite.NewStore(sqlitetest.OpenDB(t))
	fast, err := memdb.New("fast")
	require.NoError(t, err)

	repo, err := repository.New[string, article.Article](
		article.Kind, primary, article.Adapter{Now: func() time.Time { return fixedNow }},
		repository.WithFastTier(fast),
	)
	require.NoError(t, err)

	pool := executor.New(executor.Config{Workers: 2, QueueSize: 16}, discardLogger(), nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = pool.Shutdown(ctx)
	})

	feed := mocks.NewMockDelegate[[]article.Article](t)

	seq := 0
	opts = append([]ServiceOption{WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("gen-%d", seq)
	})}, opts...)

	svc, err := NewArticleService(repo, feed, pool, discardLogger(), opts...)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc.Start(ctx)

	return &fixture{svc: svc, repo: repo, feed: feed}
}

func newMemRepo(t *testing.T) *repository.Repository[string, article.Article] {
	t.Helper()
	store, err := memdb.New("primary")
	require.NoError(t, err)
	repo, err := repository.New[string, article.Article](article.Kind, store, article.Adapter{})
	require.NoError(t, err)
	return repo
}

func TestNewArticleService_NilLogger(t *testing.T) {
	t.Parallel()

	svc, err := NewArticleService(newMemRepo(t), mocks.NewMockDelegate[[]article.Article](t), mocks.NewMockExecutor(t), nil)
	require.NoError(t, err)
	if svc.logger == nil {
		t.Fatal("NewArticleService(nil logger) should create a no-op logger, got nil")
	}
	if got := svc.LastSync(context.Background()).State; got != ports.SyncIdle {
		t.Errorf("LastSync().State = %q, want %q", got, ports.SyncIdle)
	}
}

func TestNewArticleService_RejectsMissingCollaborators(t *testing.T) {
	t.Parallel()

	repo := newMemRepo(t)
	feed := mocks.NewMockDelegate[[]article.Article](t)
	exec := mocks.NewMockExecutor(t)

	tests := []struct {
		name string
		repo ArticleRepository
		feed ports.Delegate[[]article.Article]
		exec ports.Executor
		want error
	}{
		{name: "repository", feed: feed, exec: exec, want: ErrNilRepository},
		{name: "feed", repo: repo, exec: exec, want: ErrNilFeed},
		{name: "executor", repo: repo, feed: feed, want: ErrNilExecutor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewArticleService(tt.repo, tt.feed, tt.exec, nil)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, svc)
		})
	}
}

func TestSaveArticle_AssignsIDAndMerges(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.svc.SaveArticle(ctx, &article.Article{Title: "Hello", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", saved.ID)
	assert.Equal(t, 1, saved.Revision)
	assert.Equal(t, fixedNow, saved.CreatedAt)

	again, err := f.svc.SaveArticle(ctx, &article.Article{ID: "gen-1", Title: "Hello", Body: "body", Tags: []string{"db"}})
	require.NoError(t, err)
	assert.Equal(t, 2, again.Revision)
	assert.Equal(t, "body", again.Body)
	assert.Equal(t, []string{"go", "db"}, again.Tags)

	all, err := f.svc.ListArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveArticle_ValidationError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.SaveArticle(context.Background(), &article.Article{ID: "a1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CategoryValidation, derr.Category)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")

	_, err = f.svc.SaveArticle(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSaveArticles_IsAtomic(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveArticles(ctx, []article.Article{
		{ID: "a1", Title: "ok"},
		{ID: "a2"},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "[1].title")

	all, err := f.svc.ListArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	saved, err := f.svc.SaveArticles(ctx, []article.Article{{ID: "a1", Title: "one"}, {Title: "two"}})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "gen-1", saved[1].ID)
}

func TestGetArticle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveArticle(ctx, &article.Article{ID: "a1", Title: "one"})
	require.NoError(t, err)

	got, err := f.svc.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)

	_, err = f.svc.GetArticle(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetArticles_SkipsUnknownIDs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveArticles(ctx, []article.Article{{ID: "a1", Title: "one"}, {ID: "a2", Title: "two"}})
	require.NoError(t, err)

	got, err := f.svc.GetArticles(ctx, []string{"a2", "nope"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)
}

func TestDeleteArticle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveArticle(ctx, &article.Article{ID: "a1", Title: "one"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteArticle(ctx, "a1"))
	assert.ErrorIs(t, f.svc.DeleteArticle(ctx, "a1"), domain.ErrNotFound)

	ok, err := f.repo.Contains(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteArticles_IgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveArticles(ctx, []article.Article{
		{ID: "a1", Title: "one"}, {ID: "a2", Title: "two"}, {ID: "a3", Title: "three"},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteArticles(ctx, []string{"a1", "a3", "zzz"}))

	all, err := f.svc.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a2", all[0].ID)
}

func TestStartSync_Succeeds(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.feed.EXPECT().Execute(mock.Anything).Return([]article.Article{
		{ID: "f1", Title: "from feed"},
		{ID: "f2", Title: "also from feed"},
	}, nil).Once()

	taskID, err := f.svc.StartSync(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, taskID)

	require.Eventually(t, func() bool {
		return f.svc.LastSync(ctx).State == ports.SyncSucceeded
	}, 5*time.Second, 10*time.Millisecond)

	status := f.svc.LastSync(ctx)
	assert.Equal(t, taskID, status.TaskID)
	assert.Equal(t, 2, status.Imported)
	assert.Empty(t, status.Error)

	got, err := f.svc.GetArticle(ctx, "f2")
	require.NoError(t, err)
	assert.Equal(t, "also from feed", got.Title)
}

func TestStartSync_FailureIsComposed(t *testing.T) {
	t.Parallel()

	composed := 0
	f := newFixture(t, WithSyncErrorComposer(func(err error) *domain.Error {
		composed++
		return domain.NewError(domain.CategoryUnavailable, "feed down", err)
	}))
	ctx := context.Background()

	f.feed.EXPECT().Execute(mock.Anything).Return(nil, errors.New("dial tcp: refused")).Once()

	_, err := f.svc.StartSync(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.svc.LastSync(ctx).State == ports.SyncFailed
	}, 5*time.Second, 10*time.Millisecond)

	status := f.svc.LastSync(ctx)
	assert.Contains(t, status.Error, "feed down")
	assert.Equal(t, 1, composed)
}

func TestStartSync_DefaultComposerTreatsUnknownAsNetwork(t *testing.T) {
	t.Parallel()

	derr := composeSyncError(errors.New("boom"))
	assert.Equal(t, domain.CategoryNetwork, derr.Category)

	derr = composeSyncError(fmt.Errorf("save: %w", domain.ErrPersistence))
	assert.Equal(t, domain.CategoryPersistence, derr.Category)
}

func TestStartSync_RejectsConcurrentSync(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	release := make(chan struct{})
	f.feed.EXPECT().Execute(mock.Anything).RunAndReturn(func(context.Context) ([]article.Article, error) {
		<-release
		return nil, nil
	}).Once()

	_, err := f.svc.StartSync(ctx)
	require.NoError(t, err)

	_, err = f.svc.StartSync(ctx)
	assert.ErrorIs(t, err, domain.ErrConflict)

	close(release)
	require.Eventually(t, func() bool {
		return f.svc.LastSync(ctx).State == ports.SyncSucceeded
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStartSync_SchedulingFailureRestoresStatus(t *testing.T) {
	t.Parallel()

	exec := mocks.NewMockExecutor(t)
	exec.EXPECT().Submit(mock.Anything, mock.Anything).Return(executor.ErrQueueFull).Once()

	svc, err := NewArticleService(newMemRepo(t), mocks.NewMockDelegate[[]article.Article](t), exec, discardLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc.Start(ctx)

	_, err = svc.StartSync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, executor.ErrQueueFull)

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CategoryUnavailable, derr.Category)
	assert.Equal(t, ports.SyncIdle, svc.LastSync(context.Background()).State)
}

func TestStartSync_RefusedWithoutStatusConsumer(t *testing.T) {
	t.Parallel()

	svc, err := NewArticleService(newMemRepo(t), mocks.NewMockDelegate[[]article.Article](t),
		mocks.NewMockExecutor(t), discardLogger())
	require.NoError(t, err)

	_, err = svc.StartSync(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, ports.SyncIdle, svc.LastSync(context.Background()).State)
}

func TestStartSync_DroppedOutcomeReleasesRunningState(t *testing.T) {
	t.Parallel()

	feed := mocks.NewMockDelegate[[]article.Article](t)
	feed.EXPECT().Execute(mock.Anything).Return(nil, nil)

	var captured []ports.Runnable
	exec := mocks.NewMockExecutor(t)
	exec.EXPECT().Submit(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, r ports.Runnable) error {
		captured = append(captured, r)
		return nil
	})

	svc, err := NewArticleService(newMemRepo(t), feed, exec, discardLogger(),
		WithSyncBuffer(0), WithSyncNotifyTimeout(time.Millisecond))
	require.NoError(t, err)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	svc.Start(consumerCtx)

	ctx := context.Background()
	first, err := svc.StartSync(ctx)
	require.NoError(t, err)
	require.Equal(t, ports.SyncRunning, svc.LastSync(ctx).State)

	// The consumer goes away before the sync finishes, so its outcome has
	// nowhere to go.
	stopConsumer()
	require.Eventually(t, func() bool { return svc.consumers.Load() == 0 }, 5*time.Second, time.Millisecond)
	require.Len(t, captured, 1)
	captured[0].Run(ctx)
	assert.Equal(t, int64(1), svc.syncOutcomes.Dropped())

	status := svc.LastSync(ctx)
	assert.Equal(t, first, status.TaskID)
	assert.Equal(t, ports.SyncFailed, status.State)
	assert.Contains(t, status.Error, "dropped")

	restarted, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc.Start(restarted)

	second, err := svc.StartSync(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRun_IntrospectionSeesEveryUseCase(t *testing.T) {
	t.Parallel()

	introspector := telemetry.NewIntrospector("test", nil)
	f := newFixture(t, WithIntrospection(introspector))

	_, err := f.svc.ListArticles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, introspector.Inflight())
}
