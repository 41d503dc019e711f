package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"follow-analyzer/internal/domain"
	"follow-analyzer/internal/infra/metrics"
	"follow-analyzer/internal/usecase/analysis"
	"follow-analyzer/internal/usecase/extract"
)

// ErrAnalysisNotFound возвращается, если сессия анализа не найдена или истекла.
var ErrAnalysisNotFound = errors.New("анализ не найден или истёк")

const (
	warnNoFollowers = "в выгрузке подписчиков не найдено ни одной записи"
	warnNoFollowing = "в выгрузке подписок не найдено ни одной записи"
)

// Extractor извлекает записи вместе со счётчиками разбора.
type Extractor interface {
	ExtractWithStats(markup string) ([]domain.UserRecord, extract.Stats)
}

// Service строит отчёты по паре выгрузок и хранит их в кэше сессий.
type Service struct {
	extractor Extractor
	cache     domain.Cache
	ttl       time.Duration
	clock     domain.Clock
	log       zerolog.Logger
}

var _ domain.ReportService = (*Service)(nil)

// NewService создаёт сервис отчётов.
func NewService(extractor Extractor, cache domain.Cache, ttl time.Duration, clock domain.Clock, logger zerolog.Logger) *Service {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{extractor: extractor, cache: cache, ttl: ttl, clock: clock, log: logger}
}

// AnalyzeDocuments извлекает оба списка параллельно, строит анализ и сохраняет сессию.
func (s *Service) AnalyzeDocuments(ctx context.Context, followersHTML, followingHTML string) (domain.Report, error) {
	start := time.Now()
	metrics.IncAnalysisRequests()

	var (
		followers, following           []domain.UserRecord
		followersStats, followingStats extract.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		followers, followersStats = s.extractor.ExtractWithStats(followersHTML)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		following, followingStats = s.extractor.ExtractWithStats(followingHTML)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Report{}, fmt.Errorf("извлечение списков: %w", err)
	}
	observeExtraction(domain.ListFollowers, followersStats)
	observeExtraction(domain.ListFollowing, followingStats)

	rep := domain.Report{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UTC(),
		Followers: followers,
		Following: following,
		Analysis:  analysis.Analyze(followers, following),
	}
	if len(followers) == 0 {
		rep.Warnings = append(rep.Warnings, warnNoFollowers)
	}
	if len(following) == 0 {
		rep.Warnings = append(rep.Warnings, warnNoFollowing)
	}

	if err := s.save(ctx, rep); err != nil {
		return domain.Report{}, err
	}
	metrics.ObserveAnalysis(start)

	s.log.Info().
		Str("analysis_id", rep.ID).
		Int("followers", rep.Analysis.TotalFollowers).
		Int("following", rep.Analysis.TotalFollowing).
		Int("mutual", rep.Analysis.MutualCount).
		Int("skipped", followersStats.Skipped+followingStats.Skipped).
		Int("dates_estimated", followersStats.DateEstimated+followingStats.DateEstimated).
		Msg("report: analysis built")
	return rep, nil
}

// Report возвращает сохранённый отчёт.
func (s *Service) Report(ctx context.Context, id string) (domain.Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Report{}, ErrAnalysisNotFound
	}
	data, err := s.cache.Get(ctx, id)
	metrics.ObserveCache("get", err)
	if errors.Is(err, domain.ErrCacheMiss) {
		return domain.Report{}, ErrAnalysisNotFound
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("чтение сессии: %w", err)
	}
	var rep domain.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return domain.Report{}, fmt.Errorf("декодирование сессии: %w", err)
	}
	return rep, nil
}

// Query отдаёт выбранный список после фильтрации и сортировки.
// Без явной сортировки записи упорядочены по дате, новые первыми.
func (s *Service) Query(ctx context.Context, id string, q domain.Query) ([]domain.UserRecord, error) {
	rep, err := s.Report(ctx, id)
	if err != nil {
		return nil, err
	}
	return query(rep, q)
}

// Search ищет пользователя в обоих списках отчёта.
func (s *Service) Search(ctx context.Context, id, term string) ([]domain.SearchResult, error) {
	rep, err := s.Report(ctx, id)
	if err != nil {
		return nil, err
	}
	return analysis.SearchUsers(rep.Followers, rep.Following, term), nil
}

// Export сериализует выборку в JSON-файл для скачивания.
func (s *Service) Export(ctx context.Context, id string, q domain.Query, now time.Time) (domain.Export, error) {
	list, err := domain.ParseListType(string(q.List))
	if err != nil {
		return domain.Export{}, err
	}
	q.List = list
	records, err := s.Query(ctx, id, q)
	if err != nil {
		return domain.Export{}, err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domain.Export{}, fmt.Errorf("сериализация выгрузки: %w", err)
	}
	return domain.Export{Filename: ExportFilename(list, now), Data: data}, nil
}

// ExportFilename строит имя файла выгрузки по списку и дате.
func ExportFilename(list domain.ListType, now time.Time) string {
	return fmt.Sprintf("instagram_%s_%s.json", list, now.UTC().Format("2006-01-02"))
}

func query(rep domain.Report, q domain.Query) ([]domain.UserRecord, error) {
	list, err := domain.ParseListType(string(q.List))
	if err != nil {
		return nil, err
	}
	key := q.SortKey
	if key == "" {
		key = domain.SortByDate
	}
	order := q.Order
	if order == "" {
		order = domain.OrderDesc
	}
	filtered := analysis.Filter(rep.List(list), q.Criteria)
	return analysis.Sort(filtered, key, order), nil
}

func (s *Service) save(ctx context.Context, rep domain.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("сериализация сессии: %w", err)
	}
	err = s.cache.Set(ctx, rep.ID, data, s.ttl)
	metrics.ObserveCache("set", err)
	if err != nil {
		return fmt.Errorf("сохранение сессии: %w", err)
	}
	return nil
}

func observeExtraction(list domain.ListType, st extract.Stats) {
	metrics.ObserveExtraction(string(list), st.Extracted, st.Skipped, st.DateEstimated)
}
