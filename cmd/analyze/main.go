package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"follow-analyzer/internal/adapters/exportfs"
	"follow-analyzer/internal/adapters/markup"
	"follow-analyzer/internal/domain"
	"follow-analyzer/internal/infra/cache"
	"follow-analyzer/internal/infra/config"
	applog "follow-analyzer/internal/infra/log"
	"follow-analyzer/internal/usecase/analysis"
	"follow-analyzer/internal/usecase/extract"
	"follow-analyzer/internal/usecase/report"
)

type options struct {
	dir       string
	followers string
	following string
	list      string
	search    string
	from      string
	to        string
	sort      string
	order     string
	export    string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.New(os.Stderr, cfg.AppEnv).With().Str("component", "analyze").Logger()

	var opts options
	flag.StringVar(&opts.dir, "dir", "", "каталог распакованной выгрузки")
	flag.StringVar(&opts.followers, "followers", "", "путь к followers_1.html")
	flag.StringVar(&opts.following, "following", "", "путь к following.html")
	flag.StringVar(&opts.list, "list", "", "список: followers, following, mutual, not_following_back, followers_not_following_back")
	flag.StringVar(&opts.search, "search", "", "подстрока имени пользователя")
	flag.StringVar(&opts.from, "from", "", "нижняя граница даты (2006-01-02)")
	flag.StringVar(&opts.to, "to", "", "верхняя граница даты (2006-01-02, включительно)")
	flag.StringVar(&opts.sort, "sort", "date", "поле сортировки: username или date")
	flag.StringVar(&opts.order, "order", "desc", "направление: asc или desc")
	flag.StringVar(&opts.export, "export", "", "каталог для JSON-выгрузки выбранного списка")
	flag.Parse()

	if err := run(context.Background(), cfg, opts, os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("analyze: ошибка")
	}
}

func run(ctx context.Context, cfg config.AppConfig, opts options, out io.Writer, logger zerolog.Logger) error {
	followersHTML, followingHTML, err := loadDocuments(opts)
	if err != nil {
		return err
	}

	clock := domain.SystemClock{}
	parser := markup.NewGoquery(cfg.Export.ContainerClass, cfg.Export.ProfileDomain)
	extractor := extract.NewService(parser, extract.NewDateParser(cfg.Location()), clock)
	reports := report.NewService(extractor, cache.NewMemory(1, time.Hour, clock), time.Hour, clock, logger)

	rep, err := reports.AnalyzeDocuments(ctx, followersHTML, followingHTML)
	if err != nil {
		return err
	}
	for _, w := range rep.Warnings {
		logger.Warn().Msg("analyze: " + w)
	}

	if opts.list == "" {
		if opts.search != "" {
			results, err := reports.Search(ctx, rep.ID, opts.search)
			if err != nil {
				return err
			}
			return printSearch(out, results)
		}
		return printStats(out, analysis.DetailedStats(rep.Analysis), analysis.Summarize(rep.Analysis))
	}

	q, err := buildQuery(opts)
	if err != nil {
		return err
	}
	if opts.export != "" {
		exp, err := reports.Export(ctx, rep.ID, q, clock.Now())
		if err != nil {
			return err
		}
		path := filepath.Join(opts.export, exp.Filename)
		if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
			return fmt.Errorf("запись выгрузки: %w", err)
		}
		logger.Info().Str("path", path).Msg("analyze: выгрузка сохранена")
		return nil
	}
	records, err := reports.Query(ctx, rep.ID, q)
	if err != nil {
		return err
	}
	return printRecords(out, records)
}

func loadDocuments(opts options) (string, string, error) {
	if opts.dir != "" {
		docs, err := exportfs.Load(opts.dir)
		if err != nil {
			return "", "", err
		}
		return docs.Followers, docs.Following, nil
	}
	if opts.followers == "" || opts.following == "" {
		return "", "", fmt.Errorf("укажите -dir или оба флага -followers и -following")
	}
	followers, err := exportfs.ReadFile(opts.followers)
	if err != nil {
		return "", "", err
	}
	following, err := exportfs.ReadFile(opts.following)
	if err != nil {
		return "", "", err
	}
	return followers, following, nil
}

func buildQuery(opts options) (domain.Query, error) {
	list, err := domain.ParseListType(opts.list)
	if err != nil {
		return domain.Query{}, fmt.Errorf("-list %q: %w", opts.list, err)
	}
	key, err := domain.ParseSortKey(opts.sort, domain.SortByDate)
	if err != nil {
		return domain.Query{}, fmt.Errorf("-sort %q: %w", opts.sort, err)
	}
	order, err := domain.ParseSortOrder(opts.order, domain.OrderDesc)
	if err != nil {
		return domain.Query{}, fmt.Errorf("-order %q: %w", opts.order, err)
	}
	criteria := domain.Criteria{Search: opts.search}
	if opts.from != "" {
		if criteria.From, err = time.Parse(time.DateOnly, opts.from); err != nil {
			return domain.Query{}, fmt.Errorf("-from %q: %w", opts.from, err)
		}
	}
	if opts.to != "" {
		to, err := time.Parse(time.DateOnly, opts.to)
		if err != nil {
			return domain.Query{}, fmt.Errorf("-to %q: %w", opts.to, err)
		}
		criteria.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if !criteria.From.IsZero() && !criteria.To.IsZero() && criteria.To.Before(criteria.From) {
		return domain.Query{}, fmt.Errorf("-to %q раньше -from %q", opts.to, opts.from)
	}
	return domain.Query{List: list, Criteria: criteria, SortKey: key, Order: order}, nil
}

func printStats(out io.Writer, stats domain.DetailedStats, summary domain.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Подписчики\t%d\n", stats.TotalFollowers)
	fmt.Fprintf(tw, "Подписки\t%d\n", stats.TotalFollowing)
	fmt.Fprintf(tw, "Взаимные\t%d\n", stats.MutualCount)
	fmt.Fprintf(tw, "Не подписаны в ответ\t%d\n", summary.NotFollowingBack)
	fmt.Fprintf(tw, "Без ответной подписки\t%d\n", summary.NotFollowedBy)
	fmt.Fprintf(tw, "Взаимность подписчиков\t%.2f%%\n", stats.FollowBackRate)
	fmt.Fprintf(tw, "Взаимность подписок\t%.2f%%\n", stats.FollowingRate)
	fmt.Fprintf(tw, "Соотношение\t%s\n", stats.Ratio)
	return tw.Flush()
}

func printRecords(out io.Writer, records []domain.UserRecord) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range records {
		date := r.Date.Format(time.DateTime)
		if r.DateEstimated {
			date += " (оценка)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Username, date, r.URL)
	}
	fmt.Fprintf(tw, "Всего\t%d\t\n", len(records))
	return tw.Flush()
}

func printSearch(out io.Writer, results []domain.SearchResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Username, r.Status, r.Source)
	}
	fmt.Fprintf(tw, "Найдено\t%d\t\n", len(results))
	return tw.Flush()
}
