package cutoffx

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/cache"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"golang.org/x/sync/errgroup"
)

// Service answers cutoff queries straight from the workbooks under a data
// root, caching parsed records per (category, year, round).
type Service struct {
	root  string
	opts  Options
	cache *cache.Cache[[]models.CutoffRecord]
}

// NewService creates a query service over root. A nil cache gets a
// default one.
func NewService(root string, opts Options, c *cache.Cache[[]models.CutoffRecord]) *Service {
	if c == nil {
		c = cache.New[[]models.CutoffRecord](cache.DefaultTTL, 0)
	}
	return &Service{root: root, opts: opts, cache: c}
}

type sourceFile struct {
	path string
	src  models.SourceInfo
}

// Query returns the records matching f. Failures are reported in the
// result, never as a Go error.
func (s *Service) Query(ctx context.Context, f models.Filter) models.QueryResult {
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		return failed(fmt.Errorf("%w: %s", ErrDataRootMissing, s.root))
	}

	groups, keys, err := s.scan(f)
	if err != nil {
		return failed(err)
	}

	var all []models.CutoffRecord
	for _, k := range keys {
		recs, err := s.load(ctx, k, groups[k])
		if err != nil {
			return failed(err)
		}
		all = append(all, recs...)
	}

	matched := make([]models.CutoffRecord, 0, len(all))
	for _, r := range all {
		if matches(r, f) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CutoffRank < matched[j].CutoffRank
	})

	total := len(matched)
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return models.QueryResult{Success: true, Data: matched, Total: total}
}

func failed(err error) models.QueryResult {
	return models.QueryResult{Success: false, Data: []models.CutoffRecord{}, Error: err.Error()}
}

// scan finds the workbooks selected by the category, year and round of f,
// grouped by cache key.
func (s *Service) scan(f models.Filter) (map[cache.Key][]sourceFile, []cache.Key, error) {
	groups := make(map[cache.Key][]sourceFile)
	var keys []cache.Key

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
		default:
			return nil
		}

		src, err := ResolveSource(path)
		if err != nil {
			s.opts.logger().Debug().Err(err).Msg("file ignored")
			return nil
		}
		if f.Category != "" && !strings.EqualFold(f.Category, src.Category) && !strings.EqualFold(f.Category, src.CounsellingType) {
			return nil
		}
		if (f.Year > 0 && f.Year != src.Year) || (f.Round > 0 && f.Round != src.Round) {
			return nil
		}

		k := cache.NewKey(src.Category, src.Year, src.Round)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], sourceFile{path: path, src: src})
		return nil
	})
	return groups, keys, err
}

// load returns the records of one key, parsing its files on a cache miss.
func (s *Service) load(ctx context.Context, k cache.Key, files []sourceFile) ([]models.CutoffRecord, error) {
	log := s.opts.logger()
	if recs, ok := s.cache.Get(k); ok {
		log.Debug().Str("category", k.Category).Int("year", k.Year).Int("round", k.Round).Msg("cache hit")
		return recs, nil
	}

	results := make([][]models.CutoffRecord, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.workers())
	for i, sf := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			wb, err := ExtractWithSource(sf.path, sf.src, s.opts)
			if err != nil {
				log.Warn().Err(err).Str("file", sf.path).Msg("workbook skipped")
				return nil
			}
			results[i] = wb.Records()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var recs []models.CutoffRecord
	for _, r := range results {
		recs = append(recs, r...)
	}
	s.cache.Put(k, recs)
	return recs, nil
}

func matches(r models.CutoffRecord, f models.Filter) bool {
	if f.College != "" && !containsFold(r.CollegeName, f.College) {
		return false
	}
	if f.Course != "" && !containsFold(r.CourseName, f.Course) {
		return false
	}
	if f.Quota != "" && !strings.EqualFold(r.Quota, f.Quota) && !strings.EqualFold(r.Normalized.Quota, f.Quota) {
		return false
	}
	if f.MinRank > 0 && r.CutoffRank < f.MinRank {
		return false
	}
	if f.MaxRank > 0 && r.CutoffRank > f.MaxRank {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
