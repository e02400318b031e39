package main

import (
	"fmt"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/cache"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/output"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
	"github.com/spf13/cobra"
)

var (
	queryFilter models.Filter
	queryFromDB bool
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query cutoff ranks and print {success, data, total, error} JSON",
		Args:  cobra.NoArgs,
		RunE:  runQuery,
	}
	f := cmd.Flags()
	f.IntVar(&queryFilter.Year, "year", 0, "Counselling year")
	f.StringVar(&queryFilter.Category, "category", "", "Counselling category (e.g. AIQ_PG) or type (AIQ, KEA)")
	f.IntVar(&queryFilter.Round, "round", 0, "Counselling round")
	f.StringVar(&queryFilter.College, "college", "", "College name substring")
	f.StringVar(&queryFilter.Course, "course", "", "Course name substring")
	f.StringVar(&queryFilter.Quota, "quota", "", "Quota, raw text or canonical code")
	f.IntVar(&queryFilter.MinRank, "min-rank", 0, "Lowest rank to include")
	f.IntVar(&queryFilter.MaxRank, "max-rank", 0, "Highest rank to include")
	f.IntVar(&queryFilter.Limit, "limit", 0, "Maximum number of records")
	f.BoolVar(&queryFromDB, "from-db", false, "Query the cutoff database instead of parsing workbooks")
	return cmd
}

func runQuery(cmd *cobra.Command, _ []string) error {
	var res models.QueryResult
	if queryFromDB {
		res = queryDB(cmd)
	} else {
		c := cache.New[[]models.CutoffRecord](cfg.CacheTTL(), cfg.Cache.MaxEntries)
		res = cutoffx.NewService(cfg.DataRoot, baseOptions(), c).Query(cmd.Context(), queryFilter)
	}

	jsonData, err := output.ResultToJSON(res, pretty)
	if err != nil {
		return err
	}
	if err := writeOutput("", jsonData); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("query failed: %s", res.Error)
	}
	return nil
}

func queryDB(cmd *cobra.Command) models.QueryResult {
	ctx := cmd.Context()
	cutoffs, err := store.OpenCutoffs(ctx, cfg.CutoffDB, cfg.Conflict())
	if err != nil {
		return models.QueryResult{Error: err.Error()}
	}
	defer cutoffs.Close()

	data, total, err := cutoffs.Query(ctx, queryFilter)
	if err != nil {
		return models.QueryResult{Error: err.Error()}
	}
	return models.QueryResult{Success: true, Data: data, Total: total}
}
