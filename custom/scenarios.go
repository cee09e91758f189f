package custom

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"coilgen.GO/cmd"
	"coilgen.GO/config"
	"coilgen.GO/core/registry"
	"coilgen.GO/cron"
	material "coilgen.GO/service/material"
)

func init() {
	cmd.Register(&cobra.Command{
		Use:   "materials:scenarios",
		Short: "List the scenario catalog groups and their sizes",
		Run: func(c *cobra.Command, args []string) {
			g := material.NewGenerator()
			total := 0
			for _, grp := range g.Catalog().Groups() {
				n := len(grp.Build(g))
				total += n
				fmt.Fprintf(c.OutOrStdout(), "%-20s %5d\n", grp.Name, n)
			}
			fmt.Fprintf(c.OutOrStdout(), "%-20s %5d\n", "total", total)
		},
	})

	cron.Register("coverageaudit", "@every 1h", CoverageAudit)
}

// CoverageAudit logs a warning when the most recent corpus is missing steel
// grades or leaked random rows outside their type ranges.
func CoverageAudit(args ...string) {
	log := config.NewLogger().With("job", "coverageaudit")
	defer log.Sync()

	s, ok := lastSummary()
	if !ok {
		log.Info("no corpus summary available")
		return
	}
	if !s.AllGradesCovered {
		log.Warn("steel grades missing from corpus", "missing", s.MissingGrades)
	}
	if n := s.FillLeakage(); n > 0 {
		log.Warn("random rows outside type range", "count", n)
	}
	log.Info("coverage audit done", "total", s.Total)
}

func lastSummary() (*material.Summary, bool) {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyLastSummary); ok {
		if s, ok := v.(*material.Summary); ok && s != nil {
			return s, true
		}
	}
	rdb := config.RedisClient
	if rdb == nil {
		rdb = config.InitRedis()
	}
	if rdb == nil {
		return nil, false
	}
	raw, err := rdb.Get(config.RedisCtx(), registry.KeyLastSummary).Bytes()
	if err != nil {
		return nil, false
	}
	var s material.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}
