package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/config"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/database"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/gamification"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// Job planifié de reconstruction des classements. Lancé sans intervalle il
// fait une passe unique puis sort, ce qui convient à un cron externe.
// Les remises à zéro des compteurs de période sont à déclencher aux
// frontières de période (-reset-weekly le lundi, -reset-monthly le 1er).
func main() {
	interval := flag.Duration("interval", 0, "relancer la reconstruction à cet intervalle (0 = une seule passe)")
	resetWeekly := flag.Bool("reset-weekly", false, "remettre à zéro les compteurs hebdomadaires avant la passe")
	resetMonthly := flag.Bool("reset-monthly", false, "remettre à zéro les compteurs mensuels avant la passe")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Could not load config: %v", err)
		os.Exit(1)
	}

	pool, err := database.ConnectPostgres(cfg)
	if err != nil {
		utils.LogError("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.NewPostgres(pool)
	rewards := gamification.NewRewardService(st)
	leaderboards := gamification.NewLeaderboardService(st)

	runOnce := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if *resetWeekly || *resetMonthly {
			if err := rewards.ResetPeriodCounters(ctx, *resetWeekly, *resetMonthly); err != nil {
				utils.LogError("Period counter reset failed: %v", err)
				return
			}
			utils.LogInfo("[COMPUTE] period counters reset (weekly=%v, monthly=%v)", *resetWeekly, *resetMonthly)
		}

		start := time.Now()
		rows, err := leaderboards.RebuildAll(ctx)
		if err != nil {
			utils.LogError("Leaderboard rebuild failed: %v", err)
			return
		}
		utils.LogSuccess("[COMPUTE] leaderboards rebuilt: %d rows in %v", rows, time.Since(start))
	}

	runOnce()
	if *interval <= 0 {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		runOnce()
	}
}
