package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jjshanks/pin-actions/internal/actions"
	"github.com/jjshanks/pin-actions/internal/config"
	"github.com/jjshanks/pin-actions/internal/log"
	"github.com/jjshanks/pin-actions/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dryRunFlag     bool
	clearCacheFlag bool
	upgradeFlag    bool
	verboseFlag    int
	configFlag     string
)

func init() {
	registerRunFlags(rootCmd.Flags())
}

// registerRunFlags binds the run flags to the given flag set.
func registerRunFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&dryRunFlag, "dry-run", false,
		"List the files that would be processed without modifying them")
	flags.BoolVar(&clearCacheFlag, "clear-cache", false,
		"Delete the resolution cache before running")
	flags.BoolVar(&upgradeFlag, "upgrade", false,
		"Upgrade references to the latest release within the same major version")
	flags.CountVarP(&verboseFlag, "verbose", "v",
		"Increase log verbosity (repeat for more detail)")
	flags.StringVar(&configFlag, "config", "",
		"Path to the configuration file")
}

func runRoot(_ *cobra.Command, args []string) error {
	log.Setup(verboseFlag)

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	cachePath := cfg.GetCachePath()
	if cachePath == "" {
		cachePath = actions.DefaultCachePath()
	}
	cache := actions.NewFileCache(cachePath, cfg.GetCacheTTL())
	if clearCacheFlag {
		cache.Clear()
	} else {
		cache.Load()
	}

	client, err := actions.NewClient(context.Background(), cfg.GetBaseURL(), os.Getenv(cfg.GetTokenEnv()))
	if err != nil {
		return err
	}
	rewriter := workflow.NewRewriter(actions.NewTagResolver(client, cache), upgradeFlag)

	files, err := workflow.FindWorkflowFiles(args[0], cfg.GetExcludePatterns())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("no workflow files found", "dir", args[0])
		return nil
	}
	slog.Info("found workflow files", "count", len(files))
	slog.Debug("run options", "upgrade", upgradeFlag, "dry_run", dryRunFlag)

	changed := 0
	for _, file := range files {
		if dryRunFlag {
			slog.Info("would process (dry run)", "file", file)
			continue
		}
		ok, err := rewriter.ProcessFile(file)
		if err != nil {
			slog.Error("skipping workflow file", "file", file, "error", err)
			continue
		}
		if ok {
			changed++
		}
	}

	cache.Save()
	fmt.Printf("%d file(s) changed.\n", changed)
	return nil
}
