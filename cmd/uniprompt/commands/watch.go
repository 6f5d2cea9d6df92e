package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate editor files whenever the configuration changes",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	regenerate := func() {
		if err := runGenerate(cmd, nil); err != nil {
			log.Error().Err(err).Msg("regeneration failed")
		}
	}

	// Initial generation so the watcher starts from a consistent state.
	if err := runGenerate(cmd, nil); err != nil {
		return err
	}

	inputs := map[string]bool{
		"uniprompt.yaml":       true,
		"uniprompt.yml":        true,
		"variables.local.yaml": true,
		".env":                 true,
	}
	matches := func(path string) bool {
		return inputs[filepath.Base(path)]
	}

	w, err := watch.New([]string{dir, filepath.Join(dir, ".uniprompt")}, matches, regenerate)
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	fmt.Println("Watching for configuration changes. Press Ctrl-C to stop.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
