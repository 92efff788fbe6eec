package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/scopa/internal/config"
)

var deinitForce bool

var deinitCmd = &cobra.Command{
	Use:   "deinit",
	Short: "Remove scopa from the current directory",
	Long:  "Removes the .scopa/ folder including its config and logs. This action cannot be undone.",
	RunE:  runDeinit,
}

func init() {
	deinitCmd.Flags().BoolVarP(&deinitForce, "force", "f", false, "Skip confirmation prompt")
}

func runDeinit(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(config.DirName)
	if os.IsNotExist(err) {
		return fmt.Errorf("scopa is not initialized in this directory")
	}
	if err != nil {
		return fmt.Errorf("failed to check %s directory: %w", config.DirName, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", config.DirName)
	}

	fileCount, totalSize, err := calculateDirStats(config.DirName)
	if err != nil {
		return fmt.Errorf("failed to analyze %s/: %w", config.DirName, err)
	}

	if !deinitForce {
		fmt.Printf("This will delete %s/ (%d files, %s). Continue? [y/N] ",
			config.DirName, fileCount, formatSize(totalSize))

		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.RemoveAll(config.DirName); err != nil {
		return fmt.Errorf("failed to remove %s/: %w", config.DirName, err)
	}

	fmt.Println("Scopa has been removed from this directory.")
	return nil
}

func calculateDirStats(dir string) (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
