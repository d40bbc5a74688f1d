// Command mojom-check parses a tree of Mojom IDL files with the same
// grammar the language server uses and reports syntax errors, without
// starting any LSP session. It exists to exercise and benchmark the
// parser directly, and optionally to watch a tree for edits.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/logging"
	"github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"
)

var watch bool

var rootCmd = &cobra.Command{
	Use:   "mojom-check [path...]",
	Short: "Parse .mojom files and report syntax errors",
	Long: `mojom-check walks each given path (a file or a directory tree) and
parses every .mojom file it finds with the language server's grammar,
printing OK or a located error for each. It exits non-zero if any file
failed to parse.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check on file changes instead of exiting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	if !watch {
		ok := checkAll(args)
		if !ok {
			os.Exit(1)
		}
		return nil
	}

	return watchAndCheck(args)
}

// checkAll walks every argument and parses the .mojom files it finds,
// returning false if any file failed to parse.
func checkAll(roots []string) bool {
	ok := true
	for _, root := range roots {
		files, err := mojomFilesUnder(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "walking %s: %v\n", root, err)
			ok = false
			continue
		}
		for _, path := range files {
			if !checkFile(path) {
				ok = false
			}
		}
	}
	return ok
}

func mojomFilesUnder(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".mojom") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func checkFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("ERROR %s: %v\n", path, err)
		return false
	}

	text := string(data)
	_, err = syntax.Parse(text)
	if err == nil {
		fmt.Printf("OK %s\n", path)
		return true
	}

	if pe, ok := err.(*syntax.ParseError); ok {
		start, _ := pe.Range(text)
		fmt.Printf("ERROR %s:%d:%d: %v\n", path, start.Line, start.Col, pe.Error())
	} else {
		fmt.Printf("ERROR %s: %v\n", path, err)
	}
	return false
}

// watchAndCheck runs an initial check, then rechecks the affected file
// whenever fsnotify reports a write or create under any of the
// given roots. It never exits on its own.
func watchAndCheck(roots []string) error {
	logger := logging.Get(logging.CategorySyntax)

	checkAll(roots)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addWatchRecursive(watcher, root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	debounce := map[string]time.Time{}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".mojom") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if last, seen := debounce[event.Name]; seen && time.Since(last) < 100*time.Millisecond {
				continue
			}
			debounce[event.Name] = time.Now()
			checkFile(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
