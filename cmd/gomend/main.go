package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gomend/internal/config"
	"gomend/internal/crawler"
	"gomend/internal/docstring"
	"gomend/internal/extractor"
	"gomend/internal/gitutil"
	"gomend/internal/mend"
	"gomend/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "gomend",
		Short: "Docstring checker and fixer for Python projects",
	}
	configPath string
	styleName  string
	fromStyle  string
	changed    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gomend.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&styleName, "style", "s", "", "Output docstring style (rest, google, numpydoc, epydoc, auto)")
	rootCmd.PersistentFlags().BoolVar(&changed, "changed", false, "Only process files changed since HEAD")

	convertCmd.Flags().StringVar(&fromStyle, "from", "", "Input docstring style (defaults to autodetection)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(convertCmd)
}

// loadConfig reads the configured YAML file, falling back to defaults when it
// does not exist.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = config.Default()
	}
	return cfg
}

func buildMender(cfg *config.Config) *mend.Mender {
	if styleName != "" {
		cfg.Output.Style = styleName
	}
	style, err := cfg.OutputStyle()
	if err != nil {
		log.Fatalf("Invalid style: %v", err)
	}
	rendering, err := cfg.RenderingStyle()
	if err != nil {
		log.Fatalf("Invalid rendering: %v", err)
	}
	return mend.New(mend.Options{
		OutputStyle: style,
		Rendering:   rendering,
		Indent:      cfg.Output.Indent,
	})
}

// collectUnits gathers extracted units grouped by file, either from a full
// project walk or from the files git reports as changed.
func collectUnits(cfg *config.Config, root string) (map[string][]*extractor.Unit, error) {
	ext, err := extractor.NewExtractor("python")
	if err != nil {
		return nil, err
	}

	byFile := map[string][]*extractor.Unit{}

	if changed {
		paths, err := gitutil.ChangedPythonFiles("HEAD")
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			units, err := ext.ExtractFromFile(path)
			if err != nil {
				log.Printf("⚠️ Failed to parse %s: %v", path, err)
				continue
			}
			byFile[path] = units
		}
		return byFile, nil
	}

	cr := crawler.NewCrawler(ext, cfg.Project.Excludes...)
	err = cr.ScanProject(root, func(u *extractor.Unit) {
		byFile[u.Filepath] = append(byFile[u.Filepath], u)
	})
	if err != nil {
		return nil, err
	}
	return byFile, nil
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func sortedPaths(byFile map[string][]*extractor.Unit) []string {
	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// runMend processes every collected file through the mender, using the cache
// to skip files whose content has not changed. The onResult callback decides
// what to print.
func runMend(cmd string, rootArg string, onResult func(*mend.Result)) {
	cfg := loadConfig()
	mender := buildMender(cfg)

	root := rootArg
	if root == "" {
		root = cfg.Project.Root
	}
	if root == "" {
		root = "."
	}

	store, err := storage.NewSQLiteStore(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer store.Close()

	byFile, err := collectUnits(cfg, root)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	ctx := context.Background()
	totalIssues := 0
	skipped := 0

	for _, path := range sortedPaths(byFile) {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("⚠️ Failed to read %s: %v", path, err)
			continue
		}
		hash := storage.HashContent(content)

		if cached, err := store.Get(ctx, path, hash); err == nil && cached != nil {
			totalIssues += cached.IssueCount
			skipped++
			continue
		}

		fileIssues := 0
		for _, unit := range byFile[path] {
			res, err := mender.MendUnit(unit)
			if err != nil {
				log.Printf("⚠️ Failed to mend %s: %v", unit.ID, err)
				continue
			}
			fileIssues += len(res.Issues)
			onResult(res)
		}
		totalIssues += fileIssues

		// a fixed file is expected to change on disk once its patches are
		// applied, so its cache entry is dropped instead of refreshed
		if cmd == "fix" && fileIssues > 0 {
			if err := store.Forget(ctx, path); err != nil {
				log.Printf("⚠️ Failed to invalidate cache for %s: %v", path, err)
			}
		} else if err := store.Put(ctx, &storage.FileResult{
			Path:        path,
			ContentHash: hash,
			IssueCount:  fileIssues,
		}); err != nil {
			log.Printf("⚠️ Failed to cache result for %s: %v", path, err)
		}
	}

	if skipped > 0 {
		fmt.Printf("⏭️  Skipped %d unchanged files.\n", skipped)
	}
	if totalIssues == 0 {
		fmt.Printf("✅ %s complete, no issues found.\n", cmd)
		return
	}
	fmt.Printf("📋 %s complete, %d issues found.\n", cmd, totalIssues)
	if cmd == "check" {
		os.Exit(1)
	}
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Report docstrings that fail to parse or disagree with the code",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMend("check", firstArg(args), func(res *mend.Result) {
			for _, issue := range res.Issues {
				fmt.Printf("%s:%s\n", res.Unit.Filepath, issue)
			}
		})
	},
}

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Print patches that bring docstrings in line with the code",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMend("fix", firstArg(args), func(res *mend.Result) {
			if patch := res.Patch(); patch != "" {
				fmt.Println(patch)
				fmt.Println()
			}
		})
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a docstring between styles (reads stdin without a file argument)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var text []byte
		var err error
		if len(args) > 0 {
			text, err = os.ReadFile(args[0])
		} else {
			text, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}

		in := docstring.StyleAuto
		if fromStyle != "" {
			in, err = config.ParseStyle(fromStyle)
			if err != nil {
				log.Fatalf("Invalid input style: %v", err)
			}
		}
		out := docstring.StyleAuto
		if styleName != "" {
			out, err = config.ParseStyle(styleName)
			if err != nil {
				log.Fatalf("Invalid style: %v", err)
			}
		}

		cfg := loadConfig()
		rendering, err := cfg.RenderingStyle()
		if err != nil {
			log.Fatalf("Invalid rendering: %v", err)
		}

		result, err := convertDocstring(string(text), in, out, rendering, cfg.Output.Indent)
		if err != nil {
			log.Fatalf("Failed to convert docstring: %v", err)
		}
		fmt.Println(result)
	},
}

// convertDocstring parses text in the given input style and re-renders it
// in the output style. AUTO on the output side keeps the detected style.
func convertDocstring(text string, in, out docstring.Style, rendering docstring.RenderingStyle, indent string) (string, error) {
	doc, err := docstring.Parse(text, in)
	if err != nil {
		return "", fmt.Errorf("failed to parse docstring: %w", err)
	}
	result, err := docstring.Compose(doc, out, rendering, indent)
	if err != nil {
		return "", fmt.Errorf("failed to compose docstring: %w", err)
	}
	return result, nil
}
