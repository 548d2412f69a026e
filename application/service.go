package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	logger "github.com/sirupsen/logrus"

	"github.com/vrothberg/testing-farm-package-analyzer/domain"
	"github.com/vrothberg/testing-farm-package-analyzer/infrastructure/report"
	"github.com/vrothberg/testing-farm-package-analyzer/infrastructure/toolcheck"
)

const dateLayout = "2006-01-02 15:04:05"

var (
	positiveVerdict = color.New(color.FgHiGreen).Sprint("YES")
	negativeVerdict = color.New(color.FgHiRed).Sprint("no")
)

// AnalyzeService runs the full analysis pipeline: tool check -> group
// resolution -> project enumeration -> per-project marker detection ->
// summary and report artifact.
type AnalyzeService struct {
	provider domain.Provider
	opts     Options
	out      io.Writer
}

// Options holds runtime options for a single analysis run.
type Options struct {
	Group         string        // Slash-separated group path to scan
	OutputPath    string        // Where the JSON artifact is written
	Delay         time.Duration // Pause between per-project tree fetches
	RequiredTools []string      // External commands verified before any network call
	Out           io.Writer     // Console report destination; nil = stdout
}

// NewAnalyzeService creates a new service for the given provider.
func NewAnalyzeService(provider domain.Provider, opts Options) *AnalyzeService {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &AnalyzeService{
		provider: provider,
		opts:     opts,
		out:      out,
	}
}

// Run executes the full analysis. Any returned error is fatal; the caller
// maps it to a non-zero exit status.
func (s *AnalyzeService) Run(ctx context.Context) error {
	if err := toolcheck.Verify(s.opts.RequiredTools); err != nil {
		return err
	}
	if len(s.opts.RequiredTools) > 0 {
		logger.Infof("All required tools found: %s", strings.Join(s.opts.RequiredTools, ", "))
	}

	logger.Infof("Resolving group %q...", s.opts.Group)
	groupID, err := s.provider.ResolveGroup(ctx, s.opts.Group)
	if err != nil {
		return err
	}
	logger.Debugf("Group %q has id %d", s.opts.Group, groupID)

	logger.Infof("Enumerating projects in %q...", s.opts.Group)
	repos, err := s.provider.ListGroupProjects(ctx, groupID)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		return fmt.Errorf(
			"no projects found in group %q; check the path and its visibility",
			s.opts.Group,
		)
	}
	logger.Infof("Found %d projects", len(repos))

	matches := s.sweep(ctx, repos)
	s.printSummary(repos, matches)

	rep := domain.Report{
		TotalPackages:       len(repos),
		TestingFarmPackages: matches,
		AnalysisDate:        time.Now().Format(dateLayout),
	}
	if writeErr := report.Write(s.opts.OutputPath, rep); writeErr != nil {
		return writeErr
	}
	logger.Infof("Report written to %s", s.opts.OutputPath)

	return nil
}

// sweep checks every repository for the marker, in enumeration order,
// printing a progress line per repository. The returned slice is never nil
// so an empty result still serializes as an empty JSON array.
func (s *AnalyzeService) sweep(
	ctx context.Context,
	repos []domain.Repository,
) []domain.Repository {
	matches := make([]domain.Repository, 0)
	if len(repos) == 0 {
		return matches
	}

	total := len(repos)
	for i, repo := range repos {
		fmt.Fprintf(s.out, "[%d/%d] Analyzing %s... ", i+1, total, repo.Name)

		if s.usesTestingFarm(ctx, repo) {
			fmt.Fprintln(s.out, positiveVerdict)
			matches = append(matches, repo)
		} else {
			fmt.Fprintln(s.out, negativeVerdict)
		}

		if s.opts.Delay > 0 {
			time.Sleep(s.opts.Delay)
		}
	}

	return matches
}

// usesTestingFarm applies the marker predicate to one repository. A failed
// tree fetch counts as a negative verdict: the run keeps going, and the
// result is indistinguishable from "no marker files".
func (s *AnalyzeService) usesTestingFarm(ctx context.Context, repo domain.Repository) bool {
	entries, err := s.provider.ListTree(ctx, repo.ID)
	if err != nil {
		logger.Debugf("Tree listing of %s failed, counting as negative: %v", repo.Name, err)
		return false
	}
	return domain.HasTestingFarmMarker(entries)
}

func (s *AnalyzeService) printSummary(repos, matches []domain.Repository) {
	total := len(repos)
	if total == 0 {
		return
	}

	percentage := float64(len(matches)) * 100 / float64(total)

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Total packages analyzed: %d\n", total)
	fmt.Fprintf(s.out, "Packages using Testing Farm: %d\n", len(matches))
	fmt.Fprintf(s.out, "Percentage: %.1f%%\n", percentage)

	if len(matches) == 0 {
		return
	}

	fmt.Fprintln(s.out)
	table := tablewriter.NewTable(s.out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"Package", "URL"})
	for _, match := range matches {
		_ = table.Append([]string{match.Name, match.WebURL})
	}
	_ = table.Render()
}
