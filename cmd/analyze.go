package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/form"
	"github.com/spigell/resume-parser/internal/view"
)

const (
	PromptAnother = "Analyze Another Resume"
	PromptRetry   = "Retry"
	PromptEdit    = "Change file or requirements"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Upload a resume and show how well it matches the job requirements",
	Long: `Upload a resume PDF together with job requirements to the analysis backend
and print the match result. Without --file and --requirements the command
asks for them interactively and offers to analyze another resume afterwards.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "path to the resume PDF")
	analyzeCmd.Flags().StringP("requirements", "r", "", "job requirements, e.g. \"React, JavaScript, CSS\"")
}

type analyzeSession struct {
	controller *form.Controller
	logger     *zap.Logger
	// file and requirements hold flag values until the first round consumes them.
	file         string
	requirements string
	// lastFile and lastRequirements prefill the prompts.
	lastFile         string
	lastRequirements string
	interactive      bool
	out              io.Writer
}

func analyze(cmd *cobra.Command) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	controller := form.New(client,
		form.WithSettle(cfg.FormSettle()),
		form.WithLogger(logger.Named("form")),
	)

	file, _ := cmd.Flags().GetString("file")
	requirements, _ := cmd.Flags().GetString("requirements")

	s := &analyzeSession{
		controller:   controller,
		logger:       logger,
		file:         file,
		requirements: requirements,
		interactive:  file == "" || requirements == "",
		out:          cmd.OutOrStdout(),
	}

	logger.Info("starting the resume-parser", zap.String("version", version), zap.String("backend", cfg.BaseURL))

	if !s.interactive {
		return s.runOnce(cmd.Context())
	}

	for {
		err := s.runInteractive(cmd.Context())
		if errors.Is(err, errExit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// runOnce fills the form from flags, submits it and prints the outcome.
func (s *analyzeSession) runOnce(ctx context.Context) error {
	f, err := form.OpenFile(s.file)
	if err != nil {
		return err
	}

	if err := s.controller.SelectFile(f); err != nil {
		return s.report(err)
	}

	if err := s.controller.UpdateRequirements(s.requirements); err != nil {
		return err
	}

	s.logger.Info("analyzing resume", zap.String("file", f.Name))

	return s.report(s.controller.Submit(ctx))
}

// runInteractive asks for the missing inputs, submits and asks what to do next.
func (s *analyzeSession) runInteractive(ctx context.Context) error {
	snap := s.controller.Snapshot()

	if snap.File == nil {
		path, err := s.askPath()
		if err != nil {
			return err
		}

		f, err := form.OpenFile(path)
		if err != nil {
			s.logger.Error("opening resume", zap.Error(err))
			return nil
		}

		if err := s.controller.SelectFile(f); err != nil {
			s.report(err)
			return nil
		}
	}

	if strings.TrimSpace(s.controller.Snapshot().Requirements) == "" {
		requirements, err := s.askRequirements()
		if err != nil {
			return err
		}

		if err := s.controller.UpdateRequirements(requirements); err != nil {
			return err
		}
	}

	s.logger.Info("analyzing resume", zap.String("file", s.controller.Snapshot().File.Name))
	s.report(s.controller.Submit(ctx))

	return s.next()
}

func (s *analyzeSession) next() error {
	items := []string{PromptRetry, PromptEdit, PromptExit}
	if !s.controller.Snapshot().ShowsForm() {
		items = []string{PromptAnother, PromptExit}
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: items,
	}

	_, action, err := prompt.Run()
	if err != nil {
		return err
	}

	switch action {
	case PromptAnother:
		s.lastFile, s.lastRequirements = "", ""
		s.controller.Reset()
		return nil
	case PromptRetry:
		return nil
	case PromptEdit:
		s.controller.Reset()
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// askPath returns the --file value on the first round and prompts afterwards.
func (s *analyzeSession) askPath() (string, error) {
	if s.file != "" {
		path := s.file
		s.file = ""
		s.lastFile = path
		return path, nil
	}

	prompt := promptui.Prompt{
		Label:   "Upload Resume (PDF)",
		Default: s.lastFile,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("path is required")
			}
			return nil
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return "", err
	}

	s.lastFile = strings.TrimSpace(path)
	return s.lastFile, nil
}

// askRequirements returns the --requirements value on the first round and prompts afterwards.
func (s *analyzeSession) askRequirements() (string, error) {
	if s.requirements != "" {
		requirements := s.requirements
		s.requirements = ""
		s.lastRequirements = requirements
		return requirements, nil
	}

	prompt := promptui.Prompt{
		Label:   "Job Requirements (comma separated, e.g. React, JavaScript, CSS)",
		Default: s.lastRequirements,
	}

	requirements, err := prompt.Run()
	if err != nil {
		return "", err
	}

	s.lastRequirements = requirements
	return requirements, nil
}

// report prints the form state and passes err through.
func (s *analyzeSession) report(err error) error {
	if renderErr := view.Text(s.out, s.controller.Snapshot()); renderErr != nil {
		s.logger.Error("rendering result", zap.Error(renderErr))
	}

	return err
}
