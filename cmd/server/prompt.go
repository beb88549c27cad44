package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/service/content"
	"smartlearn/internal/service/content/converter"
	"smartlearn/internal/service/prompt"
)

type promptOptions struct {
	activity    string
	subject     string
	topic       string
	age         int
	learnerType string
	content     string
	contentFile string
	list        bool
}

func promptCmd() *cobra.Command {
	var opts promptOptions

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render an activity prompt offline",
		Long: `Render the prompt a lesson request would send to the generation service,
without calling any external service. Reference content comes from --content
or from a local .txt, .md, .html or .pdf file given with --content-file.`,
		Example: `  smartlearn prompt --activity Summarization --subject Science \
    --topic "Water Cycle" --age 5 --content-file textbook_content.txt
  smartlearn prompt --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := prompt.NewResolver()
			if opts.list {
				return listActivities(cmd.OutOrStdout(), resolver)
			}
			return renderPrompt(cmd, resolver, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.activity, "activity", "a", "", "Activity (Summarization, Teaching, Evaluation)")
	f.StringVarP(&opts.subject, "subject", "s", "", "Subject")
	f.StringVarP(&opts.topic, "topic", "t", "", "Topic")
	f.IntVar(&opts.age, "age", 0, "Grade of the learner")
	f.StringVar(&opts.learnerType, "learner-type", "", "Learner type (e.g. Visual)")
	f.StringVar(&opts.content, "content", "", "Reference content text")
	f.StringVarP(&opts.contentFile, "content-file", "f", "", "Local file to load reference content from")
	f.BoolVar(&opts.list, "list", false, "List activities and the fields each one needs")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}

func renderPrompt(cmd *cobra.Command, resolver learningSvc.PromptResolver, opts promptOptions) error {
	activity, err := models.ParseActivityKind(opts.activity)
	if err != nil {
		return err
	}

	reference := opts.content
	if opts.contentFile != "" {
		reference, err = loadContentFile(cmd, opts.contentFile)
		if err != nil {
			return err
		}
	}

	rendered, err := resolver.Resolve(activity, models.PromptParameters{
		Age:              opts.age,
		Subject:          strings.TrimSpace(opts.subject),
		Topic:            strings.TrimSpace(opts.topic),
		LearnerType:      strings.TrimSpace(opts.learnerType),
		ReferenceContent: reference,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// loadContentFile reads a local file the operator named, wherever it lives.
// The source is rooted at the file's own directory.
func loadContentFile(cmd *cobra.Command, name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	provider := content.NewProvider(
		content.NewFileSource(filepath.Dir(abs)),
		nil,
		converter.NewRegistry(),
		slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn})),
	)
	text, err := provider.Load(cmd.Context(), filepath.Base(abs))
	if err != nil {
		return "", fmt.Errorf("load content: %w", err)
	}
	return text, nil
}

func listActivities(w io.Writer, resolver learningSvc.PromptResolver) error {
	for _, kind := range models.Activities() {
		slots, err := resolver.RequiredSlots(kind)
		if err != nil {
			return err
		}
		names := make([]string, len(slots))
		for i, slot := range slots {
			names[i] = string(slot)
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", kind, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
