package main

import (
	"fmt"
	"io"
	"os"

	"koos-service/internal/app/drivers/logger"
	fhir_dto "koos-service/internal/pkg/dto/fhir"
	"koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	exitInvalidInput = 2
	exitLoadFailure  = 3
	exitScoreFailure = 4
)

type scoreFlags struct {
	questionnaire string
	responses     string
	catalog       string
	verbose       bool
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a set of responses against a questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.questionnaire, "questionnaire", "q", questionnaires.KOOS, "Questionnaire identifier")
	flags.StringVarP(&f.responses, "responses", "r", "-", "Responses JSON file (- for stdin)")
	flags.StringVar(&f.catalog, "catalog", "", "Catalog YAML file (default: built-in catalog)")
	flags.BoolVar(&f.verbose, "verbose", false, "Print scoring steps to stderr")

	return cmd
}

func runScore(stdin io.Reader, stdout, stderr io.Writer, f *scoreFlags) error {
	log := newCLILogger(stderr, f.verbose)

	catalog, err := loadCatalog(f.catalog)
	if err != nil {
		return exitError(exitLoadFailure, "failed to load catalog: %v", err)
	}

	id := questionnaires.NormalizeID(f.questionnaire)
	config, ok := catalog.Get(id)
	if !ok {
		return exitError(exitInvalidInput, "questionnaire %q is not in the catalog (available: %v)", id, catalog.IDs())
	}

	raw, err := readResponses(stdin, f.responses)
	if err != nil {
		return exitError(exitInvalidInput, "failed to read responses: %v", err)
	}

	scorer := scoring.NewScorer(logger.NewLogrusScoringLogger(log.WithField("command", "score")))
	decoded, err := scoring.DecodeResponses(config, raw)
	if err != nil {
		return exitError(exitScoreFailure, "%v", err)
	}
	report, err := scorer.Compute(config, decoded)
	if err != nil {
		return exitError(exitScoreFailure, "%v", err)
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(encoded))
	return err
}

func newCLILogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func loadCatalog(path string) (*questionnaires.Catalog, error) {
	if path == "" {
		return questionnaires.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return questionnaires.ParseCatalog(data)
}

// readResponses accepts the HTTP request shape {"responses": {...}}, a FHIR
// QuestionnaireResponse resource, or a bare object of question identifiers to
// values.
func readResponses(stdin io.Reader, path string) (map[string]interface{}, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var document map[string]interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	if document["resourceType"] == fhir_dto.ResourceTypeQuestionnaireResponse {
		var resource fhir_dto.QuestionnaireResponse
		if err := json.Unmarshal(data, &resource); err != nil {
			return nil, err
		}
		return resource.Answers(), nil
	}
	if wrapped, ok := document["responses"]; ok {
		responses, ok := wrapped.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("responses must be an object, got %T", wrapped)
		}
		return responses, nil
	}
	return document, nil
}
