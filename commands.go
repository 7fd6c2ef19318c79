package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interactions"
	"github.com/giygas/medicombine-api/prompt"
	"github.com/giygas/medicombine-api/validation"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "medicombine",
		Short:         "Personalized drug combination therapies and interaction matrices",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	root.AddCommand(newServeCommand(), newMatrixCommand(), newPromptCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newMatrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix DRUG DRUG [DRUG...]",
		Short: "Print the interaction matrix of the given drugs as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matrix, err := interactions.NewChecker().BuildMatrix(args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), matrix)
		},
	}
}

func newPromptCommand() *cobra.Command {
	var input entities.PatientInput
	var disease string
	var age int
	var weight float64
	var interactionCheck bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt pair rendered for a patient profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Disease = &disease
			input.Age = &age
			input.Weight = &weight
			input.EnableInteractionCheck = &interactionCheck

			profile, err := validation.NewPatientValidator().NewPatientProfile(input)
			if err != nil {
				return err
			}

			pair := prompt.Build(profile)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "SYSTEM:\n%s\n\nUSER:\n%s\n", pair.System, pair.User)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&disease, "disease", "", "disease or condition (required)")
	flags.IntVar(&age, "age", 0, "patient age in years")
	flags.Float64Var(&weight, "weight", 0, "patient weight in kilograms")
	flags.StringVar(&input.ExistingMedications, "medications", "", "existing medications")
	flags.StringVar(&input.Contraindications, "contraindications", "", "contraindications or allergies")
	flags.StringVar(&input.Comorbidities, "comorbidities", "", "comorbidities")
	flags.StringVar(&input.Lifestyle, "lifestyle", "", "lifestyle factors")
	flags.BoolVar(&interactionCheck, "interaction-check", true, "check interactions with existing medications")
	_ = cmd.MarkFlagRequired("disease")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
