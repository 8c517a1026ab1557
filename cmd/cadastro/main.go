package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prefeitura-rio/app-cadastro/internal/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

const defaultBaseURL = "http://localhost:8080"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		baseURL  string
		verbose  bool
		sistemas []string
	)
	fields := map[string]*string{
		client.FieldNome:         new(string),
		client.FieldCPF:          new(string),
		client.FieldCargo:        new(string),
		client.FieldSetor:        new(string),
		client.FieldEmail:        new(string),
		client.FieldDataAdmissao: new(string),
	}

	cmd := &cobra.Command{
		Use:   "cadastro",
		Short: "Cadastra um funcionário enviando o formulário para /cadastrar",
		Example: `  cadastro --nome "Maria da Silva" --cpf 529.982.247-25 --cargo Analista \
    --setor TI --email maria@empresa.com.br --data-admissao 2024-03-01 \
    --sistema ERP --sistema VPN`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
				defer logger.Sync()
			}

			form := client.FormData{}
			for name, value := range fields {
				form.Set(name, *value)
			}
			form.Set(client.FieldSistemas, sistemas...)

			handler := client.NewSubmitHandler(client.SubmitDeps{
				BaseURL: baseURL,
				Result:  client.NewWriterElement(out),
				Logger:  logger,
			})
			return handler.HandleSubmit(cmd.Context(), client.NewFormSubmitEvent(form))
		},
	}

	cmd.Version = appVersion
	cmd.SetOut(out)

	envBaseURL := os.Getenv("CADASTRO_BASE_URL")
	if envBaseURL == "" {
		envBaseURL = defaultBaseURL
	}
	cmd.Flags().StringVar(&baseURL, "base-url", envBaseURL, "Server base URL (env CADASTRO_BASE_URL)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log request details to stderr")

	cmd.Flags().StringVar(fields[client.FieldNome], "nome", "", "Employee name")
	cmd.Flags().StringVar(fields[client.FieldCPF], "cpf", "", "CPF, sent as typed")
	cmd.Flags().StringVar(fields[client.FieldCargo], "cargo", "", "Job title")
	cmd.Flags().StringVar(fields[client.FieldSetor], "setor", "", "Department")
	cmd.Flags().StringVar(fields[client.FieldEmail], "email", "", "Contact email")
	cmd.Flags().StringVar(fields[client.FieldDataAdmissao], "data-admissao", "", "Hire date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&sistemas, "sistema", nil, "System to grant access to; repeat for several")

	return cmd
}
