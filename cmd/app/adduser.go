package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gorm.io/gorm"
	"mothwallet/internal/config"
	"mothwallet/internal/infra"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/repositories"
	"mothwallet/internal/services"
	"mothwallet/pkg/utils"
)

type addUserOptions struct {
	username string
	email    string
	password string
}

func newAddUserCmd(configFile *string) *cobra.Command {
	var opts addUserOptions

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create an account from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			log := zap.NewNop()

			db, err := infra.OpenDatabase(cfg.Database, log)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer infra.CloseDatabase(db, log)

			if err := infra.MigrateUp(cfg.Database, db, log); err != nil {
				return err
			}
			return runAddUser(cmd.Context(), db, utils.NewBcryptHasher(cfg.Auth.BcryptCost), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.username, "user", "", "Username")
	cmd.Flags().StringVar(&opts.email, "email", "", "Email address")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (optional, will prompt if omitted)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// runAddUser goes through the same sign-up rules as the web form.
func runAddUser(ctx context.Context, db *gorm.DB, hasher utils.PasswordHasher, opts addUserOptions, stdin io.Reader, stdout io.Writer) error {
	password, repeat := opts.password, opts.password
	if password == "" {
		reader := bufio.NewReader(stdin)
		var err error
		fmt.Fprint(stdout, "Password: ")
		if password, err = readPassword(stdin, reader); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprint(stdout, "\nRepeat password: ")
		if repeat, err = readPassword(stdin, reader); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	accountService, err := services.NewAccountService(repositories.NewAccountRepository(db), hasher, nil, nil, zap.NewNop())
	if err != nil {
		return err
	}

	req := request_models.SignUpRequest{
		Email:          opts.email,
		Username:       opts.username,
		Password:       password,
		RepeatPassword: repeat,
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return fmt.Errorf("invalid account details: %w", err)
	}

	account, err := accountService.CreateAccount(ctx, req)
	if err != nil {
		return errors.New(utils.UserMessage(err))
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", account.Username, account.ID)
	return nil
}

func readPassword(stdin io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests.
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
