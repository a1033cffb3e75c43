package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/chefapp/backend/client"
)

type app struct {
	in  *bufio.Reader
	out io.Writer

	baseURL   string
	tokenFile string
	jsonOut   bool

	client  *client.Client
	session *client.Session
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: bufio.NewReader(in), out: out}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chefctl",
		Short:         "Manage your recipes on a chef API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect()
		},
	}

	baseURL := os.Getenv("CHEF_API_URL")
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.baseURL, "api", baseURL, "API root URL (env CHEF_API_URL)")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", "", "Where the login token is kept (default <config dir>/chefapp/token)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print raw JSON")

	root.SetOut(a.out)
	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newProfileCmd(a),
		newRecipesCmd(a),
	)
	return root
}

func (a *app) connect() error {
	if a.client != nil {
		return nil
	}
	path := a.tokenFile
	if path == "" {
		var err error
		if path, err = client.DefaultTokenPath(); err != nil {
			return err
		}
	}
	a.client = client.New(a.baseURL, client.NewFileTokenStore(path))
	a.session = client.NewSession(a.client)
	return nil
}

// requireLogin restores the stored session or fails
func (a *app) requireLogin(ctx context.Context) error {
	user, err := a.session.Restore(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("not logged in, run 'chefctl login' first")
	}
	return nil
}

// prompt prints label and reads one trimmed line
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) confirm(question string) bool {
	answer, err := a.prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
