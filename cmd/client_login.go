// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
)

// clientLoginCmd represents the clientLogin command.
var clientLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Long: `Exchange an email and password for a bearer token. Export the token as
VISTORIA_API_CLIENT_SECURITY_BEARER_TOKEN or pass it with --token.

The password is read from the terminal when --password is not given.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			password = readPassword()
		}

		authHandler := handler.(client.AuthHandler)
		resp, err := authHandler.Login(ctx, email, password)
		if err != nil {
			cli.HandleClientError(logger, "failed to log in", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		fmt.Println()
		cli.PrintKV("User", resp.User.Name, "Role", resp.User.Role)
		cli.PrintKV("Expires In", strconv.FormatInt(resp.ExpiresIn, 10)+"s")
		cli.PrintKV("Token", resp.Token)
	},
}

// readPassword prompts on the terminal without echo.
func readPassword() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		cli.LogFatal(logger, "password required", errors.New("stdin is not a terminal, use --password"))
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		cli.LogFatal(logger, "failed to read password", err)
	}

	return string(b)
}

// clientLogoutCmd represents the clientLogout command.
var clientLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Record a logout for the current token",
	Long: `Record the logout of the token owner in the audit log. Tokens are
stateless and stay valid until they expire.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		authHandler := handler.(client.AuthHandler)
		if err := authHandler.Logout(cmd.Context()); err != nil {
			cli.HandleClientError(logger, "failed to log out", err)
			return
		}

		if jsonOutput {
			printJSON(map[string]string{"status": "ok"})
			return
		}

		fmt.Println()
		cli.PrintKV("Status", "logged out")
	},
}

func init() {
	clientCmd.AddCommand(clientLoginCmd)
	clientCmd.AddCommand(clientLogoutCmd)

	clientLoginCmd.Flags().StringP("email", "e", "", "Account email")
	clientLoginCmd.Flags().StringP("password", "p", "", "Account password")

	_ = clientLoginCmd.MarkFlagRequired("email")
}
