package cmd

import (
	"context"
	"fmt"

	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/gamesathi/sathi/internal/session"
	"github.com/spf13/cobra"
)

func roleFlag(cmd *cobra.Command) models.Role {
	if coach, _ := cmd.Flags().GetBool("coach"); coach {
		return models.RoleCoach
	}
	return models.RoleUser
}

// loginFallback is the message shown when the backend gives no reason
func loginFallback(role models.Role) string {
	if role == models.RoleCoach {
		return "An error occurred"
	}
	return "An error occurred during login"
}

// saveLogin persists a token for role and reports success
func saveLogin(ctx context.Context, token string, role models.Role) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	if err := session.Login(ctx, s, token, role); err != nil {
		output.Error("%v", err)
		return err
	}
	logger.Info("signed in", "role", string(role))
	output.Alert("Success", "Logged in successfully")
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as a player or coach",
	Long: `Sign in and save the session. Email and password are prompted for
when not given as flags. --google-id-token signs a player in with an ID
token obtained from Google elsewhere.`,
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		role := roleFlag(cmd)
		// Store first so the install id rides along on the request
		if _, err := openStore(); err != nil {
			return err
		}
		client := newClient("")

		if idToken, _ := cmd.Flags().GetString("google-id-token"); idToken != "" {
			if role == models.RoleCoach {
				err := fmt.Errorf("google sign-in is for players only")
				output.Error("%v", err)
				return err
			}
			resp, err := client.GoogleLogin(ctx, idToken)
			if err != nil {
				output.Alert("Login Failed", api.UserMessage(err, loginFallback(role)))
				return err
			}
			return saveLogin(ctx, resp.Token, role)
		}

		p := newPrompter(cmd)
		email, err := p.flagOrAsk(cmd, "email", "Email", false)
		if err != nil {
			return err
		}
		password, err := p.flagOrAsk(cmd, "password", "Password", true)
		if err != nil {
			return err
		}

		resp, err := client.Login(ctx, role, api.Credentials{Email: email, Password: password})
		if err != nil {
			logger.Warn("login failed", "role", string(role), "err", err)
			output.Alert("Login Failed", api.UserMessage(err, loginFallback(role)))
			return err
		}
		return saveLogin(ctx, resp.Token, role)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a player or coach account",
	Long: `Create an account. Players confirm their password; coaches also give
a specialization and years of experience. Passwords are prompted for when
not given as flags.`,
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		role := roleFlag(cmd)
		p := newPrompter(cmd)

		req := api.RegisterRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Phone, _ = cmd.Flags().GetString("phone")

		var err error
		if req.Password, err = p.flagOrAsk(cmd, "password", "Password", true); err != nil {
			return err
		}

		var confirm string
		if role == models.RoleCoach {
			req.Specialization, _ = cmd.Flags().GetString("specialization")
			req.Experience, _ = cmd.Flags().GetString("experience")
		} else if confirm, err = p.flagOrAsk(cmd, "confirm", "Confirm password", true); err != nil {
			return err
		}

		if _, err := openStore(); err != nil {
			return err
		}
		if _, err := newClient("").Register(cmd.Context(), role, req, confirm); err != nil {
			output.Alert("Registration Failed", api.UserMessage(err, "An error occurred"))
			return err
		}

		if role == models.RoleCoach {
			output.Alert("Success", "Coach registered successfully")
		} else {
			output.Alert("Success", "Account registered successfully")
		}
		fmt.Println("Run 'sathi login' to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Sign out and forget the saved token",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := session.Logout(cmd.Context(), s); err != nil {
			output.Alert("Error", "Could not log out. Please try again.")
			return err
		}
		logger.Info("signed out")
		fmt.Println("Logged out.")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:     "forgot-password [email]",
	Short:   "Mail a password reset link (players)",
	Args:    cobra.MaximumNArgs(1),
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var email string
		if len(args) == 1 {
			email = args[0]
		} else {
			var err error
			if email, err = newPrompter(cmd).ask("Email"); err != nil {
				return err
			}
		}

		if _, err := openStore(); err != nil {
			return err
		}
		if err := newClient("").ForgotPassword(cmd.Context(), email); err != nil {
			output.Alert("Password Reset Failed", api.UserMessage(err, "An error occurred"))
			return err
		}
		output.Alert("Password Reset", fmt.Sprintf("A password reset link has been sent to %s. Please check your inbox.", email))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(forgotPasswordCmd)

	loginCmd.Flags().Bool("coach", false, "Sign in as a coach")
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when empty)")
	loginCmd.Flags().String("google-id-token", "", "Sign in with a Google ID token")

	registerCmd.Flags().Bool("coach", false, "Register a coach account")
	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().String("email", "", "Email")
	registerCmd.Flags().String("phone", "", "Phone number")
	registerCmd.Flags().String("password", "", "Password (prompted when empty)")
	registerCmd.Flags().String("confirm", "", "Repeat the password (players)")
	registerCmd.Flags().String("specialization", "", "Coaching specialization (coaches)")
	registerCmd.Flags().String("experience", "", "Years of experience (coaches)")
}
