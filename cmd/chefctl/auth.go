package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/chefapp/backend/client"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

func newRegisterCmd(a *app) *cobra.Command {
	var req types.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Name == "" {
				if req.Name, err = a.prompt("Name: "); err != nil {
					return err
				}
			}
			if req.Email == "" {
				if req.Email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if req.Password == "" {
				if req.Password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}
			if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.Password
			}
			req.Name = client.Sanitize(req.Name)

			user, err := a.session.Register(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s! You are logged in as %s.\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "Repeat the password (defaults to --password)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}
			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}
			return a.printProfile(a.session.User())
		},
	}

	var name, bio, picture, imagePath string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change your name, bio or picture",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}
			req := &types.UpdateProfileRequest{}
			if cmd.Flags().Changed("name") {
				n := client.Sanitize(name)
				req.Name = &n
			}
			if cmd.Flags().Changed("bio") {
				b := client.Sanitize(bio)
				req.Bio = &b
			}
			if cmd.Flags().Changed("picture-url") {
				req.ProfilePicture = &picture
			}
			var image *client.Image
			if imagePath != "" {
				var err error
				if image, err = client.LoadImage(imagePath); err != nil {
					return err
				}
			}

			user, err := a.session.UpdateProfile(cmd.Context(), req, image)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Profile updated.")
			return a.printProfile(user)
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&bio, "bio", "", "New bio")
	update.Flags().StringVar(&picture, "picture-url", "", "Picture URL")
	update.Flags().StringVar(&imagePath, "image", "", "Upload this image as your picture (max 3MB)")

	cmd.AddCommand(show, update)
	return cmd
}

func (a *app) printProfile(u *models.User) error {
	if a.jsonOut {
		return a.printJSON(u.Profile())
	}
	fmt.Fprintf(a.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	fmt.Fprintf(a.out, "Bio:     %s\n", u.Bio)
	fmt.Fprintf(a.out, "Picture: %s\n", u.ProfilePicture)
	return nil
}
