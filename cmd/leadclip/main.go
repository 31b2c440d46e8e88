package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"leadclip/internal/bootstrap"
	authdto "leadclip/internal/modules/auth/dto"
	prospectdto "leadclip/internal/modules/prospect/dto"
	"leadclip/internal/platform/config"
	apperrors "leadclip/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var profileDir string

	root := &cobra.Command{
		Use:           "leadclip",
		Short:         "Prospect capture assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&profileDir, "profile", "", "profile directory (default ~/.leadclip)")

	root.AddCommand(newPanelCmd(&profileDir))
	root.AddCommand(newWatchCmd(&profileDir))
	root.AddCommand(newRelayCmd(&profileDir))
	root.AddCommand(newLoginCmd(&profileDir))
	root.AddCommand(newLogoutCmd(&profileDir))
	root.AddCommand(newWhoamiCmd(&profileDir))
	root.AddCommand(newPasswdCmd(&profileDir))
	root.AddCommand(newProspectsCmd(&profileDir))
	root.AddCommand(newSkillsCmd(&profileDir))
	root.AddCommand(newTeamCmd(&profileDir))
	root.AddCommand(newDraftCmd(&profileDir))
	root.AddCommand(newToggleCmd(&profileDir))
	root.AddCommand(newDashboardCmd(&profileDir))
	return root
}

func loadApp(profileDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(profileDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func newPanelCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "panel",
		Short: "Run the prospect panel TUI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunPanel(context.Background(), app)
		},
	}
}

func newWatchCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the clipboard and offer field suggestions",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunWatch(context.Background(), app)
		},
	}
}

func newRelayCmd(profileDir *string) *cobra.Command {
	relay := &cobra.Command{Use: "relay", Short: "Manage the message relay daemon"}

	relay.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run relay daemon in foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return app.Relay.RunDaemon(context.Background())
		},
	})
	relay.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start relay daemon in background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Relay.StartDaemon(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "relay started")
			return nil
		},
	})
	relay.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop relay daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Relay.StopDaemon(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "relay stopped")
			return nil
		},
	})
	relay.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show relay daemon status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			status, err := app.Relay.DaemonStatus(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "running=%t pid=%d socket=%s\n", status.Running, status.PID, status.SocketPath)
			if status.Running {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "panel_ready=%t overlay=%t delivered=%d pending=%d up_since=%s\n",
					status.PanelReady, status.OverlayVisible, status.Delivered, status.Pending,
					status.StartedAt.Format(time.RFC3339))
			}
			return nil
		},
	})
	var tail int
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show relay daemon logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			payload, err := app.Relay.DaemonLogs(context.Background(), tail)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}
	logs.Flags().IntVar(&tail, "tail", 50, "log lines to show from the end")
	relay.AddCommand(logs)
	return relay
}

func newLoginCmd(profileDir *string) *cobra.Command {
	var email, password string
	var dashboard bool
	login := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Sign in against the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			session, err := app.Auth.Login(context.Background(), authdto.LoginInput{
				Email:     email,
				Password:  password,
				Dashboard: dashboard,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in: %s role=%s\n", session.Email, session.Role)
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password")
	login.Flags().BoolVar(&dashboard, "dashboard", false, "request a dashboard session")
	return login
}

func newLogoutCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Auth.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			session, err := app.Auth.Current(context.Background())
			if err == apperrors.ErrNotLoggedIn {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", session.Name, session.Email, session.Role)
			if !session.ExpiresAt.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "expires=%s\n", session.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newPasswdCmd(profileDir *string) *cobra.Command {
	var current, next string
	passwd := &cobra.Command{
		Use:   "passwd --current <password> --new <password>",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if current == "" || next == "" {
				return fmt.Errorf("--current and --new are required")
			}
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Auth.ChangePassword(context.Background(), current, next); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		},
	}
	passwd.Flags().StringVar(&current, "current", "", "current password")
	passwd.Flags().StringVar(&next, "new", "", "new password")
	return passwd
}

func newProspectsCmd(profileDir *string) *cobra.Command {
	prospects := &cobra.Command{Use: "prospects", Short: "Query captured prospects"}

	var statuses []string
	var refresh bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List cached prospects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			records, err := app.Prospects.List(context.Background(), prospectdto.ListInput{
				Statuses: statuses,
				Refresh:  refresh,
			})
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no prospects")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", r.ID, r.Status, r.Name, r.CompanyName)
			}
			return nil
		},
	}
	list.Flags().StringSliceVar(&statuses, "status", nil, "filter by status")
	list.Flags().BoolVar(&refresh, "refresh", false, "pull from the backend first")
	prospects.AddCommand(list)

	prospects.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			records, err := app.Prospects.List(context.Background(), prospectdto.ListInput{Refresh: true})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "synced %d prospects\n", len(records))
			return nil
		},
	})

	var prospectID, toStatus string
	setStatus := &cobra.Command{
		Use:   "set-status --id <id> --to <status>",
		Short: "Apply a manual status transition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(prospectID) == "" || strings.TrimSpace(toStatus) == "" {
				return fmt.Errorf("--id and --to are required")
			}
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			record, err := app.Prospects.ChangeStatus(context.Background(), prospectID, toStatus)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", record.Name, record.Status)
			return nil
		},
	}
	setStatus.Flags().StringVar(&prospectID, "id", "", "prospect id")
	setStatus.Flags().StringVar(&toStatus, "to", "", "target status")
	prospects.AddCommand(setStatus)

	return prospects
}

func newSkillsCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List known intent skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			skills, err := app.Prospects.Skills(context.Background())
			if err != nil {
				return err
			}
			for _, skill := range skills {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), skill)
			}
			return nil
		},
	}
}

func newTeamCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			members, err := app.Prospects.TeamMembers(context.Background())
			if err != nil {
				return err
			}
			for _, m := range members {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", m.ID, m.Role, m.Name, m.Email)
			}
			return nil
		},
	}
}

func newDraftCmd(profileDir *string) *cobra.Command {
	draft := &cobra.Command{Use: "draft", Short: "Inspect the active draft"}

	draft.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active draft as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.Drafts.Current(context.Background())
			if err != nil {
				return err
			}
			if !out.Exists {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active draft")
				return nil
			}
			raw, err := json.MarshalIndent(out.Draft, "", "  ")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	})

	draft.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard the active draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Drafts.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "draft cleared")
			return nil
		},
	})

	return draft
}

func newToggleCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Show or hide the panel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.Relay.ToggleOverlay(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func newDashboardCmd(profileDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the web dashboard in a browser",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*profileDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := browser.OpenURL(cfg.DashboardURL); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.DashboardURL)
			return nil
		},
	}
}
