// submodule cmd contains command definitions
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/quietriver/kino/internal/shared"
)

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(time.RFC3339)
}

// resolveUser opens the database and looks a username up, for commands keyed
// by account.
func (r *Runner) resolveUser(cmd *cli.Command, username string) (string, error) {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return "", err
	}

	if username == "" {
		return "", fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	user, ok := r.users.GetByUsername(username)
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	return user.ID, nil
}

// UserCreate registers a new account.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	username := cmd.StringArg("username")
	user, err := r.users.Create(username, cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ User created: %s (%s)\n", user.Username, user.ID)
	return nil
}

// UserList prints every account.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	users, err := r.users.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	for _, u := range users {
		r.writePlain("%s  %s\n", u.ID, u.Username)
	}
	r.writePlain("%d user(s)\n", len(users))
	return nil
}

// UserDelete removes an account and everything attached to it.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	username := cmd.StringArg("username")
	if err := r.users.Delete(username); err != nil {
		return err
	}

	r.writePlain("✓ User deleted: %s\n", username)
	return nil
}

// FavoriteAdd favorites a media item for a user.
func (r *Runner) FavoriteAdd(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	added, err := r.favorites.Add(userID, cmd.StringArg("media"))
	if err != nil {
		return err
	}

	if added {
		r.writePlain("✓ Favorite added\n")
	} else {
		r.writePlain("Already a favorite\n")
	}
	return nil
}

// FavoriteRemove unfavorites a media item.
func (r *Runner) FavoriteRemove(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	removed, err := r.favorites.Remove(userID, cmd.StringArg("media"))
	if err != nil {
		return err
	}

	if removed {
		r.writePlain("✓ Favorite removed\n")
	} else {
		r.writePlain("Not a favorite\n")
	}
	return nil
}

// FavoriteList prints a user's favorites.
func (r *Runner) FavoriteList(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	favorites, err := r.favorites.List(userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(favorites, cmd.Bool("pretty"))
	}

	for _, f := range favorites {
		r.writePlain("%s\n", f.MediaID)
	}
	r.writePlain("%d favorite(s)\n", len(favorites))
	return nil
}

// HistoryRecord appends a playback event.
func (r *Runner) HistoryRecord(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	media := cmd.StringArg("media")
	position := cmd.Int("position")
	if err := r.history.Record(userID, media, int64(position)); err != nil {
		return err
	}

	r.writePlain("✓ Recorded %s at %ds\n", media, position)
	return nil
}

// HistoryRecent prints a user's latest playback events.
func (r *Runner) HistoryRecent(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	entries, err := r.history.Recent(userID, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	for _, e := range entries {
		r.writePlain("%s  %s  %ds\n", e.MediaID, formatMillis(e.WatchedAt), e.PositionSecs)
	}
	r.writePlain("%d entry(ies)\n", len(entries))
	return nil
}

// HistoryClear wipes a user's history and resume positions.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.resolveUser(cmd, cmd.StringArg("username"))
	if err != nil {
		return err
	}

	removed, err := r.history.Clear(userID)
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d entry(ies)\n", removed)
	return nil
}

// userCommand handles account administration
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password for the new account",
						Required: true,
					},
				},
				Action: r.UserCreate,
			},
			{
				Name:  "list",
				Usage: "List accounts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.UserList,
			},
			{
				Name:      "delete",
				Usage:     "Delete an account and its data",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.UserDelete,
			},
		},
	}
}

// favoriteCommand handles per-user favorites
func favoriteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorite",
		Aliases: []string{"fav"},
		Usage:   "Manage favorites",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Favorite a media item",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
					&cli.StringArg{Name: "media"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.FavoriteAdd,
			},
			{
				Name:  "remove",
				Usage: "Unfavorite a media item",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
					&cli.StringArg{Name: "media"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.FavoriteRemove,
			},
			{
				Name:      "list",
				Usage:     "List a user's favorites",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.FavoriteList,
			},
		},
	}
}

// historyCommand handles watch history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage watch history",
		Commands: []*cli.Command{
			{
				Name:  "record",
				Usage: "Record a playback event",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
					&cli.StringArg{Name: "media"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "position",
						Usage: "Resume position in seconds",
					},
				},
				Action: r.HistoryRecord,
			},
			{
				Name:      "recent",
				Usage:     "List recent playback events",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.HistoryRecent,
			},
			{
				Name:      "clear",
				Usage:     "Clear a user's watch history",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.HistoryClear,
			},
		},
	}
}
