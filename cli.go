package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"sonicbridge/config"
	"sonicbridge/library"
	"sonicbridge/models"
	"sonicbridge/subsonic"
)

// runner holds the output streams shared by every command.
type runner struct {
	out    io.Writer
	logOut io.Writer
}

// env is what a command needs once configuration is loaded.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *sql.DB
	store *library.Store
}

func (e *env) Close() error { return e.db.Close() }

func (r *runner) open(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.Log, r.logOut)

	db, err := library.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := library.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db, store: library.New(db, log)}, nil
}

func (e *env) scanJob() *scanJob {
	folders := make([]library.Folder, len(e.cfg.Library.Folders))
	for i, f := range e.cfg.Library.Folders {
		folders[i] = library.Folder{Name: f.Name, Path: f.Path}
	}
	return &scanJob{
		scanner: library.NewScanner(e.store, e.log, e.cfg.Library.IgnoredArticles),
		folders: folders,
		log:     e.log,
	}
}

func (r *runner) command() *cli.Command {
	return &cli.Command{
		Name:  "sonicbridge",
		Usage: "Serve a music library to Subsonic clients",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the Subsonic API server",
				Action: r.serve,
			},
			{
				Name:   "scan",
				Usage:  "Scan the music folders once and exit",
				Action: r.scan,
			},
			{
				Name:  "user",
				Usage: "Manage host users and their Subsonic access",
				Commands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Create a host user",
						ArgsUsage: "<name>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "password", Usage: "Host password", Required: true},
						},
						Action: r.userAdd,
					},
					{
						Name:      "link",
						Usage:     "Enable Subsonic access for a host user",
						ArgsUsage: "<name>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "host-password", Usage: "Current host password of the user", Required: true},
							&cli.StringFlag{Name: "password", Usage: "Password Subsonic clients will use", Required: true},
							&cli.BoolFlag{Name: "no-token-auth", Usage: "Reject token and salt logins"},
							&cli.BoolFlag{Name: "admin", Usage: "Allow describing other users"},
						},
						Action: r.userLink,
					},
				},
			},
			{
				Name:  "item",
				Usage: "Annotate catalog items",
				Commands: []*cli.Command{
					{
						Name:      "star",
						Usage:     "Star an item",
						ArgsUsage: "<id>",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "remove", Usage: "Unstar instead"},
						},
						Action: r.itemStar,
					},
					{
						Name:      "rate",
						Usage:     "Rate an item from 1 to 5, or 0 to clear",
						ArgsUsage: "<id> <rating>",
						Action:    r.itemRate,
					},
				},
			},
		},
	}
}

func (r *runner) serve(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	users, err := e.store.LoadPluginUsers(ctx)
	if err != nil {
		return err
	}
	e.log.Info().Int("users", len(users)).Msg("Loaded Subsonic users")

	plugin := subsonic.New(subsonic.Options{
		Library:         e.store,
		Users:           subsonic.NewUserTable(users),
		Logger:          e.log,
		IgnoredArticles: e.cfg.Library.IgnoredArticles,
	})

	job := e.scanJob()
	if e.cfg.Library.ScanOnStartup {
		scans := startupScan(ctx, job)
		defer func() { _ = scans.Wait() }()
	}
	scheduler, err := startScheduler(ctx, e.cfg.Library.ScanSchedule, job)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(plugin, e.cfg.Server.BasePath, e.cfg.Metrics.Enabled, e.log)
	return serve(ctx, e.cfg.Server.Listen, router, e.log)
}

func (r *runner) scan(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	stats, err := e.scanJob().run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Scanned %d folders: %d artists, %d albums, %d songs (%d skipped, %d removed) in %s\n",
		stats.Folders, stats.Artists, stats.Albums, stats.Songs, stats.Skipped, stats.Removed, stats.Duration)
	return nil
}

func requireArgs(cmd *cli.Command, n int) error {
	if cmd.Args().Len() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", cmd.Name, n, cmd.Args().Len())
	}
	return nil
}

func (r *runner) userAdd(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	u, err := e.store.CreateHostUser(ctx, cmd.Args().First(), cmd.String("password"))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Created user %s (%s)\n", u.Name, u.ID)
	return nil
}

func (r *runner) userLink(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	u, err := e.store.AuthenticateHostUser(ctx, cmd.Args().First(), cmd.String("host-password"), "cli")
	if err != nil {
		return err
	}
	opts := models.DefaultPluginUserOptions()
	opts.TokenAuth = !cmd.Bool("no-token-auth")
	opts.Admin = cmd.Bool("admin")

	err = e.store.SavePluginUser(ctx, models.PluginUser{
		HostUserID: u.ID,
		Password:   cmd.String("password"),
		Options:    opts,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Linked %s for Subsonic access (token auth: %t, admin: %t). Restart the server to apply.\n",
		u.Name, opts.TokenAuth, opts.Admin)
	return nil
}

func (r *runner) itemStar(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	on := !cmd.Bool("remove")
	if err := e.store.SetFavorite(ctx, cmd.Args().First(), on); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Starred %s: %t\n", cmd.Args().First(), on)
	return nil
}

func (r *runner) itemRate(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	rating, err := strconv.ParseFloat(cmd.Args().Get(1), 64)
	if err != nil {
		return fmt.Errorf("rating %q: %w", cmd.Args().Get(1), err)
	}
	e, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.store.SetRating(ctx, cmd.Args().First(), rating); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Rated %s: %g\n", cmd.Args().First(), rating)
	return nil
}
