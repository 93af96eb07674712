package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/urfave/cli"
	"github.com/zyra/postboard"
	"github.com/zyra/postboard/log"
)

var AppVersion = "0.1.0"

var sourceFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "users-url",
		Usage:  "Endpoint returning a JSON array of users",
		EnvVar: "POSTBOARD_USERS_URL",
		Value:  postboard.DefaultUsersURL,
	},
	cli.StringFlag{
		Name:   "posts-url",
		Usage:  "Endpoint returning a JSON array of posts",
		EnvVar: "POSTBOARD_POSTS_URL",
		Value:  postboard.DefaultPostsURL,
	},
	cli.StringFlag{
		Name:   "title",
		Usage:  "Heading shown above the cards",
		EnvVar: "POSTBOARD_TITLE",
		Value:  postboard.DefaultTitle,
	},
	cli.DurationFlag{
		Name:   "timeout, t",
		Usage:  "Upper bound for fetching both datasets, 0 for none",
		EnvVar: "POSTBOARD_TIMEOUT",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "postboard"
	app.Usage = "Render users and their post counts as a card grid"
	app.Version = AppVersion

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, warn or error",
			EnvVar: "POSTBOARD_LOG_LEVEL",
			Value:  log.LevelInfo,
		},
	}

	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(ctx.GlobalString("log-level"))
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:    "render",
			Aliases: []string{"r"},
			Usage:   "Fetch once and write the page to a file",
			Action:  render,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "out, o",
					Usage:  "Output file, - for stdout",
					EnvVar: "POSTBOARD_OUT_FILE",
					Value:  "board.html",
				},
			}, sourceFlags...),
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Fetch once and serve the page over HTTP",
			Action:  serve,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "addr, a",
					Usage:  "HTTP listen address",
					EnvVar: "POSTBOARD_ADDR",
					Value:  ":8080",
				},
				cli.StringFlag{
					Name:   "nats-url",
					Usage:  "Also answer board requests and announce the settled board over NATS",
					EnvVar: "POSTBOARD_NATS_URL",
				},
				cli.IntFlag{
					Name:   "nats-concurrency",
					Usage:  "Goroutines answering NATS board requests",
					EnvVar: "POSTBOARD_NATS_CONCURRENCY",
					Value:  4,
				},
			}, sourceFlags...),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func configFromFlags(ctx *cli.Context) *postboard.Config {
	return &postboard.Config{
		UsersURL: ctx.String("users-url"),
		PostsURL: ctx.String("posts-url"),
		Title:    ctx.String("title"),
		Timeout:  ctx.Duration("timeout"),
		Logger:   log.Default,
	}
}

func render(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := postboard.NewComponent(configFromFlags(ctx))
	c.Mount(sigCtx)
	defer c.Unmount()

	state, err := c.Wait(sigCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "-" {
		err = c.Render(os.Stdout)
	} else {
		err = postboard.NewRenderer(ctx.String("title")).RenderFile(out, state)
	}

	if err != nil {
		return err
	}

	if state.Phase == postboard.PhaseError {
		return cli.NewExitError(state.Message, 1)
	}

	if out != "-" {
		log.Infof("wrote %d cards to %s", len(state.Cards), out)
	}

	return nil
}

func serve(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configFromFlags(ctx)

	var handler postboard.Handler
	if url := ctx.String("nats-url"); url != "" {
		nc, err := nats.Connect(url, nats.Name("postboard"))
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}
		defer nc.Close()

		pub, err := postboard.NewPublisher(nc, log.Default)
		if err != nil {
			return err
		}
		cfg.OnSettle = pub.Publish

		c := postboard.NewComponent(cfg)
		handler = postboard.NewBoardHandler(c, nc, ctx.Int("nats-concurrency"))
		return run(sigCtx, ctx.String("addr"), c, handler)
	}

	return run(sigCtx, ctx.String("addr"), postboard.NewComponent(cfg), handler)
}

func run(ctx context.Context, addr string, c *postboard.Component, handler postboard.Handler) error {
	c.Mount(ctx)
	defer c.Unmount()

	if handler != nil {
		if err := handler.Run(ctx); err != nil {
			return err
		}
		defer handler.Shutdown()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           postboard.NewServer(c).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("serving %s on %s", c.ID(), addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
