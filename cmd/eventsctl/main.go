package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"eventsmanagement/config"
	"eventsmanagement/internal/adapters/api"
	"eventsmanagement/internal/adapters/session"
	"eventsmanagement/internal/domain"
	"eventsmanagement/internal/services"
)

const usage = `usage: eventsctl <command> [flags]

commands:
  events     list events (-pages)
  locations  list the zone codes accepted by location
  location   list events in a zone (-loc, -pages)
  search     search events (-q, -pages)
  show       show one event (-id)
  join       join an event (-id, -email, -password)
  leave      leave an event (-id, -email, -password)
  register   sign up as a volunteer
  login      log in and print the session token
  me         show your profile and events (-email, -password)
`

type app struct {
	api     domain.EventsAPI
	session domain.SessionStore
	login   *services.Login
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
}

// userError shows the user-facing text for err and keeps err in the chain.
type userError struct{ err error }

func (e userError) Error() string { return services.UserMessage(e.err) }
func (e userError) Unwrap() error { return e.err }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	store := session.NewStore()
	if cfg.Token != "" {
		store.SetToken(cfg.Token)
	}
	client := api.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		api.Config{BaseURL: cfg.APIURL, SelfAlias: cfg.SelfAlias},
		store,
		logger,
	)
	a := &app{
		api:     client,
		session: store,
		login:   services.NewLogin(client, store, logger),
		logger:  logger,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for usage and local validation errors, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUnknownCommand) || domain.IsValidationFailure(err) {
		return 2
	}
	return 1
}

var errUnknownCommand = errors.New("unknown command")

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "events":
		return a.listFeed(ctx, cmd, args, func(fs *flag.FlagSet) func() (*services.Feed, error) {
			return func() (*services.Feed, error) {
				return services.NewHomeFeed(a.api, a.logger), nil
			}
		})
	case "locations":
		for _, code := range domain.Locations() {
			fmt.Fprintln(a.out, code)
		}
		return nil
	case "location":
		return a.listFeed(ctx, cmd, args, func(fs *flag.FlagSet) func() (*services.Feed, error) {
			loc := fs.Int("loc", 1, "location zone code (see locations)")
			return func() (*services.Feed, error) {
				if err := domain.CheckLocation(*loc); err != nil {
					return nil, err
				}
				return services.NewLocationFeed(a.api, a.logger, *loc), nil
			}
		})
	case "search":
		return a.listFeed(ctx, cmd, args, func(fs *flag.FlagSet) func() (*services.Feed, error) {
			q := fs.String("q", "", "search text")
			return func() (*services.Feed, error) {
				feed := services.NewSearchFeed(a.api, a.logger, nil)
				return feed, feed.SetQuery(ctx, *q)
			}
		})
	case "show":
		return a.show(ctx, args)
	case "join", "leave":
		return a.membership(ctx, cmd, args)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.doLogin(ctx, args)
	case "me":
		return a.me(ctx, args)
	default:
		fmt.Fprint(a.errOut, usage)
		return fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}
}

// listFeed loads the first page of a feed and then -pages-1 more.
func (a *app) listFeed(ctx context.Context, name string, args []string, setup func(fs *flag.FlagSet) func() (*services.Feed, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	pages := fs.Int("pages", 1, "number of pages to load")
	build := setup(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	feed, err := build()
	if err != nil {
		return err
	}
	if feed.Kind() != services.SearchFeed {
		if err := feed.Load(ctx); err != nil {
			return err
		}
	}
	for i := 1; i < *pages; i++ {
		if err := feed.LoadMore(ctx); err != nil {
			return err
		}
	}
	printEvents(a.out, feed.Events())
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	id := fs.String("id", "", "event id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	d := services.NewEventDetail(a.api, a.logger, *id, a.login.LoggedIn(), nil)
	if err := d.Load(ctx); err != nil {
		return err
	}
	e := d.Event()
	if e.IsZero() {
		return fmt.Errorf("event %s could not be loaded", *id)
	}
	printEvent(a.out, e)
	if d.CanAct() {
		fmt.Fprintf(a.out, "Registered:  %t\n", d.Registered())
	}
	return nil
}

func (a *app) membership(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	id := fs.String("id", "", "event id")
	email, password := credentialFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	if err := a.ensureLogin(ctx, *email, *password); err != nil {
		return err
	}

	d := services.NewEventDetail(a.api, a.logger, *id, true, nil)
	if err := d.Load(ctx); err != nil {
		return err
	}
	var err error
	if cmd == "join" {
		err = d.Join(ctx)
	} else {
		err = d.Leave(ctx)
	}
	if err != nil {
		return userError{err}
	}
	fmt.Fprintln(a.out, d.Message())
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var v domain.Volunteer
	fs.StringVar(&v.Email, "email", "", "email address")
	fs.StringVar(&v.Password, "password", "", "password")
	fs.StringVar(&v.Name, "name", "", "full name")
	fs.StringVar(&v.Contact, "contact", "", "contact number")
	fs.StringVar(&v.AgeGroup, "age", domain.AgeGroups[0], "age group: "+strings.Join(domain.AgeGroups, ", "))
	fs.StringVar(&v.About, "about", "", "about you")
	fs.BoolVar(&v.Terms, "terms", false, "agree to the terms and conditions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := services.NewRegistration(a.api, a.logger)
	if err := r.Submit(ctx, v); err != nil {
		return userError{err}
	}
	fmt.Fprintln(a.out, r.Message())
	return nil
}

func (a *app) doLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email, password := credentialFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.login.Login(ctx, *email, *password); err != nil {
		return userError{err}
	}
	fmt.Fprintf(a.out, "export EVENTS_TOKEN=%s\n", a.session.Token())
	return nil
}

func (a *app) me(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("me", flag.ContinueOnError)
	email, password := credentialFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.ensureLogin(ctx, *email, *password); err != nil {
		return err
	}

	p, err := a.login.LoadProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name:    %s\nEmail:   %s\nContact: %s\nEvents:  %d\n\n",
		p.User.Name, p.User.Email, p.User.Contact, len(p.RegisteredIDs))
	events := append([]domain.Event(nil), p.Events...)
	services.SortByHighlight(events)
	printEvents(a.out, events)
	return nil
}

func credentialFlags(fs *flag.FlagSet) (email, password *string) {
	email = fs.String("email", "", "login email")
	password = fs.String("password", "", "login password")
	return email, password
}

// ensureLogin logs in with the given credentials, or relies on EVENTS_TOKEN when none are given.
func (a *app) ensureLogin(ctx context.Context, email, password string) error {
	if email != "" {
		if err := a.login.Login(ctx, email, password); err != nil {
			return userError{err}
		}
		return nil
	}
	if !a.login.LoggedIn() {
		return errors.New("not logged in: pass -email and -password or set EVENTS_TOKEN")
	}
	return nil
}

func printEvents(w io.Writer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tORGANISER\tDATE\tLOCATION\tQUOTA\t")
	for _, e := range events {
		title := e.Title
		if e.Highlight {
			title = "* " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t\n", e.ID, title, e.Organiser, e.EventDate, e.Location, e.Quota)
	}
	tw.Flush()
}

func printEvent(w io.Writer, e domain.Event) {
	fmt.Fprintf(w, "Title:       %s\n", e.Title)
	fmt.Fprintf(w, "Organizer:   %s\n", e.Organiser)
	fmt.Fprintf(w, "Description: %s\n", e.Description)
	if d, err := e.Date(); err == nil {
		fmt.Fprintf(w, "DateTime:    %s\n", d.Format(time.DateTime+" MST"))
	} else {
		fmt.Fprintf(w, "DateTime:    %s\n", e.EventDate)
	}
	if code, err := e.Location.Code(); err == nil {
		fmt.Fprintf(w, "Location:    zone %d\n", code)
	} else {
		fmt.Fprintf(w, "Location:    %s\n", e.Location)
	}
	fmt.Fprintf(w, "Quota:       %d\n", e.Quota)
	if e.Image != "" {
		fmt.Fprintf(w, "Image:       %s\n", e.Image)
	}
}
