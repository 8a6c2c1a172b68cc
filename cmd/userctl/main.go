// userctl is a small CLI over the user service: register, log in, view and
// edit the profile, list users. The session (token + user snapshot) persists
// between invocations and is revalidated on use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dcastano/userhub-api/internal/client"
	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/services"
	"github.com/dcastano/userhub-api/internal/session"
)

const usage = `Usage: userctl <command> [flags]

Commands:
  register   create an account and log in
  login      log in with email and password
  whoami     show the current session (revalidated against the server)
  profile    fetch the profile from the server
  update     update profile fields
  list       list users (paginated)
  logout     discard the local session

The server address comes from USERHUB_SERVER (default http://localhost:8080).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	server := os.Getenv("USERHUB_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}

	path, err := session.DefaultPath()
	if err != nil {
		fatal(err)
	}
	api := client.New(server, session.NewStore(path))
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		runRegister(ctx, api, os.Args[2:])
	case "login":
		runLogin(ctx, api, os.Args[2:])
	case "whoami":
		runWhoami(ctx, api)
	case "profile":
		runProfile(ctx, api)
	case "update":
		runUpdate(ctx, api, os.Args[2:])
	case "list":
		runList(ctx, api, os.Args[2:])
	case "logout":
		if err := api.Logout(); err != nil {
			fatal(err)
		}
		fmt.Println("logged out")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runRegister(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	phone := fs.String("phone", "", "phone (optional, digits only)")
	fs.Parse(args)

	data, err := api.Register(ctx, dto.RegisterRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Phone:     *phone,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("registered and logged in as %s\n", data.User.Email)
}

func runLogin(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	data, err := api.Login(ctx, *email, *password)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("logged in as %s\n", data.User.Email)
}

func runWhoami(ctx context.Context, api *client.Client) {
	user, err := api.Init(ctx)
	if err != nil {
		fatal(err)
	}
	if user == nil {
		fmt.Println("not logged in")
		return
	}
	printUser(user)
}

func runProfile(ctx context.Context, api *client.Client) {
	if _, err := api.Init(ctx); err != nil {
		fatal(err)
	}
	user, err := api.Profile(ctx)
	if err != nil {
		fatal(err)
	}
	printUser(user)
}

func runUpdate(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	first := fs.String("first", "", "new first name")
	last := fs.String("last", "", "new last name")
	phone := fs.String("phone", "", "new phone")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	// Only flags that were actually set go into the partial update.
	var req dto.UpdateProfileRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			req.FirstName = first
		case "last":
			req.LastName = last
		case "phone":
			req.Phone = phone
		case "password":
			req.Password = password
		}
	})

	if _, err := api.Init(ctx); err != nil {
		fatal(err)
	}
	user, err := api.UpdateProfile(ctx, req)
	if err != nil {
		fatal(err)
	}
	fmt.Println("profile updated")
	printUser(user)
}

func runList(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", services.DefaultPage, "page number")
	limit := fs.Int("limit", services.DefaultLimit, "page size")
	fs.Parse(args)

	if _, err := api.Init(ctx); err != nil {
		fatal(err)
	}
	data, err := api.ListUsers(ctx, *page, *limit)
	if err != nil {
		fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tCREATED")
	for _, u := range data.Users {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", u.Email, u.FirstName, u.LastName, u.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Printf("page %d/%d, %d users total\n",
		data.Pagination.Page, data.Pagination.TotalPages, data.Pagination.Total)
}

func printUser(u *dto.UserResponse) {
	fmt.Printf("%s %s <%s>", u.FirstName, u.LastName, u.Email)
	if u.Phone != "" {
		fmt.Printf(" phone=%s", u.Phone)
	}
	fmt.Printf("\nid=%s created=%s\n", u.ID, u.CreatedAt.Format("2006-01-02 15:04"))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
