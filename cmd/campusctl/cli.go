package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"syscall"

	"SmartCampus/internal/admin"
	"SmartCampus/internal/authstore"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in, run: campusctl login -email EMAIL")
)

type provisioner interface {
	Provision(ctx context.Context, in admin.ProvisionInput) (*admin.Admin, error)
}

type commandLine struct {
	out   io.Writer
	api   *apiClient
	store *authstore.Store
	// openProvisioner connects to the database on demand; only create-admin needs it.
	openProvisioner func(ctx context.Context) (provisioner, func(), error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                      - sign in, the password is prompted")
	fmt.Fprintln(cli.out, "  logout                                  - sign out and forget the session")
	fmt.Fprintln(cli.out, "  whoami                                  - show the signed-in account")
	fmt.Fprintln(cli.out, "  notifications list                      - list the latest notifications")
	fmt.Fprintln(cli.out, "  notifications read ID                   - mark one notification as read")
	fmt.Fprintln(cli.out, "  notifications read-all                  - mark every notification as read")
	fmt.Fprintln(cli.out, "  create-admin -name NAME -email EMAIL [-role super_admin|department_admin] [-department DEPT]")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	loginEmail := loginCmd.String("email", "", "The admin's email. The password will be prompted next.")

	createCmd := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	createCmd.SetOutput(cli.out)
	createName := createCmd.String("name", "", "Full name.")
	createEmail := createCmd.String("email", "", "Login email. The password will be prompted next.")
	createRole := createCmd.String("role", string(admin.RoleSuperAdmin), "super_admin or department_admin.")
	createDept := createCmd.String("department", "", "Department of a department admin.")
	createPhone := createCmd.String("phone", "", "Contact phone.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginEmail, pwd)
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.whoami(ctx)
	case "notifications":
		return cli.notifications(ctx, args[2:])
	case "create-admin":
		if err := createCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createName == "" || *createEmail == "" {
			createCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			createCmd.Usage()
			return errHelp
		}
		return cli.createAdmin(ctx, admin.ProvisionInput{
			Name:       *createName,
			Email:      *createEmail,
			Password:   pwd,
			Role:       admin.Role(*createRole),
			Department: *createDept,
			Phone:      *createPhone,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) login(ctx context.Context, email, password string) error {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := cli.api.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.User == nil || resp.Token == "" {
		return errors.New("login: malformed response")
	}
	if err := cli.store.Login(resp.User, resp.Role, resp.Token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", resp.User.Email, resp.Role)
	return nil
}

func (cli *commandLine) logout(ctx context.Context) error {
	if st := cli.store.State(); st.IsLoggedIn {
		// The server only clears cookies; a failure here does not keep the
		// local session alive.
		_ = cli.api.do(ctx, http.MethodPost, "/api/auth/logout", st.Token, nil, nil)
	}
	if err := cli.store.Logout(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) token() (string, error) {
	st := cli.store.State()
	if !st.IsLoggedIn || st.Token == "" {
		return "", errNotLoggedIn
	}
	return st.Token, nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	token, err := cli.token()
	if err != nil {
		return err
	}
	var me authstore.User
	if err := cli.api.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &me); err != nil {
		return cli.checkSession(err)
	}
	fmt.Fprintf(cli.out, "%s <%s> role=%s\n", me.Name, me.Email, cli.store.State().Role)
	return nil
}

// checkSession drops the stored session when the server rejects its token.
func (cli *commandLine) checkSession(err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if clearErr := cli.store.Logout(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return fmt.Errorf("%w (session expired)", errNotLoggedIn)
	}
	return err
}

func (cli *commandLine) notifications(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	token, err := cli.token()
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		var feed feedResponse
		if err := cli.api.do(ctx, http.MethodGet, "/api/notifications", token, nil, &feed); err != nil {
			return cli.checkSession(err)
		}
		for _, n := range feed.Notifications {
			mark := " "
			if !n.IsRead {
				mark = "*"
			}
			fmt.Fprintf(cli.out, "%s %s [%s] %s: %s\n", mark, n.ID, n.Type, n.Title, n.Message)
		}
		fmt.Fprintf(cli.out, "%d unread\n", feed.UnreadCount)
		return nil
	case "read":
		if len(args) < 2 || args[1] == "" {
			cli.printUsage()
			return errHelp
		}
		var n notificationView
		if err := cli.api.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(args[1])+"/read", token, nil, &n); err != nil {
			return cli.checkSession(err)
		}
		fmt.Fprintf(cli.out, "Marked %s as read\n", n.ID)
		return nil
	case "read-all":
		var resp map[string]string
		if err := cli.api.do(ctx, http.MethodPut, "/api/notifications/read-all", token, nil, &resp); err != nil {
			return cli.checkSession(err)
		}
		fmt.Fprintln(cli.out, resp["message"])
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) createAdmin(ctx context.Context, in admin.ProvisionInput) error {
	if !in.Role.Valid() {
		return admin.ErrInvalidRole
	}
	svc, closeFn, err := cli.openProvisioner(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	a, err := svc.Provision(ctx, in)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(cli.out, "Created %s %s (%s)\n", a.Role, a.Email, a.ID.Hex())
	return nil
}
