package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/session"
	"github.com/dmitrijs2005/foodlink/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account form and submits it. Registration does
// not log the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := GetRequiredText(a.reader, "Enter username", a.out)
	if err != nil {
		a.println(err)
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := a.promptRole()
	if err != nil {
		a.println(err)
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	res := a.session.Register(ctx, session.RegisterInput{
		Username: username,
		Email:    email,
		Password: string(password),
		Role:     role,
	})
	if !res.Success {
		a.println(res.Message)
		for _, line := range res.Summary() {
			a.println("  " + line)
		}
		return fmt.Errorf("registration failed")
	}

	a.println("Registration successful. You can now log in.")
	return nil
}

func (a *App) promptRole() (claims.Role, error) {
	s, err := getSimpleText(a.reader, "Role (donor/ngo)", a.out)
	if err != nil {
		return "", err
	}
	switch claims.Role(strings.ToUpper(s)) {
	case claims.RoleDonor:
		return claims.RoleDonor, nil
	case claims.RoleNGO:
		return claims.RoleNGO, nil
	}
	return "", fmt.Errorf("unknown role %q, expected donor or ngo", s)
}

// Login prompts for credentials and starts a session. The password is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	res := a.session.Login(ctx, username, password)
	if !res.Success {
		a.println(res.Message)
		return fmt.Errorf("login failed")
	}

	id, _ := a.session.Identity()
	a.printf("Welcome, %s! (%s)\n", id.Username, id.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout", "error", err)
	}
	a.println("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id, ok := a.session.Identity()
	if !ok {
		a.println("login required")
		return session.ErrNotAuthenticated
	}
	a.printf("%s (id %d, role %s)\n", id.Username, id.UserID, id.Role)
	return nil
}

// requireRole prints a message and returns an error unless the current user
// has one of roles.
func (a *App) requireRole(action string, roles ...claims.Role) (claims.Identity, error) {
	id, err := a.session.RequireRole(roles...)
	if err != nil {
		if id.Role != "" {
			a.printf("Only %s users can %s.\n", roleList(roles), action)
		} else {
			a.println("login required")
		}
		return id, err
	}
	return id, nil
}

func roleList(roles []claims.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, "/")
}
