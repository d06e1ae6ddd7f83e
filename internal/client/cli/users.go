package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
)

const usersPageSize = 20

// Users prints one page of the user list. arg is the 1-based page number;
// empty means the first page.
func (a *App) Users(ctx context.Context, arg string) error {
	page := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "Usage: users [page]")
			return fmt.Errorf("invalid page %q", arg)
		}
		page = n
	}

	a.router.Navigate(fmt.Sprintf("/users?page=%d", page))
	res, err := a.userService.List(ctx, models.UserQuery{}, client.PageQuery{PageNum: page, PageSize: usersPageSize})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tSTATUS\tCREATED")
	for _, u := range res.List {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Status, u.CreateTime)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d, %d of %d users\n", res.PageNum, len(res.List), res.Total)
	return nil
}

// User prints one user.
func (a *App) User(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: user <id>")
		return nil
	}

	a.router.Navigate("/users/" + url.PathEscape(id))
	u, err := a.userService.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\n", u.ID)
	fmt.Fprintf(a.out, "username: %s\n", u.Username)
	fmt.Fprintf(a.out, "email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "phone:    %s\n", u.Phone)
	fmt.Fprintf(a.out, "status:   %s\n", u.Status)
	fmt.Fprintf(a.out, "created:  %s\n", u.CreateTime)
	return nil
}

// RemoveUser deletes a user after confirmation.
func (a *App) RemoveUser(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: rmuser <id>")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete user %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.userService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
