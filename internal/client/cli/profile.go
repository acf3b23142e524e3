package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/client/models"
)

// Profile shows the current profile, or edits it with "profile edit".
func (a *App) Profile(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	if len(args) > 0 && args[0] == "edit" {
		return a.editProfile(ctx)
	}

	u, err := a.blog.Profile(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	a.printUser(u)
	return nil
}

// editProfile asks for each field; an empty answer keeps the current value.
func (a *App) editProfile(ctx context.Context) error {
	var upd models.ProfileUpdate

	name, err := getSimpleText(a.reader, "Full name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.FullName = &name
	}

	ageText, err := getSimpleText(a.reader, "Age (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if ageText != "" {
		age, err := strconv.Atoi(ageText)
		if err != nil {
			fmt.Fprintln(a.out, "Age must be a number")
			return err
		}
		upd.Age = &age
	}

	bio, err := getSimpleText(a.reader, "Bio (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if bio != "" {
		upd.Bio = &bio
	}

	if upd.ImagePath, err = getSimpleText(a.reader, "Path to profile image (empty to skip)", a.out); err != nil {
		return err
	}

	u, err := a.blog.UpdateProfile(ctx, upd)
	if err != nil {
		return a.report(ctx, err)
	}

	if a.session != nil {
		a.session.FullName = u.FullName
	}
	fmt.Fprintln(a.out, "Profile updated")
	a.printUser(u)
	return nil
}

func (a *App) printUser(u *models.User) {
	fmt.Fprintf(a.out, "Name:  %s\n", u.FullName)
	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
	if u.Age != nil {
		fmt.Fprintf(a.out, "Age:   %d\n", *u.Age)
	}
	if u.Bio != nil {
		fmt.Fprintf(a.out, "Bio:   %s\n", *u.Bio)
	}
	if u.Image != nil {
		fmt.Fprintf(a.out, "Image: %s\n", a.imageURL(*u.Image))
	}
}

// imageURL turns a stored image name into the address it is served from.
func (a *App) imageURL(name string) string {
	base := ""
	if a.config != nil {
		base = strings.TrimRight(a.config.ServerEndpointAddr, "/")
	}
	return base + "/uploads/" + name
}
