package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Posts(ctx context.Context) error {
	posts, err := a.blog.ListPosts(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(a.out, "%s  %s\n", p.ID, p.Title)
		fmt.Fprintf(a.out, "    by %s <%s> on %s", p.Author.FullName, p.Author.Email, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		if len(p.Categories) > 0 {
			fmt.Fprintf(a.out, " [%s]", strings.Join(p.Categories, ", "))
		}
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "    %s\n", strings.ReplaceAll(p.Content, "\n", "\n    "))
	}
	return nil
}

// Post prompts for a title, a multi-line body and comma separated
// categories, then publishes the post.
func (a *App) Post(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	categories, err := getSimpleText(a.reader, "Categories (comma separated, optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.blog.CreatePost(ctx, title, content, categories)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Published %s\n", p.ID)
	return nil
}

// Delete removes one of the user's posts; the id comes from args or a prompt.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		if id, err = getSimpleText(a.reader, "Post id to delete", a.out); err != nil {
			return err
		}
	}

	if err := a.blog.DeletePost(ctx, id); err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}
