package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/presentation"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "Manage bookmarked ingredients",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var dtos []presentation.BookmarkDTO
		for _, b := range a.Bookmarks.Bookmarks() {
			dtos = append(dtos, presentation.FromBookmark(b, a.Bookmarks.Dormant(b)))
		}
		return formatter().FormatBookmarks(dtos)
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <uid>...",
	Short: "Bookmark ingredients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		for _, uid := range args {
			t, err := resolve(a, uid)
			if err != nil {
				return err
			}
			b, err := a.Bookmarks.Add(t)
			if errors.Is(err, bookmark.ErrAlreadyBookmarked) {
				fmt.Printf("%s is already bookmarked\n", uid)
				continue
			}
			if err != nil {
				return err
			}
			fmt.Printf("Bookmarked %s (%s)\n", b.UID(), b.ID())
		}
		return nil
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <uid|id>...",
	Short: "Remove bookmarks by ingredient uid or bookmark id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		for _, arg := range args {
			if err := removeBookmark(a.Bookmarks, arg); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", arg)
		}
		return nil
	},
}

// removeBookmark matches arg against bookmark ids first, then ingredient uids,
// so bookmarks of ingredients that are not loaded can still be removed.
func removeBookmark(list *bookmark.List, arg string) error {
	for _, b := range list.Bookmarks() {
		if b.ID() == arg || b.UID() == arg {
			return list.RemoveByID(b.ID())
		}
	}
	return &bookmark.NotFoundError{Key: arg}
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}
