package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/revisit/internal/client"
	"github.com/at-ishikawa/revisit/internal/learning"
)

func newAddCommand() *cobra.Command {
	var input learning.CreateInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a learning item, due for review today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, input.Content)
			if err != nil {
				return err
			}
			input.Content = content

			return runWithClient(func(c *client.Client) error {
				item, err := c.CreateItem(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("c.CreateItem() > %w", err)
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("Added %s", item.ID)
				p.itemLine(*item)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input.Subject, "subject", "s", "", "subject of the item")
	flags.StringVarP(&input.Title, "title", "t", "", "title of the item")
	flags.StringVarP(&input.Content, "content", "c", "", `content of the item, "-" to read from stdin`)
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newListCommand() *cobra.Command {
	var query learning.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List learning items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				list, err := c.ListItems(cmd.Context(), query)
				if err != nil {
					return fmt.Errorf("c.ListItems() > %w", err)
				}
				p := newPrinter(cmd.OutOrStdout())
				for _, item := range list.Items {
					p.itemLine(item)
				}
				p.plain("%d of %d items", len(list.Items), list.Total)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&query.Subject, "subject", "s", "", "only list items of this subject")
	flags.IntVar(&query.Skip, "skip", 0, "number of items to skip")
	flags.IntVar(&query.Limit, "limit", learning.DefaultListLimit, fmt.Sprintf("maximum number of items, up to %d", learning.MaxListLimit))
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a learning item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				item, err := c.GetItem(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("c.GetItem(%s) > %w", args[0], err)
				}
				newPrinter(cmd.OutOrStdout()).item(*item)
				return nil
			})
		},
	}
}

func newEditCommand() *cobra.Command {
	var subject, title, content string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the subject, title or content of a learning item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			input := learning.UpdateInput{
				Subject: changed(flags, "subject", &subject),
				Title:   changed(flags, "title", &title),
			}
			if flags.Changed("content") {
				text, err := readContent(cmd, content)
				if err != nil {
					return err
				}
				input.Content = &text
			}
			if input.IsEmpty() {
				return fmt.Errorf("nothing to change: set --subject, --title or --content")
			}

			return runWithClient(func(c *client.Client) error {
				item, err := c.UpdateItem(cmd.Context(), args[0], input)
				if err != nil {
					return fmt.Errorf("c.UpdateItem(%s) > %w", args[0], err)
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("Updated %s", item.ID)
				p.itemLine(*item)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&subject, "subject", "s", "", "new subject")
	flags.StringVarP(&title, "title", "t", "", "new title")
	flags.StringVarP(&content, "content", "c", "", `new content, "-" to read from stdin`)
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a learning item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				if err := c.DeleteItem(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("c.DeleteItem(%s) > %w", args[0], err)
				}
				newPrinter(cmd.OutOrStdout()).success("Deleted %s", args[0])
				return nil
			})
		},
	}
}

func newSubjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects of learning items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				subjects, err := c.Subjects(cmd.Context())
				if err != nil {
					return fmt.Errorf("c.Subjects() > %w", err)
				}
				p := newPrinter(cmd.OutOrStdout())
				for _, subject := range subjects {
					p.plain("%s", subject)
				}
				return nil
			})
		},
	}
}

// readContent returns value, or stdin when value is "-".
func readContent(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}

// changed returns value if the flag was set on the command line, nil otherwise.
func changed(flags *pflag.FlagSet, name string, value *string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return value
}
