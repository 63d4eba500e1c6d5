package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blogkit/pkg/autop"
	"github.com/dmitrymomot/blogkit/pkg/kses"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
	"github.com/dmitrymomot/blogkit/pkg/slug"
	"github.com/dmitrymomot/blogkit/pkg/translit"
)

func (a *app) autopCmd() *cobra.Command {
	var noBreaks, reverse bool

	cmd := &cobra.Command{
		Use:   "autop [file]",
		Short: "Wrap text paragraphs in <p> tags",
		Long: `Converts double line breaks into paragraphs and, unless --no-br is set,
single line breaks into <br />.

Examples:
  echo "one\n\ntwo" | blogkit autop
  blogkit autop --reverse post.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if reverse {
				return write(cmd, autop.Reverse(in))
			}
			return write(cmd, autop.Autop(in, autop.WithBreaks(!noBreaks)))
		},
	}
	cmd.Flags().BoolVar(&noBreaks, "no-br", false, "keep single newlines instead of converting them to <br />")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "turn paragraph HTML back into plain text")
	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	var (
		allowed string
		safe    bool
	)

	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Strip HTML down to the allowed tags",
		Long: fmt.Sprintf(`Removes every tag not in the allow-list (default %s plus --allow),
unescapes backslash sequences and drops unsafe attributes.

With --safe, block formatting (p, br, code, pre, blockquote) is kept as well
and links get rel="nofollow"; --allow is ignored.`, sanitizer.DefaultAllowedTags),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if safe {
				return write(cmd, sanitizer.SanitizeHTML(in))
			}
			return write(cmd, sanitizer.FilterHTML(in, allowed))
		},
	}
	cmd.Flags().StringVar(&allowed, "allow", "", `extra tags to keep, e.g. "<p><h2>"`)
	cmd.Flags().BoolVar(&safe, "safe", false, "keep paragraphs and code blocks, add rel=nofollow to links")
	return cmd
}

func (a *app) escURLCmd() *cobra.Command {
	var (
		protocols []string
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "esc-url URL...",
		Short: "Sanitize URLs for display or storage",
		Long: `Prints each URL cleaned of invalid characters and disallowed protocols.
A rejected URL prints as an empty line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []kses.Option
			if cmd.Flags().Changed("protocols") {
				opts = append(opts, kses.WithProtocols(protocols...))
			}
			if raw {
				opts = append(opts, kses.WithContext(kses.DB))
			}
			for _, u := range args {
				if err := write(cmd, kses.EscURL(u, opts...)+"\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&protocols, "protocols", kses.AllowedProtocols(), "allowed URL schemes")
	cmd.Flags().BoolVar(&raw, "raw", false, "skip HTML entity encoding (for storage)")
	return cmd
}

func (a *app) accentsCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "accents [file]",
		Short: "Replace accented characters with ASCII",
		Long: fmt.Sprintf(`Transliterates Latin accented characters. --locale enables
language-specific rules; supported: %s.`, supportedLocales()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return write(cmd, translit.RemoveAccents(in, locale))
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale such as de_DE or da")
	return cmd
}

func (a *app) slugCmd() *cobra.Command {
	var (
		locale    string
		maxLength int
		unique    bool
	)

	cmd := &cobra.Command{
		Use:   "slug TITLE...",
		Short: "Build a URL slug from a title",
		Long: `Joins the arguments into one title and prints its slug. With --unique the
configured store is consulted and the first free slug is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if !unique {
				return write(cmd, slug.Make(title, slug.WithLocale(locale), slug.MaxLength(maxLength))+"\n")
			}

			env, err := a.openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			s, err := env.blog.SlugFor(cmd.Context(), title, locale)
			if err != nil {
				return err
			}
			return write(cmd, s+"\n")
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "transliteration locale")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "truncate the slug to this many characters")
	cmd.Flags().BoolVar(&unique, "unique", false, "check the store and return the first free slug")
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var (
		format   string
		noBreaks bool
		asJSON   bool
		allowed  string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a text, html or markdown body to display HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			res, err := render.New(render.WithAllowedTags(allowed)).
				Render(cmd.Context(), render.Document{Body: in, Format: f, NoBreaks: noBreaks})
			if err != nil {
				return err
			}

			if !asJSON {
				return write(cmd, res.HTML)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "body format: text, html or markdown")
	cmd.Flags().BoolVar(&noBreaks, "no-br", false, "keep single newlines instead of converting them to <br />")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print html, excerpt and first_url as JSON")
	cmd.Flags().StringVar(&allowed, "allow", "", "extra tags kept in html bodies")
	return cmd
}

func supportedLocales() string {
	tags := translit.SupportedLocales()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
